package return_equipment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	returnEquipment "github.com/m04kA/SMC-CourtBooking/internal/usecase/return_equipment"
)

const (
	msgInvalidItemID      = "некорректный ID строки заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingActor       = "требуется авторизация"
	msgForbidden          = "доступно только сотрудникам"
	msgNotFound           = "строка заявки не найдена"
	msgEquipmentNotFound  = "инвентарь не найден"
	msgClosed             = "заявка отклонена"
	msgOutOfRange         = "количество превышает выданное и не возвращённое"
	msgInvalidReturn      = "некорректные параметры возврата"
)

type Handler struct {
	useCase ReturnEquipmentUseCase
	logger  Logger
}

func NewHandler(useCase ReturnEquipmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/equipment-request-items/{itemId}/return
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	itemID, err := handlers.PathInt64(r, "itemId")
	if err != nil {
		h.logger.Warn("POST /equipment-request-items/{id}/return - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /equipment-request-items/{id}/return - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req ReturnEquipmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /equipment-request-items/{id}/return - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actor, itemID))
	if err != nil {
		switch {
		case errors.Is(err, returnEquipment.ErrItemNotFound):
			h.logger.Warn("POST /equipment-request-items/{id}/return - Item not found: item_id=%d", itemID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, returnEquipment.ErrEquipmentNotFound):
			h.logger.Warn("POST /equipment-request-items/{id}/return - Equipment not found: item_id=%d", itemID)
			handlers.RespondNotFound(w, msgEquipmentNotFound)

		case errors.Is(err, returnEquipment.ErrForbidden):
			h.logger.Warn("POST /equipment-request-items/{id}/return - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, returnEquipment.ErrRequestClosed):
			h.logger.Warn("POST /equipment-request-items/{id}/return - Request closed: item_id=%d", itemID)
			handlers.RespondConflict(w, msgClosed)

		case errors.Is(err, returnEquipment.ErrQuantityOutOfRange):
			h.logger.Warn("POST /equipment-request-items/{id}/return - Quantity out of range: item_id=%d, error=%v", itemID, err)
			handlers.RespondBadRequest(w, msgOutOfRange)

		case errors.Is(err, returnEquipment.ErrInvalidInput):
			h.logger.Warn("POST /equipment-request-items/{id}/return - Invalid return: %v", err)
			handlers.RespondBadRequest(w, msgInvalidReturn)

		case errors.Is(err, returnEquipment.ErrUnauthorized):
			handlers.RespondUnauthorized(w, msgMissingActor)

		default:
			h.logger.Error("POST /equipment-request-items/{id}/return - Failed to return: item_id=%d, error=%v", itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /equipment-request-items/{id}/return - Return accepted: item_id=%d, request_status=%s",
		itemID, result.RequestStatus)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
