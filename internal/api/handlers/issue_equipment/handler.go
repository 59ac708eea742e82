package issue_equipment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	issueEquipment "github.com/m04kA/SMC-CourtBooking/internal/usecase/issue_equipment"
)

const (
	msgInvalidRequestID   = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingActor       = "требуется авторизация"
	msgForbidden          = "доступно только сотрудникам"
	msgNotFound           = "заявка не найдена"
	msgEquipmentNotFound  = "инвентарь не найден на площадке"
	msgClosed             = "заявка закрыта"
	msgReduction          = "выданное количество нельзя уменьшить, оформите возврат"
	msgInsufficientStock  = "недостаточно инвентаря"
	msgInvalidLines       = "некорректные позиции выдачи"
)

type Handler struct {
	useCase IssueEquipmentUseCase
	logger  Logger
}

func NewHandler(useCase IssueEquipmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/equipment-requests/{requestId}/issue
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requestID, err := handlers.PathInt64(r, "requestId")
	if err != nil {
		h.logger.Warn("POST /equipment-requests/{id}/issue - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /equipment-requests/{id}/issue - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req IssueEquipmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /equipment-requests/{id}/issue - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actor, requestID))
	if err != nil {
		switch {
		case errors.Is(err, issueEquipment.ErrRequestNotFound):
			h.logger.Warn("POST /equipment-requests/{id}/issue - Request not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, issueEquipment.ErrEquipmentNotFound):
			h.logger.Warn("POST /equipment-requests/{id}/issue - Equipment not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgEquipmentNotFound)

		case errors.Is(err, issueEquipment.ErrForbidden):
			h.logger.Warn("POST /equipment-requests/{id}/issue - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, issueEquipment.ErrRequestClosed):
			h.logger.Warn("POST /equipment-requests/{id}/issue - Request closed: request_id=%d", requestID)
			handlers.RespondConflict(w, msgClosed)

		case errors.Is(err, issueEquipment.ErrInsufficientStock):
			h.logger.Warn("POST /equipment-requests/{id}/issue - Insufficient stock: request_id=%d, error=%v", requestID, err)
			handlers.RespondConflict(w, msgInsufficientStock)

		case errors.Is(err, issueEquipment.ErrIllegalQuantityReduction):
			h.logger.Warn("POST /equipment-requests/{id}/issue - Quantity reduction: request_id=%d", requestID)
			handlers.RespondBadRequest(w, msgReduction)

		case errors.Is(err, issueEquipment.ErrInvalidInput):
			h.logger.Warn("POST /equipment-requests/{id}/issue - Invalid lines: %v", err)
			handlers.RespondBadRequest(w, msgInvalidLines)

		case errors.Is(err, issueEquipment.ErrUnauthorized):
			handlers.RespondUnauthorized(w, msgMissingActor)

		default:
			h.logger.Error("POST /equipment-requests/{id}/issue - Failed to issue: request_id=%d, error=%v", requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /equipment-requests/{id}/issue - Equipment issued: request_id=%d, items=%d", requestID, len(result.Items))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
