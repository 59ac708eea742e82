package decide_equipment_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBooking/internal/service/equipmentrequests"
	"github.com/m04kA/SMC-CourtBooking/internal/service/equipmentrequests/models"
)

const (
	msgInvalidRequestID   = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingActor       = "требуется авторизация"
	msgForbidden          = "доступно только сотрудникам"
	msgNotFound           = "заявка не найдена"
	msgClosed             = "решение по заявке уже принято"
	msgInvalidDecision    = "решение должно быть approve или deny"
)

type Handler struct {
	service EquipmentRequestService
	logger  Logger
}

func NewHandler(service EquipmentRequestService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/equipment-requests/{requestId}/decision
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requestID, err := handlers.PathInt64(r, "requestId")
	if err != nil {
		h.logger.Warn("POST /equipment-requests/{id}/decision - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /equipment-requests/{id}/decision - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req models.DecisionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /equipment-requests/{id}/decision - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Decide(r.Context(), actor, requestID, &req)
	if err != nil {
		switch {
		case errors.Is(err, equipmentrequests.ErrRequestNotFound):
			h.logger.Warn("POST /equipment-requests/{id}/decision - Request not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, equipmentrequests.ErrForbidden):
			h.logger.Warn("POST /equipment-requests/{id}/decision - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, equipmentrequests.ErrRequestClosed):
			h.logger.Warn("POST /equipment-requests/{id}/decision - Request closed: request_id=%d", requestID)
			handlers.RespondConflict(w, msgClosed)

		case errors.Is(err, equipmentrequests.ErrInvalidInput):
			h.logger.Warn("POST /equipment-requests/{id}/decision - Invalid decision: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDecision)

		case errors.Is(err, equipmentrequests.ErrUnauthorized):
			handlers.RespondUnauthorized(w, msgMissingActor)

		default:
			h.logger.Error("POST /equipment-requests/{id}/decision - Failed to decide: request_id=%d, error=%v", requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /equipment-requests/{id}/decision - Request decided: request_id=%d, status=%s", requestID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
