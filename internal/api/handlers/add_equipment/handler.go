package add_equipment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBooking/internal/service/facilities"
	"github.com/m04kA/SMC-CourtBooking/internal/service/facilities/models"
)

const (
	msgInvalidFacilityID  = "некорректный ID площадки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingActor       = "требуется авторизация"
	msgForbidden          = "доступно только администраторам"
	msgNotFound           = "площадка не найдена"
	msgInvalidEquipment   = "некорректные параметры инвентаря"
)

type Handler struct {
	service FacilityService
	logger  Logger
}

func NewHandler(service FacilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/facilities/{facilityId}/equipment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	facilityID, err := handlers.PathInt64(r, "facilityId")
	if err != nil {
		h.logger.Warn("POST /facilities/{id}/equipment - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /facilities/{id}/equipment - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req models.AddEquipmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /facilities/{id}/equipment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	equipment, err := h.service.AddEquipment(r.Context(), actor, facilityID, &req)
	if err != nil {
		switch {
		case errors.Is(err, facilities.ErrFacilityNotFound):
			h.logger.Warn("POST /facilities/{id}/equipment - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, facilities.ErrForbidden):
			h.logger.Warn("POST /facilities/{id}/equipment - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, facilities.ErrInvalidInput):
			h.logger.Warn("POST /facilities/{id}/equipment - Invalid equipment: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEquipment)

		case errors.Is(err, facilities.ErrUnauthorized):
			handlers.RespondUnauthorized(w, msgMissingActor)

		default:
			h.logger.Error("POST /facilities/{id}/equipment - Failed to add equipment: facility_id=%d, error=%v", facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /facilities/{id}/equipment - Equipment added: facility_id=%d, equipment_id=%d", facilityID, equipment.ID)
	handlers.RespondJSON(w, http.StatusCreated, equipment)
}
