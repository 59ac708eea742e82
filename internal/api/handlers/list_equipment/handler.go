package list_equipment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/service/facilities"
)

const (
	msgInvalidFacilityID = "некорректный ID площадки"
	msgNotFound          = "площадка не найдена"
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

// Handle GET /api/v1/facilities/{facilityId}/equipment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	facilityID, err := handlers.PathInt64(r, "facilityId")
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/equipment - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	result, err := h.service.ListEquipment(r.Context(), facilityID)
	if err != nil {
		if errors.Is(err, facilities.ErrFacilityNotFound) {
			h.logger.Warn("GET /facilities/{id}/equipment - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /facilities/{id}/equipment - Failed to list equipment: facility_id=%d, error=%v", facilityID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /facilities/{id}/equipment - Equipment retrieved: facility_id=%d, count=%d",
		facilityID, len(result.Equipment))
	handlers.RespondJSON(w, http.StatusOK, result.Equipment)
}
