package delete_facility

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBooking/internal/service/facilities"
)

const (
	msgInvalidFacilityID = "некорректный ID площадки"
	msgMissingActor      = "требуется авторизация"
	msgForbidden         = "доступно только администраторам"
	msgNotFound          = "площадка не найдена"
	msgInUse             = "на площадку есть бронирования, удаление невозможно"
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

// Handle DELETE /api/v1/facilities/{facilityId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	facilityID, err := handlers.PathInt64(r, "facilityId")
	if err != nil {
		h.logger.Warn("DELETE /facilities/{id} - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("DELETE /facilities/{id} - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	if err := h.service.Delete(r.Context(), actor, facilityID); err != nil {
		switch {
		case errors.Is(err, facilities.ErrFacilityNotFound):
			h.logger.Warn("DELETE /facilities/{id} - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, facilities.ErrFacilityInUse):
			h.logger.Warn("DELETE /facilities/{id} - Facility in use: facility_id=%d", facilityID)
			handlers.RespondConflict(w, msgInUse)

		case errors.Is(err, facilities.ErrForbidden):
			h.logger.Warn("DELETE /facilities/{id} - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, facilities.ErrUnauthorized):
			handlers.RespondUnauthorized(w, msgMissingActor)

		default:
			h.logger.Error("DELETE /facilities/{id} - Failed to delete facility: facility_id=%d, error=%v", facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /facilities/{id} - Facility deleted successfully: facility_id=%d", facilityID)
	w.WriteHeader(http.StatusNoContent)
}
