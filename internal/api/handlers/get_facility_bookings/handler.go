package get_facility_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings"
)

const (
	msgInvalidFacilityID = "некорректный ID площадки"
	msgMissingActor      = "требуется авторизация"
	msgInvalidDate       = "некорректная дата, ожидается YYYY-MM-DD"
	msgInvalidStatus     = "некорректный статус, ожидается confirmed, rescheduled, cancelled или completed"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	service  BookingService
	location *time.Location
	now      func() time.Time
	logger   Logger
}

func NewHandler(service BookingService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		now:      time.Now,
		logger:   logger,
	}
}

// Handle GET /api/v1/facilities/{facilityId}/bookings
// Query params: date, status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	facilityID, err := handlers.PathInt64(r, "facilityId")
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/bookings - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /facilities/{id}/bookings - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(facilityID, query.Get("date"), query.Get("status"), h.now(), h.location)
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/bookings - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetFacilityBookings(r.Context(), actor, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /facilities/{id}/bookings - Access denied: facility_id=%d, user_id=%d",
				facilityID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookings.ErrUnauthorized):
			handlers.RespondUnauthorized(w, msgMissingActor)

		default:
			h.logger.Error("GET /facilities/{id}/bookings - Failed to get bookings: facility_id=%d, error=%v",
				facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /facilities/{id}/bookings - Bookings retrieved successfully: facility_id=%d, count=%d",
		facilityID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
