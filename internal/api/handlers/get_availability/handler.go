package get_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	getAvailability "github.com/m04kA/SMC-CourtBooking/internal/usecase/get_availability"
)

const (
	msgInvalidFacilityID  = "некорректный ID площадки"
	msgMissingDate        = "дата обязательна"
	msgInvalidQuery       = "некорректный формат даты или шага, ожидается date=YYYY-MM-DD и granularity=60|30"
	msgFacilityNotFound   = "площадка не найдена"
	msgInvalidGranularity = "поддерживается шаг 60 или 30 минут"
)

type Handler struct {
	useCase  GetAvailabilityUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetAvailabilityUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/facilities/{facilityId}/availability
// Query params: date (required, YYYY-MM-DD), granularity (optional, 60 или 30)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	facilityID, err := handlers.PathInt64(r, "facilityId")
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/availability - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /facilities/{id}/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(facilityID, dateStr, r.URL.Query().Get("granularity"), h.location)
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/availability - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrFacilityNotFound):
			h.logger.Warn("GET /facilities/{id}/availability - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /facilities/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidGranularity)

		default:
			h.logger.Error("GET /facilities/{id}/availability - Failed to get availability: facility_id=%d, error=%v",
				facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /facilities/{id}/availability - Availability retrieved: facility_id=%d, date=%s, courts=%d",
		facilityID, dateStr, len(result.Courts))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
