package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-CourtBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidTime         = "некорректный формат времени, ожидается HH:MM"
	msgMissingActor        = "требуется авторизация"
	msgSlotConflict        = "выбранный интервал уже занят"
	msgFacilityNotFound    = "площадка не найдена"
	msgCourtNotFound       = "корт не найден"
	msgEquipmentNotFound   = "инвентарь не найден"
	msgOutsideOpeningHours = "интервал вне часов работы площадки"
	msgQuotaExceeded       = "превышен лимит бронирований"
	msgInvalidBooking      = "некорректные параметры бронирования"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid time")
)

type Handler struct {
	useCase  CreateBookingUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CreateBookingUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/bookings
// Повторная отправка того же бронирования отвечает 200 с существующей записью
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor, h.location)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: user_id=%d, court_id=%d", actor.UserID, req.CourtID)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, createBooking.ErrFacilityNotFound):
			h.logger.Warn("POST /bookings - Facility not found: facility_id=%d", req.FacilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, createBooking.ErrCourtNotFound):
			h.logger.Warn("POST /bookings - Court not found: facility_id=%d, court_id=%d", req.FacilityID, req.CourtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, createBooking.ErrEquipmentNotFound):
			h.logger.Warn("POST /bookings - Equipment not found: facility_id=%d", req.FacilityID)
			handlers.RespondNotFound(w, msgEquipmentNotFound)

		case errors.Is(err, createBooking.ErrOutsideOpeningHours):
			h.logger.Warn("POST /bookings - Outside opening hours: facility_id=%d", req.FacilityID)
			handlers.RespondBadRequest(w, msgOutsideOpeningHours)

		case errors.Is(err, createBooking.ErrQuotaExceeded):
			h.logger.Warn("POST /bookings - Quota exceeded: user_id=%d", actor.UserID)
			handlers.RespondError(w, http.StatusTooManyRequests, msgQuotaExceeded)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid booking: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidBooking)

		case errors.Is(err, createBooking.ErrUnauthorized):
			handlers.RespondUnauthorized(w, msgMissingActor)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, facility_id=%d, error=%v",
				actor.UserID, req.FacilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	if result.Duplicate {
		h.logger.Info("POST /bookings - Duplicate submission, returning booking_id=%d", result.ID)
		handlers.RespondJSON(w, http.StatusOK, response)
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, court_id=%d",
		result.ID, actor.UserID, result.CourtID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
