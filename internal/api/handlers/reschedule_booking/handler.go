package reschedule_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	rescheduleBooking "github.com/m04kA/SMC-CourtBooking/internal/usecase/reschedule_booking"
)

const (
	msgInvalidBookingID    = "некорректный ID бронирования"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateTime     = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgMissingActor        = "требуется авторизация"
	msgNotFound            = "бронирование не найдено"
	msgFacilityNotFound    = "площадка не найдена"
	msgCourtNotFound       = "корт не найден"
	msgForbidden           = "бронирование принадлежит другому пользователю"
	msgCancelled           = "бронирование отменено"
	msgWindowClosed        = "перенести бронирование можно не позднее чем за 30 минут до начала"
	msgOutsideOpeningHours = "интервал вне часов работы площадки"
	msgSlotConflict        = "выбранный интервал уже занят"
	msgInvalidInput        = "некорректные параметры переноса"
)

type Handler struct {
	useCase  RescheduleBookingUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase RescheduleBookingUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor, bookingID, h.location)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleBooking.ErrFacilityNotFound):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Facility not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, rescheduleBooking.ErrCourtNotFound):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Court not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, rescheduleBooking.ErrForbidden):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Access denied: booking_id=%d, user_id=%d", bookingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rescheduleBooking.ErrBookingCancelled):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Booking cancelled: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgCancelled)

		case errors.Is(err, rescheduleBooking.ErrModificationWindowClosed):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Window closed: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgWindowClosed)

		case errors.Is(err, rescheduleBooking.ErrSlotConflict):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Slot conflict: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, rescheduleBooking.ErrOutsideOpeningHours):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Outside opening hours: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgOutsideOpeningHours)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, rescheduleBooking.ErrUnauthorized):
			handlers.RespondUnauthorized(w, msgMissingActor)

		default:
			h.logger.Error("PATCH /bookings/{id}/reschedule - Failed to reschedule booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/reschedule - Booking rescheduled successfully: booking_id=%d, start=%s",
		bookingID, result.StartTime.Format(time.RFC3339))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
