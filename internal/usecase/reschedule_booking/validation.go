package reschedule_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// validateRequest проверяет входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
	}
	return nil
}

// newInterval строит новый интервал с той же длительностью, что у бронирования
func newInterval(req *Request, booking *domain.Booking, loc *time.Location) domain.Interval {
	y, m, d := req.Date.Date()
	start := req.StartTime.On(time.Date(y, m, d, 0, 0, 0, 0, loc))
	return domain.Interval{Start: start, End: start.Add(booking.Duration())}
}

// validateSchedule проверяет, что новый интервал в будущем и внутри часов работы площадки
func validateSchedule(facility *domain.Facility, interval domain.Interval, now time.Time) error {
	if !interval.Start.After(now) {
		return fmt.Errorf("%w: new start time is in the past", ErrInvalidInput)
	}

	opening := facility.Opening(interval.Start)
	if interval.Start.Before(opening.Start) || interval.End.After(opening.End) {
		return fmt.Errorf("%w: facility is open %s-%s", ErrOutsideOpeningHours, facility.OpenTime, facility.CloseTime)
	}
	return nil
}
