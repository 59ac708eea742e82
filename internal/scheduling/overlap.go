package scheduling

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// FindConflict возвращает первое активное бронирование, пересекающееся с candidate.
// Отменённые бронирования и бронирование excludeID игнорируются.
// Граничащие интервалы (конец одного равен началу другого) не конфликтуют.
func FindConflict(candidate domain.Interval, bookings []*domain.Booking, excludeID int64) *domain.Booking {
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		if excludeID != 0 && b.ID == excludeID {
			continue
		}
		if candidate.Overlaps(b.Interval()) {
			return b
		}
	}
	return nil
}

// IsFree returns true if candidate does not overlap any active booking
func IsFree(candidate domain.Interval, bookings []*domain.Booking) bool {
	return FindConflict(candidate, bookings, 0) == nil
}

// IsElapsed слот уже начался или прошёл: его начало не строго позже now
func IsElapsed(start, now time.Time) bool {
	return !start.After(now)
}

// FreeStartTimes возвращает свободные времена начала для одного корта в дату date.
// bookings должны относиться к этому корту. Прошедшие слоты исключаются.
func FreeStartTimes(
	date time.Time,
	starts []types.TimeString,
	durationMinutes int,
	bookings []*domain.Booking,
	now time.Time,
) []types.TimeString {
	free := make([]types.TimeString, 0, len(starts))
	duration := time.Duration(durationMinutes) * time.Minute

	for _, s := range starts {
		start := s.On(date)
		if IsElapsed(start, now) {
			continue
		}
		if IsFree(domain.Interval{Start: start, End: start.Add(duration)}, bookings) {
			free = append(free, s)
		}
	}

	return free
}
