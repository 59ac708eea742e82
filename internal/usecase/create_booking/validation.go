package create_booking

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// maxEquipmentLines ограничение на количество позиций инвентаря в одном бронировании
const maxEquipmentLines = 20

// validateRequest проверяет входные данные запроса
func validateRequest(req *Request) error {
	if req.FacilityID <= 0 {
		return fmt.Errorf("%w: facility id is required", ErrInvalidInput)
	}
	if req.CourtID <= 0 {
		return fmt.Errorf("%w: court id is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
	}
	if !req.EndTime.IsZero() {
		if err := req.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: end time: %v", ErrInvalidInput, err)
		}
		if !req.StartTime.IsBefore(req.EndTime) {
			return fmt.Errorf("%w: start time must be before end time", ErrInvalidInput)
		}
	}
	if len(req.EquipmentIDs) > maxEquipmentLines {
		return fmt.Errorf("%w: at most %d equipment items", ErrInvalidInput, maxEquipmentLines)
	}
	for _, id := range req.EquipmentIDs {
		if id <= 0 {
			return fmt.Errorf("%w: equipment id must be positive", ErrInvalidInput)
		}
	}
	return nil
}

// resolveInterval переводит дату и время запроса в интервал [start, end) в часовом поясе площадки
func resolveInterval(req *Request, loc *time.Location) (domain.Interval, error) {
	y, m, d := req.Date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, loc)

	end := req.EndTime
	if end.IsZero() {
		next, err := req.StartTime.AddMinutes(domain.BookingSlotMinutes)
		if err != nil {
			return domain.Interval{}, fmt.Errorf("%w: slot does not fit into the day", ErrInvalidInput)
		}
		end = next
	}

	return domain.Interval{Start: req.StartTime.On(day), End: end.On(day)}, nil
}

// validateSchedule проверяет, что интервал в будущем и внутри часов работы площадки
func validateSchedule(facility *domain.Facility, interval domain.Interval, now time.Time) error {
	if !interval.Start.After(now) {
		return fmt.Errorf("%w: start time is in the past", ErrInvalidInput)
	}

	opening := facility.Opening(interval.Start)
	if interval.Start.Before(opening.Start) || interval.End.After(opening.End) {
		return fmt.Errorf("%w: facility is open %s-%s", ErrOutsideOpeningHours, facility.OpenTime, facility.CloseTime)
	}
	return nil
}

// uniqueIDs убирает повторы и сортирует по возрастанию
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
