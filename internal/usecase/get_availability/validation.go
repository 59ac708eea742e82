package get_availability

import (
	"fmt"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// validateRequest проверяет запрос и возвращает гранулярность слотов
func validateRequest(req *Request) (int, error) {
	if req.FacilityID <= 0 {
		return 0, fmt.Errorf("%w: facility id is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return 0, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	switch req.Granularity {
	case 0:
		return domain.BookingSlotMinutes, nil
	case domain.BookingSlotMinutes, domain.LegacySlotMinutes:
		return req.Granularity, nil
	default:
		return 0, fmt.Errorf("%w: granularity must be %d or %d minutes",
			ErrInvalidInput, domain.BookingSlotMinutes, domain.LegacySlotMinutes)
	}
}
