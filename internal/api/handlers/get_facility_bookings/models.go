package get_facility_bookings

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// Без date берётся текущий день в часовом поясе площадки
func ToServiceRequest(facilityID int64, dateStr, statusStr string, now time.Time, loc *time.Location) (*models.GetFacilityBookingsRequest, error) {
	req := &models.GetFacilityBookingsRequest{FacilityID: facilityID}

	if dateStr == "" {
		local := now.In(loc)
		req.Date = time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	} else {
		date, err := time.ParseInLocation(domain.DateFormat, dateStr, loc)
		if err != nil {
			return nil, err
		}
		req.Date = date
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	return req, nil
}
