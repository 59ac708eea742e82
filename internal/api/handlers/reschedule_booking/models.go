package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	rescheduleBooking "github.com/m04kA/SMC-CourtBooking/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "18:00"
}

// RescheduleBookingResponse HTTP response model
type RescheduleBookingResponse struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"userId"`
	FacilityID int64  `json:"facilityId"`
	CourtID    int64  `json:"courtId"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Status     string `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(actor *domain.Actor, bookingID int64, loc *time.Location) (*rescheduleBooking.Request, error) {
	date, err := time.ParseInLocation(domain.DateFormat, r.Date, loc)
	if err != nil {
		return nil, err
	}

	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleBooking.Request{
		Actor:     actor,
		BookingID: bookingID,
		Date:      date,
		StartTime: start,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduleBookingResponse {
	return &RescheduleBookingResponse{
		ID:         resp.ID,
		UserID:     resp.UserID,
		FacilityID: resp.FacilityID,
		CourtID:    resp.CourtID,
		StartTime:  resp.StartTime.Format(time.RFC3339),
		EndTime:    resp.EndTime.Format(time.RFC3339),
		Status:     resp.Status,
	}
}
