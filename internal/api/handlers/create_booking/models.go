package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-CourtBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	FacilityID   int64   `json:"facilityId"`
	CourtID      int64   `json:"courtId"`
	Date         string  `json:"date"`              // "2025-10-15"
	StartTime    string  `json:"startTime"`         // "18:00"
	EndTime      *string `json:"endTime,omitempty"` // по умолчанию один слот
	EquipmentIDs []int64 `json:"equipmentIds,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                 int64  `json:"id"`
	UserID             int64  `json:"userId"`
	FacilityID         int64  `json:"facilityId"`
	CourtID            int64  `json:"courtId"`
	StartTime          string `json:"startTime"`
	EndTime            string `json:"endTime"`
	Status             string `json:"status"`
	EquipmentRequestID *int64 `json:"equipmentRequestId,omitempty"`
	CreatedAt          string `json:"createdAt"`
	UpdatedAt          string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actor *domain.Actor, loc *time.Location) (*createBooking.Request, error) {
	date, err := time.ParseInLocation(domain.DateFormat, r.Date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}

	var end types.TimeString
	if r.EndTime != nil {
		end, err = types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
		}
	}

	return &createBooking.Request{
		Actor:        actor,
		FacilityID:   r.FacilityID,
		CourtID:      r.CourtID,
		Date:         date,
		StartTime:    start,
		EndTime:      end,
		EquipmentIDs: r.EquipmentIDs,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                 resp.ID,
		UserID:             resp.UserID,
		FacilityID:         resp.FacilityID,
		CourtID:            resp.CourtID,
		StartTime:          resp.StartTime.Format(time.RFC3339),
		EndTime:            resp.EndTime.Format(time.RFC3339),
		Status:             resp.Status,
		EquipmentRequestID: resp.EquipmentRequestID,
		CreatedAt:          resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          resp.UpdatedAt.Format(time.RFC3339),
	}
}
