package cancel_booking

import (
	"time"

	cancelBooking "github.com/m04kA/SMC-CourtBooking/internal/usecase/cancel_booking"
)

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	ID             int64  `json:"id"`
	Status         string `json:"status"`
	CancelledAt    string `json:"cancelledAt"`
	ClosedRequests int64  `json:"closedEquipmentRequests"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		ID:             resp.ID,
		Status:         resp.Status,
		CancelledAt:    resp.CancelledAt.Format(time.RFC3339),
		ClosedRequests: resp.ClosedRequests,
	}
}
