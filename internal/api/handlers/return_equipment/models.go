package return_equipment

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	returnEquipment "github.com/m04kA/SMC-CourtBooking/internal/usecase/return_equipment"
	"github.com/m04kA/SMC-CourtBooking/pkg/ptr"
)

// ReturnEquipmentRequest HTTP request model
type ReturnEquipmentRequest struct {
	Qty       int     `json:"qty"`
	Condition string  `json:"condition"` // good, damaged, lost, not_returned
	Notes     *string `json:"notes,omitempty"`
	Dismiss   bool    `json:"dismiss,omitempty"` // только для not_returned
}

// ReturnEquipmentResponse HTTP response model
type ReturnEquipmentResponse struct {
	ItemID        int64   `json:"itemId"`
	RequestID     int64   `json:"requestId"`
	EquipmentID   int64   `json:"equipmentId"`
	Qty           int     `json:"qty"`
	QtyReturned   int     `json:"qtyReturned"`
	Condition     string  `json:"condition"`
	Dismissed     bool    `json:"dismissed"`
	RequestStatus string  `json:"requestStatus"`
	ReturnedAt    *string `json:"returnedAt,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ReturnEquipmentRequest) ToUseCaseRequest(actor *domain.Actor, itemID int64) *returnEquipment.Request {
	return &returnEquipment.Request{
		Actor:     actor,
		ItemID:    itemID,
		Qty:       r.Qty,
		Condition: r.Condition,
		Notes:     r.Notes,
		Dismiss:   r.Dismiss,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *returnEquipment.Response) *ReturnEquipmentResponse {
	var returnedAt *string
	if resp.ReturnedAt != nil {
		returnedAt = ptr.Ptr(resp.ReturnedAt.Format(time.RFC3339))
	}

	return &ReturnEquipmentResponse{
		ItemID:        resp.ItemID,
		RequestID:     resp.RequestID,
		EquipmentID:   resp.EquipmentID,
		Qty:           resp.Qty,
		QtyReturned:   resp.QtyReturned,
		Condition:     resp.Condition,
		Dismissed:     resp.Dismissed,
		RequestStatus: resp.RequestStatus,
		ReturnedAt:    returnedAt,
	}
}
