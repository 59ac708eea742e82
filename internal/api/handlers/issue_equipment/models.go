package issue_equipment

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	issueEquipment "github.com/m04kA/SMC-CourtBooking/internal/usecase/issue_equipment"
	"github.com/m04kA/SMC-CourtBooking/pkg/ptr"
)

// IssueLine HTTP модель позиции выдачи
type IssueLine struct {
	EquipmentID int64 `json:"equipmentId"`
	Qty         int   `json:"qty"` // итоговое выданное количество
}

// IssueEquipmentRequest HTTP request model
type IssueEquipmentRequest struct {
	Lines []IssueLine `json:"lines"`
}

// ItemResponse строка заявки после выдачи
type ItemResponse struct {
	ID          int64   `json:"id"`
	EquipmentID int64   `json:"equipmentId"`
	Qty         int     `json:"qty"`
	QtyReturned int     `json:"qtyReturned"`
	IssuedAt    *string `json:"issuedAt,omitempty"`
}

// IssueEquipmentResponse HTTP response model
type IssueEquipmentResponse struct {
	RequestID int64          `json:"requestId"`
	BookingID int64          `json:"bookingId"`
	Status    string         `json:"status"`
	Items     []ItemResponse `json:"items"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *IssueEquipmentRequest) ToUseCaseRequest(actor *domain.Actor, requestID int64) *issueEquipment.Request {
	lines := make([]issueEquipment.Line, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, issueEquipment.Line{EquipmentID: l.EquipmentID, Qty: l.Qty})
	}
	return &issueEquipment.Request{Actor: actor, RequestID: requestID, Lines: lines}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *issueEquipment.Response) *IssueEquipmentResponse {
	items := make([]ItemResponse, 0, len(resp.Items))
	for _, i := range resp.Items {
		var issuedAt *string
		if i.IssuedAt != nil {
			issuedAt = ptr.Ptr(i.IssuedAt.Format(time.RFC3339))
		}
		items = append(items, ItemResponse{
			ID:          i.ID,
			EquipmentID: i.EquipmentID,
			Qty:         i.Qty,
			QtyReturned: i.QtyReturned,
			IssuedAt:    issuedAt,
		})
	}

	return &IssueEquipmentResponse{
		RequestID: resp.RequestID,
		BookingID: resp.BookingID,
		Status:    resp.Status,
		Items:     items,
	}
}
