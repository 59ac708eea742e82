package issue_equipment

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// Line одна позиция выдачи: итоговое выданное количество по инвентарю
type Line struct {
	EquipmentID int64
	Qty         int
}

// Request модель запроса на выдачу инвентаря по заявке
type Request struct {
	Actor     *domain.Actor
	RequestID int64
	Lines     []Line
}

// Item строка заявки после выдачи
type Item struct {
	ID          int64
	EquipmentID int64
	Qty         int
	QtyReturned int
	IssuedAt    *time.Time
}

// Response модель ответа с состоянием заявки после выдачи
type Response struct {
	RequestID int64
	BookingID int64
	Status    string
	Items     []Item
}

func newResponse(r *domain.EquipmentRequest, items []*domain.EquipmentRequestItem) *Response {
	resp := &Response{
		RequestID: r.ID,
		BookingID: r.BookingID,
		Status:    string(r.Status),
		Items:     make([]Item, 0, len(items)),
	}
	for _, i := range items {
		resp.Items = append(resp.Items, Item{
			ID:          i.ID,
			EquipmentID: i.EquipmentID,
			Qty:         i.Qty,
			QtyReturned: i.QtyReturned,
			IssuedAt:    i.IssuedAt,
		})
	}
	return resp
}
