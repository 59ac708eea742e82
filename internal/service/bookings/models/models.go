package models

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	Status *string `json:"status,omitempty"` // confirmed, rescheduled, cancelled или completed
}

// GetFacilityBookingsRequest запрос расписания площадки за день
type GetFacilityBookingsRequest struct {
	FacilityID int64
	Date       time.Time // полночь дня в часовом поясе площадки
	Status     *string
}

// Response модели

// EquipmentItemResponse строка заявки на инвентарь
type EquipmentItemResponse struct {
	ID          int64      `json:"id"`
	EquipmentID int64      `json:"equipmentId"`
	Qty         int        `json:"qty"`
	QtyReturned int        `json:"qtyReturned"`
	IssuedAt    *time.Time `json:"issuedAt,omitempty"`
	Condition   *string    `json:"condition,omitempty"`
	Dismissed   bool       `json:"dismissed"`
	DamageNotes *string    `json:"damageNotes,omitempty"`
}

// EquipmentRequestResponse заявка на инвентарь бронирования
type EquipmentRequestResponse struct {
	ID         int64                   `json:"id"`
	Status     string                  `json:"status"`
	DecidedBy  *int64                  `json:"decidedBy,omitempty"`
	DecidedAt  *time.Time              `json:"decidedAt,omitempty"`
	ReturnedAt *time.Time              `json:"returnedAt,omitempty"`
	Items      []EquipmentItemResponse `json:"items"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                int64                      `json:"id"`
	UserID            int64                      `json:"userId"`
	FacilityID        int64                      `json:"facilityId"`
	CourtID           int64                      `json:"courtId"`
	StartTime         time.Time                  `json:"startTime"`
	EndTime           time.Time                  `json:"endTime"`
	Status            string                     `json:"status"` // с учётом вычисляемого completed
	CancelledAt       *time.Time                 `json:"cancelledAt,omitempty"`
	EquipmentRequests []EquipmentRequestResponse `json:"equipmentRequests,omitempty"`
	CreatedAt         time.Time                  `json:"createdAt"`
	UpdatedAt         time.Time                  `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO; статус вычисляется на момент now
func FromDomainBooking(b *domain.Booking, now time.Time) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:          b.ID,
		UserID:      b.UserID,
		FacilityID:  b.FacilityID,
		CourtID:     b.CourtID,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Status:      string(b.DisplayStatus(now)),
		CancelledAt: b.CancelledAt,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, now time.Time) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b, now))
	}

	return resp
}

// FromDomainEquipmentRequest конвертирует заявку и её строки в DTO
func FromDomainEquipmentRequest(r *domain.EquipmentRequest, items []*domain.EquipmentRequestItem) EquipmentRequestResponse {
	resp := EquipmentRequestResponse{
		ID:         r.ID,
		Status:     string(r.Status),
		DecidedBy:  r.DecidedBy,
		DecidedAt:  r.DecidedAt,
		ReturnedAt: r.ReturnedAt,
		Items:      make([]EquipmentItemResponse, 0, len(items)),
	}

	for _, item := range items {
		var condition *string
		if item.Condition != nil {
			c := string(*item.Condition)
			condition = &c
		}
		resp.Items = append(resp.Items, EquipmentItemResponse{
			ID:          item.ID,
			EquipmentID: item.EquipmentID,
			Qty:         item.Qty,
			QtyReturned: item.QtyReturned,
			IssuedAt:    item.IssuedAt,
			Condition:   condition,
			Dismissed:   item.Dismissed,
			DamageNotes: item.DamageNotes,
		})
	}

	return resp
}

// ParseDisplayStatus проверяет статус для фильтрации, включая вычисляемый completed
func ParseDisplayStatus(s string) (domain.BookingStatus, error) {
	if domain.BookingStatus(s) == domain.StatusCompleted {
		return domain.StatusCompleted, nil
	}
	return domain.ParseBookingStatus(s)
}
