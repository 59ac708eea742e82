package models

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// Возможные решения по заявке
const (
	DecisionApprove = "approve"
	DecisionDeny    = "deny"
)

// DecisionRequest решение сотрудника по заявке на инвентарь
type DecisionRequest struct {
	Decision string `json:"decision"` // approve или deny
}

// RequestResponse ответ с данными заявки
type RequestResponse struct {
	ID        int64      `json:"id"`
	BookingID int64      `json:"bookingId"`
	Status    string     `json:"status"`
	DecidedBy *int64     `json:"decidedBy,omitempty"`
	DecidedAt *time.Time `json:"decidedAt,omitempty"`
}

// FromDomainRequest конвертирует domain модель в DTO
func FromDomainRequest(r *domain.EquipmentRequest) *RequestResponse {
	return &RequestResponse{
		ID:        r.ID,
		BookingID: r.BookingID,
		Status:    string(r.Status),
		DecidedBy: r.DecidedBy,
		DecidedAt: r.DecidedAt,
	}
}
