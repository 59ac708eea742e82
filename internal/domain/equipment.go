package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownReturnCondition возвращается для состояния вне перечисления
var ErrUnknownReturnCondition = errors.New("unknown return condition")

// Equipment inventory kind of one facility
type Equipment struct {
	ID           int64
	FacilityID   int64
	Name         string
	QtyTotal     int
	QtyAvailable int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RequestStatus status of an equipment request
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestDenied   RequestStatus = "denied"
	RequestDone     RequestStatus = "done"
)

// EquipmentRequest borrow intent attached to one booking
type EquipmentRequest struct {
	ID         int64
	BookingID  int64
	Status     RequestStatus
	DecidedBy  *int64
	DecidedAt  *time.Time
	ReturnedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsOpen returns true while the request is pending or approved
func (r *EquipmentRequest) IsOpen() bool {
	return r.Status == RequestPending || r.Status == RequestApproved
}

// ReturnCondition condition of returned equipment
type ReturnCondition string

const (
	ConditionGood        ReturnCondition = "good"
	ConditionDamaged     ReturnCondition = "damaged"
	ConditionLost        ReturnCondition = "lost"
	ConditionNotReturned ReturnCondition = "not_returned"
)

// ParseReturnCondition validates a return condition
func ParseReturnCondition(s string) (ReturnCondition, error) {
	switch ReturnCondition(s) {
	case ConditionGood, ConditionDamaged, ConditionLost, ConditionNotReturned:
		return ReturnCondition(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownReturnCondition, s)
	}
}

// EquipmentRequestItem one line of an equipment request
type EquipmentRequestItem struct {
	ID          int64
	RequestID   int64
	EquipmentID int64
	Qty         int
	QtyReturned int
	IssuedAt    *time.Time
	Condition   *ReturnCondition
	Dismissed   bool
	DamageNotes *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsIssued returns true once the item has been handed out
func (i *EquipmentRequestItem) IsIssued() bool {
	return i.IssuedAt != nil
}

// IssuedQty количество, уже выданное по строке. Строка, созданная вместе с
// бронированием и ещё не выданная, считается выданной в количестве 0.
func (i *EquipmentRequestItem) IssuedQty() int {
	if !i.IsIssued() {
		return 0
	}
	return i.Qty
}

// Outstanding количество, которое ещё можно вернуть
func (i *EquipmentRequestItem) Outstanding() int {
	out := i.IssuedQty() - i.QtyReturned
	if out < 0 {
		return 0
	}
	return out
}

// IsResolved строка закрыта, если возвращена полностью или помечена потерянной
func (i *EquipmentRequestItem) IsResolved() bool {
	if i.Condition != nil && *i.Condition == ConditionLost {
		return true
	}
	return i.QtyReturned >= i.Qty
}

// RecordReturn учитывает возврат qty единиц в состоянии condition.
// Отметка lost не перезаписывается: строка, закрытая потерей, остаётся закрытой.
// dismiss фиксирует, что staff списал недостачу; допустим только с not_returned.
func (i *EquipmentRequestItem) RecordReturn(qty int, condition ReturnCondition, dismiss bool) {
	i.QtyReturned += qty
	if i.Condition == nil || *i.Condition != ConditionLost {
		i.Condition = &condition
	}
	if dismiss {
		i.Dismissed = true
	}
}

// AllResolved returns true if every item is resolved (and there is at least one)
func AllResolved(items []*EquipmentRequestItem) bool {
	if len(items) == 0 {
		return false
	}
	for _, item := range items {
		if !item.IsResolved() {
			return false
		}
	}
	return true
}
