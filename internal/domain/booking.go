package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownBookingStatus возвращается для статуса вне перечисления
var ErrUnknownBookingStatus = errors.New("unknown booking status")

// BookingStatus represents the stored status of a booking
type BookingStatus string

const (
	StatusConfirmed   BookingStatus = "confirmed"
	StatusRescheduled BookingStatus = "rescheduled"
	StatusCancelled   BookingStatus = "cancelled"

	// StatusCompleted не хранится в БД, вычисляется при чтении (end <= now)
	StatusCompleted BookingStatus = "completed"
)

// ParseBookingStatus validates a stored status value
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case StatusConfirmed, StatusRescheduled, StatusCancelled:
		return BookingStatus(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBookingStatus, s)
	}
}

// Booking reservation of one court for one user for [StartTime, EndTime)
type Booking struct {
	ID             int64
	UserID         int64
	FacilityID     int64
	CourtID        int64
	StartTime      time.Time
	EndTime        time.Time
	Status         BookingStatus
	ReminderSentAt *time.Time
	CancelledAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsActive returns true if the booking still occupies its court
func (b *Booking) IsActive() bool {
	return b.Status == StatusConfirmed || b.Status == StatusRescheduled
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsCompleted returns true if the booking has ended and was not cancelled
func (b *Booking) IsCompleted(now time.Time) bool {
	return !b.IsCancelled() && !b.EndTime.After(now)
}

// DisplayStatus статус для клиентов с учётом вычисляемого completed
func (b *Booking) DisplayStatus(now time.Time) BookingStatus {
	if b.IsCompleted(now) {
		return StatusCompleted
	}
	return b.Status
}

// Interval returns [StartTime, EndTime)
func (b *Booking) Interval() Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}

// Duration returns EndTime - StartTime
func (b *Booking) Duration() time.Duration {
	return b.EndTime.Sub(b.StartTime)
}

// CanBeModified возвращает true, если до начала осталось больше ModificationWindow.
// Ровно 30 минут считается закрытым окном.
func (b *Booking) CanBeModified(now time.Time) bool {
	return b.StartTime.Sub(now) > ModificationWindow
}

// IsOwnedBy returns true if userID owns the booking
func (b *Booking) IsOwnedBy(userID int64) bool {
	return b.UserID == userID
}
