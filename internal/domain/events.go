package domain

import "time"

// Ключи маршрутизации событий
const (
	EventBookingCreated     = "booking.created"
	EventBookingRescheduled = "booking.rescheduled"
	EventBookingCancelled   = "booking.cancelled"
	EventEquipmentIssued    = "equipment.issued"
	EventEquipmentReturned  = "equipment.returned"
)

// BookingEvent событие жизненного цикла бронирования, публикуется после коммита
type BookingEvent struct {
	Type       string    `json:"type"`
	BookingID  int64     `json:"bookingId"`
	UserID     int64     `json:"userId"`
	FacilityID int64     `json:"facilityId"`
	CourtID    int64     `json:"courtId"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewBookingEvent builds an event from the booking state
func NewBookingEvent(eventType string, b *Booking, at time.Time) BookingEvent {
	return BookingEvent{
		Type:       eventType,
		BookingID:  b.ID,
		UserID:     b.UserID,
		FacilityID: b.FacilityID,
		CourtID:    b.CourtID,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		Status:     string(b.Status),
		OccurredAt: at,
	}
}

// EquipmentLine строка события по инвентарю
type EquipmentLine struct {
	EquipmentID int64  `json:"equipmentId"`
	Qty         int    `json:"qty"`
	Condition   string `json:"condition,omitempty"`
}

// EquipmentEvent событие выдачи или возврата инвентаря
type EquipmentEvent struct {
	Type          string          `json:"type"`
	RequestID     int64           `json:"requestId"`
	BookingID     int64           `json:"bookingId"`
	ActorID       int64           `json:"actorId"`
	RequestStatus string          `json:"requestStatus"`
	Lines         []EquipmentLine `json:"lines"`
	OccurredAt    time.Time       `json:"occurredAt"`
}
