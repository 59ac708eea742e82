package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// Request модель запроса на перенос бронирования.
// Длительность сохраняется, меняется только начало.
type Request struct {
	Actor     *domain.Actor
	BookingID int64
	Date      time.Time        // новая дата в часовом поясе площадки
	StartTime types.TimeString // новое время начала
}

// Response модель ответа с перенесённым бронированием
type Response struct {
	ID         int64
	UserID     int64
	FacilityID int64
	CourtID    int64
	StartTime  time.Time
	EndTime    time.Time
	Status     string
}
