package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64) ([]*domain.Booking, error)
	GetByFacility(ctx context.Context, facilityID int64, from, to time.Time) ([]*domain.Booking, error)
}

// EquipmentRequestRepository интерфейс репозитория заявок на инвентарь
type EquipmentRequestRepository interface {
	GetRequestsByBooking(ctx context.Context, bookingID int64) ([]*domain.EquipmentRequest, error)
	GetItemsByRequest(ctx context.Context, requestID int64) ([]*domain.EquipmentRequestItem, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
