package cancel_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	Cancel(ctx context.Context, id int64, cancelledAt time.Time) error
}

// EquipmentRequestRepository интерфейс репозитория заявок на инвентарь
type EquipmentRequestRepository interface {
	CloseOpenByBooking(ctx context.Context, bookingID int64) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикует события после коммита
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// Metrics бизнес-метрики
type Metrics interface {
	IncBookingOperation(operation, outcome string)
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
