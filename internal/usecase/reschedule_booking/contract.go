package reschedule_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/service/sharedcourts"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	GetActiveByCourts(ctx context.Context, courtIDs []int64, from, to time.Time) ([]*domain.Booking, error)
	UpdateSchedule(ctx context.Context, id int64, start, end time.Time, status domain.BookingStatus) error
}

// FacilityRepository интерфейс репозитория площадок
type FacilityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
}

// CourtRepository интерфейс репозитория кортов
type CourtRepository interface {
	LockByIDs(ctx context.Context, ids []int64) error
}

// CourtResolver разрешает связанные площадки и одноимённые корты
type CourtResolver interface {
	Resolve(ctx context.Context, target *domain.Facility) (*sharedcourts.Resolution, error)
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
