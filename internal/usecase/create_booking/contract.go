package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/service/sharedcourts"
)

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

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	FindActiveDuplicate(ctx context.Context, userID, facilityID, courtID int64, start time.Time) (*domain.Booking, error)
	GetActiveByCourts(ctx context.Context, courtIDs []int64, from, to time.Time) ([]*domain.Booking, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// EquipmentRepository интерфейс репозитория инвентаря
type EquipmentRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Equipment, error)
}

// EquipmentRequestRepository интерфейс репозитория заявок на инвентарь
type EquipmentRequestRepository interface {
	CreateRequest(ctx context.Context, req *domain.EquipmentRequest) (*domain.EquipmentRequest, error)
	CreateItem(ctx context.Context, item *domain.EquipmentRequestItem) (*domain.EquipmentRequestItem, error)
}

// LimitChecker политика лимитов бронирования
type LimitChecker interface {
	CheckBookingLimit(ctx context.Context, userID int64, proposedStart time.Time) error
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
