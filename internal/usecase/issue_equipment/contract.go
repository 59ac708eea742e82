package issue_equipment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// EquipmentRequestRepository интерфейс репозитория заявок на инвентарь
type EquipmentRequestRepository interface {
	GetRequestByIDForUpdate(ctx context.Context, id int64) (*domain.EquipmentRequest, error)
	GetRequestByID(ctx context.Context, id int64) (*domain.EquipmentRequest, error)
	GetItemsByRequest(ctx context.Context, requestID int64) ([]*domain.EquipmentRequestItem, error)
	CreateItem(ctx context.Context, item *domain.EquipmentRequestItem) (*domain.EquipmentRequestItem, error)
	UpdateItemIssue(ctx context.Context, id int64, qty int, issuedAt time.Time) error
	UpdateDecision(ctx context.Context, id int64, status domain.RequestStatus, decidedBy int64, decidedAt time.Time) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// EquipmentRepository интерфейс репозитория инвентаря
type EquipmentRepository interface {
	LockByIDs(ctx context.Context, ids []int64) ([]*domain.Equipment, error)
	DecrementAvailable(ctx context.Context, id int64, qty int) error
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
	IncEquipmentOperation(operation, outcome string)
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
