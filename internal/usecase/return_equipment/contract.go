package return_equipment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// EquipmentRequestRepository интерфейс репозитория заявок на инвентарь
type EquipmentRequestRepository interface {
	GetItemByID(ctx context.Context, id int64) (*domain.EquipmentRequestItem, error)
	GetItemByIDForUpdate(ctx context.Context, id int64) (*domain.EquipmentRequestItem, error)
	GetRequestByIDForUpdate(ctx context.Context, id int64) (*domain.EquipmentRequest, error)
	GetItemsByRequest(ctx context.Context, requestID int64) ([]*domain.EquipmentRequestItem, error)
	UpdateItemReturn(ctx context.Context, item *domain.EquipmentRequestItem) error
	MarkDone(ctx context.Context, id int64, returnedAt *time.Time) error
}

// EquipmentRepository интерфейс репозитория инвентаря
type EquipmentRepository interface {
	LockByIDs(ctx context.Context, ids []int64) ([]*domain.Equipment, error)
	IncrementAvailable(ctx context.Context, id int64, qty int) error
	DecrementTotal(ctx context.Context, id int64, qty int) error
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
