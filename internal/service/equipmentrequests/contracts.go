package equipmentrequests

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// EquipmentRequestRepository интерфейс репозитория заявок на инвентарь
type EquipmentRequestRepository interface {
	GetRequestByIDForUpdate(ctx context.Context, id int64) (*domain.EquipmentRequest, error)
	GetRequestByID(ctx context.Context, id int64) (*domain.EquipmentRequest, error)
	UpdateDecision(ctx context.Context, id int64, status domain.RequestStatus, decidedBy int64, decidedAt time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
