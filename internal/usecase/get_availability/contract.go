package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/service/availability"
)

// AvailabilityLoader загружает снимок площадки на дату
type AvailabilityLoader interface {
	Load(ctx context.Context, facilityID int64, date time.Time) (*availability.Snapshot, error)
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
