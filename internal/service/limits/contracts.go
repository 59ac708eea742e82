package limits

import (
	"context"
	"time"
)

// BookingCounter интерфейс подсчёта бронирований пользователя
type BookingCounter interface {
	CountUpcomingByUser(ctx context.Context, userID int64, now time.Time) (int, error)
	CountByUserInRange(ctx context.Context, userID int64, from, to time.Time) (int, error)
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
