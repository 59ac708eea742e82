package availability

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

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetActiveByCourts(ctx context.Context, courtIDs []int64, from, to time.Time) ([]*domain.Booking, error)
}

// CourtResolver интерфейс Shared-Resource Resolver
type CourtResolver interface {
	Resolve(ctx context.Context, target *domain.Facility) (*sharedcourts.Resolution, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
