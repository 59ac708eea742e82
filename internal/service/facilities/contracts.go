package facilities

import (
	"context"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// FacilityRepository интерфейс репозитория площадок
type FacilityRepository interface {
	Create(ctx context.Context, f *domain.Facility) (*domain.Facility, error)
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
	Update(ctx context.Context, f *domain.Facility) (*domain.Facility, error)
	Delete(ctx context.Context, id int64) error
}

// CourtRepository интерфейс репозитория кортов
type CourtRepository interface {
	Create(ctx context.Context, c *domain.Court) (*domain.Court, error)
	GetByFacility(ctx context.Context, facilityID int64) ([]*domain.Court, error)
	SetActive(ctx context.Context, ids []int64, active bool) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CountByFacility(ctx context.Context, facilityID int64) (int, error)
}

// EquipmentRepository интерфейс репозитория инвентаря
type EquipmentRepository interface {
	Create(ctx context.Context, e *domain.Equipment) (*domain.Equipment, error)
	GetByFacility(ctx context.Context, facilityID int64) ([]*domain.Equipment, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
