package sharedcourts

import (
	"context"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// FacilityRepository интерфейс репозитория площадок
type FacilityRepository interface {
	GetLinkedCandidates(ctx context.Context, target *domain.Facility) ([]*domain.Facility, error)
}

// CourtRepository интерфейс репозитория кортов
type CourtRepository interface {
	GetActiveByFacilities(ctx context.Context, facilityIDs []int64) ([]*domain.Court, error)
}
