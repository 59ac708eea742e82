package sharedcourts

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/scheduling"
)

// Resolution набор площадок и кортов, физически связанных с целевой площадкой
type Resolution struct {
	Facility *domain.Facility

	// FacilityIDs связанные площадки, включая целевую, по возрастанию
	FacilityIDs []int64

	// TargetCourts активные корты целевой площадки
	TargetCourts []*domain.Court

	// LinkedCourts активные корты всех связанных площадок, включая целевую
	LinkedCourts []*domain.Court

	// Canonical отображает ID корта любой связанной площадки в ID одноимённого корта целевой
	Canonical map[int64]int64
}

// EquivalentCourtIDs возвращает ID всех активных кортов связанных площадок,
// которые являются тем же физическим кортом, что и court
func (r *Resolution) EquivalentCourtIDs(court *domain.Court) []int64 {
	return scheduling.EquivalentCourtIDs(court, r.LinkedCourts)
}

// Court возвращает активный корт целевой площадки или nil
func (r *Resolution) Court(courtID int64) *domain.Court {
	for _, c := range r.TargetCourts {
		if c.ID == courtID {
			return c
		}
	}
	return nil
}

// Resolver вычисляет связанные площадки и сопоставление кортов по имени
type Resolver struct {
	facilityRepo FacilityRepository
	courtRepo    CourtRepository
}

// NewResolver создает новый экземпляр Resolver
func NewResolver(facilityRepo FacilityRepository, courtRepo CourtRepository) *Resolver {
	return &Resolver{
		facilityRepo: facilityRepo,
		courtRepo:    courtRepo,
	}
}

// Resolve строит Resolution для площадки target.
// Если ни один корт не совпадает по имени с кортами других площадок,
// Canonical содержит только корты самой площадки.
func (r *Resolver) Resolve(ctx context.Context, target *domain.Facility) (*Resolution, error) {
	candidates, err := r.facilityRepo.GetLinkedCandidates(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("%w: Resolve - get linked facilities for id=%d: %v", ErrInternal, target.ID, err)
	}

	facilityIDs := scheduling.LinkedFacilityIDs(target, candidates)

	linkedCourts, err := r.courtRepo.GetActiveByFacilities(ctx, facilityIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: Resolve - get courts for facilities %v: %v", ErrInternal, facilityIDs, err)
	}

	targetCourts := make([]*domain.Court, 0)
	for _, c := range linkedCourts {
		if c.FacilityID == target.ID {
			targetCourts = append(targetCourts, c)
		}
	}

	return &Resolution{
		Facility:     target,
		FacilityIDs:  facilityIDs,
		TargetCourts: targetCourts,
		LinkedCourts: linkedCourts,
		Canonical:    scheduling.CanonicalCourtMap(targetCourts, linkedCourts),
	}, nil
}
