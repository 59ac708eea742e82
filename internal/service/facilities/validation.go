package facilities

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/service/facilities/models"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// buildFacility валидирует запрос и собирает domain модель
func buildFacility(req *models.CreateFacilityRequest) (*domain.Facility, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > domain.MaxFacilityNameLen {
		return nil, fmt.Errorf("%w: name must be 1..%d characters", ErrInvalidInput, domain.MaxFacilityNameLen)
	}

	sport, err := domain.ParseSportType(req.SportType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	openTime, err := types.NewTimeStringFromString(req.OpenTime)
	if err != nil {
		return nil, fmt.Errorf("%w: openTime: %v", ErrInvalidInput, err)
	}
	closeTime, err := types.NewTimeStringFromString(req.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("%w: closeTime: %v", ErrInvalidInput, err)
	}

	// Свой вид спорта и повторы в sharedSports не нужны
	shared := make([]domain.SportType, 0, len(req.SharedSports))
	seen := map[domain.SportType]struct{}{sport: {}}
	for _, raw := range req.SharedSports {
		s, err := domain.ParseSportType(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: sharedSports: %v", ErrInvalidInput, err)
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		shared = append(shared, s)
	}

	rules := make([]string, 0, len(req.Rules))
	for _, r := range req.Rules {
		if r = strings.TrimSpace(r); r != "" {
			rules = append(rules, r)
		}
	}
	if len(rules) > domain.MaxRules {
		return nil, fmt.Errorf("%w: at most %d rules allowed", ErrInvalidInput, domain.MaxRules)
	}

	if req.CourtCount < 0 || req.CourtCount > domain.MaxCourtsPerFacility {
		return nil, fmt.Errorf("%w: courtCount must be 0..%d", ErrInvalidInput, domain.MaxCourtsPerFacility)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	f := &domain.Facility{
		Name:         name,
		SportType:    sport,
		IsActive:     isActive,
		OpenTime:     openTime,
		CloseTime:    closeTime,
		SharedSports: shared,
		IsMultiSport: req.IsMultiSport || len(shared) > 0,
		Rules:        rules,
		CourtCount:   req.CourtCount,
	}

	if err := f.ValidateHours(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return f, nil
}

func validateEquipment(req *models.AddEquipmentRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > domain.MaxFacilityNameLen {
		return fmt.Errorf("%w: equipment name must be 1..%d characters", ErrInvalidInput, domain.MaxFacilityNameLen)
	}
	if req.Qty < 0 || req.Qty > domain.MaxEquipmentQty {
		return fmt.Errorf("%w: qty must be 0..%d", ErrInvalidInput, domain.MaxEquipmentQty)
	}
	return nil
}
