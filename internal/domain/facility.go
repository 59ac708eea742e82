package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

var (
	// ErrUnknownSportType возвращается для значения вне перечисления SportType
	ErrUnknownSportType = errors.New("unknown sport type")

	// ErrInvalidOpeningHours возвращается, когда openTime >= closeTime
	ErrInvalidOpeningHours = errors.New("open time must be before close time")
)

// SportType вид спорта площадки
type SportType string

const (
	SportBadminton   SportType = "badminton"
	SportBasketball  SportType = "basketball"
	SportVolleyball  SportType = "volleyball"
	SportTennis      SportType = "tennis"
	SportFutsal      SportType = "futsal"
	SportTableTennis SportType = "table_tennis"
	SportPickleball  SportType = "pickleball"
)

var sportTypes = []SportType{
	SportBadminton,
	SportBasketball,
	SportVolleyball,
	SportTennis,
	SportFutsal,
	SportTableTennis,
	SportPickleball,
}

// ParseSportType validates a sport tag (case-insensitive, spaces become underscores)
func ParseSportType(s string) (SportType, error) {
	normalized := SportType(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_"))
	for _, st := range sportTypes {
		if st == normalized {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSportType, s)
}

// Facility bookable venue
type Facility struct {
	ID           int64
	Name         string
	SportType    SportType
	IsActive     bool
	OpenTime     types.TimeString
	CloseTime    types.TimeString
	SharedSports []SportType
	IsMultiSport bool
	Rules        []string // упорядоченный список правил площадки
	CourtCount   int      // желаемое количество активных кортов
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidateHours checks openTime < closeTime
func (f *Facility) ValidateHours() error {
	if err := f.OpenTime.Validate(); err != nil {
		return err
	}
	if err := f.CloseTime.Validate(); err != nil {
		return err
	}
	if !f.OpenTime.IsBefore(f.CloseTime) {
		return ErrInvalidOpeningHours
	}
	return nil
}

// SharesSport returns true if sport is listed in SharedSports
func (f *Facility) SharesSport(sport SportType) bool {
	for _, s := range f.SharedSports {
		if s == sport {
			return true
		}
	}
	return false
}

// IsLinkedTo возвращает true, если площадки делят физические корты:
// это одна и та же площадка, либо вид спорта одной указан в SharedSports другой.
// Связь симметрична и не транзитивна.
func (f *Facility) IsLinkedTo(other *Facility) bool {
	if f.ID == other.ID {
		return true
	}
	return f.SharesSport(other.SportType) || other.SharesSport(f.SportType)
}

// Opening возвращает интервал работы площадки в дату date (в часовом поясе date)
func (f *Facility) Opening(date time.Time) Interval {
	return Interval{Start: f.OpenTime.On(date), End: f.CloseTime.On(date)}
}

// Court physically bookable unit of one facility
type Court struct {
	ID         int64
	FacilityID int64
	Name       string // уникально в рамках площадки, ключ сопоставления между площадками
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CourtSyncPlan изменения, приводящие корты площадки к желаемому количеству
type CourtSyncPlan struct {
	Activate   []int64
	Deactivate []int64
	Create     []string
}

// IsEmpty returns true when nothing has to change
func (p CourtSyncPlan) IsEmpty() bool {
	return len(p.Activate) == 0 && len(p.Deactivate) == 0 && len(p.Create) == 0
}

// PlanCourtSync вычисляет изменения кортов под желаемое количество.
// existing должен быть отсортирован по ID. Первые desired кортов остаются
// (или становятся) активными, остальные деактивируются, недостающие создаются.
// Корты никогда не удаляются.
func PlanCourtSync(existing []*Court, desired int) CourtSyncPlan {
	var plan CourtSyncPlan
	if desired < 0 {
		desired = 0
	}

	taken := make(map[string]struct{}, len(existing))
	for _, c := range existing {
		taken[c.Name] = struct{}{}
	}

	for i, c := range existing {
		switch {
		case i < desired && !c.IsActive:
			plan.Activate = append(plan.Activate, c.ID)
		case i >= desired && c.IsActive:
			plan.Deactivate = append(plan.Deactivate, c.ID)
		}
	}

	next := 1
	for missing := desired - len(existing); missing > 0; missing-- {
		name := courtName(next)
		for {
			if _, ok := taken[name]; !ok {
				break
			}
			next++
			name = courtName(next)
		}
		taken[name] = struct{}{}
		plan.Create = append(plan.Create, name)
	}

	return plan
}

func courtName(n int) string {
	return fmt.Sprintf("Court %d", n)
}
