package scheduling

import (
	"sort"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// LinkedFacilityIDs возвращает ID площадок, делящих корты с target:
// сама площадка, площадки, у которых вид спорта target в SharedSports,
// и площадки, чей вид спорта указан в SharedSports target.
// Связь не транзитивна. Результат отсортирован.
func LinkedFacilityIDs(target *domain.Facility, candidates []*domain.Facility) []int64 {
	seen := map[int64]struct{}{target.ID: {}}
	ids := []int64{target.ID}

	for _, f := range candidates {
		if _, ok := seen[f.ID]; ok {
			continue
		}
		if target.IsLinkedTo(f) {
			seen[f.ID] = struct{}{}
			ids = append(ids, f.ID)
		}
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// CanonicalCourtMap сопоставляет ID любого корта связанных площадок с ID корта
// целевой площадки с тем же именем. Корты целевой площадки отображаются сами в себя.
// Корты без совпадающего имени в карту не попадают.
func CanonicalCourtMap(targetCourts, linkedCourts []*domain.Court) map[int64]int64 {
	byName := make(map[string]int64, len(targetCourts))
	canonical := make(map[int64]int64, len(targetCourts)+len(linkedCourts))

	for _, c := range targetCourts {
		if !c.IsActive {
			continue
		}
		byName[c.Name] = c.ID
		canonical[c.ID] = c.ID
	}

	for _, c := range linkedCourts {
		if !c.IsActive {
			continue
		}
		if id, ok := byName[c.Name]; ok {
			canonical[c.ID] = id
		}
	}

	return canonical
}

// EquivalentCourtIDs возвращает отсортированные ID активных кортов с тем же
// именем, что у court (включая сам court)
func EquivalentCourtIDs(court *domain.Court, courts []*domain.Court) []int64 {
	seen := map[int64]struct{}{court.ID: {}}
	ids := []int64{court.ID}

	for _, c := range courts {
		if !c.IsActive || c.Name != court.Name {
			continue
		}
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		ids = append(ids, c.ID)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// RemapBookings возвращает копии бронирований с CourtID, заменённым на канонический.
// Бронирования кортов вне карты отбрасываются.
func RemapBookings(bookings []*domain.Booking, canonical map[int64]int64) []*domain.Booking {
	result := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		id, ok := canonical[b.CourtID]
		if !ok {
			continue
		}
		remapped := *b
		remapped.CourtID = id
		result = append(result, &remapped)
	}
	return result
}

// GroupByCourt раскладывает бронирования по CourtID
func GroupByCourt(bookings []*domain.Booking) map[int64][]*domain.Booking {
	grouped := make(map[int64][]*domain.Booking)
	for _, b := range bookings {
		grouped[b.CourtID] = append(grouped[b.CourtID], b)
	}
	return grouped
}
