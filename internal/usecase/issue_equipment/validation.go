package issue_equipment

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// normalizeLines проверяет позиции и убирает повторы по инвентарю,
// оставляя максимальное количество. Результат отсортирован по ID инвентаря.
func normalizeLines(lines []Line) ([]Line, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: at least one line is required", ErrInvalidInput)
	}

	maxQty := make(map[int64]int, len(lines))
	for _, l := range lines {
		if l.EquipmentID <= 0 {
			return nil, fmt.Errorf("%w: equipment id must be positive", ErrInvalidInput)
		}
		if l.Qty < 1 || l.Qty > domain.MaxEquipmentQty {
			return nil, fmt.Errorf("%w: qty for equipment id=%d must be between 1 and %d",
				ErrInvalidInput, l.EquipmentID, domain.MaxEquipmentQty)
		}
		if l.Qty > maxQty[l.EquipmentID] {
			maxQty[l.EquipmentID] = l.Qty
		}
	}

	result := make([]Line, 0, len(maxQty))
	for id, qty := range maxQty {
		result = append(result, Line{EquipmentID: id, Qty: qty})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EquipmentID < result[j].EquipmentID })
	return result, nil
}
