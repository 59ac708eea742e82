package return_equipment

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// validateRequest проверяет входные данные и возвращает состояние инвентаря
func validateRequest(req *Request) (domain.ReturnCondition, error) {
	if req.ItemID <= 0 {
		return "", fmt.Errorf("%w: item id is required", ErrInvalidInput)
	}
	if req.Qty < 1 {
		return "", fmt.Errorf("%w: qty must be at least 1", ErrQuantityOutOfRange)
	}

	condition, err := domain.ParseReturnCondition(req.Condition)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.Dismiss && condition != domain.ConditionNotReturned {
		return "", fmt.Errorf("%w: dismiss is allowed only with %s", ErrInvalidInput, domain.ConditionNotReturned)
	}

	if req.Notes != nil {
		notes := strings.TrimSpace(*req.Notes)
		if utf8.RuneCountInString(notes) > domain.MaxDamageNotesLength {
			return "", fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxDamageNotesLength)
		}
		req.Notes = &notes
	}

	return condition, nil
}
