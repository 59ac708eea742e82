package scheduling

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// ErrInvalidStep возвращается при неположительном шаге или длительности слота
var ErrInvalidStep = errors.New("scheduling: slot step and duration must be positive")

// GenerateStartTimes перечисляет времена начала слотов от open с шагом step,
// пока start + duration не выходит за close. Если ни один слот не помещается,
// возвращается пустой срез.
func GenerateStartTimes(open, close types.TimeString, step, duration int) ([]types.TimeString, error) {
	if step <= 0 || duration <= 0 {
		return nil, fmt.Errorf("%w: step=%d, duration=%d", ErrInvalidStep, step, duration)
	}

	slots := make([]types.TimeString, 0)
	closeMinutes := close.Minutes()
	current := open

	for current.Minutes()+duration <= closeMinutes {
		slots = append(slots, current)

		next, err := current.AddMinutes(step)
		if err != nil {
			// следующий слот вышел бы за пределы суток
			break
		}
		current = next
	}

	return slots, nil
}
