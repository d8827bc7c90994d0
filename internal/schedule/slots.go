package schedule

import (
	"fmt"

	"github.com/m04kA/SMC-BarberBookingService/internal/domain"
)

// FreeSlots возвращает времена начала из сетки рабочего дня, где помещается
// запись длительностью durationMinutes без пересечений с индексом
//
// Сетка строится от hours.Open с шагом hours.Step, запись должна закончиться
// не позже hours.Close. Слоты, начинающиеся раньше notBeforeMinutes, пропускаются
// (используется для текущего дня)
func FreeSlots(idx *Index, hours domain.WorkingHours, durationMinutes int, notBeforeMinutes int) ([]domain.AvailableSlot, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidInterval, durationMinutes)
	}
	if hours.Step <= 0 {
		return nil, fmt.Errorf("%w: slot step must be positive, got %d", ErrInvalidInterval, hours.Step)
	}

	open, err := hours.Open.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: open time: %v", ErrInvalidInterval, err)
	}
	closeAt, err := hours.Close.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: close time: %v", ErrInvalidInterval, err)
	}

	slots := make([]domain.AvailableSlot, 0)

	for start := open; start+durationMinutes <= closeAt; start += hours.Step {
		if start < notBeforeMinutes {
			continue
		}

		iv := Interval{Start: start, End: start + durationMinutes}
		if !idx.IsFree(iv) {
			continue
		}

		slots = append(slots, domain.AvailableSlot{
			StartTime:       iv.StartTime(),
			EndTime:         iv.EndTime(),
			DurationMinutes: durationMinutes,
		})
	}

	return slots, nil
}
