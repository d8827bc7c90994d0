package schedule

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberBookingService/pkg/types"
)

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 24 * 60

var (
	// ErrInvalidInterval возвращается для пустого интервала или интервала вне суток
	ErrInvalidInterval = errors.New("schedule: invalid interval")
)

// Interval полуоткрытый интервал [Start, End) в минутах от начала суток
type Interval struct {
	Start int
	End   int
}

// NewInterval строит интервал от времени начала и длительности
// Интервал должен закончиться до полуночи
func NewInterval(start types.TimeString, durationMinutes int) (Interval, error) {
	if durationMinutes <= 0 {
		return Interval{}, fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidInterval, durationMinutes)
	}

	startMin, err := start.Minutes()
	if err != nil {
		return Interval{}, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}

	iv := Interval{Start: startMin, End: startMin + durationMinutes}
	if iv.End >= MinutesPerDay {
		return Interval{}, fmt.Errorf("%w: %s + %d min must end before midnight", ErrInvalidInterval, start, durationMinutes)
	}

	return iv, nil
}

// Overlaps проверяет пересечение полуоткрытых интервалов: a1 < b2 && b1 < a2
// Интервалы, которые только касаются границей (10:00-10:45 и 10:45-11:00), не пересекаются
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

// Duration длительность интервала в минутах
func (i Interval) Duration() int {
	return i.End - i.Start
}

// StartTime время начала интервала
func (i Interval) StartTime() types.TimeString {
	t, _ := types.NewTimeStringFromMinutes(i.Start)
	return t
}

// EndTime время окончания интервала (не включается)
func (i Interval) EndTime() types.TimeString {
	t, _ := types.NewTimeStringFromMinutes(i.End)
	return t
}

func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s)", i.StartTime(), i.EndTime())
}
