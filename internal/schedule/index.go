package schedule

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-BarberBookingService/internal/domain"
)

type entry struct {
	interval    Interval
	appointment *domain.Appointment
}

// Index интервалы подтвержденных записей одного дня, отсортированные по началу
// Отмененные и завершенные записи в индекс не попадают
type Index struct {
	entries []entry
}

// NewIndex строит индекс по записям одного дня
func NewIndex(appointments []*domain.Appointment) (*Index, error) {
	entries := make([]entry, 0, len(appointments))

	for _, a := range appointments {
		if a == nil || !a.IsActive() {
			continue
		}

		iv, err := NewInterval(a.StartTime, a.DurationMinutes)
		if err != nil {
			return nil, fmt.Errorf("appointment id=%d: %w", a.ID, err)
		}
		entries = append(entries, entry{interval: iv, appointment: a})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].interval.Start < entries[j].interval.Start
	})

	return &Index{entries: entries}, nil
}

// Conflicts возвращает подтвержденные записи, пересекающиеся с iv
func (x *Index) Conflicts(iv Interval) []*domain.Appointment {
	var result []*domain.Appointment

	for _, e := range x.entries {
		// Дальше все записи начинаются не раньше конца iv
		if e.interval.Start >= iv.End {
			break
		}
		if e.interval.Overlaps(iv) {
			result = append(result, e.appointment)
		}
	}

	return result
}

// IsFree возвращает true, если iv не пересекается ни с одной записью
func (x *Index) IsFree(iv Interval) bool {
	return len(x.Conflicts(iv)) == 0
}

// Len количество записей в индексе
func (x *Index) Len() int {
	return len(x.entries)
}
