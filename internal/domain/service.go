package domain

import "time"

// Service represents an entry of the barber service menu
type Service struct {
	ID              int64
	Name            string
	Description     string
	PriceCents      int64
	DurationMinutes int
	IconName        *string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ServiceTotals агрегированные цена и длительность набора услуг
type ServiceTotals struct {
	PriceCents      int64
	DurationMinutes int
}

// SumServices суммирует цену и длительность по списку ids
// Повторяющийся id учитывается столько раз, сколько встречается в списке
// Возвращает список ids, которых нет в services
func SumServices(ids []int64, services map[int64]*Service) (ServiceTotals, []int64) {
	var (
		totals  ServiceTotals
		missing []int64
		seen    = make(map[int64]bool)
	)

	for _, id := range ids {
		svc, ok := services[id]
		if !ok {
			if !seen[id] {
				missing = append(missing, id)
				seen[id] = true
			}
			continue
		}
		totals.PriceCents += svc.PriceCents
		totals.DurationMinutes += svc.DurationMinutes
	}

	return totals, missing
}
