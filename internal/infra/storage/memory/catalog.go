package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m04kA/SMC-BarberBookingService/internal/domain"
	"github.com/m04kA/SMC-BarberBookingService/pkg/ptr"
)

// Catalog каталог услуг в памяти
type Catalog struct {
	mu       sync.RWMutex
	services map[int64]*domain.Service
}

// NewCatalog создает каталог из списка услуг
func NewCatalog(services ...*domain.Service) *Catalog {
	c := &Catalog{services: make(map[int64]*domain.Service, len(services))}
	for _, s := range services {
		copied := *s
		c.services[s.ID] = &copied
	}
	return c
}

// DefaultMenu меню барбершопа, совпадает с сидом миграций
func DefaultMenu() []*domain.Service {
	return []*domain.Service{
		{ID: 1, Name: "Corte", PriceCents: 1400000, DurationMinutes: 40, IconName: ptr.Ptr("scissors"), IsActive: true},
		{ID: 2, Name: "Barba", PriceCents: 800000, DurationMinutes: 20, IconName: ptr.Ptr("zap"), IsActive: true},
		{ID: 3, Name: "Corte + barba", PriceCents: 1800000, DurationMinutes: 60, IconName: ptr.Ptr("crown"), IsActive: true},
		{ID: 4, Name: "Perfilado de cejas", PriceCents: 500000, DurationMinutes: 10, IconName: ptr.Ptr("eye"), IsActive: true},
		{ID: 5, Name: "Corte completo", Description: "Pelo + barba + perfilado de cejas", PriceCents: 2000000, DurationMinutes: 70, IconName: ptr.Ptr("sparkles"), IsActive: true},
		{ID: 6, Name: "Corte premium", Description: "Pelo + barba + perfilado de cejas + limpieza facial + masaje facial", PriceCents: 3000000, DurationMinutes: 120, IconName: ptr.Ptr("star"), IsActive: true},
	}
}

func (c *Catalog) Lookup(_ context.Context, ids []int64) (map[int64]*domain.Service, []int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	found := make(map[int64]*domain.Service, len(ids))
	var missing []int64

	for _, id := range ids {
		if _, ok := found[id]; ok {
			continue
		}
		s, ok := c.services[id]
		if !ok || !s.IsActive {
			if !containsID(missing, id) {
				missing = append(missing, id)
			}
			continue
		}
		copied := *s
		found[id] = &copied
	}

	return found, missing, nil
}

func (c *Catalog) ListActive(_ context.Context) ([]*domain.Service, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]*domain.Service, 0, len(c.services))
	for _, s := range c.services {
		if s.IsActive {
			copied := *s
			result = append(result, &copied)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
