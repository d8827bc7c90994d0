package memory

import (
	"context"
	"sync"
)

// ClientDirectory справочник клиентов в памяти
// Без зарегистрированных id считает существующим любой положительный id
type ClientDirectory struct {
	mu  sync.RWMutex
	ids map[int64]struct{}
}

// NewClientDirectory создает справочник из списка id
func NewClientDirectory(ids ...int64) *ClientDirectory {
	d := &ClientDirectory{ids: make(map[int64]struct{}, len(ids))}
	d.Register(ids...)
	return d
}

// Register добавляет клиентов в справочник
func (d *ClientDirectory) Register(ids ...int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, id := range ids {
		d.ids[id] = struct{}{}
	}
}

func (d *ClientDirectory) Exists(_ context.Context, clientID int64) (bool, error) {
	if clientID <= 0 {
		return false, nil
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if len(d.ids) == 0 {
		return true, nil
	}
	_, ok := d.ids[clientID]
	return ok, nil
}
