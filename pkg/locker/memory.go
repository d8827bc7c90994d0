package locker

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// keyedEntry семафор на один ключ со счетчиком ожидающих
type keyedEntry struct {
	sem     chan struct{}
	waiters int
}

// MemoryLocker блокировки в пределах одного процесса
// Записи по ключу удаляются, когда их никто не держит и не ждет
type MemoryLocker struct {
	mu             sync.Mutex
	entries        map[string]*keyedEntry
	acquireTimeout time.Duration
}

// NewMemoryLocker создает локальный Locker
// acquireTimeout <= 0 означает ожидание только до отмены ctx
func NewMemoryLocker(acquireTimeout time.Duration) *MemoryLocker {
	return &MemoryLocker{
		entries:        make(map[string]*keyedEntry),
		acquireTimeout: acquireTimeout,
	}
}

func (l *MemoryLocker) Acquire(ctx context.Context, key string) (ReleaseFunc, error) {
	if l.acquireTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.acquireTimeout)
		defer cancel()
	}

	entry := l.join(key)

	select {
	case entry.sem <- struct{}{}:
	case <-ctx.Done():
		l.leave(key, entry)
		return nil, fmt.Errorf("%w: key=%s: %v", ErrLockTimeout, key, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-entry.sem
			l.leave(key, entry)
		})
	}, nil
}

func (l *MemoryLocker) join(key string) *keyedEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[key]
	if !ok {
		entry = &keyedEntry{sem: make(chan struct{}, 1)}
		l.entries[key] = entry
	}
	entry.waiters++
	return entry
}

func (l *MemoryLocker) leave(key string, entry *keyedEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry.waiters--
	if entry.waiters == 0 {
		delete(l.entries, key)
	}
}

// size количество ключей в памяти (для тестов)
func (l *MemoryLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
