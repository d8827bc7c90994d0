package locker

import (
	"context"
	"errors"
)

var (
	// ErrLockTimeout возвращается, если блокировку не удалось получить вовремя
	ErrLockTimeout = errors.New("locker: lock acquisition timed out")

	// ErrLockBackend возвращается при ошибках хранилища блокировок
	ErrLockBackend = errors.New("locker: backend error")
)

// ReleaseFunc освобождает полученную блокировку
// Повторный вызов безопасен
type ReleaseFunc func()

// Locker взаимное исключение по строковому ключу
type Locker interface {
	// Acquire блокируется до получения блокировки, истечения ctx или таймаута
	Acquire(ctx context.Context, key string) (ReleaseFunc, error)
}
