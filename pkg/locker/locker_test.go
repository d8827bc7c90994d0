package locker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisLocker(t *testing.T, timeout time.Duration) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisLocker(client, RedisConfig{
		Prefix:         "test:lock:",
		TTL:            5 * time.Second,
		AcquireTimeout: timeout,
		RetryInterval:  5 * time.Millisecond,
	}), mr
}

// assertMutualExclusion запускает n горутин и проверяет, что критическую секцию
// одновременно выполняет не больше одной
func assertMutualExclusion(t *testing.T, l Locker, n int) {
	t.Helper()

	var (
		inside  int32
		maxSeen int32
		wg      sync.WaitGroup
	)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			release, err := l.Acquire(context.Background(), "2024-06-01")
			if !assert.NoError(t, err) {
				return
			}
			defer release()

			cur := atomic.AddInt32(&inside, 1)
			for {
				prev := atomic.LoadInt32(&maxSeen)
				if cur <= prev || atomic.CompareAndSwapInt32(&maxSeen, prev, cur) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
		}()
	}

	wg.Wait()
	assert.Equal(t, int32(1), maxSeen)
}

func TestMemoryLocker_MutualExclusion(t *testing.T) {
	l := NewMemoryLocker(5 * time.Second)
	assertMutualExclusion(t, l, 20)
	assert.Equal(t, 0, l.size())
}

func TestMemoryLocker_DifferentKeysIndependent(t *testing.T) {
	l := NewMemoryLocker(time.Second)

	releaseA, err := l.Acquire(context.Background(), "2024-06-01")
	require.NoError(t, err)
	defer releaseA()

	releaseB, err := l.Acquire(context.Background(), "2024-06-02")
	require.NoError(t, err)
	releaseB()
}

func TestMemoryLocker_Timeout(t *testing.T) {
	l := NewMemoryLocker(20 * time.Millisecond)

	release, err := l.Acquire(context.Background(), "2024-06-01")
	require.NoError(t, err)

	_, err = l.Acquire(context.Background(), "2024-06-01")
	assert.ErrorIs(t, err, ErrLockTimeout)

	release()
	release()

	release, err = l.Acquire(context.Background(), "2024-06-01")
	require.NoError(t, err)
	release()
	assert.Equal(t, 0, l.size())
}

func TestRedisLocker_MutualExclusion(t *testing.T) {
	l, _ := newRedisLocker(t, 5*time.Second)
	assertMutualExclusion(t, l, 10)
}

func TestRedisLocker_TimeoutAndRelease(t *testing.T) {
	l, mr := newRedisLocker(t, 30*time.Millisecond)

	release, err := l.Acquire(context.Background(), "2024-06-01")
	require.NoError(t, err)
	assert.True(t, mr.Exists("test:lock:2024-06-01"))

	_, err = l.Acquire(context.Background(), "2024-06-01")
	assert.ErrorIs(t, err, ErrLockTimeout)

	release()
	assert.False(t, mr.Exists("test:lock:2024-06-01"))
}

func TestRedisLocker_ReleaseDoesNotDeleteForeignLock(t *testing.T) {
	l, mr := newRedisLocker(t, time.Second)

	release, err := l.Acquire(context.Background(), "2024-06-01")
	require.NoError(t, err)

	// Блокировка истекла и была перехвачена другим владельцем
	require.NoError(t, mr.Set("test:lock:2024-06-01", "someone-else"))

	release()
	got, err := mr.Get("test:lock:2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)
}

func TestRedisLocker_BackendError(t *testing.T) {
	l, mr := newRedisLocker(t, time.Second)
	mr.Close()

	_, err := l.Acquire(context.Background(), "2024-06-01")
	assert.ErrorIs(t, err, ErrLockBackend)
}
