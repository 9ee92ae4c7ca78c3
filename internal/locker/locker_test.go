package locker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalSerializesSameKey(t *testing.T) {
	l := NewLocal(time.Second)
	ctx := context.Background()

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Acquire(ctx, SpecialistKey(1))
			if !assert.NoError(t, err) {
				return
			}
			defer release()

			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			atomic.AddInt32(&inside, -1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
}

func TestLocalTimesOutAndKeysAreIndependent(t *testing.T) {
	l := NewLocal(20 * time.Millisecond)
	ctx := context.Background()

	release, err := l.Acquire(ctx, SpecialistKey(1))
	require.NoError(t, err)

	_, err = l.Acquire(ctx, SpecialistKey(1))
	assert.True(t, errors.Is(err, ErrLockTimeout))

	other, err := l.Acquire(ctx, SpecialistKey(2))
	require.NoError(t, err)
	other()

	release()
	release()

	again, err := l.Acquire(ctx, SpecialistKey(1))
	require.NoError(t, err)
	again()
}

func newRedisLocker(t *testing.T, wait time.Duration) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewRedis(rdb, zap.NewNop(), RedisConfig{
		TTL:   time.Minute,
		Wait:  wait,
		Retry: 5 * time.Millisecond,
	}), mr
}

func TestRedisAcquireRelease(t *testing.T) {
	l, mr := newRedisLocker(t, 30*time.Millisecond)
	ctx := context.Background()

	release, err := l.Acquire(ctx, SpecialistKey(7))
	require.NoError(t, err)
	assert.True(t, mr.Exists("salon:lock:specialist:7"))

	_, err = l.Acquire(ctx, SpecialistKey(7))
	assert.True(t, errors.Is(err, ErrLockTimeout))

	release()
	assert.False(t, mr.Exists("salon:lock:specialist:7"))

	again, err := l.Acquire(ctx, SpecialistKey(7))
	require.NoError(t, err)
	again()
}

func TestRedisReleaseDoesNotDeleteForeignLock(t *testing.T) {
	l, mr := newRedisLocker(t, 30*time.Millisecond)
	ctx := context.Background()

	release, err := l.Acquire(ctx, SpecialistKey(3))
	require.NoError(t, err)

	// lock expired and was taken by another instance
	require.NoError(t, mr.Set("salon:lock:specialist:3", "someone-else"))
	release()

	got, err := mr.Get("salon:lock:specialist:3")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)
}

func TestRedisWaitsForRelease(t *testing.T) {
	l, _ := newRedisLocker(t, time.Second)
	ctx := context.Background()

	release, err := l.Acquire(ctx, SpecialistKey(9))
	require.NoError(t, err)

	go func() {
		time.Sleep(20 * time.Millisecond)
		release()
	}()

	second, err := l.Acquire(ctx, SpecialistKey(9))
	require.NoError(t, err)
	second()
}
