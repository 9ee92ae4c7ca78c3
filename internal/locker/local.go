package locker

import (
	"context"
	"sync"
	"time"
)

// Local is an in-process keyed lock for single-instance deployments.
type Local struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
	wait  time.Duration
}

func NewLocal(wait time.Duration) *Local {
	if wait <= 0 {
		wait = 3 * time.Second
	}
	return &Local{
		locks: make(map[string]chan struct{}),
		wait:  wait,
	}
}

func (l *Local) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	ch, ok := l.locks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.locks[key] = ch
	}
	return ch
}

func (l *Local) Acquire(ctx context.Context, key string) (func(), error) {
	ch := l.slot(key)

	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	select {
	case ch <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-ch }) }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, ErrLockTimeout
	}
}

var _ Locker = (*Local)(nil)
