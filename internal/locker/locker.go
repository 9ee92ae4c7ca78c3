// Package locker provides the per-specialist mutual exclusion held across the
// booking conflict check and insert.
package locker

import (
	"context"
	"errors"
	"fmt"
)

// ErrLockTimeout means the lock stayed held by someone else for the whole
// wait budget.
var ErrLockTimeout = errors.New("locker: timed out waiting for lock")

// Locker acquires a named exclusive lock. The returned release func is safe
// to call more than once.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

func SpecialistKey(specialistID uint) string {
	return fmt.Sprintf("specialist:%d", specialistID)
}
