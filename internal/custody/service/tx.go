package service

import (
	"context"
	"sync"
	"time"

	dErrors "custody/pkg/domain-errors"
)

// DefaultTxTimeout bounds a unit of work when ctx has no deadline.
const DefaultTxTimeout = 5 * time.Second

// Snapshotter is implemented by in-memory stores that can restore their
// state after a failed unit of work.
type Snapshotter interface {
	Snapshot() (restore func())
}

type lockedTx struct {
	mu      sync.Mutex
	store   Store
	timeout time.Duration
}

// NewLockedTx serializes units of work over an in-memory store. When the
// store is a Snapshotter a failed unit is rolled back to its snapshot, which
// is only sound while every write to the store goes through this StoreTx.
func NewLockedTx(store Store, timeout time.Duration) StoreTx {
	return &lockedTx{store: store, timeout: timeout}
}

func (t *lockedTx) RunInTx(ctx context.Context, fn func(store Store) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = DefaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Check again after acquiring lock
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	var restore func()
	if snap, ok := t.store.(Snapshotter); ok {
		restore = snap.Snapshot()
	}
	if err := fn(t.store); err != nil {
		if restore != nil {
			restore()
		}
		return err
	}
	return nil
}
