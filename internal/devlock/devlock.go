// Package devlock provides per-device mutual exclusion with a bounded
// wait. Baseline promotion is a read-copy-delete-insert sequence that
// must be serialized per device regardless of storage engine; an
// in-process keyed lock keeps the singleton-baseline invariant safe on
// engines without advisory locks.
package devlock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/confguard/confguard/internal/pkg/errors"
)

// Keyed hands out one lock per device id
type Keyed struct {
	mu      sync.Mutex
	locks   map[int64]chan struct{}
	timeout time.Duration
}

// New creates a keyed lock set. timeout bounds how long Acquire blocks
// before returning a retryable Busy error.
func New(timeout time.Duration) *Keyed {
	return &Keyed{
		locks:   make(map[int64]chan struct{}),
		timeout: timeout,
	}
}

func (k *Keyed) sem(deviceID int64) chan struct{} {
	k.mu.Lock()
	defer k.mu.Unlock()

	sem, ok := k.locks[deviceID]
	if !ok {
		sem = make(chan struct{}, 1)
		k.locks[deviceID] = sem
	}
	return sem
}

// Acquire takes the lock for deviceID, blocking up to the configured
// timeout. On success it returns a release function that must be called
// on every exit path. On timeout or context cancellation it returns a
// Busy error; callers retry with backoff.
func (k *Keyed) Acquire(ctx context.Context, deviceID int64) (func(), error) {
	sem := k.sem(deviceID)

	timer := time.NewTimer(k.timeout)
	defer timer.Stop()

	select {
	case sem <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() { <-sem })
		}, nil
	case <-timer.C:
		return nil, errors.Busy(fmt.Sprintf("device %d is locked by another operation", deviceID))
	case <-ctx.Done():
		return nil, errors.Busy(fmt.Sprintf("device %d lock wait cancelled", deviceID))
	}
}
