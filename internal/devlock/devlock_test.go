package devlock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/confguard/confguard/internal/pkg/errors"
)

func TestKeyed_AcquireRelease(t *testing.T) {
	k := New(50 * time.Millisecond)
	ctx := context.Background()

	release, err := k.Acquire(ctx, 1)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	release()

	// Reacquiring after release must succeed
	release2, err := k.Acquire(ctx, 1)
	if err != nil {
		t.Fatalf("Acquire() after release error = %v", err)
	}
	release2()

	// Calling release twice must not unlock a later holder
	release2()
	release3, err := k.Acquire(ctx, 1)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer release3()
}

func TestKeyed_ContendedAcquireReturnsBusy(t *testing.T) {
	k := New(20 * time.Millisecond)
	ctx := context.Background()

	release, err := k.Acquire(ctx, 7)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer release()

	_, err = k.Acquire(ctx, 7)
	if err == nil {
		t.Fatal("Acquire() on held lock returned no error")
	}
	if !errors.IsBusy(err) {
		t.Errorf("Acquire() error = %v, want Busy", err)
	}
}

func TestKeyed_IndependentDevices(t *testing.T) {
	k := New(20 * time.Millisecond)
	ctx := context.Background()

	release1, err := k.Acquire(ctx, 1)
	if err != nil {
		t.Fatalf("Acquire(1) error = %v", err)
	}
	defer release1()

	// A different device must not be blocked
	release2, err := k.Acquire(ctx, 2)
	if err != nil {
		t.Fatalf("Acquire(2) error = %v", err)
	}
	defer release2()
}

func TestKeyed_CancelledContext(t *testing.T) {
	k := New(time.Second)

	release, err := k.Acquire(context.Background(), 3)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := k.Acquire(ctx, 3); !errors.IsBusy(err) {
		t.Errorf("Acquire() with cancelled context error = %v, want Busy", err)
	}
}

func TestKeyed_SerializesWaiters(t *testing.T) {
	k := New(2 * time.Second)
	ctx := context.Background()

	var mu sync.Mutex
	var inCritical int
	var maxInCritical int

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := k.Acquire(ctx, 42)
			if err != nil {
				t.Errorf("Acquire() error = %v", err)
				return
			}
			defer release()

			mu.Lock()
			inCritical++
			if inCritical > maxInCritical {
				maxInCritical = inCritical
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inCritical--
			mu.Unlock()
		}()
	}
	wg.Wait()

	if maxInCritical != 1 {
		t.Errorf("max concurrent holders = %d, want 1", maxInCritical)
	}
}
