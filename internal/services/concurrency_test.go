package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/confguard/confguard/internal/pkg/errors"
)

// Concurrent promotions for one device must leave exactly one baseline
// row, with every replaced baseline archived.
func TestConcurrentPromotesKeepSingleton(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	const workers = 8

	// Stage one distinct snapshot per worker up front
	snapshotIDs := make([]int64, workers)
	hashes := make([]string, workers)
	for i := range snapshotIDs {
		text := fmt.Sprintf("hostname r1\ninterface Gi0/%d\n", i)
		res, err := env.deviations.Record(ctx, 1, text)
		if err != nil {
			t.Fatalf("Record() error = %v", err)
		}
		snapshotIDs[i] = res.SnapshotID
		hashes[i] = ContentHash(text)
	}

	var wg sync.WaitGroup
	promoted := make(chan struct{}, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := env.baselines.Promote(ctx, 1, snapshotIDs[i], hashes[i], "ops")
			switch {
			case err == nil:
				promoted <- struct{}{}
			case errors.IsBusy(err):
				// Contention timeout is an acceptable outcome
			default:
				t.Errorf("Promote() error = %v", err)
			}
		}(i)
	}
	wg.Wait()
	close(promoted)

	succeeded := len(promoted)
	if succeeded == 0 {
		t.Fatal("no promotion succeeded")
	}

	active, err := env.baselines.GetActive(ctx, 1)
	if err != nil {
		t.Fatalf("GetActive() error = %v", err)
	}
	if active.DeviceID != 1 {
		t.Errorf("active device = %d, want 1", active.DeviceID)
	}

	history, err := env.baselines.History(ctx, 1)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != succeeded-1 {
		t.Errorf("history = %d rows, want %d (one per replaced baseline)", len(history), succeeded-1)
	}
}
