package services

import (
	"context"
	"testing"

	"github.com/confguard/confguard/internal/pkg/errors"
)

func TestGetActiveWithoutBaseline(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.baselines.GetActive(context.Background(), 42)
	if err == nil {
		t.Fatal("GetActive() succeeded with no baseline")
	}
	if errors.From(err).Code != errors.ErrCodeNotFound {
		t.Errorf("error code = %q, want %q", errors.From(err).Code, errors.ErrCodeNotFound)
	}
}

func TestHistoryEmptyForFreshDevice(t *testing.T) {
	env := newTestEnv(t)

	history, err := env.baselines.History(context.Background(), 42)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 0 {
		t.Errorf("History() = %d entries, want 0", len(history))
	}
}

func TestPromoteDirect(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Snapshots enter through ingestion; promotion reuses them
	res, err := env.deviations.Record(ctx, 7, configV1)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	if err := env.baselines.Promote(ctx, 7, res.SnapshotID, ContentHash(configV1), "ops"); err != nil {
		t.Fatalf("Promote() error = %v", err)
	}

	active, err := env.baselines.GetActive(ctx, 7)
	if err != nil {
		t.Fatalf("GetActive() error = %v", err)
	}
	if active.SnapshotID != res.SnapshotID {
		t.Errorf("snapshot_id = %d, want %d", active.SnapshotID, res.SnapshotID)
	}
	if active.Text != configV1 {
		t.Errorf("text = %q, want promoted snapshot text", active.Text)
	}
	if active.SetBy != "ops" {
		t.Errorf("set_by = %q, want ops", active.SetBy)
	}
}
