package services

import (
	"testing"
	"time"

	"github.com/confguard/confguard/internal/devlock"
	"github.com/confguard/confguard/internal/domain/baseline"
	"github.com/confguard/confguard/internal/domain/deviation"
	"github.com/confguard/confguard/internal/domain/proposal"
	"github.com/confguard/confguard/internal/domain/snapshot"
	"github.com/confguard/confguard/internal/pkg/logger"
	"github.com/confguard/confguard/internal/repository/store"
	"github.com/confguard/confguard/internal/testutil"
)

type testEnv struct {
	baselines  baseline.Service
	proposals  proposal.Service
	deviations deviation.Service
	snapshots  snapshot.Repository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewTestDB(t)
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	locks := devlock.New(200 * time.Millisecond)

	snapshots := store.NewSnapshotRepository(db)
	deviations := store.NewDeviationRepository(db)
	ignores := store.NewIgnoreRepository(db)

	return &testEnv{
		baselines:  NewBaselineService(store.NewBaselineRepository(db), snapshots, locks, log),
		proposals:  NewProposalService(store.NewProposalRepository(db), locks, 3, log),
		deviations: NewDeviationService(deviations, ignores, log),
		snapshots:  snapshots,
	}
}
