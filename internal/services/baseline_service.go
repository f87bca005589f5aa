package services

import (
	"context"

	"github.com/confguard/confguard/internal/devlock"
	"github.com/confguard/confguard/internal/domain/baseline"
	"github.com/confguard/confguard/internal/domain/snapshot"
	"github.com/confguard/confguard/internal/pkg/errors"
	"github.com/confguard/confguard/internal/pkg/logger"
	"github.com/confguard/confguard/internal/pkg/metrics"
)

// BaselineService implements baseline.Service
type BaselineService struct {
	repo      baseline.Repository
	snapshots snapshot.Repository
	locks     *devlock.Keyed
	logger    *logger.Logger
}

// NewBaselineService creates a new baseline service
func NewBaselineService(repo baseline.Repository, snapshots snapshot.Repository, locks *devlock.Keyed, log *logger.Logger) baseline.Service {
	return &BaselineService{
		repo:      repo,
		snapshots: snapshots,
		locks:     locks,
		logger:    log,
	}
}

// GetActive returns the device's active baseline with its snapshot text
func (s *BaselineService) GetActive(ctx context.Context, deviceID int64) (*baseline.Active, error) {
	b, err := s.repo.GetActive(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	snap, err := s.snapshots.Get(ctx, b.SnapshotID)
	if err != nil {
		// A baseline always references an existing snapshot; failing
		// to load it is a storage fault, not a missing baseline
		return nil, errors.Internal("Failed to load baseline snapshot", err)
	}

	return &baseline.Active{Baseline: *b, Text: snap.Text}, nil
}

// Promote replaces the device's baseline under the per-device lock
func (s *BaselineService) Promote(ctx context.Context, deviceID, snapshotID int64, contentHash, actor string) error {
	release, err := s.locks.Acquire(ctx, deviceID)
	if err != nil {
		metrics.RecordPromoteContention()
		return err
	}
	defer release()

	if err := s.repo.Promote(ctx, deviceID, snapshotID, contentHash, actor); err != nil {
		s.logger.ErrorWithErr(err, "Failed to promote baseline")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"device_id":   deviceID,
		"snapshot_id": snapshotID,
		"actor":       actor,
	}).Info("Baseline promoted")

	return nil
}

// History lists the device's replaced baselines, newest first
func (s *BaselineService) History(ctx context.Context, deviceID int64) ([]*baseline.HistoryEntry, error) {
	return s.repo.History(ctx, deviceID)
}
