package baseline

import "context"

// Active pairs a baseline with the configuration text of its snapshot
type Active struct {
	Baseline
	Text string `json:"text"`
}

// Service defines the business logic for the baseline registry
type Service interface {
	// GetActive returns the device's active baseline together with its
	// configuration text, or NotFound
	GetActive(ctx context.Context, deviceID int64) (*Active, error)

	// Promote replaces the device's baseline under the per-device
	// lock. A lock timeout surfaces as a retryable Busy error; the
	// operation never silently creates a duplicate baseline.
	Promote(ctx context.Context, deviceID, snapshotID int64, contentHash, actor string) error

	// History lists the device's replaced baselines, newest first
	History(ctx context.Context, deviceID int64) ([]*HistoryEntry, error)
}
