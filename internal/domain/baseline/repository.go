package baseline

import "context"

// Repository defines the interface for baseline data access
type Repository interface {
	// GetActive retrieves the active baseline for a device, or a
	// NotFound error when the device has none
	GetActive(ctx context.Context, deviceID int64) (*Baseline, error)

	// Promote atomically replaces the device's baseline: within one
	// transaction the current baseline (if any) is copied into history
	// and deleted, then the new row is inserted. Callers must hold the
	// per-device lock for the duration.
	Promote(ctx context.Context, deviceID, snapshotID int64, contentHash, actor string) error

	// History lists the device's replaced baselines, newest first
	History(ctx context.Context, deviceID int64) ([]*HistoryEntry, error)

	// CountActive counts devices with an active baseline
	CountActive(ctx context.Context) (int, error)
}
