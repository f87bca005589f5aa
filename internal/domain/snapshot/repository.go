package snapshot

import "context"

// Repository defines the interface for snapshot data access
type Repository interface {
	// Put appends a new immutable snapshot and returns its id. No
	// dedup happens at this layer; dedup is a policy decision made by
	// callers.
	Put(ctx context.Context, deviceID int64, text, contentHash string) (int64, error)

	// Get retrieves a snapshot by id
	Get(ctx context.Context, id int64) (*Snapshot, error)

	// ExistsByHash reports whether a snapshot with the given content
	// hash already exists for the device
	ExistsByHash(ctx context.Context, deviceID int64, contentHash string) (bool, error)
}
