package snapshot

import "time"

// Snapshot is an immutable, content-hashed capture of a device
// configuration at a point in time. Snapshots are append-only: they are
// never mutated or deleted once stored.
type Snapshot struct {
	ID          int64     `json:"id"`
	DeviceID    int64     `json:"device_id"`
	Text        string    `json:"text"`
	ContentHash string    `json:"content_hash"`
	CreatedAt   time.Time `json:"created_at"`
}
