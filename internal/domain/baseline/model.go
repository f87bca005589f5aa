package baseline

import "time"

// Baseline is the currently accepted known-good configuration for a
// device. The registry maintains at most one baseline per device; a
// replacement archives the outgoing row into history first.
type Baseline struct {
	DeviceID    int64     `json:"device_id"`
	SnapshotID  int64     `json:"snapshot_id"`
	ContentHash string    `json:"content_hash"`
	SetBy       string    `json:"set_by"`
	SetAt       time.Time `json:"set_at"`
}

// HistoryEntry is one row of the append-only replacement audit trail,
// copied from the outgoing baseline at promotion time
type HistoryEntry struct {
	ID          int64     `json:"id"`
	DeviceID    int64     `json:"device_id"`
	SnapshotID  int64     `json:"snapshot_id"`
	ContentHash string    `json:"content_hash"`
	ReplacedAt  time.Time `json:"replaced_at"`
}
