package client

import "time"

// Baseline is a device's active baseline with its configuration text
type Baseline struct {
	DeviceID    int64     `json:"device_id"`
	SnapshotID  int64     `json:"snapshot_id"`
	ContentHash string    `json:"content_hash"`
	SetBy       string    `json:"set_by"`
	SetAt       time.Time `json:"set_at"`
	Text        string    `json:"text"`
}

// HistoryEntry is one archived baseline replacement
type HistoryEntry struct {
	ID          int64     `json:"id"`
	DeviceID    int64     `json:"device_id"`
	SnapshotID  int64     `json:"snapshot_id"`
	ContentHash string    `json:"content_hash"`
	ReplacedAt  time.Time `json:"replaced_at"`
}

// Proposal is a pending or decided baseline-change request
type Proposal struct {
	ID          int64      `json:"id"`
	DeviceID    int64      `json:"device_id"`
	SnapshotID  int64      `json:"snapshot_id"`
	ContentHash string     `json:"content_hash"`
	Comment     string     `json:"comment,omitempty"`
	ProposedBy  string     `json:"proposed_by"`
	ProposedAt  time.Time  `json:"proposed_at"`
	Status      string     `json:"status"`
	DecidedBy   *string    `json:"decided_by,omitempty"`
	DecidedAt   *time.Time `json:"decided_at,omitempty"`
}

// DiffStats are the line counts of a snapshot's diff against the
// baseline
type DiffStats struct {
	Added   int `json:"added"`
	Removed int `json:"removed"`
}

// DeviationEvent is one recorded divergence from the baseline
type DeviationEvent struct {
	ID         int64     `json:"id"`
	DeviceID   int64     `json:"device_id"`
	SnapshotID int64     `json:"snapshot_id"`
	Severity   string    `json:"severity"`
	Stats      DiffStats `json:"diff_stats"`
	CreatedAt  time.Time `json:"created_at"`
}

// RecordResult is what ingesting one snapshot yields
type RecordResult struct {
	SnapshotID int64     `json:"snapshot_id"`
	Severity   string    `json:"severity"`
	Stats      DiffStats `json:"diff_stats"`
}

// IgnorePattern excludes matching changed lines from classification
type IgnorePattern struct {
	ID       int64     `json:"id"`
	DeviceID int64     `json:"device_id"`
	Regex    string    `json:"regex"`
	AddedBy  string    `json:"added_by"`
	AddedAt  time.Time `json:"added_at"`
}
