package proposal

import "time"

// Proposal is a request, made by one actor, to replace a device's
// baseline with a candidate snapshot. It requires a decision by a
// different actor; approved and rejected are terminal states.
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

// Proposal states
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Decision actions
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)
