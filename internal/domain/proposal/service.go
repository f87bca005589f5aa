package proposal

import "context"

// Service defines the business logic for the proposal workflow.
//
// The state machine is pending -> approved | rejected with no
// transition out of a terminal state, and a proposer may never decide
// their own proposal.
type Service interface {
	// Propose stores the candidate text as a snapshot and opens a
	// pending proposal. An identical snapshot (by content hash) already
	// stored for the device fails with Conflict.
	Propose(ctx context.Context, deviceID int64, text, comment, actor string) (int64, error)

	// Decide approves or rejects a pending proposal. action must be
	// "approve" or "reject". Approval atomically promotes the
	// proposal's snapshot to the device baseline; Busy contention on
	// the device lock is retried with jittered backoff before being
	// surfaced.
	Decide(ctx context.Context, id int64, action, actor string) (string, error)

	// List retrieves proposals newest first, optionally filtered by
	// status
	List(ctx context.Context, status string) ([]*Proposal, error)
}
