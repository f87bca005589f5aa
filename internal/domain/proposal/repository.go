package proposal

import "context"

// Repository defines the interface for proposal data access
type Repository interface {
	// Create stores the candidate snapshot and the pending proposal in
	// one transaction. A snapshot with the same content hash already
	// stored for the device fails with a Conflict error.
	Create(ctx context.Context, deviceID int64, text, contentHash, comment, actor string) (int64, error)

	// GetByID retrieves a proposal, or NotFound
	GetByID(ctx context.Context, id int64) (*Proposal, error)

	// Decide flips a pending proposal to the given terminal status and,
	// for an approval, promotes the proposal's snapshot to the device
	// baseline in the same transaction. It fails with NotFound for a
	// missing proposal, InvalidState for an already decided one, and
	// Forbidden when actor proposed it. Callers must hold the
	// per-device lock.
	Decide(ctx context.Context, id int64, status, actor string) (*Proposal, error)

	// List retrieves proposals newest first, optionally filtered by
	// status (empty means all)
	List(ctx context.Context, status string) ([]*Proposal, error)
}
