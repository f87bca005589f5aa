package deviation

import "context"

// Repository defines the interface for deviation data access
type Repository interface {
	// Record runs one snapshot ingestion as a single transaction:
	// append the snapshot, look up the active baseline, evaluate the
	// candidate against it, and persist an event when the severity is
	// not info. With no baseline the result is definitionally info
	// with zero stats and no event. The computed result is always
	// returned.
	Record(ctx context.Context, deviceID int64, text, contentHash string, eval Evaluator) (*Result, error)

	// ListByDevice retrieves a device's events, newest first
	ListByDevice(ctx context.Context, deviceID int64) ([]*Event, error)

	// CountBySeverity counts stored events per severity
	CountBySeverity(ctx context.Context) (map[string]int, error)
}
