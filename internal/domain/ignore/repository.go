package ignore

import "context"

// Repository defines the interface for ignore pattern data access
type Repository interface {
	// Add stores a new pattern for a device
	Add(ctx context.Context, deviceID int64, regex, actor string) (int64, error)

	// ListByDevice retrieves a device's patterns in insertion order
	ListByDevice(ctx context.Context, deviceID int64) ([]*Pattern, error)
}
