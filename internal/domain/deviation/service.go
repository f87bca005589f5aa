package deviation

import (
	"context"

	"github.com/confguard/confguard/internal/domain/ignore"
)

// Service defines the business logic for deviation detection
type Service interface {
	// Record ingests a newly retrieved configuration: the snapshot is
	// stored unconditionally, diffed against the active baseline (if
	// any), classified, and persisted as an event when non-info.
	Record(ctx context.Context, deviceID int64, text string) (*Result, error)

	// ListByDevice retrieves a device's events, newest first
	ListByDevice(ctx context.Context, deviceID int64) ([]*Event, error)

	// AddIgnore registers a regex for excluding noisy changed lines
	// from classification for one device
	AddIgnore(ctx context.Context, deviceID int64, regex, actor string) (int64, error)

	// ListIgnores retrieves a device's ignore patterns
	ListIgnores(ctx context.Context, deviceID int64) ([]*ignore.Pattern, error)
}
