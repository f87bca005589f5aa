package deviation

import (
	"time"

	"github.com/confguard/confguard/internal/diff"
)

// Stats are the line counts derived from diffing a snapshot against
// the active baseline
type Stats struct {
	Added   int `json:"added"`
	Removed int `json:"removed"`
}

// Event records a non-trivial divergence between a newly observed
// configuration and the active baseline. Events are immutable and
// append-only.
type Event struct {
	ID         int64         `json:"id"`
	DeviceID   int64         `json:"device_id"`
	SnapshotID int64         `json:"snapshot_id"`
	Severity   diff.Severity `json:"severity"`
	Stats      Stats         `json:"diff_stats"`
	CreatedAt  time.Time     `json:"created_at"`
}

// Result is what a single snapshot ingestion yields, returned to the
// caller whether or not an event was persisted
type Result struct {
	SnapshotID int64         `json:"snapshot_id"`
	Severity   diff.Severity `json:"severity"`
	Stats      Stats         `json:"diff_stats"`
}

// Assessment is the outcome of diffing and classifying one candidate
// text against a baseline text
type Assessment struct {
	Severity diff.Severity
	Stats    Stats
}

// Evaluator diffs a baseline text against a candidate text and
// classifies the result. Implementations are pure; the storage layer
// invokes one inside the ingestion transaction.
type Evaluator func(baselineText, candidateText string) Assessment
