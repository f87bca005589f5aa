package ignore

import "time"

// Pattern excludes changed configuration lines matching a regex from
// deviation classification for one device. Lines a pattern matches are
// dropped from the changed-line set before severity rules run.
type Pattern struct {
	ID       int64     `json:"id"`
	DeviceID int64     `json:"device_id"`
	Regex    string    `json:"regex"`
	AddedBy  string    `json:"added_by"`
	AddedAt  time.Time `json:"added_at"`
}
