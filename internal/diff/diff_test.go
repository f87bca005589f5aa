package diff

import (
	"reflect"
	"testing"
)

func TestLines(t *testing.T) {
	tests := []struct {
		name        string
		baseline    string
		candidate   string
		wantAdded   int
		wantRemoved int
	}{
		{
			name:        "identical texts",
			baseline:    "interface Lo0\n description a",
			candidate:   "interface Lo0\n description a",
			wantAdded:   0,
			wantRemoved: 0,
		},
		{
			name:        "single line appended",
			baseline:    "interface Lo0\n description a",
			candidate:   "interface Lo0\n description a\n ip access-group 10 in",
			wantAdded:   1,
			wantRemoved: 0,
		},
		{
			name:        "single line dropped",
			baseline:    "hostname sw1\nntp server 10.0.0.1",
			candidate:   "hostname sw1",
			wantAdded:   0,
			wantRemoved: 1,
		},
		{
			name:        "line replaced",
			baseline:    "hostname sw1",
			candidate:   "hostname sw2",
			wantAdded:   1,
			wantRemoved: 1,
		},
		{
			name:        "both empty",
			baseline:    "",
			candidate:   "",
			wantAdded:   0,
			wantRemoved: 0,
		},
		{
			name:        "empty baseline",
			baseline:    "",
			candidate:   "hostname sw1\nntp server 10.0.0.1",
			wantAdded:   2,
			wantRemoved: 0,
		},
		{
			name:        "trailing newline is not a line",
			baseline:    "hostname sw1\n",
			candidate:   "hostname sw1",
			wantAdded:   0,
			wantRemoved: 0,
		},
		{
			name:        "change in the middle keeps surroundings equal",
			baseline:    "interface Gi0/1\n description uplink\n no shutdown",
			candidate:   "interface Gi0/1\n description core uplink\n no shutdown",
			wantAdded:   1,
			wantRemoved: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lines(tt.baseline, tt.candidate)
			if got.Added != tt.wantAdded {
				t.Errorf("Added = %d, want %d", got.Added, tt.wantAdded)
			}
			if got.Removed != tt.wantRemoved {
				t.Errorf("Removed = %d, want %d", got.Removed, tt.wantRemoved)
			}
			if len(got.Changed()) != tt.wantAdded+tt.wantRemoved {
				t.Errorf("Changed() len = %d, want %d", len(got.Changed()), tt.wantAdded+tt.wantRemoved)
			}
		})
	}
}

func TestLines_ChangedContents(t *testing.T) {
	got := Lines(
		"interface Lo0\n description a",
		"interface Lo0\n description a\n ip access-group 10 in",
	)

	want := []string{" ip access-group 10 in"}
	if !reflect.DeepEqual(got.Changed(), want) {
		t.Errorf("Changed() = %v, want %v", got.Changed(), want)
	}
}
