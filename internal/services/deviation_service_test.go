package services

import (
	"context"
	"testing"

	"github.com/confguard/confguard/internal/diff"
	"github.com/confguard/confguard/internal/domain/proposal"
	"github.com/confguard/confguard/internal/pkg/errors"
)

func approveBaseline(t *testing.T, env *testEnv, deviceID int64, text string) {
	t.Helper()

	ctx := context.Background()
	id, err := env.proposals.Propose(ctx, deviceID, text, "baseline", "alice")
	if err != nil {
		t.Fatalf("Propose() error = %v", err)
	}
	if _, err := env.proposals.Decide(ctx, id, proposal.ActionApprove, "bob"); err != nil {
		t.Fatalf("Decide() error = %v", err)
	}
}

func TestRecordWithoutBaselineIsInfo(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.deviations.Record(ctx, 1, configV1)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if res.Severity != diff.SeverityInfo {
		t.Errorf("severity = %q, want info", res.Severity)
	}
	if res.Stats.Added != 0 || res.Stats.Removed != 0 {
		t.Errorf("stats = %+v, want zero", res.Stats)
	}

	// The snapshot is still stored
	snap, err := env.snapshots.Get(ctx, res.SnapshotID)
	if err != nil {
		t.Fatalf("Get() snapshot error = %v", err)
	}
	if snap.Text != configV1 {
		t.Errorf("snapshot text = %q, want recorded text", snap.Text)
	}

	events, err := env.deviations.ListByDevice(ctx, 1)
	if err != nil {
		t.Fatalf("ListByDevice() error = %v", err)
	}
	if len(events) != 0 {
		t.Errorf("ListByDevice() = %d events, want 0", len(events))
	}
}

func TestRecordIdenticalTextIsInfo(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	approveBaseline(t, env, 1, configV1)

	res, err := env.deviations.Record(ctx, 1, configV1)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if res.Severity != diff.SeverityInfo {
		t.Errorf("severity = %q, want info", res.Severity)
	}

	events, _ := env.deviations.ListByDevice(ctx, 1)
	if len(events) != 0 {
		t.Errorf("identical text stored %d events, want 0", len(events))
	}
}

func TestRecordClassifiesAndStoresEvents(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	approveBaseline(t, env, 1, configV1)

	tests := []struct {
		name         string
		text         string
		wantSeverity diff.Severity
	}{
		{
			name:         "interface change is critical",
			text:         configV3,
			wantSeverity: diff.SeverityCritical,
		},
		{
			name:         "hostname change is warn",
			text:         "hostname router-1b\ninterface Gi0/1\n ip address 10.0.0.1 255.255.255.0\n",
			wantSeverity: diff.SeverityWarn,
		},
		{
			name:         "comment change is info",
			text:         configV1 + "! audited 2026-08-30\n",
			wantSeverity: diff.SeverityInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := env.deviations.Record(ctx, 1, tt.text)
			if err != nil {
				t.Fatalf("Record() error = %v", err)
			}
			if res.Severity != tt.wantSeverity {
				t.Errorf("severity = %q, want %q", res.Severity, tt.wantSeverity)
			}
			if res.Stats.Added == 0 && res.Stats.Removed == 0 {
				t.Error("changed text yielded zero diff stats")
			}
		})
	}

	events, err := env.deviations.ListByDevice(ctx, 1)
	if err != nil {
		t.Fatalf("ListByDevice() error = %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("ListByDevice() = %d events, want 2", len(events))
	}
	// Newest first: the warn event follows the critical one
	if events[0].Severity != diff.SeverityWarn || events[1].Severity != diff.SeverityCritical {
		t.Errorf("event order = [%s %s], want [warn critical]", events[0].Severity, events[1].Severity)
	}
	if events[1].Stats.Added != 2 || events[1].Stats.Removed != 2 {
		t.Errorf("critical stats = %+v, want two added two removed", events[1].Stats)
	}
}

func TestRecordHonorsIgnorePatterns(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	approveBaseline(t, env, 1, configV1)

	if _, err := env.deviations.AddIgnore(ctx, 1, `^interface `, "alice"); err != nil {
		t.Fatalf("AddIgnore() error = %v", err)
	}

	// The interface rename would be critical but the pattern swallows
	// both changed interface lines
	res, err := env.deviations.Record(ctx, 1, configV3)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if res.Severity != diff.SeverityInfo {
		t.Errorf("severity = %q, want info with matching ignore pattern", res.Severity)
	}
	if res.Stats.Added != 2 || res.Stats.Removed != 2 {
		t.Errorf("stats = %+v, want diff counted despite ignore", res.Stats)
	}

	events, _ := env.deviations.ListByDevice(ctx, 1)
	if len(events) != 0 {
		t.Errorf("ignored change stored %d events, want 0", len(events))
	}

	// Patterns are per device
	approveBaseline(t, env, 2, configV1)
	res, err = env.deviations.Record(ctx, 2, configV3)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if res.Severity != diff.SeverityCritical {
		t.Errorf("other device severity = %q, want critical", res.Severity)
	}
}

func TestAddIgnoreRejectsInvalidRegex(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.deviations.AddIgnore(ctx, 1, `ntp clock-period [`, "alice")
	if err == nil {
		t.Fatal("AddIgnore() with invalid regex succeeded")
	}
	if errors.From(err).Code != errors.ErrCodeBadRequest {
		t.Errorf("error code = %q, want %q", errors.From(err).Code, errors.ErrCodeBadRequest)
	}

	patterns, err := env.deviations.ListIgnores(ctx, 1)
	if err != nil {
		t.Fatalf("ListIgnores() error = %v", err)
	}
	if len(patterns) != 0 {
		t.Errorf("ListIgnores() = %d patterns, want 0", len(patterns))
	}
}

func TestListIgnores(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.deviations.AddIgnore(ctx, 1, `^ntp clock-period`, "alice"); err != nil {
		t.Fatalf("AddIgnore() error = %v", err)
	}
	if _, err := env.deviations.AddIgnore(ctx, 1, `^! Last configuration`, "bob"); err != nil {
		t.Fatalf("AddIgnore() error = %v", err)
	}

	patterns, err := env.deviations.ListIgnores(ctx, 1)
	if err != nil {
		t.Fatalf("ListIgnores() error = %v", err)
	}
	if len(patterns) != 2 {
		t.Fatalf("ListIgnores() = %d patterns, want 2", len(patterns))
	}
	if patterns[0].Regex != `^ntp clock-period` || patterns[0].AddedBy != "alice" {
		t.Errorf("first pattern = %+v, want alice's clock-period rule", patterns[0])
	}
}
