package services

import (
	"context"
	"testing"

	"github.com/confguard/confguard/internal/domain/proposal"
	"github.com/confguard/confguard/internal/pkg/errors"
)

const (
	configV1 = "hostname router-1\ninterface Gi0/1\n ip address 10.0.0.1 255.255.255.0\n"
	configV2 = "hostname router-1\ninterface Gi0/1\n ip address 10.0.0.2 255.255.255.0\n"
	configV3 = "hostname router-1\ninterface Gi0/2\n ip address 10.0.1.1 255.255.255.0\n"
)

func TestProposeCreatesPending(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id, err := env.proposals.Propose(ctx, 1, configV1, "initial baseline", "alice")
	if err != nil {
		t.Fatalf("Propose() error = %v", err)
	}
	if id == 0 {
		t.Fatal("Propose() returned zero id")
	}

	list, err := env.proposals.List(ctx, proposal.StatusPending)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("List(pending) = %d proposals, want 1", len(list))
	}

	p := list[0]
	if p.Status != proposal.StatusPending {
		t.Errorf("status = %q, want %q", p.Status, proposal.StatusPending)
	}
	if p.ProposedBy != "alice" {
		t.Errorf("proposed_by = %q, want alice", p.ProposedBy)
	}
	if p.ContentHash != ContentHash(configV1) {
		t.Errorf("content_hash = %q, want %q", p.ContentHash, ContentHash(configV1))
	}
	if p.DecidedBy != nil || p.DecidedAt != nil {
		t.Error("pending proposal must not carry decision fields")
	}
}

func TestProposeDuplicateSnapshotConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.proposals.Propose(ctx, 1, configV1, "first", "alice"); err != nil {
		t.Fatalf("Propose() error = %v", err)
	}

	_, err := env.proposals.Propose(ctx, 1, configV1, "same again", "bob")
	if err == nil {
		t.Fatal("Propose() with identical text succeeded, want conflict")
	}
	if errors.From(err).Code != errors.ErrCodeConflict {
		t.Errorf("error code = %q, want %q", errors.From(err).Code, errors.ErrCodeConflict)
	}

	// A different device may store the same text
	if _, err := env.proposals.Propose(ctx, 2, configV1, "other device", "alice"); err != nil {
		t.Fatalf("Propose() on other device error = %v", err)
	}
}

func TestDecideApprovePromotesBaseline(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id, err := env.proposals.Propose(ctx, 1, configV1, "initial", "alice")
	if err != nil {
		t.Fatalf("Propose() error = %v", err)
	}

	status, err := env.proposals.Decide(ctx, id, proposal.ActionApprove, "bob")
	if err != nil {
		t.Fatalf("Decide() error = %v", err)
	}
	if status != proposal.StatusApproved {
		t.Errorf("status = %q, want %q", status, proposal.StatusApproved)
	}

	active, err := env.baselines.GetActive(ctx, 1)
	if err != nil {
		t.Fatalf("GetActive() after approval error = %v", err)
	}
	if active.Text != configV1 {
		t.Errorf("baseline text = %q, want proposed text", active.Text)
	}
	if active.SetBy != "bob" {
		t.Errorf("set_by = %q, want deciding actor bob", active.SetBy)
	}
	if active.ContentHash != ContentHash(configV1) {
		t.Errorf("content_hash = %q, want %q", active.ContentHash, ContentHash(configV1))
	}
}

func TestDecideRejectLeavesBaselineUntouched(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id, err := env.proposals.Propose(ctx, 1, configV1, "initial", "alice")
	if err != nil {
		t.Fatalf("Propose() error = %v", err)
	}

	status, err := env.proposals.Decide(ctx, id, proposal.ActionReject, "bob")
	if err != nil {
		t.Fatalf("Decide() error = %v", err)
	}
	if status != proposal.StatusRejected {
		t.Errorf("status = %q, want %q", status, proposal.StatusRejected)
	}

	if _, err := env.baselines.GetActive(ctx, 1); errors.From(err).Code != errors.ErrCodeNotFound {
		t.Errorf("GetActive() after rejection = %v, want not found", err)
	}
}

func TestDecideApprovalReplacesExistingBaseline(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.proposals.Propose(ctx, 1, configV1, "v1", "alice")
	if err != nil {
		t.Fatalf("Propose() error = %v", err)
	}
	if _, err := env.proposals.Decide(ctx, first, proposal.ActionApprove, "bob"); err != nil {
		t.Fatalf("Decide() error = %v", err)
	}

	second, err := env.proposals.Propose(ctx, 1, configV2, "v2", "alice")
	if err != nil {
		t.Fatalf("Propose() error = %v", err)
	}
	if _, err := env.proposals.Decide(ctx, second, proposal.ActionApprove, "carol"); err != nil {
		t.Fatalf("Decide() error = %v", err)
	}

	active, err := env.baselines.GetActive(ctx, 1)
	if err != nil {
		t.Fatalf("GetActive() error = %v", err)
	}
	if active.Text != configV2 {
		t.Errorf("baseline text = %q, want v2 text", active.Text)
	}

	history, err := env.baselines.History(ctx, 1)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("History() = %d entries, want 1", len(history))
	}
	if history[0].ContentHash != ContentHash(configV1) {
		t.Errorf("history hash = %q, want v1 hash", history[0].ContentHash)
	}
	if history[0].DeviceID != 1 {
		t.Errorf("history device = %d, want 1", history[0].DeviceID)
	}
}

func TestDecideErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id, err := env.proposals.Propose(ctx, 1, configV1, "initial", "alice")
	if err != nil {
		t.Fatalf("Propose() error = %v", err)
	}
	decided, err := env.proposals.Propose(ctx, 1, configV2, "second", "alice")
	if err != nil {
		t.Fatalf("Propose() error = %v", err)
	}
	if _, err := env.proposals.Decide(ctx, decided, proposal.ActionReject, "bob"); err != nil {
		t.Fatalf("Decide() error = %v", err)
	}

	tests := []struct {
		name     string
		id       int64
		action   string
		actor    string
		wantCode string
	}{
		{"unknown action", id, "defer", "bob", errors.ErrCodeBadRequest},
		{"missing proposal", 9999, proposal.ActionApprove, "bob", errors.ErrCodeNotFound},
		{"self decision", id, proposal.ActionApprove, "alice", errors.ErrCodeForbidden},
		{"already decided", decided, proposal.ActionApprove, "bob", errors.ErrCodeInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.proposals.Decide(ctx, tt.id, tt.action, tt.actor)
			if err == nil {
				t.Fatal("Decide() succeeded, want error")
			}
			if code := errors.From(err).Code; code != tt.wantCode {
				t.Errorf("error code = %q, want %q", code, tt.wantCode)
			}
		})
	}

	// A failed self-decision must leave the proposal pending for
	// someone else
	if _, err := env.proposals.Decide(ctx, id, proposal.ActionApprove, "bob"); err != nil {
		t.Fatalf("Decide() by second actor error = %v", err)
	}
}

func TestListFiltersByStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a, _ := env.proposals.Propose(ctx, 1, configV1, "a", "alice")
	b, _ := env.proposals.Propose(ctx, 1, configV2, "b", "alice")
	if _, err := env.proposals.Propose(ctx, 1, configV3, "c", "alice"); err != nil {
		t.Fatalf("Propose() error = %v", err)
	}

	if _, err := env.proposals.Decide(ctx, a, proposal.ActionApprove, "bob"); err != nil {
		t.Fatalf("Decide() error = %v", err)
	}
	if _, err := env.proposals.Decide(ctx, b, proposal.ActionReject, "bob"); err != nil {
		t.Fatalf("Decide() error = %v", err)
	}

	tests := []struct {
		status string
		want   int
	}{
		{"", 3},
		{proposal.StatusPending, 1},
		{proposal.StatusApproved, 1},
		{proposal.StatusRejected, 1},
	}
	for _, tt := range tests {
		list, err := env.proposals.List(ctx, tt.status)
		if err != nil {
			t.Fatalf("List(%q) error = %v", tt.status, err)
		}
		if len(list) != tt.want {
			t.Errorf("List(%q) = %d proposals, want %d", tt.status, len(list), tt.want)
		}
	}

	all, _ := env.proposals.List(ctx, "")
	for i := 1; i < len(all); i++ {
		if all[i-1].ID < all[i].ID {
			t.Fatal("List() not ordered newest first")
		}
	}

	if _, err := env.proposals.List(ctx, "expired"); errors.From(err).Code != errors.ErrCodeBadRequest {
		t.Errorf("List(expired) = %v, want bad request", err)
	}
}
