package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"math/rand"
	"time"

	"github.com/confguard/confguard/internal/devlock"
	"github.com/confguard/confguard/internal/domain/proposal"
	"github.com/confguard/confguard/internal/pkg/errors"
	"github.com/confguard/confguard/internal/pkg/logger"
	"github.com/confguard/confguard/internal/pkg/metrics"
)

// ProposalService implements proposal.Service
type ProposalService struct {
	repo    proposal.Repository
	locks   *devlock.Keyed
	retries int
	logger  *logger.Logger
}

// NewProposalService creates a new proposal service. retries bounds how
// often a Busy promotion is retried during decide(approve).
func NewProposalService(repo proposal.Repository, locks *devlock.Keyed, retries int, log *logger.Logger) proposal.Service {
	if retries < 1 {
		retries = 1
	}
	return &ProposalService{
		repo:    repo,
		locks:   locks,
		retries: retries,
		logger:  log,
	}
}

// ContentHash returns the hex sha256 digest used to content-address
// snapshot texts
func ContentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Propose stores the candidate snapshot and opens a pending proposal
func (s *ProposalService) Propose(ctx context.Context, deviceID int64, text, comment, actor string) (int64, error) {
	id, err := s.repo.Create(ctx, deviceID, text, ContentHash(text), comment, actor)
	if err != nil {
		return 0, err
	}

	s.logger.WithFields(map[string]interface{}{
		"proposal_id": id,
		"device_id":   deviceID,
		"actor":       actor,
	}).Info("Proposal created")

	return id, nil
}

// Decide approves or rejects a pending proposal
func (s *ProposalService) Decide(ctx context.Context, id int64, action, actor string) (string, error) {
	var status string
	switch action {
	case proposal.ActionApprove:
		status = proposal.StatusApproved
	case proposal.ActionReject:
		status = proposal.StatusRejected
	default:
		return "", errors.BadRequest("action must be 'approve' or 'reject'")
	}

	// The decision transaction may promote a baseline, so it runs
	// under the proposal's device lock. The device is only known after
	// reading the proposal; state checks are repeated inside the
	// transaction, so this read may be stale without harm.
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	var decided *proposal.Proposal
	for attempt := 0; ; attempt++ {
		decided, err = s.decideLocked(ctx, p.DeviceID, id, status, actor)
		if err == nil {
			break
		}
		if !errors.IsBusy(err) || attempt+1 >= s.retries {
			return "", err
		}

		metrics.RecordPromoteContention()
		sleepWithJitter(attempt)
	}

	metrics.RecordDecision(decided.Status)
	s.logger.WithFields(map[string]interface{}{
		"proposal_id": id,
		"device_id":   decided.DeviceID,
		"status":      decided.Status,
		"actor":       actor,
	}).Info("Proposal decided")

	return decided.Status, nil
}

func (s *ProposalService) decideLocked(ctx context.Context, deviceID, id int64, status, actor string) (*proposal.Proposal, error) {
	release, err := s.locks.Acquire(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	defer release()

	return s.repo.Decide(ctx, id, status, actor)
}

// List retrieves proposals newest first, optionally filtered by status
func (s *ProposalService) List(ctx context.Context, status string) ([]*proposal.Proposal, error) {
	if status != "" &&
		status != proposal.StatusPending &&
		status != proposal.StatusApproved &&
		status != proposal.StatusRejected {
		return nil, errors.BadRequest("unknown proposal status: " + status)
	}
	return s.repo.List(ctx, status)
}

func sleepWithJitter(attempt int) {
	base := 50 * time.Millisecond << uint(attempt)
	time.Sleep(base + time.Duration(rand.Int63n(int64(base))))
}
