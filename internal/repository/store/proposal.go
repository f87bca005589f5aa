package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/confguard/confguard/internal/domain/proposal"
	"github.com/confguard/confguard/internal/pkg/errors"
)

type ProposalRepository struct {
	db *sql.DB
}

func NewProposalRepository(db *sql.DB) proposal.Repository {
	return &ProposalRepository{db: db}
}

func (r *ProposalRepository) Create(ctx context.Context, deviceID int64, text, contentHash, comment, actor string) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.DatabaseError("Failed to begin proposal", err)
	}
	defer tx.Rollback()

	// Hard per-device uniqueness rule: an identical snapshot text may
	// only ever be stored once per device, whether or not the earlier
	// copy belonged to a proposal
	exists, err := snapshotExists(ctx, tx, deviceID, contentHash)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, errors.Conflict("identical snapshot already exists for this device")
	}

	snapshotID, err := insertSnapshot(ctx, tx, deviceID, text, contentHash)
	if err != nil {
		return 0, err
	}

	var id int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO proposals (device_id, snapshot_id, comment, proposed_by, proposed_at, status)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		deviceID, snapshotID, comment, actor, time.Now(), proposal.StatusPending).Scan(&id)
	if err != nil {
		return 0, errors.DatabaseError("Failed to create proposal", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.DatabaseError("Failed to commit proposal", err)
	}
	return id, nil
}

const proposalColumns = `p.id, p.device_id, p.snapshot_id, s.content_hash, p.comment,
	p.proposed_by, p.proposed_at, p.status, p.decided_by, p.decided_at`

func scanProposal(row interface{ Scan(...interface{}) error }) (*proposal.Proposal, error) {
	var p proposal.Proposal
	err := row.Scan(&p.ID, &p.DeviceID, &p.SnapshotID, &p.ContentHash, &p.Comment,
		&p.ProposedBy, &p.ProposedAt, &p.Status, &p.DecidedBy, &p.DecidedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProposalRepository) GetByID(ctx context.Context, id int64) (*proposal.Proposal, error) {
	query := `SELECT ` + proposalColumns + `
	          FROM proposals p JOIN config_snapshots s ON s.id = p.snapshot_id
	          WHERE p.id = $1`

	p, err := scanProposal(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Proposal")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get proposal", err)
	}
	return p, nil
}

func (r *ProposalRepository) Decide(ctx context.Context, id int64, status, actor string) (*proposal.Proposal, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.DatabaseError("Failed to begin decision", err)
	}
	defer tx.Rollback()

	query := `SELECT ` + proposalColumns + `
	          FROM proposals p JOIN config_snapshots s ON s.id = p.snapshot_id
	          WHERE p.id = $1`

	p, err := scanProposal(tx.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Proposal")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to read proposal", err)
	}

	if p.Status != proposal.StatusPending {
		return nil, errors.InvalidState("proposal already decided")
	}
	if p.ProposedBy == actor {
		return nil, errors.Forbidden("proposer cannot decide their own proposal")
	}

	now := time.Now()
	if _, err := tx.ExecContext(ctx,
		`UPDATE proposals SET status = $1, decided_by = $2, decided_at = $3 WHERE id = $4`,
		status, actor, now, id); err != nil {
		return nil, errors.DatabaseError("Failed to update proposal", err)
	}

	// Approval and promotion commit or roll back together: a crash in
	// between must never leave an approved proposal without its
	// baseline change, or the reverse
	if status == proposal.StatusApproved {
		if err := promoteInTx(ctx, tx, p.DeviceID, p.SnapshotID, p.ContentHash, actor); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.DatabaseError("Failed to commit decision", err)
	}

	p.Status = status
	p.DecidedBy = &actor
	p.DecidedAt = &now
	return p, nil
}

func (r *ProposalRepository) List(ctx context.Context, status string) ([]*proposal.Proposal, error) {
	query := `SELECT ` + proposalColumns + `
	          FROM proposals p JOIN config_snapshots s ON s.id = p.snapshot_id`
	var args []interface{}
	if status != "" {
		query += ` WHERE p.status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY p.id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list proposals", err)
	}
	defer rows.Close()

	var proposals []*proposal.Proposal
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan proposal", err)
		}
		proposals = append(proposals, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to read proposals", err)
	}

	return proposals, nil
}
