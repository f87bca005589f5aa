package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/confguard/confguard/internal/domain/baseline"
	"github.com/confguard/confguard/internal/pkg/errors"
)

type BaselineRepository struct {
	db *sql.DB
}

func NewBaselineRepository(db *sql.DB) baseline.Repository {
	return &BaselineRepository{db: db}
}

func (r *BaselineRepository) GetActive(ctx context.Context, deviceID int64) (*baseline.Baseline, error) {
	query := `SELECT device_id, snapshot_id, content_hash, set_by, set_at
	          FROM baselines WHERE device_id = $1`

	var b baseline.Baseline
	err := r.db.QueryRowContext(ctx, query, deviceID).Scan(
		&b.DeviceID, &b.SnapshotID, &b.ContentHash, &b.SetBy, &b.SetAt)

	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Baseline")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get baseline", err)
	}

	return &b, nil
}

func (r *BaselineRepository) Promote(ctx context.Context, deviceID, snapshotID int64, contentHash, actor string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.DatabaseError("Failed to begin promotion", err)
	}
	defer tx.Rollback()

	if err := promoteInTx(ctx, tx, deviceID, snapshotID, contentHash, actor); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.DatabaseError("Failed to commit promotion", err)
	}
	return nil
}

func (r *BaselineRepository) History(ctx context.Context, deviceID int64) ([]*baseline.HistoryEntry, error) {
	query := `SELECT id, device_id, snapshot_id, content_hash, replaced_at
	          FROM baseline_history WHERE device_id = $1 ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query, deviceID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list baseline history", err)
	}
	defer rows.Close()

	var entries []*baseline.HistoryEntry
	for rows.Next() {
		var e baseline.HistoryEntry
		if err := rows.Scan(&e.ID, &e.DeviceID, &e.SnapshotID, &e.ContentHash, &e.ReplacedAt); err != nil {
			return nil, errors.DatabaseError("Failed to scan history entry", err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to read baseline history", err)
	}

	return entries, nil
}

func (r *BaselineRepository) CountActive(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM baselines`).Scan(&n); err != nil {
		return 0, errors.DatabaseError("Failed to count baselines", err)
	}
	return n, nil
}

// promoteInTx runs the read-copy-delete-insert sequence that keeps the
// singleton-baseline invariant: the outgoing baseline (if any) is
// copied to history and deleted before the replacement is inserted.
// Callers serialize per device and own the surrounding transaction.
func promoteInTx(ctx context.Context, tx dbtx, deviceID, snapshotID int64, contentHash, actor string) error {
	now := time.Now()

	var cur baseline.Baseline
	err := tx.QueryRowContext(ctx,
		`SELECT device_id, snapshot_id, content_hash FROM baselines WHERE device_id = $1`,
		deviceID).Scan(&cur.DeviceID, &cur.SnapshotID, &cur.ContentHash)

	switch {
	case err == sql.ErrNoRows:
		// First baseline for this device
	case err != nil:
		return errors.DatabaseError("Failed to read current baseline", err)
	default:
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO baseline_history (device_id, snapshot_id, content_hash, replaced_at)
			 VALUES ($1, $2, $3, $4)`,
			cur.DeviceID, cur.SnapshotID, cur.ContentHash, now); err != nil {
			return errors.DatabaseError("Failed to archive baseline", err)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM baselines WHERE device_id = $1`, deviceID); err != nil {
			return errors.DatabaseError("Failed to retire baseline", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO baselines (device_id, snapshot_id, content_hash, set_by, set_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		deviceID, snapshotID, contentHash, actor, now); err != nil {
		return errors.DatabaseError("Failed to insert baseline", err)
	}

	return nil
}
