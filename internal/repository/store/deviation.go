package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/confguard/confguard/internal/diff"
	"github.com/confguard/confguard/internal/domain/deviation"
	"github.com/confguard/confguard/internal/pkg/errors"
)

type DeviationRepository struct {
	db *sql.DB
}

func NewDeviationRepository(db *sql.DB) deviation.Repository {
	return &DeviationRepository{db: db}
}

func (r *DeviationRepository) Record(ctx context.Context, deviceID int64, text, contentHash string, eval deviation.Evaluator) (*deviation.Result, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.DatabaseError("Failed to begin ingestion", err)
	}
	defer tx.Rollback()

	// Every retrieval is recorded, duplicates included
	snapshotID, err := insertSnapshot(ctx, tx, deviceID, text, contentHash)
	if err != nil {
		return nil, err
	}

	var baseText string
	err = tx.QueryRowContext(ctx,
		`SELECT s.text FROM baselines b
		 JOIN config_snapshots s ON s.id = b.snapshot_id
		 WHERE b.device_id = $1`,
		deviceID).Scan(&baseText)

	if err == sql.ErrNoRows {
		// No baseline yet: the first observation defines nothing to
		// deviate from
		if err := tx.Commit(); err != nil {
			return nil, errors.DatabaseError("Failed to commit ingestion", err)
		}
		return &deviation.Result{
			SnapshotID: snapshotID,
			Severity:   diff.SeverityInfo,
		}, nil
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to read baseline text", err)
	}

	a := eval(baseText, text)

	if a.Severity != diff.SeverityInfo {
		stats, err := json.Marshal(a.Stats)
		if err != nil {
			return nil, errors.Internal("Failed to encode diff stats", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO deviation_events (device_id, snapshot_id, severity, diff_stats, created_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			deviceID, snapshotID, string(a.Severity), string(stats), time.Now()); err != nil {
			return nil, errors.DatabaseError("Failed to record deviation event", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.DatabaseError("Failed to commit ingestion", err)
	}

	return &deviation.Result{
		SnapshotID: snapshotID,
		Severity:   a.Severity,
		Stats:      a.Stats,
	}, nil
}

func (r *DeviationRepository) ListByDevice(ctx context.Context, deviceID int64) ([]*deviation.Event, error) {
	query := `SELECT id, device_id, snapshot_id, severity, diff_stats, created_at
	          FROM deviation_events WHERE device_id = $1 ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query, deviceID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list deviations", err)
	}
	defer rows.Close()

	var events []*deviation.Event
	for rows.Next() {
		var e deviation.Event
		var severity, stats string
		if err := rows.Scan(&e.ID, &e.DeviceID, &e.SnapshotID, &severity, &stats, &e.CreatedAt); err != nil {
			return nil, errors.DatabaseError("Failed to scan deviation event", err)
		}
		e.Severity = diff.Severity(severity)
		if err := json.Unmarshal([]byte(stats), &e.Stats); err != nil {
			return nil, errors.Internal("Failed to decode diff stats", err)
		}
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to read deviations", err)
	}

	return events, nil
}

func (r *DeviationRepository) CountBySeverity(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT severity, COUNT(*) FROM deviation_events GROUP BY severity`)
	if err != nil {
		return nil, errors.DatabaseError("Failed to count deviations", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var severity string
		var n int
		if err := rows.Scan(&severity, &n); err != nil {
			return nil, errors.DatabaseError("Failed to scan deviation count", err)
		}
		counts[severity] = n
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to read deviation counts", err)
	}

	return counts, nil
}
