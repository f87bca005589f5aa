package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/confguard/confguard/internal/domain/snapshot"
	"github.com/confguard/confguard/internal/pkg/errors"
)

type SnapshotRepository struct {
	db *sql.DB
}

func NewSnapshotRepository(db *sql.DB) snapshot.Repository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) Put(ctx context.Context, deviceID int64, text, contentHash string) (int64, error) {
	return insertSnapshot(ctx, r.db, deviceID, text, contentHash)
}

func (r *SnapshotRepository) Get(ctx context.Context, id int64) (*snapshot.Snapshot, error) {
	query := `SELECT id, device_id, text, content_hash, created_at
	          FROM config_snapshots WHERE id = $1`

	var s snapshot.Snapshot
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.DeviceID, &s.Text, &s.ContentHash, &s.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Snapshot")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get snapshot", err)
	}

	return &s, nil
}

func (r *SnapshotRepository) ExistsByHash(ctx context.Context, deviceID int64, contentHash string) (bool, error) {
	return snapshotExists(ctx, r.db, deviceID, contentHash)
}

// insertSnapshot appends one immutable snapshot row. Shared with the
// proposal and deviation repositories so their transactions write the
// identical row shape.
func insertSnapshot(ctx context.Context, q dbtx, deviceID int64, text, contentHash string) (int64, error) {
	query := `INSERT INTO config_snapshots (device_id, text, content_hash, created_at)
	          VALUES ($1, $2, $3, $4) RETURNING id`

	var id int64
	err := q.QueryRowContext(ctx, query, deviceID, text, contentHash, time.Now()).Scan(&id)
	if err != nil {
		return 0, errors.DatabaseError("Failed to store snapshot", err)
	}
	return id, nil
}

func snapshotExists(ctx context.Context, q dbtx, deviceID int64, contentHash string) (bool, error) {
	var id int64
	err := q.QueryRowContext(ctx,
		`SELECT id FROM config_snapshots WHERE device_id = $1 AND content_hash = $2 LIMIT 1`,
		deviceID, contentHash).Scan(&id)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, errors.DatabaseError("Failed to check snapshot hash", err)
	}
	return true, nil
}
