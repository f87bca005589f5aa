package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/confguard/confguard/internal/domain/ignore"
	"github.com/confguard/confguard/internal/pkg/errors"
)

type IgnoreRepository struct {
	db *sql.DB
}

func NewIgnoreRepository(db *sql.DB) ignore.Repository {
	return &IgnoreRepository{db: db}
}

func (r *IgnoreRepository) Add(ctx context.Context, deviceID int64, regex, actor string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO ignore_patterns (device_id, regex, added_by, added_at)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		deviceID, regex, actor, time.Now()).Scan(&id)
	if err != nil {
		return 0, errors.DatabaseError("Failed to add ignore pattern", err)
	}
	return id, nil
}

func (r *IgnoreRepository) ListByDevice(ctx context.Context, deviceID int64) ([]*ignore.Pattern, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, device_id, regex, added_by, added_at
		 FROM ignore_patterns WHERE device_id = $1 ORDER BY id`,
		deviceID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list ignore patterns", err)
	}
	defer rows.Close()

	var patterns []*ignore.Pattern
	for rows.Next() {
		var p ignore.Pattern
		if err := rows.Scan(&p.ID, &p.DeviceID, &p.Regex, &p.AddedBy, &p.AddedAt); err != nil {
			return nil, errors.DatabaseError("Failed to scan ignore pattern", err)
		}
		patterns = append(patterns, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to read ignore patterns", err)
	}

	return patterns, nil
}
