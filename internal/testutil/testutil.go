// Package testutil provides shared helpers for package tests.
package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/confguard/confguard/internal/repository/store"
	"github.com/confguard/confguard/migrations"
)

// NewTestDB opens an in-memory sqlite database with the full schema
// applied. The handle is closed when the test finishes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	// One connection keeps every statement on the same in-memory db
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}

	fsys, err := migrations.For("sqlite")
	if err != nil {
		t.Fatalf("load migrations: %v", err)
	}
	if err := store.RunMigrations(db, fsys); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })

	return db
}
