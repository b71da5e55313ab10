// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the single point where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative schema, preventing drift between test and production.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/aerobridge/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}
	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedSession inserts a test session and returns its ID.
func seedSession(t *testing.T, db *sql.DB, id, startedAt string) string {
	t.Helper()
	if id == "" {
		id = "session-1"
	}
	if startedAt == "" {
		startedAt = "2026-03-14T06:00:00Z"
	}
	_, err := db.Exec("INSERT INTO journal_sessions (id, operator, started_at) VALUES (?, 'ops-lead', ?)", id, startedAt)
	if err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
	return id
}
