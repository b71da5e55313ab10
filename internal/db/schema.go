package db

import (
	"database/sql"
	"fmt"
)

// SchemaSQL is the complete modern schema for fresh journal databases.
// This schema reflects the current state after all migrations.
//
// This is the single source of truth for the journal schema. Repository
// tests build their databases from GetSchemaSQL() rather than hardcoding
// CREATE TABLE statements, so a column referenced by repository code but
// missing here fails immediately with "no such column".
//
// When adding new columns or tables:
//  1. Add a migration to the migrations list
//  2. Update SchemaSQL here
const SchemaSQL = `
-- Operator sessions (one per workflow service instance)
CREATE TABLE IF NOT EXISTS journal_sessions (
	id TEXT PRIMARY KEY,
	operator TEXT,
	mission_source TEXT,
	started_at TEXT NOT NULL,
	closed_at TEXT
);

CREATE INDEX IF NOT EXISTS idx_journal_sessions_started ON journal_sessions(started_at);

-- Journal entries (transitions, validation steps, authorizations)
CREATE TABLE IF NOT EXISTS journal_entries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	kind TEXT NOT NULL CHECK(kind IN ('transition', 'validation', 'authorization')),
	from_stage TEXT,
	to_stage TEXT,
	coa TEXT,
	run_id TEXT,
	detail TEXT,
	operator TEXT,
	created_at TEXT NOT NULL,
	FOREIGN KEY (session_id) REFERENCES journal_sessions(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_journal_entries_session ON journal_entries(session_id);
CREATE INDEX IF NOT EXISTS idx_journal_entries_run ON journal_entries(run_id);
`

// InitSchema creates the schema on a fresh database, or runs pending
// migrations on an existing one.
func InitSchema(database *sql.DB) error {
	var tableCount int
	err := database.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount > 0 {
		return RunMigrations(database)
	}

	// Fresh install: create the modern schema directly and mark every
	// migration as applied.
	if _, err := database.Exec(SchemaSQL); err != nil {
		return err
	}
	if err := createVersionTable(database); err != nil {
		return err
	}
	for _, m := range migrations {
		if _, err := database.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
