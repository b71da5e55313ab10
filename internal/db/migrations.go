package db

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Migration represents a database schema migration.
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_journal_tables",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_run_id_to_journal_entries",
		Up:      migrationV2,
	},
}

// CurrentVersion returns the highest known schema version.
func CurrentVersion() int {
	return migrations[len(migrations)-1].Version
}

func createVersionTable(database *sql.DB) error {
	_, err := database.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}
	return nil
}

// RunMigrations executes all pending migrations, each in its own transaction.
func RunMigrations(database *sql.DB) error {
	if err := createVersionTable(database); err != nil {
		return err
	}

	var currentVersion int
	err := database.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, err := database.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		slog.Info("journal migration applied", "version", migration.Version, "name", migration.Name)
	}

	return nil
}

// migrationV1 creates the session and entry tables as first released.
func migrationV1(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS journal_sessions (
			id TEXT PRIMARY KEY,
			operator TEXT,
			mission_source TEXT,
			started_at TEXT NOT NULL,
			closed_at TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_journal_sessions_started ON journal_sessions(started_at);

		CREATE TABLE IF NOT EXISTS journal_entries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			kind TEXT NOT NULL CHECK(kind IN ('transition', 'validation', 'authorization')),
			from_stage TEXT,
			to_stage TEXT,
			coa TEXT,
			detail TEXT,
			operator TEXT,
			created_at TEXT NOT NULL,
			FOREIGN KEY (session_id) REFERENCES journal_sessions(id) ON DELETE CASCADE
		);
		CREATE INDEX IF NOT EXISTS idx_journal_entries_session ON journal_entries(session_id);
	`)
	return err
}

// migrationV2 ties entries to the validation run that produced them.
func migrationV2(tx *sql.Tx) error {
	var count int
	err := tx.QueryRow("SELECT COUNT(*) FROM pragma_table_info('journal_entries') WHERE name = 'run_id'").Scan(&count)
	if err != nil {
		return err
	}
	if count == 0 {
		if _, err := tx.Exec("ALTER TABLE journal_entries ADD COLUMN run_id TEXT"); err != nil {
			return err
		}
	}
	_, err = tx.Exec("CREATE INDEX IF NOT EXISTS idx_journal_entries_run ON journal_entries(run_id)")
	return err
}
