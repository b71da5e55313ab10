package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_FreshDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "journal.db")

	database, err := Open(path)
	require.NoError(t, err)
	defer database.Close()

	var version int
	require.NoError(t, database.QueryRow("SELECT MAX(version) FROM schema_version").Scan(&version))
	assert.Equal(t, CurrentVersion(), version)

	_, err = database.Exec("INSERT INTO journal_sessions (id, started_at) VALUES ('s-1', '2026-03-14T06:00:00Z')")
	require.NoError(t, err)
	_, err = database.Exec("INSERT INTO journal_entries (session_id, kind, run_id, created_at) VALUES ('s-1', 'validation', 'run-1', '2026-03-14T06:00:01Z')")
	require.NoError(t, err)
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	first, err := Open(path)
	require.NoError(t, err)
	_, err = first.Exec("INSERT INTO journal_sessions (id, started_at) VALUES ('s-1', '2026-03-14T06:00:00Z')")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	defer second.Close()

	var count int
	require.NoError(t, second.QueryRow("SELECT COUNT(*) FROM journal_sessions").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestOpen_Memory(t *testing.T) {
	database, err := Open(MemoryPath)
	require.NoError(t, err)
	defer database.Close()

	var count int
	require.NoError(t, database.QueryRow("SELECT COUNT(*) FROM journal_entries").Scan(&count))
	assert.Zero(t, count)
}

func TestRunMigrations_UpgradesV1Database(t *testing.T) {
	database, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	database.SetMaxOpenConns(1)
	defer database.Close()

	require.NoError(t, createVersionTable(database))
	tx, err := database.Begin()
	require.NoError(t, err)
	require.NoError(t, migrationV1(tx))
	_, err = tx.Exec("INSERT INTO schema_version (version) VALUES (1)")
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	require.NoError(t, InitSchema(database))

	var count int
	require.NoError(t, database.QueryRow("SELECT COUNT(*) FROM pragma_table_info('journal_entries') WHERE name = 'run_id'").Scan(&count))
	assert.Equal(t, 1, count)

	// Running again is a no-op.
	require.NoError(t, RunMigrations(database))
}
