package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// MemoryPath opens a private in-memory journal.
const MemoryPath = ":memory:"

// DefaultPath returns the default journal location, ~/.aerobridge/journal.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".aerobridge", "journal.db"), nil
}

// Open returns a connection to the journal database at path, creating the
// parent directory and bringing the schema up to date.
func Open(path string) (*sql.DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create journal directory: %w", err)
		}
	}

	database, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite serialises writers anyway; one connection also keeps an
	// in-memory database from splitting across the pool.
	database.SetMaxOpenConns(1)

	if _, err := database.Exec("PRAGMA foreign_keys = ON"); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := InitSchema(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return database, nil
}
