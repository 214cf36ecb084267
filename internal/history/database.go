package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver
)

// NewDatabase opens a SQLite database at the specified path and applies the
// playback history schema. Use ":memory:" for an ephemeral database.
func NewDatabase(dbPath string) (*sql.DB, error) {
	// Ensure directory exists if not in-memory
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Apply pragmas first
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA user_version = 1",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return db, nil
}

// ensureSchema creates the database schema if it doesn't exist
func ensureSchema(db *sql.DB) error {
	schema := `
-- Playback events, one row per Play invocation
CREATE TABLE IF NOT EXISTS playback_events (
    id              INTEGER PRIMARY KEY,
    timestamp       INTEGER NOT NULL,
    path            TEXT    NOT NULL,
    channels        INTEGER NOT NULL,
    sample_rate     INTEGER NOT NULL,
    bits_per_sample INTEGER NOT NULL,
    volume          INTEGER NOT NULL CHECK (volume BETWEEN 0 AND 100),
    bytes_delivered INTEGER NOT NULL,
    duration_ms     INTEGER NOT NULL,
    outcome         TEXT    NOT NULL CHECK (outcome IN ('completed','failed','cancelled')),
    error           TEXT
);

-- Indexes for common queries
CREATE INDEX IF NOT EXISTS idx_events_timestamp ON playback_events(timestamp DESC);
CREATE INDEX IF NOT EXISTS idx_events_path ON playback_events(path);
CREATE INDEX IF NOT EXISTS idx_events_outcome ON playback_events(outcome);
`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
