package storage

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite" // SQLite driver
)

// NewSQLite creates and initializes a SQLite database connection.
func NewSQLite(path string, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single writer connection, SQLite does not like more.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return nil, fmt.Errorf("failed to set %s: %w", pragma, err)
		}
	}

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	logger.Debug("database initialized",
		"path", path,
	)

	return db, nil
}

func createTables(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS build_types (
			build_type_id   TEXT PRIMARY KEY,
			enabled         INTEGER NOT NULL DEFAULT 1,
			last_seen_build INTEGER NOT NULL DEFAULT 0,
			last_sync_time  INTEGER,
			created_at      INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS build_type_changes (
			build_type_id TEXT,
			action        TEXT,
			event_time    INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_build_types_enabled ON build_types(enabled)`,
		`CREATE INDEX IF NOT EXISTS idx_build_type_changes_time ON build_type_changes(event_time)`,
	}

	for _, statement := range statements {
		if _, err := db.Exec(statement); err != nil {
			return err
		}
	}

	return nil
}
