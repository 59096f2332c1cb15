// Package db pkg/db/db.go provides SQLite database functionality for hubview.
package db

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const (
	// SQL statements for database initialization.
	createTablesSQL = `
	-- Collected samples, append-only
	CREATE TABLE IF NOT EXISTS samples (
		id TEXT NOT NULL,
		entity TEXT NOT NULL,
		field TEXT NOT NULL,
		timestamp TIMESTAMP NOT NULL,
		value TEXT
	);

	-- Entities opted into tracking
	CREATE TABLE IF NOT EXISTS tracked_entities (
		id TEXT NOT NULL,
		hub_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		fields TEXT NOT NULL DEFAULT '[]',
		last_update TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	-- Saved views
	CREATE TABLE IF NOT EXISTS views (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		chart_type TEXT NOT NULL,
		fields TEXT NOT NULL DEFAULT '[]',
		time_range TEXT NOT NULL
	);

	-- Hub connection, single row
	CREATE TABLE IF NOT EXISTS hub_config (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		address TEXT NOT NULL,
		token TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	-- Indexes for better query performance
	CREATE INDEX IF NOT EXISTS idx_samples_entity_field_time
		ON samples(entity, field, timestamp);
	CREATE INDEX IF NOT EXISTS idx_samples_entity_time
		ON samples(entity, timestamp);

	-- Enable WAL mode for better concurrent access
	PRAGMA journal_mode=WAL;
	PRAGMA foreign_keys=ON;
	`
)

// DB represents the database connection and operations.
type DB struct {
	*sql.DB
}

// New creates a new database connection and initializes the schema.
func New(dbPath string) (Service, error) {
	sqlDB, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedOpenDB, err)
	}

	// Enable WAL mode for better concurrent access
	if _, err := sqlDB.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToEnableWAL, err)
	}

	db := &DB{sqlDB}
	if err := db.initSchema(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToInit, err)
	}

	return db, nil
}

// initSchema creates the database tables if they don't exist.
func (db *DB) initSchema() error {
	_, err := db.Exec(createTablesSQL)

	return err
}
