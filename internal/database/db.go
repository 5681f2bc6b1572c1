package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go sqlite driver
)

// bootstrapSchema is applied on every open; statements are idempotent.
const bootstrapSchema = `
CREATE TABLE IF NOT EXISTS recipes (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	source_url  TEXT NOT NULL,
	title       TEXT NOT NULL,
	data        TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_recipes_source_url ON recipes(source_url);

CREATE TABLE IF NOT EXISTS extraction_metrics (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	host        TEXT NOT NULL,
	source      TEXT NOT NULL,
	latency_ms  INTEGER NOT NULL,
	created_at  TIMESTAMP NOT NULL
);
`

// DB provides a centralized database connection.
type DB struct {
	SQL *sql.DB
}

// NewDB initializes the SQLite database and bootstraps the schema.
func NewDB(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(bootstrapSchema); err != nil {
		return nil, fmt.Errorf("failed to bootstrap schema: %w", err)
	}

	return &DB{SQL: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.SQL.Close()
}
