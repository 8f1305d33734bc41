// Package sqlite stores the index, snippet and artifact stores as three
// tables in one embedded SQLite database (modernc.org/sqlite, pure Go).
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB wraps the shared *sql.DB
type DB struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and runs migrations
func Open(ctx context.Context, path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// Single writer: SQLite serializes writes anyway and this avoids
	// SQLITE_BUSY between pooled connections
	db.SetMaxOpenConns(1)

	d := &DB{db: db}
	if err := d.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return d, nil
}

func (d *DB) Close() error { return d.db.Close() }

// migrate creates the tables, idempotently
func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS posts (
            seq INTEGER PRIMARY KEY AUTOINCREMENT,
            id TEXT NOT NULL UNIQUE,
            title TEXT NOT NULL,
            authors TEXT NOT NULL,
            date TEXT NOT NULL,
            thumbnail TEXT NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS snippets (
            id TEXT PRIMARY KEY,
            snippet TEXT NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS artifacts (
            id TEXT PRIMARY KEY,
            content TEXT NOT NULL,
            updated_at TIMESTAMP NOT NULL
        );`,
	}
	for _, q := range stmts {
		if _, err := d.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("exec migrate: %w", err)
		}
	}
	return nil
}
