// Package db manages the SQLite preferences database.
package db

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

//go:embed schema/schema.sql
var schemaSQL string

const (
	maxOpenConns = 4
	busyTimeout  = 5000 // milliseconds
)

// DB wraps the SQLite connection holding UI preferences. Editing state is
// never stored here; only per-document view preferences and the
// recent-documents list.
type DB struct {
	conn *sql.DB
}

// Open creates or opens the preferences database at the given path, creating
// parent directories as needed.
func Open(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)", dbPath, busyTimeout)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	conn.SetMaxOpenConns(maxOpenConns)

	if _, err := conn.ExecContext(context.Background(), schemaSQL); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Conn returns the underlying connection for store implementations.
func (d *DB) Conn() *sql.DB { return d.conn }

// Close closes the database connection.
func (d *DB) Close() error {
	return d.conn.Close()
}
