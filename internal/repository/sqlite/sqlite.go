// Package sqlite implements the repository interfaces on top of a single-file
// SQLite database, using the pure-Go modernc.org/sqlite driver (no CGo, so
// the binary cross-compiles anywhere Go runs).
package sqlite

import (
	"database/sql"
	"fmt"

	// Registers the "sqlite" driver with database/sql at init time.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB pool and provides the repository methods.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath and ensures the schema
// exists. Pass ":memory:" for an in-memory database in tests.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// SQLite serializes writers anyway, and a single pooled connection keeps
	// ":memory:" databases coherent (each new connection would otherwise get
	// its own empty in-memory database).
	conn.SetMaxOpenConns(1)

	// Surface a bad path or permissions problem now, not on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets reads proceed while a write is in flight. SQLite still
	// serializes writers itself; a busy writer surfaces as a driver error
	// that the application does not retry.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Callers defer this next to New.
func (db *DB) Close() error {
	return db.conn.Close()
}

// schema creates both tables. CREATE TABLE IF NOT EXISTS makes startup
// idempotent against an existing database file.
//
// The Questions table is intentionally dead weight: no route touches it, but
// existing database files carry it, so a fresh file must too.
const schema = `
CREATE TABLE IF NOT EXISTS Users (
	user_id       INTEGER PRIMARY KEY AUTOINCREMENT,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	high_score    INTEGER NOT NULL DEFAULT 0,
	created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS Questions (
	question_id    INTEGER PRIMARY KEY AUTOINCREMENT,
	question       TEXT NOT NULL,
	correct_answer TEXT NOT NULL
);
`

func (db *DB) migrate() error {
	if _, err := db.conn.Exec(schema); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}
