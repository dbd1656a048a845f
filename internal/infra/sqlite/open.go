// Package sqlite opens the embedded SQLite database used when no Postgres URL is configured.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // driver: sqlite
)

const DefaultDSN = "file:learning-hub.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"

// Open opens a DB and ensures schema exists.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	if err := EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS user_preferences (
	user_id      INTEGER PRIMARY KEY,
	dark_mode    INTEGER NOT NULL DEFAULT 1,
	bookmarks    TEXT NOT NULL DEFAULT '[]',
	achievements TEXT NOT NULL DEFAULT '[]',
	created_at   INTEGER NOT NULL,
	updated_at   INTEGER NOT NULL
);
`

// EnsureSchema creates the tables the application needs.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
