package migrations

// The announcements schema is a Go migration because the timestamp column
// type differs per driver: DATETIME for SQLite (modernc parses it back into
// time.Time), TIMESTAMPTZ(3) for PostgreSQL, and DATETIME(3) for MySQL, which
// also needs bounded VARCHAR keys for the primary key and index.

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateAnnouncements, downCreateAnnouncements)
}

func upCreateAnnouncements(ctx context.Context, tx *sql.Tx) error {
	var ddl string
	switch dialect {
	case "postgres":
		ddl = `CREATE TABLE IF NOT EXISTS announcements (
    id         TEXT PRIMARY KEY,
    title      TEXT NOT NULL,
    message    TEXT NOT NULL,
    type       TEXT NOT NULL DEFAULT 'info',
    created_at TIMESTAMPTZ(3) NOT NULL
)`
	case "mysql":
		ddl = `CREATE TABLE IF NOT EXISTS announcements (
    id         VARCHAR(36) PRIMARY KEY,
    title      TEXT NOT NULL,
    message    TEXT NOT NULL,
    type       VARCHAR(64) NOT NULL DEFAULT 'info',
    created_at DATETIME(3) NOT NULL
)`
	default: // sqlite3
		ddl = `CREATE TABLE IF NOT EXISTS announcements (
    id         TEXT PRIMARY KEY,
    title      TEXT NOT NULL,
    message    TEXT NOT NULL,
    type       TEXT NOT NULL DEFAULT 'info',
    created_at DATETIME NOT NULL
)`
	}
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create announcements table: %w", err)
	}
	_, err := tx.ExecContext(ctx, `CREATE INDEX announcements_created_at_idx ON announcements (created_at, id)`)
	return err
}

func downCreateAnnouncements(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS announcements`)
	return err
}
