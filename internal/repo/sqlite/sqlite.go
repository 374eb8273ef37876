// Package sqlite is the embedded storage backend, selected with DB_DRIVER=sqlite.
// It mirrors the postgres repositories over database/sql via sqlx.
package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS articles (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		title            VARCHAR(255) NOT NULL,
		content          TEXT NOT NULL,
		author_id        INTEGER NOT NULL,
		category_id      INTEGER,
		created_at       TIMESTAMP NOT NULL,
		updated_at       TIMESTAMP NOT NULL,
		status           TEXT NOT NULL DEFAULT 'draft'
		                 CHECK (status IN ('draft', 'published', 'archived')),
		slug             VARCHAR(255) UNIQUE,
		meta_description VARCHAR(255),
		featured_image   VARCHAR(255)
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        VARCHAR(100) NOT NULL,
		description TEXT,
		slug        VARCHAR(100) UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		username   VARCHAR(50) UNIQUE NOT NULL,
		email      VARCHAR(100) UNIQUE NOT NULL,
		password   VARCHAR(255) NOT NULL,
		role       TEXT NOT NULL DEFAULT 'author'
		           CHECK (role IN ('admin', 'editor', 'author', 'subscriber')),
		created_at TIMESTAMP NOT NULL,
		bio        TEXT,
		avatar     VARCHAR(255)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_status_created ON articles (status, created_at, id)`,
}

// Open connects to the SQLite database at dsn (a file path or a
// "file:name?mode=memory&cache=shared" URI) and creates the tables.
func Open(ctx context.Context, dsn string) (*sqlx.DB, error) {
	if dsn == "" {
		dsn = "antologia.db"
	}

	db, err := sqlx.ConnectContext(ctx, "sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// one writer at a time; shared-cache memory databases lock per table otherwise
	db.SetMaxOpenConns(1)

	// not supported for in-memory databases
	_, _ = db.ExecContext(ctx, `PRAGMA journal_mode=WAL`)

	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout=5000`); err != nil {
		_ = db.Close()
		return nil, err
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}

	return db, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
