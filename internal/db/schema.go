package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Tables are created idempotently at startup; there is no migration history.
// Enumerations mirror the role and status sets of the domain packages.
var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS articles (
		id               BIGSERIAL PRIMARY KEY,
		title            VARCHAR(255) NOT NULL,
		content          TEXT NOT NULL,
		author_id        BIGINT NOT NULL,
		category_id      BIGINT,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		status           VARCHAR(16) NOT NULL DEFAULT 'draft'
		                 CHECK (status IN ('draft', 'published', 'archived')),
		slug             VARCHAR(255) UNIQUE,
		meta_description VARCHAR(255),
		featured_image   VARCHAR(255)
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id          BIGSERIAL PRIMARY KEY,
		name        VARCHAR(100) NOT NULL,
		description TEXT,
		slug        VARCHAR(100) UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id         BIGSERIAL PRIMARY KEY,
		username   VARCHAR(50) UNIQUE NOT NULL,
		email      VARCHAR(100) UNIQUE NOT NULL,
		password   VARCHAR(255) NOT NULL,
		role       VARCHAR(16) NOT NULL DEFAULT 'author'
		           CHECK (role IN ('admin', 'editor', 'author', 'subscriber')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		bio        TEXT,
		avatar     VARCHAR(255)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_status_created ON articles (status, created_at DESC, id DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_category ON articles (category_id)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_author ON articles (author_id)`,
}

func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range postgresSchema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
