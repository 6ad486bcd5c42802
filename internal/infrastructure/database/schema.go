package database

import (
	"context"
	"fmt"
	"log"
)

// schemaStatements creates the three tables and the indexes backing the
// search filters. Statements are idempotent (IF NOT EXISTS) so startup can
// run them unconditionally.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		username      VARCHAR(50)  NOT NULL UNIQUE,
		email         VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		is_active     BOOLEAN NOT NULL DEFAULT TRUE,
		is_admin      BOOLEAN NOT NULL DEFAULT FALSE,
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS api_keys (
		id           UUID PRIMARY KEY,
		user_id      UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name         VARCHAR(100) NOT NULL,
		key_hash     VARCHAR(64) NOT NULL UNIQUE,
		key_prefix   VARCHAR(10) NOT NULL,
		is_active    BOOLEAN NOT NULL DEFAULT TRUE,
		last_used_at TIMESTAMPTZ,
		expires_at   TIMESTAMPTZ,
		created_at   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS comics (
		id               UUID PRIMARY KEY,
		title            VARCHAR(500) NOT NULL,
		series           VARCHAR(500),
		alternate_series VARCHAR(500),
		number           VARCHAR(50),
		count            INTEGER,
		volume           INTEGER,
		alternate_number VARCHAR(50),
		alternate_count  INTEGER,
		summary          TEXT,
		notes            TEXT,
		year             INTEGER,
		month            INTEGER,
		day              INTEGER,
		publisher        VARCHAR(255),
		imprint          VARCHAR(255),
		writer           VARCHAR(500),
		penciller        VARCHAR(500),
		inker            VARCHAR(500),
		colorist         VARCHAR(500),
		letterer         VARCHAR(500),
		cover_artist     VARCHAR(500),
		editor           VARCHAR(500),
		translator       VARCHAR(500),
		genre            VARCHAR(500),
		tags             TEXT,
		web              VARCHAR(500),
		age_rating       VARCHAR(50),
		language_iso     VARCHAR(10),
		format           VARCHAR(100),
		is_bw            BOOLEAN,
		manga            VARCHAR(50),
		community_rating DOUBLE PRECISION,
		review           TEXT,
		page_count       INTEGER,
		cover_url        VARCHAR(1000),
		isbn             VARCHAR(20),
		barcode          VARCHAR(50),
		series_group     VARCHAR(500),
		created_by       UUID REFERENCES users(id) ON DELETE SET NULL,
		created_at       TIMESTAMPTZ NOT NULL,
		updated_at       TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS ix_api_keys_user_id ON api_keys (user_id)`,
	`CREATE INDEX IF NOT EXISTS ix_comics_title ON comics (title)`,
	`CREATE INDEX IF NOT EXISTS ix_comics_series ON comics (series)`,
	`CREATE INDEX IF NOT EXISTS ix_comics_year ON comics (year)`,
	`CREATE INDEX IF NOT EXISTS ix_comics_publisher ON comics (publisher)`,
	`CREATE INDEX IF NOT EXISTS ix_comics_language_iso ON comics (language_iso)`,
	`CREATE INDEX IF NOT EXISTS ix_comics_title_series ON comics (title, series)`,
	`CREATE INDEX IF NOT EXISTS ix_comics_year_publisher ON comics (year, publisher)`,
}

// CreateSchema bootstraps the database schema at startup.
func (db *PostgresDB) CreateSchema(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	log.Println("[DATABASE] Ensuring schema...")
	for _, stmt := range schemaStatements {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	log.Println("[DATABASE] Schema ready")
	return nil
}
