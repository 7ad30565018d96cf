package database

import (
	"context"
	"database/sql"
	"fmt"

	"molnet-polls/internal/config"
)

// Migrate creates every table the service needs. Safe to call on every start.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	var stmts []string
	switch driver {
	case config.DriverPostgres:
		stmts = postgresSchema
	case config.DriverSQLite:
		stmts = sqliteSchema
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL DEFAULT 'user',
		is_active     BOOLEAN NOT NULL DEFAULT TRUE,
		created_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS polls (
		id                BIGSERIAL PRIMARY KEY,
		slug              VARCHAR(80) NOT NULL UNIQUE,
		title             VARCHAR(140) NOT NULL UNIQUE,
		description       TEXT NOT NULL DEFAULT '',
		creator_id        BIGINT NOT NULL REFERENCES users(id),
		allow_new_choices BOOLEAN NOT NULL DEFAULT FALSE,
		status            VARCHAR(32) NOT NULL DEFAULT 'DRAFT'
		                  CHECK (status IN ('DRAFT', 'PUBLISHED', 'CLOSED')),
		published_at      TIMESTAMPTZ,
		created_at        TIMESTAMPTZ NOT NULL,
		updated_at        TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_polls_creator ON polls(creator_id)`,
	`CREATE INDEX IF NOT EXISTS idx_polls_status ON polls(status)`,
	`CREATE INDEX IF NOT EXISTS idx_polls_published_at ON polls(published_at)`,
	`CREATE TABLE IF NOT EXISTS choices (
		id         BIGSERIAL PRIMARY KEY,
		poll_id    BIGINT NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
		text       VARCHAR(255) NOT NULL,
		creator_id BIGINT NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL,
		UNIQUE (poll_id, text)
	)`,
	`CREATE TABLE IF NOT EXISTS votes (
		id         BIGSERIAL PRIMARY KEY,
		user_id    BIGINT NOT NULL REFERENCES users(id),
		poll_id    BIGINT NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
		choice_id  BIGINT NOT NULL REFERENCES choices(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		UNIQUE (user_id, poll_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_votes_choice ON votes(choice_id)`,
	`CREATE INDEX IF NOT EXISTS idx_votes_poll ON votes(poll_id)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		email         TEXT NOT NULL UNIQUE,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL DEFAULT 'user',
		is_active     BOOLEAN NOT NULL DEFAULT 1,
		created_at    TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS polls (
		id                INTEGER PRIMARY KEY AUTOINCREMENT,
		slug              TEXT NOT NULL UNIQUE,
		title             TEXT NOT NULL UNIQUE,
		description       TEXT NOT NULL DEFAULT '',
		creator_id        INTEGER NOT NULL REFERENCES users(id),
		allow_new_choices BOOLEAN NOT NULL DEFAULT 0,
		status            TEXT NOT NULL DEFAULT 'DRAFT'
		                  CHECK (status IN ('DRAFT', 'PUBLISHED', 'CLOSED')),
		published_at      TIMESTAMP,
		created_at        TIMESTAMP NOT NULL,
		updated_at        TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_polls_creator ON polls(creator_id)`,
	`CREATE INDEX IF NOT EXISTS idx_polls_status ON polls(status)`,
	`CREATE INDEX IF NOT EXISTS idx_polls_published_at ON polls(published_at)`,
	`CREATE TABLE IF NOT EXISTS choices (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		poll_id    INTEGER NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
		text       TEXT NOT NULL,
		creator_id INTEGER NOT NULL REFERENCES users(id),
		created_at TIMESTAMP NOT NULL,
		UNIQUE (poll_id, text)
	)`,
	`CREATE TABLE IF NOT EXISTS votes (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id    INTEGER NOT NULL REFERENCES users(id),
		poll_id    INTEGER NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
		choice_id  INTEGER NOT NULL REFERENCES choices(id) ON DELETE CASCADE,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		UNIQUE (user_id, poll_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_votes_choice ON votes(choice_id)`,
	`CREATE INDEX IF NOT EXISTS idx_votes_poll ON votes(poll_id)`,
}
