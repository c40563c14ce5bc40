package db

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		display_name  TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		token      TEXT NOT NULL UNIQUE,
		expires_at TIMESTAMPTZ NOT NULL,
		revoked_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS shot_records (
		id       BIGSERIAL PRIMARY KEY,
		user_id  TEXT NOT NULL,
		date     DATE NOT NULL,
		zone_id  TEXT NOT NULL,
		category TEXT NOT NULL,
		makes    INTEGER NOT NULL CHECK (makes >= 0),
		attempts INTEGER NOT NULL CHECK (attempts >= makes),
		UNIQUE (user_id, date, zone_id)
	)`,
	`CREATE TABLE IF NOT EXISTS user_settings (
		user_id  TEXT PRIMARY KEY,
		goal_pct INTEGER CHECK (goal_pct BETWEEN 0 AND 100)
	)`,
}

// Migrate creates any missing tables. Statements are idempotent.
func Migrate(ctx context.Context, q Querier) error {
	for i, stmt := range schema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
