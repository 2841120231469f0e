package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate creates the schema if it does not exist. The unique indexes and
// cascade rules here are load-bearing: the application-level guards and
// uniqueness pre-checks sit in front of them, but the database constraints
// are the final authority when concurrent writers race past a pre-check.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sports (
			id          BIGSERIAL PRIMARY KEY,
			type        TEXT NOT NULL,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS sports_name_type_uniq
			ON sports (name, type)`,

		`CREATE TABLE IF NOT EXISTS users (
			id            BIGSERIAL PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			name          TEXT NOT NULL,
			surname       TEXT NOT NULL,
			role          TEXT NOT NULL DEFAULT 'USER',
			password_hash TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS classes (
			id          BIGSERIAL PRIMARY KEY,
			description TEXT NOT NULL,
			duration    INT NOT NULL,
			capacity    INT NOT NULL,
			sport_id    BIGINT NOT NULL REFERENCES sports (id),
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS schedules (
			id         BIGSERIAL PRIMARY KEY,
			date       DATE NOT NULL,
			start_time TEXT NOT NULL,
			end_time   TEXT NOT NULL,
			class_id   BIGINT NOT NULL REFERENCES classes (id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS schedules_slot_uniq
			ON schedules (date, start_time, end_time, class_id)`,

		`CREATE TABLE IF NOT EXISTS applications (
			id         BIGSERIAL PRIMARY KEY,
			user_id    BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
			class_id   BIGINT NOT NULL REFERENCES classes (id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS applications_user_class_uniq
			ON applications (user_id, class_id)`,

		`CREATE INDEX IF NOT EXISTS schedules_class_idx ON schedules (class_id)`,
		`CREATE INDEX IF NOT EXISTS applications_class_idx ON applications (class_id)`,
		`CREATE INDEX IF NOT EXISTS classes_sport_idx ON classes (sport_id)`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate schema: %w", err)
		}
	}
	return nil
}
