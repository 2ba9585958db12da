// Package db provides PostgreSQL persistence for ranked match sets and the
// actor progression ledger. All per-key serialization (per job, per actor)
// happens here through transactions and row locks, never in-process, since
// writers may live in independent processes.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping verifies the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Migrate creates the match and progression tables if they do not exist.
func (db *DB) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS job_match_refresh (
			job_id     TEXT PRIMARY KEY,
			generation BIGINT NOT NULL DEFAULT 0,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS job_matches (
			id               UUID PRIMARY KEY,
			job_id           TEXT NOT NULL,
			candidate_id     TEXT NOT NULL,
			skill_match      DOUBLE PRECISION NOT NULL,
			experience_match DOUBLE PRECISION NOT NULL,
			location_match   DOUBLE PRECISION NOT NULL,
			university_match DOUBLE PRECISION NOT NULL,
			resume_quality   DOUBLE PRECISION NOT NULL,
			total_score      DOUBLE PRECISION NOT NULL,
			generation       BIGINT NOT NULL,
			computed_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (job_id, candidate_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_job_matches_job_generation
			ON job_matches (job_id, generation)`,
		`CREATE TABLE IF NOT EXISTS actor_progression (
			actor_id    TEXT PRIMARY KEY,
			points      INTEGER NOT NULL DEFAULT 0,
			total_xp    INTEGER NOT NULL DEFAULT 0,
			level       INTEGER NOT NULL DEFAULT 0,
			last_earned JSONB NOT NULL DEFAULT '{}'::jsonb,
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}
