package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jumysal/matchpoint/internal/types"
)

// ProgressionStore adapts the DB to the ledger's Store interface. Per-actor
// atomicity comes from a SELECT ... FOR UPDATE row lock inside one
// transaction, so concurrent awards for the same actor serialize at the
// database and no increment is lost.
type ProgressionStore struct {
	db *DB
}

// Progression returns the ledger store backed by this database.
func (db *DB) Progression() *ProgressionStore {
	return &ProgressionStore{db: db}
}

// Update runs fn against the actor's current state under a row lock,
// creating the row on first award. The state is written back only when fn
// asks for it.
func (s *ProgressionStore) Update(ctx context.Context, actorID string, fn func(*types.ProgressionState) (bool, error)) error {
	tx, err := s.db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO actor_progression (actor_id) VALUES ($1)
		 ON CONFLICT (actor_id) DO NOTHING`,
		actorID,
	)
	if err != nil {
		return fmt.Errorf("failed to ensure progression row for actor %s: %w", actorID, err)
	}

	state := types.ProgressionState{ActorID: actorID}
	var lastEarnedJSON []byte
	err = tx.QueryRow(ctx,
		`SELECT points, total_xp, level, last_earned
		 FROM actor_progression WHERE actor_id = $1 FOR UPDATE`,
		actorID,
	).Scan(&state.Points, &state.TotalXP, &state.Level, &lastEarnedJSON)
	if err != nil {
		return fmt.Errorf("failed to lock progression row for actor %s: %w", actorID, err)
	}
	if err := json.Unmarshal(lastEarnedJSON, &state.LastEarned); err != nil {
		return fmt.Errorf("failed to decode daily counters for actor %s: %w", actorID, err)
	}

	persist, err := fn(&state)
	if err != nil {
		return err
	}

	if persist {
		encoded, err := json.Marshal(state.LastEarned)
		if err != nil {
			return fmt.Errorf("failed to encode daily counters: %w", err)
		}
		_, err = tx.Exec(ctx,
			`UPDATE actor_progression
			 SET points = $2, total_xp = $3, level = $4, last_earned = $5, updated_at = NOW()
			 WHERE actor_id = $1`,
			actorID, state.Points, state.TotalXP, state.Level, encoded,
		)
		if err != nil {
			return fmt.Errorf("failed to update progression for actor %s: %w", actorID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit progression update: %w", err)
	}
	return nil
}

// Get returns the actor's current state, zero if the actor has never earned.
func (s *ProgressionStore) Get(ctx context.Context, actorID string) (types.ProgressionState, error) {
	state := types.ProgressionState{ActorID: actorID, LastEarned: map[string]types.DailyCount{}}
	var lastEarnedJSON []byte

	err := s.db.pool.QueryRow(ctx,
		`SELECT points, total_xp, level, last_earned
		 FROM actor_progression WHERE actor_id = $1`,
		actorID,
	).Scan(&state.Points, &state.TotalXP, &state.Level, &lastEarnedJSON)
	if err != nil {
		if err == pgx.ErrNoRows {
			return state, nil
		}
		return state, fmt.Errorf("failed to get progression for actor %s: %w", actorID, err)
	}

	if err := json.Unmarshal(lastEarnedJSON, &state.LastEarned); err != nil {
		return state, fmt.Errorf("failed to decode daily counters for actor %s: %w", actorID, err)
	}
	return state, nil
}
