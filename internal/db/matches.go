package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jumysal/matchpoint/internal/types"
)

// NextGeneration advances and returns the refresh generation for a job.
// Each refresh attempt claims a generation up front; a slower attempt holding
// an older generation finds a newer one at write time and abandons its result.
func (db *DB) NextGeneration(ctx context.Context, jobID string) (int64, error) {
	var generation int64
	err := db.pool.QueryRow(ctx,
		`INSERT INTO job_match_refresh (job_id, generation)
		 VALUES ($1, 1)
		 ON CONFLICT (job_id) DO UPDATE SET
		     generation = job_match_refresh.generation + 1,
		     updated_at = NOW()
		 RETURNING generation`,
		jobID,
	).Scan(&generation)
	if err != nil {
		return 0, fmt.Errorf("failed to claim refresh generation for job %s: %w", jobID, err)
	}
	return generation, nil
}

// ReplaceAll installs records as the active match set for a job, upserting
// per candidate so retries never duplicate. The write happens in one
// transaction: rows from older generations are removed with it, so a reader
// sees either the full previous set or the full new one. Returns false
// without writing when a newer generation has been claimed since.
func (db *DB) ReplaceAll(ctx context.Context, jobID string, generation int64, records []types.MatchRecord) (bool, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var latest int64
	err = tx.QueryRow(ctx,
		`SELECT generation FROM job_match_refresh WHERE job_id = $1 FOR UPDATE`,
		jobID,
	).Scan(&latest)
	if err != nil {
		return false, fmt.Errorf("failed to read refresh generation for job %s: %w", jobID, err)
	}

	if latest != generation {
		// A newer refresh claimed the job; discard this result rather than
		// resurrect stale data.
		return false, nil
	}

	for _, r := range records {
		_, err = tx.Exec(ctx,
			`INSERT INTO job_matches (id, job_id, candidate_id,
			                          skill_match, experience_match, location_match,
			                          university_match, resume_quality, total_score,
			                          generation, computed_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
			 ON CONFLICT (job_id, candidate_id) DO UPDATE SET
			     skill_match      = $4,
			     experience_match = $5,
			     location_match   = $6,
			     university_match = $7,
			     resume_quality   = $8,
			     total_score      = $9,
			     generation       = $10,
			     computed_at      = NOW()`,
			uuid.New(), jobID, r.CandidateID,
			r.Breakdown.SkillMatch, r.Breakdown.ExperienceMatch, r.Breakdown.LocationMatch,
			r.Breakdown.UniversityMatch, r.Breakdown.ResumeQuality, r.TotalScore,
			generation,
		)
		if err != nil {
			return false, fmt.Errorf("failed to upsert match for candidate %s: %w", r.CandidateID, err)
		}
	}

	// Candidates dropped from the new set keep their old generation; remove
	// them with the same commit.
	_, err = tx.Exec(ctx,
		`DELETE FROM job_matches WHERE job_id = $1 AND generation < $2`,
		jobID, generation,
	)
	if err != nil {
		return false, fmt.Errorf("failed to remove superseded matches: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit match set: %w", err)
	}
	return true, nil
}

// GetActive returns the match set of the newest written generation for a
// job, ordered by score descending and candidate ID ascending. A job with no
// matches yields an empty slice.
func (db *DB) GetActive(ctx context.Context, jobID string) ([]types.MatchRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT job_id, candidate_id, skill_match, experience_match, location_match,
		        university_match, resume_quality, total_score, generation, computed_at
		 FROM job_matches
		 WHERE job_id = $1
		   AND generation = (SELECT MAX(generation) FROM job_matches WHERE job_id = $1)
		 ORDER BY total_score DESC, candidate_id ASC`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get matches for job %s: %w", jobID, err)
	}
	defer rows.Close()

	var records []types.MatchRecord
	for rows.Next() {
		var r types.MatchRecord
		if err := rows.Scan(&r.JobID, &r.CandidateID,
			&r.Breakdown.SkillMatch, &r.Breakdown.ExperienceMatch, &r.Breakdown.LocationMatch,
			&r.Breakdown.UniversityMatch, &r.Breakdown.ResumeQuality, &r.TotalScore,
			&r.Generation, &r.ComputedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// DeleteStale removes rows left behind by refresh attempts that never
// completed, keeping only the newest generation. ReplaceAll already cleans
// up within its transaction; this is the asynchronous sweep for crashed
// writers.
func (db *DB) DeleteStale(ctx context.Context, jobID string) (int64, error) {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM job_matches
		 WHERE job_id = $1
		   AND generation < (SELECT COALESCE(MAX(generation), 0) FROM job_matches WHERE job_id = $1)`,
		jobID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale matches for job %s: %w", jobID, err)
	}
	return result.RowsAffected(), nil
}

// LatestGeneration reports the current claimed generation for a job, zero
// when the job has never been refreshed.
func (db *DB) LatestGeneration(ctx context.Context, jobID string) (int64, error) {
	var generation int64
	err := db.pool.QueryRow(ctx,
		`SELECT generation FROM job_match_refresh WHERE job_id = $1`,
		jobID,
	).Scan(&generation)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get refresh generation for job %s: %w", jobID, err)
	}
	return generation, nil
}
