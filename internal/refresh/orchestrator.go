package refresh

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jumysal/matchpoint/internal/ranking"
	"github.com/jumysal/matchpoint/internal/types"
)

// Config wires an Orchestrator's collaborators.
type Config struct {
	Jobs     JobSource
	Criteria CriteriaSource
	Profiles ProfileSource
	Repo     MatchRepository
	Retry    RetryPolicy
	Logger   *zap.Logger
}

// Orchestrator runs the refresh flow for one job at a time per call.
// Instances are safe for concurrent use; all per-job serialization happens
// at the repository through generation stamps.
type Orchestrator struct {
	jobs     JobSource
	criteria CriteriaSource
	profiles ProfileSource
	repo     MatchRepository
	retry    RetryPolicy
	logger   *zap.Logger
}

// New creates an orchestrator, applying the default retry policy and a
// no-op logger where the config leaves them unset.
func New(cfg Config) *Orchestrator {
	retry := cfg.Retry
	if retry.MaxAttempts == 0 {
		retry = DefaultRetryPolicy()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		jobs:     cfg.Jobs,
		criteria: cfg.Criteria,
		profiles: cfg.Profiles,
		repo:     cfg.Repo,
		retry:    retry,
		logger:   logger,
	}
}

// RefreshMatches recomputes and installs the ranked match set for a job.
// It returns (false, nil) when matching is disabled for the job or when a
// newer refresh superseded this one, and (false, err) when the job is
// unknown or collaborator data was unavailable. In every non-success case
// the previously active match set is left intact.
func (o *Orchestrator) RefreshMatches(ctx context.Context, jobID string) (bool, error) {
	job, err := o.fetchJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, ErrJobNotFound) {
			return false, err
		}
		return false, fmt.Errorf("%w: job %s: %v", ErrDataUnavailable, jobID, err)
	}

	if !job.MatchingEnabled {
		o.logger.Debug("matching disabled, skipping refresh", zap.String("job_id", jobID))
		return false, nil
	}

	// Claim the generation before fetching: last-started wins, not
	// last-completed, so a slow stale refresh cannot overwrite a fresh one.
	generation, err := o.repo.NextGeneration(ctx, jobID)
	if err != nil {
		return false, err
	}

	var criteria *types.JobCriteria
	var candidates []types.CandidateProfile

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := o.fetchCriteria(gctx, jobID)
		if err != nil {
			return fmt.Errorf("criteria for job %s: %w", jobID, err)
		}
		criteria = c
		return nil
	})
	g.Go(func() error {
		pool, err := o.fetchCandidates(gctx)
		if err != nil {
			return fmt.Errorf("candidate pool: %w", err)
		}
		candidates = pool
		return nil
	})
	if err := g.Wait(); err != nil {
		return false, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	ranked := ranking.Rank(*criteria, candidates)

	written, err := o.repo.ReplaceAll(ctx, jobID, generation, ranked)
	if err != nil {
		return false, err
	}
	if !written {
		o.logger.Info("refresh superseded by a newer run, result discarded",
			zap.String("job_id", jobID),
			zap.Int64("generation", generation))
		return false, nil
	}

	o.logger.Info("match set refreshed",
		zap.String("job_id", jobID),
		zap.Int64("generation", generation),
		zap.Int("pool_size", len(candidates)),
		zap.Int("matches", len(ranked)))
	return true, nil
}

// Matches returns the active ranked set for a job. A refresh that failed
// after matches existed leaves the last known set visible here.
func (o *Orchestrator) Matches(ctx context.Context, jobID string) ([]types.MatchRecord, error) {
	return o.repo.GetActive(ctx, jobID)
}

// Cleanup sweeps stale-generation rows left behind by crashed refreshes.
func (o *Orchestrator) Cleanup(ctx context.Context, jobID string) (int64, error) {
	removed, err := o.repo.DeleteStale(ctx, jobID)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		o.logger.Info("removed stale match rows",
			zap.String("job_id", jobID),
			zap.Int64("removed", removed))
	}
	return removed, nil
}

func (o *Orchestrator) fetchJob(ctx context.Context, jobID string) (*types.Job, error) {
	var job *types.Job
	var notFound error
	err := o.retry.Do(ctx, func(ctx context.Context) error {
		j, err := o.jobs.Job(ctx, jobID)
		if errors.Is(err, ErrJobNotFound) {
			// A missing job will not appear on retry.
			notFound = err
			return nil
		}
		if err != nil {
			return err
		}
		job = j
		return nil
	})
	if err != nil {
		return nil, err
	}
	if notFound != nil {
		return nil, notFound
	}
	return job, nil
}

func (o *Orchestrator) fetchCriteria(ctx context.Context, jobID string) (*types.JobCriteria, error) {
	var criteria *types.JobCriteria
	err := o.retry.Do(ctx, func(ctx context.Context) error {
		c, err := o.criteria.Criteria(ctx, jobID)
		if err != nil {
			return err
		}
		criteria = c
		return nil
	})
	return criteria, err
}

func (o *Orchestrator) fetchCandidates(ctx context.Context) ([]types.CandidateProfile, error) {
	var candidates []types.CandidateProfile
	err := o.retry.Do(ctx, func(ctx context.Context) error {
		pool, err := o.profiles.Candidates(ctx)
		if err != nil {
			return err
		}
		candidates = pool
		return nil
	})
	return candidates, err
}
