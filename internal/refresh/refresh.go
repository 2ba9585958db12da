// Package refresh recomputes a job's ranked match set: it pulls the job and
// its hiring criteria, fetches the candidate pool, ranks, and installs the
// result behind a per-job generation stamp so concurrent refreshes cannot
// interleave.
package refresh

import (
	"context"
	"errors"

	"github.com/jumysal/matchpoint/internal/types"
)

// ErrJobNotFound indicates the job does not exist at the collaborator.
var ErrJobNotFound = errors.New("job not found")

// ErrDataUnavailable indicates a collaborator fetch failed or timed out
// after retries. A refresh failing this way leaves the previously active
// match set untouched.
var ErrDataUnavailable = errors.New("data unavailable")

// JobSource supplies the matching feature flag for a job.
type JobSource interface {
	Job(ctx context.Context, jobID string) (*types.Job, error)
}

// CriteriaSource supplies a job's hiring criteria, read once per run.
type CriteriaSource interface {
	Criteria(ctx context.Context, jobID string) (*types.JobCriteria, error)
}

// ProfileSource supplies the candidate pool snapshot for a ranking run.
type ProfileSource interface {
	Candidates(ctx context.Context) ([]types.CandidateProfile, error)
}

// MatchRepository is the persistence boundary for ranked sets. ReplaceAll
// reports written=false when the given generation has been superseded by a
// newer claim, in which case nothing was persisted.
type MatchRepository interface {
	NextGeneration(ctx context.Context, jobID string) (int64, error)
	ReplaceAll(ctx context.Context, jobID string, generation int64, records []types.MatchRecord) (bool, error)
	GetActive(ctx context.Context, jobID string) ([]types.MatchRecord, error)
	DeleteStale(ctx context.Context, jobID string) (int64, error)
}
