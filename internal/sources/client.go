// Package sources implements the collaborator clients the refresh flow
// reads from: the job-board application's internal HTTP API supplying jobs,
// hiring criteria and the candidate pool. Responses are schema-validated
// before decoding so malformed documents never reach the scoring core.
package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jumysal/matchpoint/internal/refresh"
	ischemas "github.com/jumysal/matchpoint/internal/schemas"
	"github.com/jumysal/matchpoint/internal/types"
	"github.com/jumysal/matchpoint/schemas"
)

// DefaultTimeout is the HTTP client timeout when none is configured.
const DefaultTimeout = 15 * time.Second

// Error represents a failure talking to the job-board API.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("source error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("source error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Client talks to the job-board application's internal API. It implements
// the refresh package's JobSource, CriteriaSource and ProfileSource.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient creates a collaborator client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Job fetches a job's matching flag. A 404 maps to refresh.ErrJobNotFound.
func (c *Client) Job(ctx context.Context, jobID string) (*types.Job, error) {
	body, status, err := c.get(ctx, "/internal/jobs/"+url.PathEscape(jobID))
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, fmt.Errorf("job %s: %w", jobID, refresh.ErrJobNotFound)
	}

	if err := ischemas.ValidateJSONString(schemas.Job, string(body)); err != nil {
		return nil, &Error{URL: c.baseURL, Message: "job document failed schema validation", Cause: err}
	}

	var job types.Job
	if err := json.Unmarshal(body, &job); err != nil {
		return nil, &Error{URL: c.baseURL, Message: "failed to decode job document", Cause: err}
	}
	if err := job.Validate(); err != nil {
		return nil, &Error{URL: c.baseURL, Message: "invalid job document", Cause: err}
	}
	return &job, nil
}

// Criteria fetches a job's hiring criteria. Tolerated malformations
// (negative minimums, missing sets) are normalized, not rejected.
func (c *Client) Criteria(ctx context.Context, jobID string) (*types.JobCriteria, error) {
	body, status, err := c.get(ctx, "/internal/jobs/"+url.PathEscape(jobID)+"/criteria")
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, fmt.Errorf("criteria for job %s: %w", jobID, refresh.ErrJobNotFound)
	}

	if err := ischemas.ValidateJSONString(schemas.JobCriteria, string(body)); err != nil {
		return nil, &Error{URL: c.baseURL, Message: "criteria document failed schema validation", Cause: err}
	}

	var criteria types.JobCriteria
	if err := json.Unmarshal(body, &criteria); err != nil {
		return nil, &Error{URL: c.baseURL, Message: "failed to decode criteria document", Cause: err}
	}
	criteria.Normalize()
	return &criteria, nil
}

// candidatePool is the wire envelope for the candidate pool document.
type candidatePool struct {
	Candidates []types.CandidateProfile `json:"candidates"`
}

// Candidates fetches the current candidate pool snapshot. Entries failing
// structural validation are skipped with a warning rather than failing the
// whole pool.
func (c *Client) Candidates(ctx context.Context) ([]types.CandidateProfile, error) {
	body, status, err := c.get(ctx, "/internal/candidates")
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, &Error{URL: c.baseURL, Message: "candidate pool endpoint missing"}
	}

	if err := ischemas.ValidateJSONString(schemas.CandidatePool, string(body)); err != nil {
		return nil, &Error{URL: c.baseURL, Message: "candidate pool failed schema validation", Cause: err}
	}

	var pool candidatePool
	if err := json.Unmarshal(body, &pool); err != nil {
		return nil, &Error{URL: c.baseURL, Message: "failed to decode candidate pool", Cause: err}
	}

	candidates := make([]types.CandidateProfile, 0, len(pool.Candidates))
	for _, candidate := range pool.Candidates {
		candidate.Normalize()
		if err := candidate.Validate(); err != nil {
			c.logger.Warn("skipping invalid candidate profile",
				zap.String("candidate_id", candidate.ID),
				zap.Error(err))
			continue
		}
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}

// get performs a GET request and returns the body and status. Transport
// failures and 5xx responses are errors; 404 is returned to the caller to
// map to its domain meaning.
func (c *Client) get(ctx context.Context, path string) ([]byte, int, error) {
	requestURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, 0, &Error{URL: requestURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, &Error{URL: requestURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, &Error{URL: requestURL, Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		return nil, resp.StatusCode, &Error{
			URL:     requestURL,
			Message: fmt.Sprintf("unexpected status %d", resp.StatusCode),
		}
	}
	return body, resp.StatusCode, nil
}
