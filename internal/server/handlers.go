package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/jumysal/matchpoint/internal/progression"
	"github.com/jumysal/matchpoint/internal/types"
)

// ---------------------------------------------------------------------
// Match Handlers
// ---------------------------------------------------------------------

// RefreshResponse reports whether a refresh call replaced the active set.
// Refreshed is false when matching is disabled for the job or when a newer
// refresh superseded this one.
type RefreshResponse struct {
	JobID     string `json:"job_id"`
	Refreshed bool   `json:"refreshed"`
}

func (s *Server) handleRefreshMatches(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	if jobID == "" {
		s.errorResponse(w, http.StatusBadRequest, "Job ID is required")
		return
	}

	refreshed, err := s.matches.RefreshMatches(r.Context(), jobID)
	if err != nil {
		s.logger.Error("match refresh failed", zap.String("job_id", jobID), zap.Error(err))
		s.errorResponse(w, HTTPStatus(err), errorMessage(err))
		return
	}

	s.jsonResponse(w, http.StatusOK, RefreshResponse{JobID: jobID, Refreshed: refreshed})
}

// MatchesResponse is the active ranked match set for a job.
type MatchesResponse struct {
	JobID   string              `json:"job_id"`
	Count   int                 `json:"count"`
	Matches []types.MatchRecord `json:"matches"`
}

func (s *Server) handleGetMatches(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	if jobID == "" {
		s.errorResponse(w, http.StatusBadRequest, "Job ID is required")
		return
	}

	matches, err := s.matches.Matches(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), errorMessage(err))
		return
	}
	if matches == nil {
		matches = []types.MatchRecord{}
	}

	s.jsonResponse(w, http.StatusOK, MatchesResponse{
		JobID:   jobID,
		Count:   len(matches),
		Matches: matches,
	})
}

// ---------------------------------------------------------------------
// Progression Handlers
// ---------------------------------------------------------------------

type AwardRequest struct {
	Action string `json:"action"`
}

func (s *Server) handleAward(w http.ResponseWriter, r *http.Request) {
	actorID := r.PathValue("id")
	if actorID == "" {
		s.errorResponse(w, http.StatusBadRequest, "Actor ID is required")
		return
	}

	var req AwardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	action, err := progression.ParseActionType(req.Action)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, errorMessage(err))
		return
	}

	result, err := s.ledger.Award(r.Context(), actorID, action)
	if err != nil {
		s.logger.Error("award failed",
			zap.String("actor_id", actorID),
			zap.String("action", req.Action),
			zap.Error(err))
		s.errorResponse(w, HTTPStatus(err), errorMessage(err))
		return
	}

	// A capped action still answers 200; success=false carries the outcome.
	s.jsonResponse(w, http.StatusOK, result)
}

// ProgressionResponse is an actor's current standing.
type ProgressionResponse struct {
	ActorID string `json:"actor_id"`
	Points  int    `json:"points"`
	TotalXP int    `json:"total_xp"`
	Level   int    `json:"level"`
	Title   string `json:"title,omitempty"`
}

func (s *Server) handleGetProgression(w http.ResponseWriter, r *http.Request) {
	actorID := r.PathValue("id")
	if actorID == "" {
		s.errorResponse(w, http.StatusBadRequest, "Actor ID is required")
		return
	}

	state, err := s.ledger.Progression(r.Context(), actorID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), errorMessage(err))
		return
	}

	s.jsonResponse(w, http.StatusOK, ProgressionResponse{
		ActorID: actorID,
		Points:  state.Points,
		TotalXP: state.TotalXP,
		Level:   state.Level,
		Title:   progression.TitleFor(state.Level),
	})
}
