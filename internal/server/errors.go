package server

import (
	"errors"
	"net/http"

	"github.com/jumysal/matchpoint/internal/progression"
	"github.com/jumysal/matchpoint/internal/refresh"
	"github.com/jumysal/matchpoint/internal/sources"
)

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var srcErr *sources.Error

	switch {
	case errors.Is(err, refresh.ErrJobNotFound):
		return http.StatusNotFound
	case errors.Is(err, refresh.ErrDataUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, progression.ErrUnknownAction):
		return http.StatusBadRequest
	case errors.As(err, &srcErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage picks the client-facing message for an error. Internal
// failures get a generic message; the detail goes to the log.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, refresh.ErrJobNotFound):
		return "Job not found"
	case errors.Is(err, refresh.ErrDataUnavailable):
		return "Matching data temporarily unavailable"
	case errors.Is(err, progression.ErrUnknownAction):
		return "Unknown action type"
	default:
		return "Internal server error"
	}
}
