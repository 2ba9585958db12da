// Package server provides the HTTP API for match refreshes and the
// progression ledger.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jumysal/matchpoint/internal/progression"
	"github.com/jumysal/matchpoint/internal/server/ratelimit"
	"github.com/jumysal/matchpoint/internal/types"
)

// MatchService is the slice of the refresh orchestrator the handlers need.
type MatchService interface {
	RefreshMatches(ctx context.Context, jobID string) (bool, error)
	Matches(ctx context.Context, jobID string) ([]types.MatchRecord, error)
}

// Pinger reports storage liveness for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config holds the wired dependencies and listen settings.
type Config struct {
	Port    int
	Matches MatchService
	Ledger  *progression.Ledger
	DB      Pinger
	Logger  *zap.Logger
}

// Server represents the HTTP server.
type Server struct {
	httpServer  *http.Server
	matches     MatchService
	ledger      *progression.Ledger
	db          Pinger
	rateLimiter *ratelimit.Limiter
	logger      *zap.Logger
}

// New creates a new server instance.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		matches:     cfg.Matches,
		ledger:      cfg.Ledger,
		db:          cfg.DB,
		rateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig()),
		logger:      logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /jobs/{id}/matches/refresh",
		s.withRateLimit("POST /jobs/{id}/matches/refresh", s.handleRefreshMatches))
	mux.HandleFunc("GET /jobs/{id}/matches", s.handleGetMatches)
	mux.HandleFunc("POST /actors/{id}/awards",
		s.withRateLimit("POST /actors/{id}/awards", s.handleAward))
	mux.HandleFunc("GET /actors/{id}/progression", s.handleGetProgression)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // refreshes may retry slow collaborators
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler exposes the routed handler stack, used by tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests and blocks until SIGINT/SIGTERM,
// then shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-stop
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.rateLimiter.Stop()
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers for the job-board frontend.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging attaches a request ID and logs each request with its latency.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r)

		s.logger.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}

// withRateLimit throttles a single write route per client.
func (s *Server) withRateLimit(pattern string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)
		allowed, info := s.rateLimiter.Allow(clientID, pattern)

		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		}

		if !allowed {
			if info.RetryAfter > 0 {
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
			}
			s.logger.Warn("rate limit exceeded",
				zap.String("client", clientID),
				zap.String("route", pattern))
			s.errorResponse(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			return
		}

		next(w, r)
	}
}

// handleHealth reports server and storage liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{
				"status":   "degraded",
				"database": err.Error(),
			})
			return
		}
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID identifies the client by IP for rate limiting.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
