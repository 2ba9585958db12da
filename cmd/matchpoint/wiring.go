package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jumysal/matchpoint/internal/config"
	"github.com/jumysal/matchpoint/internal/db"
	"github.com/jumysal/matchpoint/internal/logger"
	"github.com/jumysal/matchpoint/internal/refresh"
	"github.com/jumysal/matchpoint/internal/sources"
)

// loadRuntimeConfig builds the effective config: JSON file (if given),
// then environment, then defaults.
func loadRuntimeConfig() (config.Config, error) {
	cfg := &config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	cfg.FromEnv()

	merged := cfg.MergeWithDefaults(config.Defaults())
	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

func buildLogger(cfg config.Config) (*zap.Logger, error) {
	log, err := logger.New(cfg.LogJSON, cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return log, nil
}

func connectDB(ctx context.Context, cfg config.Config) (*db.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return database, nil
}

// buildOrchestrator wires the refresh flow: job-board API client as all
// three collaborator sources, the database as the match repository.
func buildOrchestrator(cfg config.Config, database *db.DB, log *zap.Logger) (*refresh.Orchestrator, error) {
	if cfg.JobBoardURL == "" {
		return nil, fmt.Errorf("JOB_BOARD_URL environment variable is required")
	}

	client := sources.NewClient(cfg.JobBoardURL, time.Duration(cfg.FetchTimeoutSeconds)*time.Second, log)

	retry := refresh.DefaultRetryPolicy()
	retry.MaxAttempts = cfg.RetryAttempts
	retry.AttemptTimeout = time.Duration(cfg.FetchTimeoutSeconds) * time.Second

	return refresh.New(refresh.Config{
		Jobs:     client,
		Criteria: client,
		Profiles: client,
		Repo:     database,
		Retry:    retry,
		Logger:   log,
	}), nil
}
