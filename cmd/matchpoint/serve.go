package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jumysal/matchpoint/internal/progression"
	"github.com/jumysal/matchpoint/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes match refresh, match listing, award and progression endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadRuntimeConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	log, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	database, err := connectDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	orchestrator, err := buildOrchestrator(cfg, database, log)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		Port:    cfg.Port,
		Matches: orchestrator,
		Ledger:  progression.NewLedger(database.Progression()),
		DB:      database,
		Logger:  log,
	})

	return srv.Start()
}
