package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var refreshCleanup bool

var refreshCmd = &cobra.Command{
	Use:   "refresh <job-id>",
	Short: "Recompute the match set for one job",
	Long:  `Fetch the job, its hiring criteria and the candidate pool from the job-board API, recompute the ranked match set and install it in the database.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runRefresh,
}

func init() {
	refreshCmd.Flags().BoolVar(&refreshCleanup, "cleanup", false, "Also sweep stale match rows left by crashed refreshes")
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	jobID := args[0]

	cfg, err := loadRuntimeConfig()
	if err != nil {
		return err
	}
	log, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	database, err := connectDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	orchestrator, err := buildOrchestrator(cfg, database, log)
	if err != nil {
		return err
	}

	refreshed, err := orchestrator.RefreshMatches(ctx, jobID)
	if err != nil {
		return fmt.Errorf("refresh failed for job %s: %w", jobID, err)
	}
	if refreshed {
		fmt.Printf("Match set refreshed for job %s\n", jobID)
	} else {
		fmt.Printf("Match set unchanged for job %s (matching disabled or superseded)\n", jobID)
	}

	if refreshCleanup {
		removed, err := orchestrator.Cleanup(ctx, jobID)
		if err != nil {
			return fmt.Errorf("cleanup failed for job %s: %w", jobID, err)
		}
		fmt.Printf("Removed %d stale match rows\n", removed)
	}

	return nil
}
