package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jumysal/matchpoint/internal/progression"
)

var awardCmd = &cobra.Command{
	Use:   "award <actor-id> <action>",
	Short: "Credit an actor for one completed action",
	Long:  `Apply one award to an actor's progression ledger. Actions: registration, apply, chat, complete_work, profile_like, profile_update, save_post.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runAward,
}

func init() {
	rootCmd.AddCommand(awardCmd)
}

func runAward(cmd *cobra.Command, args []string) error {
	actorID, actionStr := args[0], args[1]

	action, err := progression.ParseActionType(actionStr)
	if err != nil {
		return fmt.Errorf("invalid action %q: %w", actionStr, err)
	}

	cfg, err := loadRuntimeConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	database, err := connectDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	ledger := progression.NewLedger(database.Progression())
	result, err := ledger.Award(ctx, actorID, action)
	if err != nil {
		return fmt.Errorf("award failed: %w", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}
