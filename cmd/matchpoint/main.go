// Package main provides the entry point for the matchpoint service: the
// candidate-matching and progression backend for the JumysAl job board.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "matchpoint",
	Short: "JumysAl matching and progression service",
	Long:  "Matchpoint ranks candidates against job hiring criteria and maintains the per-user points and level ledger for the JumysAl job board.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
