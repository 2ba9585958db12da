package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jumysal/matchpoint/internal/ranking"
	ischemas "github.com/jumysal/matchpoint/internal/schemas"
	"github.com/jumysal/matchpoint/internal/types"
	"github.com/jumysal/matchpoint/schemas"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank a candidate pool against hiring criteria",
	Long:  "Deterministically ranks a candidate pool file against a hiring criteria file and writes the top matches as JSON, without touching the database.",
	RunE:  runRank,
}

var (
	rankCriteria   string
	rankCandidates string
	rankOutput     string
)

func init() {
	rankCmd.Flags().StringVarP(&rankCriteria, "criteria", "c", "", "Path to input JobCriteria JSON file (required)")
	rankCmd.Flags().StringVarP(&rankCandidates, "candidates", "p", "", "Path to input candidate pool JSON file (required)")
	rankCmd.Flags().StringVarP(&rankOutput, "out", "o", "", "Path to output JSON file (default: stdout)")

	if err := rankCmd.MarkFlagRequired("criteria"); err != nil {
		panic(fmt.Sprintf("failed to mark criteria flag as required: %v", err))
	}
	if err := rankCmd.MarkFlagRequired("candidates"); err != nil {
		panic(fmt.Sprintf("failed to mark candidates flag as required: %v", err))
	}

	rootCmd.AddCommand(rankCmd)
}

type candidatePoolFile struct {
	Candidates []types.CandidateProfile `json:"candidates"`
}

func runRank(_ *cobra.Command, _ []string) error {
	// 1. Load and validate criteria
	criteriaContent, err := os.ReadFile(rankCriteria)
	if err != nil {
		return fmt.Errorf("failed to read criteria file %s: %w", rankCriteria, err)
	}
	if err := ischemas.ValidateJSONString(schemas.JobCriteria, string(criteriaContent)); err != nil {
		return fmt.Errorf("criteria file failed schema validation: %w", err)
	}

	var criteria types.JobCriteria
	if err := json.Unmarshal(criteriaContent, &criteria); err != nil {
		return fmt.Errorf("failed to unmarshal criteria JSON: %w", err)
	}
	criteria.Normalize()

	// 2. Load and validate candidate pool
	poolContent, err := os.ReadFile(rankCandidates)
	if err != nil {
		return fmt.Errorf("failed to read candidate pool file %s: %w", rankCandidates, err)
	}
	if err := ischemas.ValidateJSONString(schemas.CandidatePool, string(poolContent)); err != nil {
		return fmt.Errorf("candidate pool file failed schema validation: %w", err)
	}

	var pool candidatePoolFile
	if err := json.Unmarshal(poolContent, &pool); err != nil {
		return fmt.Errorf("failed to unmarshal candidate pool JSON: %w", err)
	}

	candidates := make([]types.CandidateProfile, 0, len(pool.Candidates))
	for _, candidate := range pool.Candidates {
		candidate.Normalize()
		if err := candidate.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping invalid candidate %q: %v\n", candidate.ID, err)
			continue
		}
		candidates = append(candidates, candidate)
	}

	// 3. Rank
	ranked := ranking.Rank(criteria, candidates)

	jsonOutput, err := json.MarshalIndent(ranked, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal ranked matches to JSON: %w", err)
	}
	jsonOutput = append(jsonOutput, '\n')

	// 4. Write result
	if rankOutput == "" {
		_, err = os.Stdout.Write(jsonOutput)
		return err
	}

	outputDir := filepath.Dir(rankOutput)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}
	if err := os.WriteFile(rankOutput, jsonOutput, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", rankOutput, err)
	}

	fmt.Fprintf(os.Stdout, "Ranked %d candidates, wrote %d matches to %s\n", len(candidates), len(ranked), rankOutput)
	return nil
}
