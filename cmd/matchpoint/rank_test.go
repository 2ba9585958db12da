package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jumysal/matchpoint/internal/types"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRankCommand_ValidInput(t *testing.T) {
	dir := t.TempDir()

	criteriaPath := writeFile(t, dir, "criteria.json", `{
		"required_skills": ["Go", "SQL"],
		"min_experience": 2,
		"location": "Almaty",
		"preferred_universities": []
	}`)
	candidatesPath := writeFile(t, dir, "candidates.json", `{
		"candidates": [
			{"id": "cand-1", "skills": ["Go", "SQL"], "years_of_experience": 3, "location": "Almaty", "has_structured_resume": true},
			{"id": "cand-2", "skills": ["Go"], "years_of_experience": 1, "location": "Astana"}
		]
	}`)
	outPath := filepath.Join(dir, "out", "matches.json")

	rankCriteria = criteriaPath
	rankCandidates = candidatesPath
	rankOutput = outPath

	require.NoError(t, runRank(rankCmd, nil))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var matches []types.MatchRecord
	require.NoError(t, json.Unmarshal(data, &matches))
	require.Len(t, matches, 2)
	assert.Equal(t, "cand-1", matches[0].CandidateID)
	assert.Greater(t, matches[0].TotalScore, matches[1].TotalScore)
}

func TestRankCommand_SkipsInvalidCandidates(t *testing.T) {
	dir := t.TempDir()

	criteriaPath := writeFile(t, dir, "criteria.json", `{
		"required_skills": ["Go"],
		"min_experience": 0,
		"location": "Almaty",
		"preferred_universities": []
	}`)
	candidatesPath := writeFile(t, dir, "candidates.json", `{
		"candidates": [
			{"id": "", "skills": ["Go"]},
			{"id": "cand-1", "skills": ["Go"]}
		]
	}`)
	outPath := filepath.Join(dir, "matches.json")

	rankCriteria = criteriaPath
	rankCandidates = candidatesPath
	rankOutput = outPath

	require.NoError(t, runRank(rankCmd, nil))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var matches []types.MatchRecord
	require.NoError(t, json.Unmarshal(data, &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, "cand-1", matches[0].CandidateID)
}

func TestRankCommand_CriteriaSchemaViolation(t *testing.T) {
	dir := t.TempDir()

	criteriaPath := writeFile(t, dir, "criteria.json", `{"required_skills": "not-an-array"}`)
	candidatesPath := writeFile(t, dir, "candidates.json", `{"candidates": []}`)

	rankCriteria = criteriaPath
	rankCandidates = candidatesPath
	rankOutput = filepath.Join(dir, "matches.json")

	err := runRank(rankCmd, nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation")
}

func TestRankCommand_MissingCriteriaFile(t *testing.T) {
	dir := t.TempDir()

	rankCriteria = filepath.Join(dir, "does-not-exist.json")
	rankCandidates = writeFile(t, dir, "candidates.json", `{"candidates": []}`)
	rankOutput = filepath.Join(dir, "matches.json")

	assert.Error(t, runRank(rankCmd, nil))
}
