package ranking

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jumysal/matchpoint/internal/types"
)

func almaty() types.JobCriteria {
	return types.JobCriteria{
		RequiredSkills:        []string{"React", "TypeScript"},
		MinExperience:         2,
		Location:              "Almaty",
		PreferredUniversities: []string{"KBTU"},
	}
}

func TestRank_Deterministic(t *testing.T) {
	candidates := []types.CandidateProfile{
		{ID: "c3", Skills: []string{"react"}, YearsOfExperience: 1, Location: "Almaty"},
		{ID: "c1", Skills: []string{"react", "typescript"}, YearsOfExperience: 4, Location: "Almaty", University: "KBTU", HasStructuredResume: true},
		{ID: "c2", Skills: []string{"typescript"}, YearsOfExperience: 2, Location: "Astana"},
	}

	first := Rank(almaty(), candidates)
	second := Rank(almaty(), candidates)

	assert.Equal(t, first, second)
}

func TestRank_SortsDescendingByScore(t *testing.T) {
	candidates := []types.CandidateProfile{
		{ID: "weak", Skills: []string{"react"}, YearsOfExperience: 0, Location: "Astana"},
		{ID: "strong", Skills: []string{"react", "typescript"}, YearsOfExperience: 3, Location: "Almaty", University: "KBTU", HasStructuredResume: true},
	}

	ranked := Rank(almaty(), candidates)

	require.Len(t, ranked, 2)
	assert.Equal(t, "strong", ranked[0].CandidateID)
	assert.Equal(t, "weak", ranked[1].CandidateID)
	assert.Greater(t, ranked[0].TotalScore, ranked[1].TotalScore)
}

func TestRank_TieBreakByCandidateID(t *testing.T) {
	// Identical profiles score identically; order must fall back to ID.
	base := types.CandidateProfile{
		Skills:            []string{"react"},
		YearsOfExperience: 2,
		Location:          "Almaty",
	}
	a, b, c := base, base, base
	a.ID, b.ID, c.ID = "cand_b", "cand_a", "cand_c"

	ranked := Rank(almaty(), []types.CandidateProfile{a, b, c})

	require.Len(t, ranked, 3)
	assert.Equal(t, "cand_a", ranked[0].CandidateID)
	assert.Equal(t, "cand_b", ranked[1].CandidateID)
	assert.Equal(t, "cand_c", ranked[2].CandidateID)
}

func TestRank_ExcludesZeroScores(t *testing.T) {
	candidates := []types.CandidateProfile{
		{ID: "zero", Location: "Astana"},
		{ID: "some", Skills: []string{"react"}, Location: "Almaty"},
	}

	ranked := Rank(almaty(), candidates)

	require.Len(t, ranked, 1)
	assert.Equal(t, "some", ranked[0].CandidateID)
}

func TestRank_TruncatesToTopK(t *testing.T) {
	candidates := make([]types.CandidateProfile, 0, 25)
	for i := 0; i < 25; i++ {
		candidates = append(candidates, types.CandidateProfile{
			ID:                fmt.Sprintf("cand_%02d", i),
			Skills:            []string{"react"},
			YearsOfExperience: float64(i % 5),
			Location:          "Almaty",
		})
	}

	ranked := Rank(almaty(), candidates)

	assert.Len(t, ranked, TopK)
}

func TestRank_FewerThanKKeepsExactCount(t *testing.T) {
	candidates := []types.CandidateProfile{
		{ID: "a", Skills: []string{"react"}, Location: "Almaty"},
		{ID: "b", Skills: []string{"typescript"}, Location: "Almaty"},
		{ID: "c", Location: "Nowhere"}, // scores zero
	}

	ranked := Rank(almaty(), candidates)

	assert.Len(t, ranked, 2)
}

func TestRank_EmptyPool(t *testing.T) {
	assert.Empty(t, Rank(almaty(), nil))
	assert.Empty(t, Rank(almaty(), []types.CandidateProfile{}))
}
