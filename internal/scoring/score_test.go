package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jumysal/matchpoint/internal/types"
)

func TestWeightsSumToOne(t *testing.T) {
	sum := skillWeight + experienceWeight + locationWeight + universityWeight + resumeWeight
	assert.InDelta(t, 1.0, sum, 1e-12)
}

func TestScore_StrongCandidate(t *testing.T) {
	criteria := types.JobCriteria{
		RequiredSkills:        []string{"React", "TypeScript"},
		MinExperience:         2,
		Location:              "Almaty",
		PreferredUniversities: []string{"KBTU"},
	}
	candidate := types.CandidateProfile{
		ID:                  "cand_001",
		Skills:              []string{"react", "node"},
		YearsOfExperience:   3,
		Location:            "Almaty",
		University:          "KBTU",
		HasStructuredResume: true,
	}

	b := Score(candidate, criteria)

	assert.InDelta(t, 0.5, b.SkillMatch, 1e-9)
	assert.InDelta(t, 1.0, b.ExperienceMatch, 1e-9)
	assert.InDelta(t, 1.0, b.LocationMatch, 1e-9)
	assert.InDelta(t, 1.0, b.UniversityMatch, 1e-9)
	assert.InDelta(t, 1.0, b.ResumeQuality, 1e-9)
	assert.InDelta(t, 0.8, Total(b), 1e-9)
}

func TestScore_EmptyCandidate(t *testing.T) {
	criteria := types.JobCriteria{
		RequiredSkills:        []string{"React", "TypeScript"},
		MinExperience:         2,
		Location:              "Almaty",
		PreferredUniversities: []string{"KBTU"},
	}
	candidate := types.CandidateProfile{
		ID:       "cand_002",
		Location: "Astana",
	}

	b := Score(candidate, criteria)

	assert.Zero(t, b.SkillMatch)
	assert.Zero(t, b.ExperienceMatch)
	assert.Zero(t, b.LocationMatch)
	assert.Zero(t, b.UniversityMatch)
	assert.Zero(t, b.ResumeQuality)
	assert.Zero(t, Total(b))
}

func TestComputeSkillMatch_EmptyRequirementsScoreZero(t *testing.T) {
	// Locked-in policy: no required skills means no skill credit, not full credit.
	score := computeSkillMatch([]string{"go", "postgres"}, nil)
	assert.Equal(t, 0.0, score)

	score = computeSkillMatch([]string{"go"}, []string{})
	assert.Equal(t, 0.0, score)
}

func TestComputeSkillMatch_CaseInsensitive(t *testing.T) {
	score := computeSkillMatch([]string{"GoLang", " postgres "}, []string{"golang", "Postgres"})
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestComputeExperienceMatch(t *testing.T) {
	tests := []struct {
		name     string
		years    float64
		min      float64
		expected float64
	}{
		{"exceeds minimum", 5, 2, 1.0},
		{"half of minimum", 2, 4, 0.5},
		{"zero years", 0, 2, 0.0},
		{"zero minimum treated as one", 0.5, 0, 0.5},
		{"exactly at minimum", 3, 3, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, computeExperienceMatch(tt.years, tt.min), 1e-9)
		})
	}
}

func TestComputeLocationMatch_CaseSensitive(t *testing.T) {
	assert.Equal(t, 1.0, computeLocationMatch("Almaty", "Almaty"))
	assert.Equal(t, 0.0, computeLocationMatch("almaty", "Almaty"))
	assert.Equal(t, 0.0, computeLocationMatch("Astana", "Almaty"))
}

func TestComputeUniversityMatch(t *testing.T) {
	assert.Equal(t, 1.0, computeUniversityMatch("kbtu", []string{"KBTU", "NU"}))
	assert.Equal(t, 0.0, computeUniversityMatch("", []string{"KBTU"}))
	assert.Equal(t, 0.0, computeUniversityMatch("KBTU", nil))
	assert.Equal(t, 0.0, computeUniversityMatch("SDU", []string{"KBTU"}))
}

func TestScore_BoundsHoldForArbitraryInput(t *testing.T) {
	candidates := []types.CandidateProfile{
		{ID: "a", Skills: []string{"x", "y", "z"}, YearsOfExperience: 40, Location: "Almaty", University: "KBTU", HasStructuredResume: true},
		{ID: "b", YearsOfExperience: -3},
		{ID: "c", Skills: []string{""}, Location: ""},
	}
	criteria := types.JobCriteria{
		RequiredSkills: []string{"x"},
		MinExperience:  -5,
		Location:       "Almaty",
	}

	for _, c := range candidates {
		b := Score(c, criteria)
		total := Total(b)
		assert.GreaterOrEqual(t, total, 0.0)
		assert.LessOrEqual(t, total, 1.0)
		for _, sub := range []float64{b.SkillMatch, b.ExperienceMatch, b.LocationMatch, b.UniversityMatch, b.ResumeQuality} {
			assert.GreaterOrEqual(t, sub, 0.0)
			assert.LessOrEqual(t, sub, 1.0)
		}
	}
}
