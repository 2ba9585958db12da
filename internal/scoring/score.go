// Package scoring computes the weighted match score of a candidate profile
// against a job's hiring criteria. Scoring is pure and total: any well-typed
// input produces a breakdown, never an error.
package scoring

import (
	"strings"

	"github.com/jumysal/matchpoint/internal/types"
)

// Weights for the five scoring components. They sum to exactly 1.0.
const (
	skillWeight      = 0.4
	experienceWeight = 0.2
	locationWeight   = 0.1
	universityWeight = 0.1
	resumeWeight     = 0.2
)

// Score computes the full breakdown for one candidate. Inputs are normalized
// copies; the caller's values are not mutated.
func Score(candidate types.CandidateProfile, criteria types.JobCriteria) types.ScoreBreakdown {
	candidate.Normalize()
	criteria.Normalize()

	return types.ScoreBreakdown{
		SkillMatch:      computeSkillMatch(candidate.Skills, criteria.RequiredSkills),
		ExperienceMatch: computeExperienceMatch(candidate.YearsOfExperience, criteria.MinExperience),
		LocationMatch:   computeLocationMatch(candidate.Location, criteria.Location),
		UniversityMatch: computeUniversityMatch(candidate.University, criteria.PreferredUniversities),
		ResumeQuality:   computeResumeQuality(candidate.HasStructuredResume),
	}
}

// Total collapses a breakdown into the weighted total score in [0,1].
func Total(b types.ScoreBreakdown) float64 {
	total := skillWeight*b.SkillMatch +
		experienceWeight*b.ExperienceMatch +
		locationWeight*b.LocationMatch +
		universityWeight*b.UniversityMatch +
		resumeWeight*b.ResumeQuality

	if total > 1.0 {
		total = 1.0
	}
	if total < 0.0 {
		total = 0.0
	}
	return total
}

// computeSkillMatch is the fraction of required skills the candidate covers,
// compared case-insensitively. An empty requirement set scores 0, not 1:
// a job with no listed skills gives no candidate skill credit.
func computeSkillMatch(candidateSkills, requiredSkills []string) float64 {
	if len(requiredSkills) == 0 {
		return 0.0
	}

	have := make(map[string]bool, len(candidateSkills))
	for _, s := range candidateSkills {
		normalized := strings.ToLower(strings.TrimSpace(s))
		if normalized != "" {
			have[normalized] = true
		}
	}

	matched := 0
	for _, s := range requiredSkills {
		if have[strings.ToLower(strings.TrimSpace(s))] {
			matched++
		}
	}

	return float64(matched) / float64(len(requiredSkills))
}

// computeExperienceMatch scales years against the required minimum, capped
// at 1. A minimum below one year is treated as one to avoid division blowup.
func computeExperienceMatch(years, minExperience float64) float64 {
	denom := minExperience
	if denom < 1 {
		denom = 1
	}

	score := years / denom
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// computeLocationMatch is an exact, case-sensitive city comparison.
func computeLocationMatch(candidateLocation, jobLocation string) float64 {
	if candidateLocation == jobLocation {
		return 1.0
	}
	return 0.0
}

// computeUniversityMatch awards full credit when the candidate's university
// appears (case-insensitively) in the preferred list. No preferences or no
// university means no credit.
func computeUniversityMatch(university string, preferred []string) float64 {
	if len(preferred) == 0 || university == "" {
		return 0.0
	}

	normalized := strings.ToLower(strings.TrimSpace(university))
	for _, p := range preferred {
		if strings.ToLower(strings.TrimSpace(p)) == normalized {
			return 1.0
		}
	}
	return 0.0
}

// computeResumeQuality rewards a structured resume.
func computeResumeQuality(hasStructuredResume bool) float64 {
	if hasStructuredResume {
		return 1.0
	}
	return 0.0
}
