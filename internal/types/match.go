package types

import "time"

// ScoreBreakdown holds the five weighted sub-scores, each in [0,1].
type ScoreBreakdown struct {
	SkillMatch      float64 `json:"skill_match"`
	ExperienceMatch float64 `json:"experience_match"`
	LocationMatch   float64 `json:"location_match"`
	UniversityMatch float64 `json:"university_match"`
	ResumeQuality   float64 `json:"resume_quality"`
}

// MatchRecord is one scored candidate within a job's ranked set, keyed by
// (JobID, CandidateID). JobID, ComputedAt and Generation are stamped by the
// repository at write time; the ranking engine fills the rest.
type MatchRecord struct {
	JobID       string         `json:"job_id,omitempty"`
	CandidateID string         `json:"candidate_id"`
	Breakdown   ScoreBreakdown `json:"breakdown"`
	TotalScore  float64        `json:"total_score"`
	ComputedAt  time.Time      `json:"computed_at"`
	Generation  int64          `json:"generation,omitempty"`
}
