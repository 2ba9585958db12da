package types

// JobCriteria holds a job's hiring criteria, read once per ranking run.
// OtherCriteria is free text shown to recruiters and is never scored.
type JobCriteria struct {
	RequiredSkills        []string `json:"required_skills"`
	MinExperience         float64  `json:"min_experience"`
	Location              string   `json:"location"`
	PreferredUniversities []string `json:"preferred_universities"`
	OtherCriteria         string   `json:"other_criteria,omitempty"`
}

// Normalize clamps tolerated malformations instead of rejecting them:
// nil sets become empty and a negative minimum experience becomes zero.
func (c *JobCriteria) Normalize() {
	if c.RequiredSkills == nil {
		c.RequiredSkills = []string{}
	}
	if c.PreferredUniversities == nil {
		c.PreferredUniversities = []string{}
	}
	if c.MinExperience < 0 {
		c.MinExperience = 0
	}
}

// Job is the slice of a job posting the matching core needs: identity and
// the matching feature flag. Criteria are fetched separately, and everything
// else about a posting stays in the job-board application.
type Job struct {
	ID              string `json:"id" validate:"required"`
	MatchingEnabled bool   `json:"matching_enabled"`
}

// Validate checks structural constraints on an ingested job.
func (j *Job) Validate() error {
	return validate.Struct(j)
}
