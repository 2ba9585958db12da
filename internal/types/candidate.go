// Package types defines the validated domain records shared by the ranking
// and progression subsystems. Raw collaborator documents are decoded and
// normalized into these types at the ingestion boundary; everything past that
// boundary operates on them only.
package types

// CandidateProfile is an immutable snapshot of a candidate supplied per
// ranking run. Skills are compared case-insensitively by the scorer.
type CandidateProfile struct {
	ID                  string   `json:"id" validate:"required"`
	Skills              []string `json:"skills"`
	YearsOfExperience   float64  `json:"years_of_experience" validate:"gte=0"`
	Location            string   `json:"location"`
	University          string   `json:"university,omitempty"`
	HasStructuredResume bool     `json:"has_structured_resume"`
}

// Normalize brings a decoded profile into scoring-safe shape: nil collections
// become empty and negative experience is clamped to zero.
func (c *CandidateProfile) Normalize() {
	if c.Skills == nil {
		c.Skills = []string{}
	}
	if c.YearsOfExperience < 0 {
		c.YearsOfExperience = 0
	}
}

// Validate checks structural constraints on an ingested profile.
func (c *CandidateProfile) Validate() error {
	return validate.Struct(c)
}
