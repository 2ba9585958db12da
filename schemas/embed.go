// Package schemas holds the JSON Schemas for documents exchanged with the
// job-board application. Collaborator responses are loosely-typed documents;
// they are validated against these schemas before being decoded into domain
// types.
package schemas

import _ "embed"

// Job is the schema for a job document (identity + matching flag).
//
//go:embed job.schema.json
var Job string

// JobCriteria is the schema for a job's hiring criteria document.
//
//go:embed job_criteria.schema.json
var JobCriteria string

// CandidatePool is the schema for the candidate pool document.
//
//go:embed candidate_pool.schema.json
var CandidatePool string
