package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllSchemas_ValidJSON(t *testing.T) {
	embedded := map[string]string{
		"job.schema.json":            Job,
		"job_criteria.schema.json":   JobCriteria,
		"candidate_pool.schema.json": CandidatePool,
	}

	for name, content := range embedded {
		t.Run(name, func(t *testing.T) {
			var v interface{}
			err := json.Unmarshal([]byte(content), &v)
			assert.NoError(t, err, "schema should be valid JSON: %s", name)
		})
	}
}
