// Package ranking orders a candidate pool against a job's hiring criteria
// and keeps the top scorers. Ranking is side-effect free; fetching the pool
// and persisting the result belong to the refresh orchestrator.
package ranking

import (
	"sort"

	"github.com/jumysal/matchpoint/internal/scoring"
	"github.com/jumysal/matchpoint/internal/types"
)

// TopK is the number of ranked candidates retained per job.
const TopK = 10

// Rank scores every candidate, drops zero scores, sorts by total score
// descending with candidate ID as the deterministic tie-break, and truncates
// to the top K records. Calling it twice with identical inputs yields
// identical ordered output.
func Rank(criteria types.JobCriteria, candidates []types.CandidateProfile) []types.MatchRecord {
	records := make([]types.MatchRecord, 0, len(candidates))

	for _, candidate := range candidates {
		breakdown := scoring.Score(candidate, criteria)
		total := scoring.Total(breakdown)
		if total == 0 {
			continue
		}

		records = append(records, types.MatchRecord{
			CandidateID: candidate.ID,
			Breakdown:   breakdown,
			TotalScore:  total,
		})
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].TotalScore != records[j].TotalScore {
			return records[i].TotalScore > records[j].TotalScore
		}
		return records[i].CandidateID < records[j].CandidateID
	})

	if len(records) > TopK {
		records = records[:TopK]
	}

	return records
}
