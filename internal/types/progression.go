package types

// DailyCount tracks how many times an actor earned from one action type on
// a given UTC calendar day (date in YYYY-MM-DD form).
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ProgressionState is the per-actor ledger row. Points, TotalXP and Level
// are monotonically non-decreasing; the row is created on first award and
// never deleted.
type ProgressionState struct {
	ActorID    string                `json:"actor_id"`
	Points     int                   `json:"points"`
	TotalXP    int                   `json:"total_xp"`
	Level      int                   `json:"level"`
	LastEarned map[string]DailyCount `json:"last_earned"`
}
