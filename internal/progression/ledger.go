package progression

import (
	"context"
	"fmt"
	"time"

	"github.com/jumysal/matchpoint/internal/types"
)

// dateLayout is the UTC calendar-day key used for daily caps.
const dateLayout = "2006-01-02"

// Store persists progression state. Update must execute fn as a single
// atomic read-modify-write per actor (row lock or equivalent), creating the
// state on first use; the mutated state is persisted only when fn returns
// true. Concurrent updates for the same actor must serialize, never lose an
// increment.
type Store interface {
	Update(ctx context.Context, actorID string, fn func(*types.ProgressionState) (bool, error)) error
	Get(ctx context.Context, actorID string) (types.ProgressionState, error)
}

// AwardResult reports the outcome of a single award call.
type AwardResult struct {
	Success   bool `json:"success"`
	Points    int  `json:"points"`
	XP        int  `json:"xp"`
	LeveledUp bool `json:"leveled_up"`
}

// Ledger applies the award rules on top of a Store.
type Ledger struct {
	store Store
	now   func() time.Time
}

// NewLedger creates a ledger backed by the given store.
func NewLedger(store Store) *Ledger {
	return &Ledger{store: store, now: time.Now}
}

// Award credits an actor for one completed action. A capped action already
// at its daily limit returns Success=false without mutating anything.
// LeveledUp is true only on the call whose XP first crosses a tier threshold.
func (l *Ledger) Award(ctx context.Context, actorID string, action ActionType) (AwardResult, error) {
	spec, ok := LookupAction(action)
	if !ok {
		return AwardResult{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	var result AwardResult
	err := l.store.Update(ctx, actorID, func(state *types.ProgressionState) (bool, error) {
		today := l.now().UTC().Format(dateLayout)

		if state.LastEarned == nil {
			state.LastEarned = make(map[string]types.DailyCount)
		}

		entry := state.LastEarned[string(spec.Type)]
		if spec.DailyLimit > 0 && entry.Date == today && entry.Count >= spec.DailyLimit {
			result = AwardResult{}
			return false, nil
		}

		if entry.Date == today {
			entry.Count++
		} else {
			entry = types.DailyCount{Date: today, Count: 1}
		}
		state.LastEarned[string(spec.Type)] = entry

		state.Points += spec.Points
		state.TotalXP += spec.XP

		leveledUp := false
		if level := LevelFor(state.TotalXP); level > state.Level {
			state.Level = level
			leveledUp = true
		}

		result = AwardResult{
			Success:   true,
			Points:    spec.Points,
			XP:        spec.XP,
			LeveledUp: leveledUp,
		}
		return true, nil
	})
	if err != nil {
		return AwardResult{}, fmt.Errorf("failed to award %s to actor %s: %w", action, actorID, err)
	}

	return result, nil
}

// Progression returns the current state for an actor. An actor that has
// never earned anything gets a zero state, not an error.
func (l *Ledger) Progression(ctx context.Context, actorID string) (types.ProgressionState, error) {
	state, err := l.store.Get(ctx, actorID)
	if err != nil {
		return types.ProgressionState{}, fmt.Errorf("failed to load progression for actor %s: %w", actorID, err)
	}
	return state, nil
}
