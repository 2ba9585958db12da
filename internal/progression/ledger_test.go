package progression

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestAward_UnknownActionRejected(t *testing.T) {
	ledger := NewLedger(NewMemoryStore())

	_, err := ledger.Award(context.Background(), "actor_1", ActionType("teleport"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestAward_FirstAward(t *testing.T) {
	ledger := NewLedger(NewMemoryStore())

	result, err := ledger.Award(context.Background(), "actor_1", ActionApply)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 10, result.Points)
	assert.Equal(t, 15, result.XP)
	assert.False(t, result.LeveledUp)

	state, err := ledger.Progression(context.Background(), "actor_1")
	require.NoError(t, err)
	assert.Equal(t, 10, state.Points)
	assert.Equal(t, 15, state.TotalXP)
	assert.Equal(t, 0, state.Level)
}

func TestAward_DailyCapProfileUpdate(t *testing.T) {
	ledger := NewLedger(NewMemoryStore())
	ledger.now = fixedClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	first, err := ledger.Award(context.Background(), "actor_1", ActionProfileUpdate)
	require.NoError(t, err)
	assert.True(t, first.Success)
	assert.Equal(t, 2, first.Points)
	assert.Equal(t, 3, first.XP)
	assert.False(t, first.LeveledUp)

	second, err := ledger.Award(context.Background(), "actor_1", ActionProfileUpdate)
	require.NoError(t, err)
	assert.False(t, second.Success)
	assert.Zero(t, second.Points)
	assert.Zero(t, second.XP)
	assert.False(t, second.LeveledUp)

	// State is unchanged from after the first call.
	state, err := ledger.Progression(context.Background(), "actor_1")
	require.NoError(t, err)
	assert.Equal(t, 2, state.Points)
	assert.Equal(t, 3, state.TotalXP)
}

func TestAward_DailyCapResetsNextDay(t *testing.T) {
	ledger := NewLedger(NewMemoryStore())
	ledger.now = fixedClock(time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC))

	_, err := ledger.Award(context.Background(), "actor_1", ActionProfileUpdate)
	require.NoError(t, err)

	ledger.now = fixedClock(time.Date(2025, 6, 2, 0, 1, 0, 0, time.UTC))
	result, err := ledger.Award(context.Background(), "actor_1", ActionProfileUpdate)

	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestAward_ChatCapTenPerDay(t *testing.T) {
	ledger := NewLedger(NewMemoryStore())
	ledger.now = fixedClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))

	for i := 0; i < 10; i++ {
		result, err := ledger.Award(context.Background(), "actor_1", ActionChat)
		require.NoError(t, err)
		assert.True(t, result.Success, "award %d should succeed", i+1)
	}

	result, err := ledger.Award(context.Background(), "actor_1", ActionChat)
	require.NoError(t, err)
	assert.False(t, result.Success)

	state, err := ledger.Progression(context.Background(), "actor_1")
	require.NoError(t, err)
	assert.Equal(t, 10, state.Points)
	assert.Equal(t, 10, state.TotalXP)
}

func TestAward_SingleLevelUpSignal(t *testing.T) {
	ledger := NewLedger(NewMemoryStore())
	ctx := context.Background()

	// Three applies: 15 + 15 + 15 = 45 XP, still below the first tier.
	for i := 0; i < 3; i++ {
		result, err := ledger.Award(ctx, "actor_1", ActionApply)
		require.NoError(t, err)
		assert.False(t, result.LeveledUp)
	}

	// 45 + 15 = 60 crosses the 50 XP threshold: exactly this call levels up.
	result, err := ledger.Award(ctx, "actor_1", ActionApply)
	require.NoError(t, err)
	assert.True(t, result.LeveledUp)

	state, err := ledger.Progression(ctx, "actor_1")
	require.NoError(t, err)
	assert.Equal(t, 1, state.Level)

	// Further awards below the next threshold report no level-up.
	result, err = ledger.Award(ctx, "actor_1", ActionSavePost)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.False(t, result.LeveledUp)
}

func TestAward_Monotonicity(t *testing.T) {
	ledger := NewLedger(NewMemoryStore())
	ctx := context.Background()

	actions := []ActionType{
		ActionRegistration, ActionApply, ActionChat, ActionProfileLike,
		ActionProfileUpdate, ActionSavePost, ActionCompleteWork, ActionApply,
	}

	prevXP, prevLevel := 0, 0
	for _, action := range actions {
		_, err := ledger.Award(ctx, "actor_1", action)
		require.NoError(t, err)

		state, err := ledger.Progression(ctx, "actor_1")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, state.TotalXP, prevXP)
		assert.GreaterOrEqual(t, state.Level, prevLevel)
		prevXP, prevLevel = state.TotalXP, state.Level
	}
}

func TestAward_ConcurrentIncrementsNotLost(t *testing.T) {
	ledger := NewLedger(NewMemoryStore())
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := ledger.Award(ctx, "actor_1", ActionApply)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	state, err := ledger.Progression(ctx, "actor_1")
	require.NoError(t, err)
	assert.Equal(t, n*10, state.Points)
	assert.Equal(t, n*15, state.TotalXP)
}

func TestProgression_UnknownActorZeroState(t *testing.T) {
	ledger := NewLedger(NewMemoryStore())

	state, err := ledger.Progression(context.Background(), "ghost")

	require.NoError(t, err)
	assert.Zero(t, state.Points)
	assert.Zero(t, state.TotalXP)
	assert.Zero(t, state.Level)
}
