package progression

import (
	"context"
	"sync"

	"github.com/jumysal/matchpoint/internal/types"
)

// MemoryStore is an in-process Store used by tests. Production deployments
// use the Postgres store, which serializes per-actor updates at the storage
// layer instead of with a process mutex.
type MemoryStore struct {
	mu     sync.Mutex
	states map[string]*types.ProgressionState
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]*types.ProgressionState)}
}

// Update runs fn under the store mutex, creating the actor state on first use.
func (m *MemoryStore) Update(_ context.Context, actorID string, fn func(*types.ProgressionState) (bool, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.states[actorID]
	if !ok {
		state = &types.ProgressionState{ActorID: actorID}
	}

	// fn mutates a copy so a false/error return leaves the stored state intact.
	scratch := cloneState(state)
	persist, err := fn(scratch)
	if err != nil {
		return err
	}
	if persist {
		m.states[actorID] = scratch
	}
	return nil
}

// Get returns a copy of the actor's state, zero if never awarded.
func (m *MemoryStore) Get(_ context.Context, actorID string) (types.ProgressionState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.states[actorID]
	if !ok {
		return types.ProgressionState{ActorID: actorID, LastEarned: map[string]types.DailyCount{}}, nil
	}
	return *cloneState(state), nil
}

func cloneState(state *types.ProgressionState) *types.ProgressionState {
	clone := *state
	clone.LastEarned = make(map[string]types.DailyCount, len(state.LastEarned))
	for k, v := range state.LastEarned {
		clone.LastEarned[k] = v
	}
	return &clone
}
