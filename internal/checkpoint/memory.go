package checkpoint

import (
	"context"
	"sort"
	"sync"

	"github.com/jonathan/sales-simulator/internal/state"
)

// MemoryStore keeps checkpoints in memory. It backs runs that do not
// configure a database and is the default store in tests.
type MemoryStore struct {
	mu   sync.RWMutex
	runs map[string]*state.RunState
}

// NewMemoryStore creates an empty in-memory checkpoint store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: make(map[string]*state.RunState)}
}

// Save stores a deep copy of the state so later mutations by the caller do
// not leak into the stored snapshot.
func (m *MemoryStore) Save(_ context.Context, st *state.RunState) error {
	snapshot, err := st.Clone()
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[st.ThreadID] = snapshot
	return nil
}

// Load returns a deep copy of the stored snapshot for the thread id.
func (m *MemoryStore) Load(_ context.Context, threadID string) (*state.RunState, error) {
	m.mu.RLock()
	snapshot, ok := m.runs[threadID]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return snapshot.Clone()
}

// List returns stored runs newest first.
func (m *MemoryStore) List(_ context.Context, limit int) ([]RunSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	summaries := make([]RunSummary, 0, len(m.runs))
	for _, st := range m.runs {
		summaries = append(summaries, RunSummary{
			ThreadID:     st.ThreadID,
			ExecutionID:  st.ExecutionID,
			Status:       st.Status,
			CurrentStage: st.CurrentStage,
			UpdatedAt:    st.UpdatedAt,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})
	if limit > 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

// Delete removes the snapshot for the thread id.
func (m *MemoryStore) Delete(_ context.Context, threadID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.runs[threadID]; !ok {
		return ErrNotFound
	}
	delete(m.runs, threadID)
	return nil
}
