package manifest

import (
	"fmt"
	"sync"
)

// MemoryStore implements Store in memory (not persistent)
type MemoryStore struct {
	runs map[string][]byte
	mu   sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: make(map[string][]byte)}
}

// Save stores an encoded copy of run so later mutation by the caller is not visible
func (m *MemoryStore) Save(run *Run) error {
	data, err := encodeRun(run)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[run.ID] = data

	return nil
}

// Get loads a run by id
func (m *MemoryStore) Get(id string) (*Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, exists := m.runs[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return decodeRun(data)
}

// List returns every stored run
func (m *MemoryStore) List() ([]*Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	runs := make([]*Run, 0, len(m.runs))
	for _, data := range m.runs {
		run, err := decodeRun(data)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	sortRuns(runs)
	return runs, nil
}

// Close is a no-op for the memory store
func (m *MemoryStore) Close() error {
	return nil
}
