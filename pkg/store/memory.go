package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-process store backed by a map. It is safe for
// concurrent use and is the backend of choice for tests and single-node
// deployments without MongoDB.
type MemoryStore struct {
	mu   sync.RWMutex
	runs map[uuid.UUID]Run
}

// NewMemoryStore creates an in-process run store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: make(map[uuid.UUID]Run)}
}

// Put records a run.
func (s *MemoryStore) Put(ctx context.Context, run Run) error {
	s.mu.Lock()
	s.runs[run.ID] = run
	s.mu.Unlock()
	return nil
}

// Get retrieves a run by ID.
func (s *MemoryStore) Get(ctx context.Context, id uuid.UUID) (Run, error) {
	s.mu.RLock()
	run, ok := s.runs[id]
	s.mu.RUnlock()
	if !ok {
		return Run{}, ErrNotFound
	}
	return run, nil
}

// List returns the most recent runs, newest first.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]Run, error) {
	s.mu.RLock()
	out := make([]Run, 0, len(s.runs))
	for _, run := range s.runs {
		out = append(out, run)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
