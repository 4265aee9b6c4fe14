// internal/identity/memory.go
package identity

import (
	"context"
	"sync"
)

// MemoryStore keeps identity values in process memory. Ids are stable within
// one process only; a restart yields a fresh id, mirroring the original
// behavior outside a browser context.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

func (s *MemoryStore) GetOrCreate(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.values[key]; ok {
		return id, nil
	}
	id := NewUserID()
	s.values[key] = id
	return id, nil
}
