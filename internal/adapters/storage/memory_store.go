package storage

import (
	"context"
	"sync"

	"github.com/kamal-hamza/inv-cli/internal/core/ports"
)

// MemoryStore keeps values in process memory; nothing survives the process
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

var _ ports.Store = (*MemoryStore)(nil)

func (s *MemoryStore) Read(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.data[key]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (s *MemoryStore) Write(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = append([]byte(nil), data...)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
