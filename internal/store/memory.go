package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
)

type memoryStore struct {
	mu   sync.RWMutex
	data map[string]json.RawMessage
}

// NewInMemory returns an in-memory Store, used by tests and as the
// backing of the file store.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewInMemory() Store {
	return &memoryStore{
		data: make(map[string]json.RawMessage),
	}
}

func (s *memoryStore) Get(_ context.Context, key string, out any) (bool, error) {
	s.mu.RLock()
	raw, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return false, errors.Wrapf(err, "failed to unmarshal value for key %q", key)
	}

	return true, nil
}

func (s *memoryStore) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal value for key %q", key)
	}

	s.mu.Lock()
	s.data[key] = raw
	s.mu.Unlock()

	return nil
}

func (s *memoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()

	return nil
}

func (s *memoryStore) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}

	return keys, nil
}
