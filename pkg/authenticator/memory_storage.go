package authenticator

import (
	"context"
	"sync"
)

// MemoryStorage implements Storage with a plain map. It is the default for
// tests and for ephemeral sessions that should not persist anything.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

// Get returns the value stored under key, or ErrKeyNotFound.
func (m *MemoryStorage) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

// Set stores value under key.
func (m *MemoryStorage) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}
