package repositories

import (
	"fmt"
	"sync"
)

// MockKeyValueRepository is an in-memory implementation of KeyValueRepository.
type MockKeyValueRepository struct {
	entries map[string][]byte
	mu      sync.RWMutex
}

// NewMockKeyValueRepository creates a new instance of MockKeyValueRepository.
func NewMockKeyValueRepository() *MockKeyValueRepository {
	return &MockKeyValueRepository{
		entries: make(map[string][]byte),
	}
}

func entryKey(namespace, key string) string {
	return namespace + "\x00" + key
}

// Get returns a copy of the stored value.
func (r *MockKeyValueRepository) Get(namespace, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.entries[entryKey(namespace, key)]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", namespace, key, ErrKeyNotFound)
	}
	return append([]byte(nil), value...), nil
}

// Put stores a copy of value.
func (r *MockKeyValueRepository) Put(namespace, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[entryKey(namespace, key)] = append([]byte(nil), value...)
	return nil
}

// Delete removes namespace/key.
func (r *MockKeyValueRepository) Delete(namespace, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, entryKey(namespace, key))
	return nil
}
