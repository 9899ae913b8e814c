// Package storage provides implementations of the key-value persistence
// port. State snapshots are JSON blobs stored under one fixed key per store.
package storage

import (
	"sync"

	"whiskplan/internal/domain"
)

// Compile-time interface check.
var _ domain.KeyValue = (*Memory)(nil)

// Memory is an in-memory key-value store. Safe for concurrent access.
// It backs tests and any run that does not need durability.
type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

// Get returns the value stored under key, or ok=false if never written.
func (m *Memory) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// Set stores value under key, overwriting any previous value.
func (m *Memory) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	m.values[key] = v
	return nil
}
