package storage

import (
	"context"
	"sync"
)

// Memory is an in-process Store used by tests and ephemeral runs.
// Nothing survives a restart.
type Memory struct {
	mu   sync.Mutex
	data map[string]string

	// FailNextSet makes the next Set return this error, then resets.
	// Test hook for persistence-failure paths.
	FailNextSet error
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// Get returns the value stored under key, or ok=false if the key is absent
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.data[key]
	return value, ok, nil
}

// Set stores value under key
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.FailNextSet; err != nil {
		m.FailNextSet = nil
		return err
	}
	m.data[key] = value
	return nil
}

// Remove deletes the key
func (m *Memory) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Clear deletes every key
func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]string)
	return nil
}
