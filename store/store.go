// Package store provides the key-value capability the calculator persists
// through. Backends never surface errors to callers: a failed read is an
// absent value and a failed write is logged and dropped, so the calculator
// keeps working even when its storage does not.
package store

import "sync"

type Store interface {
	// GetString returns the value for key, or ok=false if the key is
	// absent or the backend failed.
	GetString(key string) (value string, ok bool)
	// SetString persists value under key. Failures are swallowed.
	SetString(key, value string)
}

// Memory is a map-backed Store, used as the default and in tests.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) GetString(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *Memory) SetString(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}
