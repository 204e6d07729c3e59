// Package tokenstore provides core.TokenStore implementations: a
// process-local store for tests and short-lived tools, and an encrypted
// file store for clients that must survive restarts.
package tokenstore

import (
	"sync"
)

// Memory keeps the token in process memory. The zero value is usable.
type Memory struct {
	mu    sync.Mutex
	token string

	// counters, guarded by mu like everything else
	loads  int64
	saves  int64
	clears int64
}

// Stats tracks token store usage.
type Stats struct {
	Loads    int64 `json:"loads"`
	Saves    int64 `json:"saves"`
	Clears   int64 `json:"clears"`
	HasToken bool  `json:"hasToken"`
}

func NewMemory() *Memory {
	return &Memory{}
}

// Load returns the stored token, or "" when nothing is stored.
func (m *Memory) Load() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	return m.token, nil
}

// Save overwrites the stored token.
func (m *Memory) Save(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.saves++
	return nil
}

// Clear drops the stored token.
func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.clears++
	return nil
}

// Stats returns usage counters.
func (m *Memory) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Stats{
		Loads:    m.loads,
		Saves:    m.saves,
		Clears:   m.clears,
		HasToken: m.token != "",
	}
}
