package propstore

import (
	"context"
	"sync"

	"layoutkit/internal/layout"
)

var _ layout.Store = (*Memory)(nil)

// Write records one Set call against a Memory store.
type Write struct {
	Key   string
	Value string
}

// Memory is an in-process property store for a single item plus the
// application-level properties it can see.
type Memory struct {
	mu         sync.Mutex
	values     map[string]string
	writes     []Write
	getFailure map[string]error
	setFailure map[string]error
}

// NewMemory returns a store seeded with a copy of seed.
func NewMemory(seed map[string]string) *Memory {
	values := make(map[string]string, len(seed))
	for k, v := range seed {
		values[k] = v
	}
	return &Memory{
		values:     values,
		getFailure: map[string]error{},
		setFailure: map[string]error{},
	}
}

// Get returns the stored value, or "" for unknown keys.
func (m *Memory) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.getFailure[key]; err != nil {
		return "", err
	}
	value := m.values[key]
	if key == layout.KeyPositionAspect && value == "" {
		value = m.values[layout.KeyPosition]
	}
	return value, nil
}

// Set stores value and appends it to the write journal.
func (m *Memory) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.setFailure[key]; err != nil {
		return err
	}
	m.values[key] = value
	m.writes = append(m.writes, Write{Key: key, Value: value})
	return nil
}

// Value returns the raw stored value without the posaspect fallback.
func (m *Memory) Value(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key]
}

// Writes returns a copy of every Set call so far, in order.
func (m *Memory) Writes() []Write {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Write, len(m.writes))
	copy(out, m.writes)
	return out
}

// FailGet makes every Get of key return err. A nil err clears the failure.
func (m *Memory) FailGet(key string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.getFailure, key)
		return
	}
	m.getFailure[key] = err
}

// FailSet makes every Set of key return err. A nil err clears the failure.
func (m *Memory) FailSet(key string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.setFailure, key)
		return
	}
	m.setFailure[key] = err
}
