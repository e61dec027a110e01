// Package progress defines the persisted level-progress flags and a typed
// view over them. Flags are plain string key/value pairs so any backend
// (memory, SQLite) can hold them.
package progress

import (
	"fmt"
	"sort"
	"sync"
)

// Flags is a string-keyed persistent flag store.
// GetFlag returns an empty string and no error for absent keys.
type Flags interface {
	GetFlag(key string) (string, error)
	SetFlag(key, value string) error
	DeleteFlags(keys ...string) error
}

// Key names used by the engine and the level select.
const (
	KeyUnlockedLevel = "unlockedLevel"
	KeyCurrentLevel  = "currentLevel"
)

// TaskCompletedKey returns the key set when level n's puzzle is finished.
func TaskCompletedKey(level int) string {
	return fmt.Sprintf("level%d_taskCompleted", level)
}

// StepDoneKey returns the key set when step k of level n's puzzle is accepted.
func StepDoneKey(level, step int) string {
	return fmt.Sprintf("level%d_step%dDone", level, step)
}

// InitDoneKey returns the key set once the player typed git init for level n.
func InitDoneKey(level int) string {
	return fmt.Sprintf("level%d_initDone", level)
}

// MemoryFlags is an in-memory Flags implementation.
// Safe for concurrent use.
type MemoryFlags struct {
	mu    sync.RWMutex
	flags map[string]string
}

// NewMemoryFlags creates an empty in-memory flag store.
func NewMemoryFlags() *MemoryFlags {
	return &MemoryFlags{flags: make(map[string]string)}
}

// GetFlag implements Flags.
func (m *MemoryFlags) GetFlag(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.flags[key], nil
}

// SetFlag implements Flags.
func (m *MemoryFlags) SetFlag(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flags[key] = value
	return nil
}

// DeleteFlags implements Flags.
func (m *MemoryFlags) DeleteFlags(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.flags, k)
	}
	return nil
}

// Keys returns every stored key, sorted.
func (m *MemoryFlags) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.flags))
	for k := range m.flags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var _ Flags = (*MemoryFlags)(nil)
