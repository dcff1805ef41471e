package testutil

import (
	"sync"

	"rem-go/internal/rem"
)

// MemorySettingsStore is an in-memory rem.SettingsStore.
type MemorySettingsStore struct {
	mu     sync.Mutex
	values map[string]any
}

func NewMemorySettingsStore() *MemorySettingsStore {
	return &MemorySettingsStore{}
}

func (s *MemorySettingsStore) Read() (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out, nil
}

func (s *MemorySettingsStore) Write(settings map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]any, len(settings))
	for k, v := range settings {
		s.values[k] = v
	}
	return nil
}

// MemoryActivityStore is an in-memory rem.ActivityStore.
type MemoryActivityStore struct {
	mu      sync.Mutex
	entries []*rem.Activity
}

func NewMemoryActivityStore() *MemoryActivityStore {
	return &MemoryActivityStore{}
}

func (s *MemoryActivityStore) Read() ([]*rem.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*rem.Activity, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

func (s *MemoryActivityStore) Write(entries []*rem.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make([]*rem.Activity, len(entries))
	copy(s.entries, entries)
	return nil
}

var (
	_ rem.SettingsStore = (*MemorySettingsStore)(nil)
	_ rem.ActivityStore = (*MemoryActivityStore)(nil)
)
