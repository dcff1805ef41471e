// Package settings persists the flat settings mapping as a JSON document.
// Completeness is not this package's concern: the settings model overlays
// whatever is read here onto the hard-coded defaults.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"rem-go/internal/rem"
)

// FileStore reads and writes the settings document at a fixed path.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore backed by the JSON document at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Read returns the persisted mapping. A missing or corrupt document yields
// an empty mapping: the merge with defaults makes reads total either way.
func (s *FileStore) Read() (map[string]any, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return map[string]any{}, nil
	}

	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return map[string]any{}, nil
	}
	if values == nil {
		values = map[string]any{}
	}
	return values, nil
}

// Write persists the full mapping, replacing the previous document.
func (s *FileStore) Write(values map[string]any) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

// Compile-time check that FileStore implements rem.SettingsStore.
var _ rem.SettingsStore = (*FileStore)(nil)
