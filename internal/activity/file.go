// Package activity persists the activity log as a JSON document holding an
// ordered, newest-first list of entries. Capping the list is the activity
// model's concern; this package is plain document I/O.
package activity

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"rem-go/internal/rem"
)

// FileStore reads and writes the activity document at a fixed path.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore backed by the JSON document at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Read returns all persisted entries, newest first. A missing or corrupt
// document yields an empty list.
func (s *FileStore) Read() ([]*rem.Activity, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, nil
	}

	var entries []*rem.Activity
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, nil
	}
	return entries, nil
}

// Write persists the full list, replacing the previous document.
func (s *FileStore) Write(entries []*rem.Activity) error {
	if entries == nil {
		entries = []*rem.Activity{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding activity log: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating activity log directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing activity log: %w", err)
	}
	return nil
}

// Compile-time check that FileStore implements rem.ActivityStore.
var _ rem.ActivityStore = (*FileStore)(nil)
