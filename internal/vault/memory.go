package vault

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"sync"

	"rem-go/internal/rem"
)

// MemoryVault keeps archives in memory. Used by tests.
// Safe for concurrent use.
type MemoryVault struct {
	mu       sync.RWMutex
	archives map[string][]byte
}

// NewMemoryVault creates an empty in-memory vault.
func NewMemoryVault() *MemoryVault {
	return &MemoryVault{archives: make(map[string][]byte)}
}

// Put stores an archive under name, overwriting any previous content.
func (m *MemoryVault) Put(name string, r io.Reader, size int64) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading archive: %w", err)
	}
	if int64(len(data)) != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, len(data))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.archives[name] = data
	return nil
}

// Get retrieves the archive stored under name and writes it to w.
func (m *MemoryVault) Get(name string, w io.Writer) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.archives[name]
	if !ok {
		return fmt.Errorf("archive not found: %s", name)
	}
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing archive: %w", err)
	}
	return nil
}

// List returns the names of all stored archives, sorted.
func (m *MemoryVault) List() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.archives))
	for name := range m.archives {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// ValidateSetup always succeeds for the in-memory vault.
func (m *MemoryVault) ValidateSetup() error {
	return nil
}

// Compile-time check that MemoryVault implements rem.Vault.
var _ rem.Vault = (*MemoryVault)(nil)
