// Package vault provides off-box storage backends for backup archives.
package vault

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"rem-go/internal/rem"
)

// FileSystemVault stores backup archives as files under a root directory,
// typically on a mounted external or network drive.
type FileSystemVault struct {
	root string
}

// NewFileSystemVault creates a filesystem vault rooted at the given path.
func NewFileSystemVault(root string) (*FileSystemVault, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating vault directory: %w", err)
	}
	return &FileSystemVault{root: root}, nil
}

// Put stores an archive under name. Storing the same name twice overwrites.
// The write goes through a temp file and rename so a crash mid-copy never
// leaves a truncated archive under the final name.
func (v *FileSystemVault) Put(name string, r io.Reader, size int64) error {
	tmp, err := os.CreateTemp(v.root, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("writing archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if written != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, written)
	}

	if err := os.Rename(tmpPath, filepath.Join(v.root, name)); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	success = true
	return nil
}

// Get retrieves the archive stored under name and writes it to w.
func (v *FileSystemVault) Get(name string, w io.Writer) error {
	f, err := os.Open(filepath.Join(v.root, name))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("archive not found: %s", name)
		}
		return fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("reading archive: %w", err)
	}
	return nil
}

// List returns the names of all stored archives, sorted.
func (v *FileSystemVault) List() ([]string, error) {
	entries, err := os.ReadDir(v.root)
	if err != nil {
		return nil, fmt.Errorf("reading vault directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || e.Name()[0] == '.' {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// ValidateSetup verifies that the vault root exists and is a directory.
func (v *FileSystemVault) ValidateSetup() error {
	info, err := os.Stat(v.root)
	if err != nil {
		return fmt.Errorf("vault root not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("vault root is not a directory: %s", v.root)
	}
	return nil
}

// Compile-time check that FileSystemVault implements rem.Vault.
var _ rem.Vault = (*FileSystemVault)(nil)
