// Package fs provides the real filesystem implementation of rem.Filesystem.
package fs

import (
	"fmt"
	"io"
	"io/fs"
	"os"

	"rem-go/internal/rem"
)

// OSFilesystem performs actual filesystem operations using the os package.
type OSFilesystem struct{}

// NewOSFilesystem creates a filesystem that operates on the real filesystem.
func NewOSFilesystem() *OSFilesystem {
	return &OSFilesystem{}
}

// EnsureDir creates path and any missing parents.
func (*OSFilesystem) EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	return nil
}

// CopyFile copies src to dst byte-for-byte, creating or truncating dst.
// The destination's parent directory must exist.
func (*OSFilesystem) CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("copying data: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing destination: %w", err)
	}
	return nil
}

func (*OSFilesystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (*OSFilesystem) WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}

func (*OSFilesystem) ReadDir(path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}

func (*OSFilesystem) Remove(path string) error {
	return os.Remove(path)
}

func (*OSFilesystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// Exists reports whether anything exists at path, following symlinks.
func (*OSFilesystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Compile-time check that OSFilesystem implements rem.Filesystem.
var _ rem.Filesystem = (*OSFilesystem)(nil)
