package rem

import "io/fs"

// Filesystem provides an interface for filesystem operations.
// It abstracts file access to enable testing without touching the real filesystem.
type Filesystem interface {
	// EnsureDir creates a directory and any missing parents.
	// It is a no-op if the directory already exists.
	EnsureDir(path string) error

	// CopyFile copies src to dst, creating or truncating dst.
	// The copy is byte-for-byte; no transformation is applied.
	CopyFile(src, dst string) error

	// ReadFile reads the whole file at path.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to path, creating or truncating it.
	WriteFile(path string, data []byte) error

	// ReadDir lists the entries of a directory.
	ReadDir(path string) ([]fs.DirEntry, error)

	// Remove deletes the file at path.
	Remove(path string) error

	// Stat returns file info for a path.
	Stat(path string) (fs.FileInfo, error)

	// Exists reports whether a file or directory exists at path.
	Exists(path string) bool
}
