package rem

import "io"

// Vault provides an interface for off-box backup archive storage.
// All operations use io.Reader/io.Writer for streaming to support large
// archives without loading them entirely into memory.
type Vault interface {
	// Put stores an archive under name.
	// The operation is idempotent: storing the same name twice overwrites.
	// size is the number of bytes that will be read from r.
	Put(name string, r io.Reader, size int64) error

	// Get retrieves the archive stored under name and writes it to w.
	Get(name string, w io.Writer) error

	// List returns the names of all stored archives.
	List() ([]string, error)

	// ValidateSetup verifies that the vault is accessible and properly configured.
	ValidateSetup() error
}
