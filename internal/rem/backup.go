package rem

import "time"

// BackupMetadata is the sidecar document written next to each full backup.
// It records enough to identify what was captured without opening the copy.
type BackupMetadata struct {
	CreatedAt  time.Time `json:"created_at"`
	SourcePath string    `json:"source_path"`
	SizeBytes  int64     `json:"size_bytes"`
	Tables     []string  `json:"tables"`
	Encrypted  bool      `json:"encrypted"`
}

// BackupInfo describes one backup archive found in the backup directory.
// Metadata is nil when the sidecar is missing or unreadable.
type BackupInfo struct {
	Name      string
	Path      string
	SizeBytes int64
	CreatedAt time.Time
	Metadata  *BackupMetadata
}

// BackupOptions controls full backup creation.
type BackupOptions struct {
	// Encrypt wraps the archive with passphrase encryption.
	Encrypt bool
	// Passphrase protects the archive when Encrypt is set.
	Passphrase string
	// Upload replicates the finished archive to the configured vault.
	Upload bool
}

// ImportSummary reports the outcome of a row-tolerant import: how many
// rows were applied and how many were skipped after individual failures.
type ImportSummary struct {
	Imported int
	Skipped  int
}
