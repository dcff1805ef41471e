package rem

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	backupPrefix     = "realestate_backup_"
	backupExt        = ".db"
	encryptedExt     = ".age"
	metadataSuffix   = "_metadata.json"
	backupTimeLayout = "20060102_150405"
)

// BackupController provides disaster recovery and data portability: full
// file backups with metadata sidecars, restore with a mandatory pre-restore
// snapshot, retention cleanup, and table-level export/import.
//
// Full backups are plain byte copies of the store file. The store is only
// written between operations in this single-process design, so a copy taken
// here is always a consistent snapshot.
type BackupController struct {
	store     Store
	settings  *SettingsModel
	activity  *ActivityModel
	fs        Filesystem
	encryptor Encryptor
	vault     Vault
	clock     Clock
	logger    Logger
	view      BackupView
}

// NewBackupController creates a BackupController. vault may be nil when no
// off-box replication is configured; uploads then fail with an error.
func NewBackupController(store Store, settings *SettingsModel, activity *ActivityModel, fs Filesystem, encryptor Encryptor, vault Vault, clock Clock, logger Logger, view BackupView) *BackupController {
	return &BackupController{
		store:     store,
		settings:  settings,
		activity:  activity,
		fs:        fs,
		encryptor: encryptor,
		vault:     vault,
		clock:     clock,
		logger:    logger,
		view:      view,
	}
}

// Create takes a full backup of the live store.
func (c *BackupController) Create(opts BackupOptions) (*BackupInfo, error) {
	info, err := c.create(opts)
	if err != nil {
		c.view.ShowError(fmt.Sprintf("Backup failed: %v", err))
		return nil, err
	}

	c.logActivity(ActionBackupCreated, fmt.Sprintf("Backup created: %s", info.Name), map[string]any{
		"backup": info.Name,
		"size":   info.SizeBytes,
	})
	c.view.ShowSuccess(fmt.Sprintf("Backup created: %s", info.Name))
	return info, nil
}

// create performs the backup mechanics without activity logging or view
// messages, so Restore can reuse it for the pre-restore snapshot.
func (c *BackupController) create(opts BackupOptions) (*BackupInfo, error) {
	if opts.Encrypt && opts.Passphrase == "" {
		return nil, errors.New("encryption requires a passphrase")
	}

	dir, err := c.backupDir()
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	base := backupPrefix + now.Format(backupTimeLayout)
	name := base + backupExt
	dst := filepath.Join(dir, name)

	// Uniquify on collision. A pre-restore snapshot taken in the same
	// second as the backup being restored must not overwrite it.
	for n := 1; c.fs.Exists(dst) || c.fs.Exists(dst+encryptedExt); n++ {
		name = fmt.Sprintf("%s_%d%s", base, n, backupExt)
		dst = filepath.Join(dir, name)
	}

	if err := c.fs.CopyFile(c.store.Path(), dst); err != nil {
		return nil, fmt.Errorf("copying store file: %w", err)
	}

	if opts.Encrypt {
		if err := c.encryptArchive(dst, opts.Passphrase); err != nil {
			return nil, err
		}
		dst += encryptedExt
		name += encryptedExt
	}

	fi, err := c.fs.Stat(dst)
	if err != nil {
		return nil, fmt.Errorf("inspecting backup: %w", err)
	}

	meta := &BackupMetadata{
		CreatedAt:  now,
		SourcePath: c.store.Path(),
		SizeBytes:  fi.Size(),
		Encrypted:  opts.Encrypt,
	}
	if tables, err := c.store.Tables(); err == nil {
		meta.Tables = tables
	}
	// The sidecar is best-effort: restore works without it.
	if data, err := json.MarshalIndent(meta, "", "  "); err == nil {
		if err := c.fs.WriteFile(sidecarPath(dst), data); err != nil {
			c.logger.Warn("writing backup metadata failed", "path", sidecarPath(dst), "error", err)
		}
	}

	if err := c.settings.Update(SettingLastBackupDate, now.Format(time.RFC3339)); err != nil {
		c.logger.Warn("updating last backup date failed", "error", err)
	}

	if opts.Upload {
		if err := c.upload(dst, name, fi.Size()); err != nil {
			return nil, err
		}
	}

	c.logger.Info("backup created", "path", dst, "size", fi.Size())
	return &BackupInfo{
		Name:      name,
		Path:      dst,
		SizeBytes: fi.Size(),
		CreatedAt: now,
		Metadata:  meta,
	}, nil
}

// encryptArchive replaces the plaintext archive at path with an encrypted
// sibling carrying the .age extension.
func (c *BackupController) encryptArchive(path, passphrase string) error {
	data, err := c.fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading backup: %w", err)
	}
	var buf bytes.Buffer
	if err := c.encryptor.Encrypt(passphrase, bytes.NewReader(data), &buf); err != nil {
		return fmt.Errorf("encrypting backup: %w", err)
	}
	if err := c.fs.WriteFile(path+encryptedExt, buf.Bytes()); err != nil {
		return fmt.Errorf("writing encrypted backup: %w", err)
	}
	if err := c.fs.Remove(path); err != nil {
		c.logger.Warn("removing plaintext backup failed", "path", path, "error", err)
	}
	return nil
}

func (c *BackupController) upload(path, name string, size int64) error {
	if c.vault == nil {
		return errors.New("no vault configured")
	}
	data, err := c.fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading backup for upload: %w", err)
	}
	if err := c.vault.Put(name, bytes.NewReader(data), size); err != nil {
		return fmt.Errorf("uploading backup: %w", err)
	}
	c.logger.Info("backup uploaded", "name", name)
	return nil
}

// List returns the known backups, newest first, and pushes them to the view.
func (c *BackupController) List() ([]*BackupInfo, error) {
	infos, err := c.list()
	if err != nil {
		c.view.ShowError(fmt.Sprintf("Failed to list backups: %v", err))
		return nil, err
	}
	c.view.ShowBackups(infos)
	return infos, nil
}

func (c *BackupController) list() ([]*BackupInfo, error) {
	dir, err := c.backupDir()
	if err != nil {
		return nil, err
	}
	entries, err := c.fs.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading backup directory: %w", err)
	}

	var infos []*BackupInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasPrefix(name, backupPrefix) {
			continue
		}
		if !strings.HasSuffix(name, backupExt) && !strings.HasSuffix(name, backupExt+encryptedExt) {
			continue
		}

		path := filepath.Join(dir, name)
		info := &BackupInfo{Name: name, Path: path}
		if fi, err := c.fs.Stat(path); err == nil {
			info.SizeBytes = fi.Size()
			info.CreatedAt = fi.ModTime()
		}
		if ts, err := time.Parse(backupTimeLayout, backupTimestamp(name)); err == nil {
			info.CreatedAt = ts
		}
		if data, err := c.fs.ReadFile(sidecarPath(path)); err == nil {
			var meta BackupMetadata
			if err := json.Unmarshal(data, &meta); err == nil {
				info.Metadata = &meta
				info.CreatedAt = meta.CreatedAt
			}
		}
		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt.After(infos[j].CreatedAt)
	})
	return infos, nil
}

// Restore replaces the live store with the backup at path. The current
// state is snapshotted first; if that snapshot cannot be taken the live
// store is left untouched. Encrypted archives require the passphrase.
func (c *BackupController) Restore(path, passphrase string) error {
	if err := c.restore(path, passphrase); err != nil {
		c.view.ShowError(fmt.Sprintf("Restore failed: %v", err))
		return err
	}

	c.logActivity(ActionBackupRestored, fmt.Sprintf("Database restored from %s", filepath.Base(path)), map[string]any{
		"backup": filepath.Base(path),
	})
	c.view.ShowSuccess(fmt.Sprintf("Database restored from %s", filepath.Base(path)))
	c.view.RefreshData()
	return nil
}

func (c *BackupController) restore(path, passphrase string) error {
	if !c.fs.Exists(path) {
		return fmt.Errorf("backup %s: %w", path, ErrNotFound)
	}

	encrypted := strings.HasSuffix(path, encryptedExt)
	if encrypted && passphrase == "" {
		return errors.New("backup is encrypted: a passphrase is required")
	}

	// Decrypt fully before touching the live store so a wrong passphrase
	// can never leave it half-overwritten.
	var replacement []byte
	if encrypted {
		data, err := c.fs.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading backup: %w", err)
		}
		var buf bytes.Buffer
		if err := c.encryptor.Decrypt(passphrase, bytes.NewReader(data), &buf); err != nil {
			return fmt.Errorf("decrypting backup: %w", err)
		}
		replacement = buf.Bytes()
	}

	// Snapshot the current state first. Restore never destroys the live
	// store without a fresh recovery point.
	snapshot, err := c.create(BackupOptions{})
	if err != nil {
		return fmt.Errorf("snapshotting current state: %w", err)
	}
	c.logger.Info("pre-restore snapshot created", "path", snapshot.Path)

	if err := c.store.Close(); err != nil {
		return fmt.Errorf("closing store: %w", err)
	}

	var copyErr error
	if encrypted {
		copyErr = c.fs.WriteFile(c.store.Path(), replacement)
	} else {
		copyErr = c.fs.CopyFile(path, c.store.Path())
	}

	if err := c.store.Reopen(); err != nil {
		if copyErr != nil {
			return fmt.Errorf("overwriting store: %v; reopening store: %w", copyErr, err)
		}
		return fmt.Errorf("reopening store: %w", err)
	}
	if copyErr != nil {
		return fmt.Errorf("overwriting store: %w", copyErr)
	}
	return nil
}

// Cleanup keeps the keep most recent backups and deletes the rest along
// with their sidecars. Individual delete failures are logged and skipped.
// Returns the number of archives removed.
func (c *BackupController) Cleanup(keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}
	infos, err := c.list()
	if err != nil {
		c.view.ShowError(fmt.Sprintf("Cleanup failed: %v", err))
		return 0, err
	}
	if len(infos) <= keep {
		c.view.ShowSuccess("No old backups to remove")
		return 0, nil
	}

	removed := 0
	for _, info := range infos[keep:] {
		if err := c.fs.Remove(info.Path); err != nil {
			c.logger.Warn("removing backup failed", "path", info.Path, "error", err)
			continue
		}
		removed++
		if sp := sidecarPath(info.Path); c.fs.Exists(sp) {
			if err := c.fs.Remove(sp); err != nil {
				c.logger.Warn("removing backup metadata failed", "path", sp, "error", err)
			}
		}
	}

	c.logActivity(ActionBackupCleanup, fmt.Sprintf("Backup cleanup: removed %d, kept %d", removed, keep), map[string]any{
		"removed": removed,
		"kept":    keep,
	})
	c.view.ShowSuccess(fmt.Sprintf("Backup cleanup complete: %d removed", removed))
	return removed, nil
}

// ExportJSON dumps every table to a single JSON document at path.
func (c *BackupController) ExportJSON(path string) error {
	if err := c.exportJSON(path); err != nil {
		c.view.ShowError(fmt.Sprintf("Export failed: %v", err))
		return err
	}

	c.logActivity(ActionDataExport, fmt.Sprintf("Data exported to %s", path), map[string]any{
		"path":   path,
		"format": "json",
	})
	c.view.ShowSuccess(fmt.Sprintf("Data exported to %s", path))
	return nil
}

func (c *BackupController) exportJSON(path string) error {
	tables, err := c.store.Tables()
	if err != nil {
		return fmt.Errorf("listing tables: %w", err)
	}

	doc := make(map[string][]map[string]any, len(tables))
	for _, table := range tables {
		columns, rows, err := c.store.DumpTable(table)
		if err != nil {
			return fmt.Errorf("dumping %s: %w", table, err)
		}
		out := make([]map[string]any, 0, len(rows))
		for _, row := range rows {
			m := make(map[string]any, len(columns))
			for i, col := range columns {
				m[col] = jsonValue(row[i])
			}
			out = append(out, m)
		}
		doc[table] = out
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	if err := c.fs.WriteFile(path, data); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}

// ExportSQL dumps every table as portable INSERT statements at path.
func (c *BackupController) ExportSQL(path string) error {
	if err := c.exportSQL(path); err != nil {
		c.view.ShowError(fmt.Sprintf("Export failed: %v", err))
		return err
	}

	c.logActivity(ActionDataExport, fmt.Sprintf("Data exported to %s", path), map[string]any{
		"path":   path,
		"format": "sql",
	})
	c.view.ShowSuccess(fmt.Sprintf("Data exported to %s", path))
	return nil
}

func (c *BackupController) exportSQL(path string) error {
	tables, err := c.store.Tables()
	if err != nil {
		return fmt.Errorf("listing tables: %w", err)
	}

	var b strings.Builder
	b.WriteString("-- Data export\n")
	b.WriteString("-- Generated: " + c.clock.Now().Format(time.RFC3339) + "\n\n")
	for _, table := range tables {
		columns, rows, err := c.store.DumpTable(table)
		if err != nil {
			return fmt.Errorf("dumping %s: %w", table, err)
		}
		if len(rows) == 0 {
			continue
		}
		quoted := make([]string, len(columns))
		for i, col := range columns {
			quoted[i] = `"` + col + `"`
		}
		for _, row := range rows {
			vals := make([]string, len(row))
			for i, v := range row {
				vals[i] = sqlLiteral(v)
			}
			fmt.Fprintf(&b, "INSERT INTO \"%s\" (%s) VALUES (%s);\n", table, strings.Join(quoted, ", "), strings.Join(vals, ", "))
		}
		b.WriteString("\n")
	}

	if err := c.fs.WriteFile(path, []byte(b.String())); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}

// Import dispatches on the file extension: .json rows are upserted one by
// one tolerating failures, .sql scripts execute atomically. The summary is
// nil for SQL imports.
func (c *BackupController) Import(path string) (*ImportSummary, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return c.ImportJSON(path)
	case ".sql":
		if err := c.ImportSQL(path); err != nil {
			return nil, err
		}
		return nil, nil
	}
	err := fmt.Errorf("unsupported import format: %s", filepath.Ext(path))
	c.view.ShowError(err.Error())
	return nil, err
}

// ImportJSON upserts rows from a JSON export. Individual row failures are
// logged and counted, never aborting the rest of the import.
func (c *BackupController) ImportJSON(path string) (*ImportSummary, error) {
	summary, err := c.importJSON(path)
	if err != nil {
		c.view.ShowError(fmt.Sprintf("Import failed: %v", err))
		return nil, err
	}

	c.logActivity(ActionDataImport, fmt.Sprintf("Data imported from %s", path), map[string]any{
		"path":     path,
		"imported": summary.Imported,
		"skipped":  summary.Skipped,
	})
	c.view.ShowSuccess(fmt.Sprintf("Import complete: %d rows imported, %d skipped", summary.Imported, summary.Skipped))
	c.view.RefreshData()
	return summary, nil
}

func (c *BackupController) importJSON(path string) (*ImportSummary, error) {
	data, err := c.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}
	var doc map[string][]map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding import file: %w", err)
	}

	known, err := c.store.Tables()
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	knownSet := make(map[string]struct{}, len(known))
	for _, t := range known {
		knownSet[t] = struct{}{}
	}

	tables := make([]string, 0, len(doc))
	for t := range doc {
		tables = append(tables, t)
	}
	sort.Strings(tables)

	summary := &ImportSummary{}
	for _, table := range tables {
		if _, ok := knownSet[table]; !ok {
			c.logger.Warn("skipping unknown table in import", "table", table)
			continue
		}
		for _, row := range doc[table] {
			columns := make([]string, 0, len(row))
			for col := range row {
				columns = append(columns, col)
			}
			sort.Strings(columns)
			values := make([]any, len(columns))
			for i, col := range columns {
				values[i] = row[col]
			}
			if err := c.store.InsertOrReplaceRow(table, columns, values); err != nil {
				c.logger.Warn("importing row failed", "table", table, "error", err)
				summary.Skipped++
				continue
			}
			summary.Imported++
		}
	}
	return summary, nil
}

// ImportSQL executes a SQL script against the store as one atomic batch.
func (c *BackupController) ImportSQL(path string) error {
	data, err := c.fs.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("reading import file: %w", err)
		c.view.ShowError(fmt.Sprintf("Import failed: %v", err))
		return err
	}
	if err := c.store.ExecScript(string(data)); err != nil {
		err = fmt.Errorf("executing import script: %w", err)
		c.view.ShowError(fmt.Sprintf("Import failed: %v", err))
		return err
	}

	c.logActivity(ActionDataImport, fmt.Sprintf("Data imported from %s", path), map[string]any{
		"path":   path,
		"format": "sql",
	})
	c.view.ShowSuccess(fmt.Sprintf("Data imported from %s", path))
	c.view.RefreshData()
	return nil
}

// backupDir resolves and provisions the configured backup directory.
func (c *BackupController) backupDir() (string, error) {
	merged, err := c.settings.Load()
	if err != nil {
		return "", err
	}
	dir := merged.String(SettingBackupDirectory)
	if err := c.fs.EnsureDir(dir); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}
	return dir, nil
}

func (c *BackupController) logActivity(action, description string, details map[string]any) {
	if err := c.activity.Record(action, description, details); err != nil {
		c.logger.Warn("recording activity failed", "action", action, "error", err)
	}
}

// sidecarPath derives the metadata sidecar path from an archive path,
// sharing the archive's timestamped stem.
func sidecarPath(archivePath string) string {
	stem := strings.TrimSuffix(archivePath, encryptedExt)
	stem = strings.TrimSuffix(stem, backupExt)
	return stem + metadataSuffix
}

// backupTimestamp extracts the embedded timestamp from an archive name.
func backupTimestamp(name string) string {
	ts := strings.TrimPrefix(name, backupPrefix)
	ts = strings.TrimSuffix(ts, encryptedExt)
	return strings.TrimSuffix(ts, backupExt)
}

// jsonValue normalizes a driver value for JSON export. Byte slices become
// strings; nil stays null, which keeps it distinct from the empty string.
func jsonValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

// sqlLiteral renders a driver value as a portable SQL literal. Embedded
// single quotes are doubled; nil renders as NULL, not as ''.
func sqlLiteral(v any) string {
	switch t := v.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + strings.ReplaceAll(t, "'", "''") + "'"
	case []byte:
		return "'" + strings.ReplaceAll(string(t), "'", "''") + "'"
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		if t {
			return "1"
		}
		return "0"
	case time.Time:
		return "'" + t.Format(time.RFC3339) + "'"
	}
	return "'" + strings.ReplaceAll(fmt.Sprint(v), "'", "''") + "'"
}
