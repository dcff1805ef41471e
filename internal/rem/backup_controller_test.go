package rem_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"rem-go/internal/database"
	"rem-go/internal/fs"
	"rem-go/internal/rem"
	"rem-go/internal/testutil"
)

type backupFixture struct {
	store    *database.SQLiteStore
	owners   *rem.OwnerModel
	clock    *testutil.StubClock
	view     *testutil.SpyView
	ctrl     *rem.BackupController
	vault    rem.Vault
	backupTo string
}

func newBackupFixture(t *testing.T) *backupFixture {
	t.Helper()

	store := testutil.NewTestFileStore(t)
	clock := testutil.FixedClock()
	osfs := fs.NewOSFilesystem()
	view := testutil.NewSpyView()
	logger := rem.NewNopLogger()

	settings := rem.NewSettingsModel(testutil.NewMemorySettingsStore(), osfs, logger)
	backupDir := filepath.Join(t.TempDir(), "backups")
	if err := settings.Update(rem.SettingBackupDirectory, backupDir); err != nil {
		t.Fatalf("Update(backup_directory) error = %v", err)
	}

	activity := rem.NewActivityModel(testutil.NewMemoryActivityStore(), osfs, clock, logger)
	vault := testutil.NewTestVault()

	ctrl := rem.NewBackupController(store, settings, activity, osfs, testutil.NewTestEncryptor(), vault, clock, logger, view)
	return &backupFixture{
		store:    store,
		owners:   rem.NewOwnerModel(store, rem.NewCodeGenerator(store), clock, logger),
		clock:    clock,
		view:     view,
		ctrl:     ctrl,
		vault:    vault,
		backupTo: backupDir,
	}
}

func TestBackupController_Create(t *testing.T) {
	t.Run("writes a timestamped copy with a metadata sidecar", func(t *testing.T) {
		f := newBackupFixture(t)

		info, err := f.ctrl.Create(rem.BackupOptions{})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		wantName := "realestate_backup_" + f.clock.Now().Format("20060102_150405") + ".db"
		if info.Name != wantName {
			t.Errorf("backup name = %q, want %q", info.Name, wantName)
		}
		if _, err := os.Stat(info.Path); err != nil {
			t.Errorf("backup file missing: %v", err)
		}

		sidecar := strings.TrimSuffix(info.Path, ".db") + "_metadata.json"
		data, err := os.ReadFile(sidecar)
		if err != nil {
			t.Fatalf("metadata sidecar missing: %v", err)
		}
		var meta rem.BackupMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			t.Fatalf("decoding sidecar: %v", err)
		}
		if meta.Encrypted {
			t.Error("sidecar reports encrypted for a plain backup")
		}
	})

	t.Run("encrypted backup carries the .age extension and no plaintext", func(t *testing.T) {
		f := newBackupFixture(t)

		info, err := f.ctrl.Create(rem.BackupOptions{Encrypt: true, Passphrase: "secret"})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if !strings.HasSuffix(info.Name, ".db.age") {
			t.Errorf("backup name = %q, want .db.age suffix", info.Name)
		}
		plain := strings.TrimSuffix(info.Path, ".age")
		if _, err := os.Stat(plain); !os.IsNotExist(err) {
			t.Errorf("plaintext archive still present: %v", err)
		}
	})

	t.Run("encryption without a passphrase is refused", func(t *testing.T) {
		f := newBackupFixture(t)

		if _, err := f.ctrl.Create(rem.BackupOptions{Encrypt: true}); err == nil {
			t.Error("Create() without passphrase expected error, got nil")
		}
		if len(f.view.Errors) == 0 {
			t.Error("view did not receive the failure message")
		}
	})

	t.Run("upload replicates to the vault", func(t *testing.T) {
		f := newBackupFixture(t)

		info, err := f.ctrl.Create(rem.BackupOptions{Upload: true})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		names, err := f.vault.List()
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(names) != 1 || names[0] != info.Name {
			t.Errorf("vault contents = %v, want [%s]", names, info.Name)
		}
	})
}

func TestBackupController_List(t *testing.T) {
	f := newBackupFixture(t)

	if _, err := f.ctrl.Create(rem.BackupOptions{}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	f.clock.Advance(time.Minute)
	if _, err := f.ctrl.Create(rem.BackupOptions{}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	infos, err := f.ctrl.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("List() = %d backups, want 2", len(infos))
	}
	if !infos[0].CreatedAt.After(infos[1].CreatedAt) {
		t.Error("List() not sorted newest first")
	}
	if len(f.view.Backups) == 0 {
		t.Error("view did not receive the backup list")
	}
}

func TestBackupController_Restore(t *testing.T) {
	t.Run("round trip returns the store to the backed-up state", func(t *testing.T) {
		f := newBackupFixture(t)

		before := &rem.Owner{Name: "Before Backup"}
		if err := f.owners.Create(before); err != nil {
			t.Fatalf("Create() owner error = %v", err)
		}

		info, err := f.ctrl.Create(rem.BackupOptions{})
		if err != nil {
			t.Fatalf("Create() backup error = %v", err)
		}

		after := &rem.Owner{Name: "After Backup"}
		if err := f.owners.Create(after); err != nil {
			t.Fatalf("Create() owner error = %v", err)
		}

		f.clock.Advance(time.Minute)
		if err := f.ctrl.Restore(info.Path, ""); err != nil {
			t.Fatalf("Restore() error = %v", err)
		}

		owners, err := f.owners.All()
		if err != nil {
			t.Fatalf("All() error = %v", err)
		}
		if len(owners) != 1 || owners[0].Name != "Before Backup" {
			t.Errorf("owners after restore = %+v, want only the pre-backup owner", owners)
		}
	})

	t.Run("takes a pre-restore snapshot", func(t *testing.T) {
		f := newBackupFixture(t)

		info, err := f.ctrl.Create(rem.BackupOptions{})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		f.clock.Advance(time.Minute)
		if err := f.ctrl.Restore(info.Path, ""); err != nil {
			t.Fatalf("Restore() error = %v", err)
		}

		infos, err := f.ctrl.List()
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(infos) != 2 {
			t.Errorf("List() after restore = %d backups, want original plus snapshot", len(infos))
		}
	})

	t.Run("restore in the same second keeps the archive intact", func(t *testing.T) {
		f := newBackupFixture(t)

		before := &rem.Owner{Name: "Before Backup"}
		if err := f.owners.Create(before); err != nil {
			t.Fatalf("Create() owner error = %v", err)
		}
		info, err := f.ctrl.Create(rem.BackupOptions{})
		if err != nil {
			t.Fatalf("Create() backup error = %v", err)
		}
		if err := f.owners.Create(&rem.Owner{Name: "After Backup"}); err != nil {
			t.Fatalf("Create() owner error = %v", err)
		}

		// Clock deliberately not advanced: the pre-restore snapshot gets
		// the same timestamp as the archive being restored.
		if err := f.ctrl.Restore(info.Path, ""); err != nil {
			t.Fatalf("Restore() error = %v", err)
		}

		owners, err := f.owners.All()
		if err != nil {
			t.Fatalf("All() error = %v", err)
		}
		if len(owners) != 1 || owners[0].Name != "Before Backup" {
			t.Errorf("owners after restore = %+v, want only the pre-backup owner", owners)
		}

		infos, err := f.ctrl.List()
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(infos) != 2 {
			t.Errorf("List() after restore = %d backups, want original plus snapshot", len(infos))
		}
	})

	t.Run("encrypted restore needs the right passphrase", func(t *testing.T) {
		f := newBackupFixture(t)

		keep := &rem.Owner{Name: "Encrypted State"}
		if err := f.owners.Create(keep); err != nil {
			t.Fatalf("Create() owner error = %v", err)
		}
		info, err := f.ctrl.Create(rem.BackupOptions{Encrypt: true, Passphrase: "right"})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		f.clock.Advance(time.Minute)
		if err := f.ctrl.Restore(info.Path, ""); err == nil {
			t.Error("Restore() without passphrase expected error, got nil")
		}
		if err := f.ctrl.Restore(info.Path, "wrong"); err == nil {
			t.Error("Restore() with wrong passphrase expected error, got nil")
		}

		// A failed decrypt never touches the live store.
		owners, err := f.owners.All()
		if err != nil {
			t.Fatalf("All() error = %v", err)
		}
		if len(owners) != 1 {
			t.Fatalf("owners after failed restore = %d, want 1", len(owners))
		}

		f.clock.Advance(time.Minute)
		if err := f.ctrl.Restore(info.Path, "right"); err != nil {
			t.Fatalf("Restore() with right passphrase error = %v", err)
		}
		owners, _ = f.owners.All()
		if len(owners) != 1 || owners[0].Name != "Encrypted State" {
			t.Errorf("owners after restore = %+v", owners)
		}
	})

	t.Run("missing archive fails before anything happens", func(t *testing.T) {
		f := newBackupFixture(t)

		if err := f.ctrl.Restore(filepath.Join(f.backupTo, "nope.db"), ""); err == nil {
			t.Error("Restore() of missing archive expected error, got nil")
		}
	})
}

func TestBackupController_Cleanup(t *testing.T) {
	f := newBackupFixture(t)

	for i := 0; i < 5; i++ {
		if _, err := f.ctrl.Create(rem.BackupOptions{}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		f.clock.Advance(time.Minute)
	}

	removed, err := f.ctrl.Cleanup(2)
	if err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}
	if removed != 3 {
		t.Errorf("Cleanup() removed = %d, want 3", removed)
	}

	infos, err := f.ctrl.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("List() after cleanup = %d, want 2", len(infos))
	}
	// The two newest survive.
	wantNewest := f.clock.Now().Add(-time.Minute)
	if !infos[0].CreatedAt.Equal(wantNewest) {
		t.Errorf("newest survivor = %v, want %v", infos[0].CreatedAt, wantNewest)
	}

	// Sidecars of removed archives are gone too.
	entries, err := os.ReadDir(f.backupTo)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 4 {
		t.Errorf("backup dir holds %d files after cleanup, want 2 archives + 2 sidecars", len(entries))
	}
}

func TestBackupController_ExportJSON(t *testing.T) {
	f := newBackupFixture(t)

	if err := f.owners.Create(&rem.Owner{Name: "Exported Owner", Phone: "555-0101"}); err != nil {
		t.Fatalf("Create() owner error = %v", err)
	}
	// A row with a genuine NULL: it must export as null, not "".
	if err := f.store.ExecScript(`INSERT INTO owners (code, name, phone, note, created_at) VALUES ('NP01', 'No Phone', NULL, '', '2024-03-20 14:00:00');`); err != nil {
		t.Fatalf("ExecScript() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "export.json")
	if err := f.ctrl.ExportJSON(path); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	var doc map[string][]map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decoding export: %v", err)
	}
	rows, ok := doc["owners"]
	if !ok || len(rows) != 2 {
		t.Fatalf("owners rows = %d, want 2", len(rows))
	}
	for _, row := range rows {
		if row["code"] == "NP01" {
			if v, present := row["phone"]; !present || v != nil {
				t.Errorf("NULL phone exported as %v, want null", v)
			}
		} else {
			if row["phone"] != "555-0101" {
				t.Errorf("phone exported as %v, want string", row["phone"])
			}
		}
	}
}

func TestBackupController_ExportSQL(t *testing.T) {
	f := newBackupFixture(t)

	if err := f.owners.Create(&rem.Owner{Name: "Miles O'Brien"}); err != nil {
		t.Fatalf("Create() owner error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "export.sql")
	if err := f.ctrl.ExportSQL(path); err != nil {
		t.Fatalf("ExportSQL() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	script := string(data)
	if !strings.Contains(script, "Miles O''Brien") {
		t.Error("embedded quote not doubled in SQL export")
	}
	if !strings.Contains(script, `INSERT INTO "owners"`) {
		t.Error("export lacks owners INSERT statements")
	}
}

func TestBackupController_ImportJSON(t *testing.T) {
	t.Run("tolerates bad rows and counts them", func(t *testing.T) {
		f := newBackupFixture(t)

		doc := map[string][]map[string]any{
			"owners": {
				{"code": "GOOD", "name": "Good Row", "phone": "", "note": "", "created_at": "2024-03-20 14:00:00"},
				{"code": "BAD1", "name": "Bad Row", "bogus; DROP TABLE": "x"},
			},
			"ghost_table": {
				{"code": "NOPE"},
			},
		}
		data, _ := json.Marshal(doc)
		path := filepath.Join(t.TempDir(), "import.json")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}

		summary, err := f.ctrl.ImportJSON(path)
		if err != nil {
			t.Fatalf("ImportJSON() error = %v", err)
		}
		if summary.Imported != 1 || summary.Skipped != 1 {
			t.Errorf("summary = %+v, want 1 imported, 1 skipped", summary)
		}

		got, err := f.store.GetOwner("GOOD")
		if err != nil {
			t.Fatalf("GetOwner() error = %v", err)
		}
		if got == nil || got.Name != "Good Row" {
			t.Errorf("imported owner = %+v", got)
		}
	})

	t.Run("upserts by primary key", func(t *testing.T) {
		f := newBackupFixture(t)

		existing := &rem.Owner{Code: "UP01", Name: "Original"}
		if err := f.owners.Create(existing); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		doc := map[string][]map[string]any{
			"owners": {
				{"code": "UP01", "name": "Replaced", "phone": "", "note": "", "created_at": "2024-03-20 14:00:00"},
			},
		}
		data, _ := json.Marshal(doc)
		path := filepath.Join(t.TempDir(), "import.json")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}

		if _, err := f.ctrl.ImportJSON(path); err != nil {
			t.Fatalf("ImportJSON() error = %v", err)
		}
		got, _ := f.store.GetOwner("UP01")
		if got == nil || got.Name != "Replaced" {
			t.Errorf("owner after upsert = %+v, want name Replaced", got)
		}
	})
}

func TestBackupController_ImportSQL(t *testing.T) {
	f := newBackupFixture(t)

	script := `INSERT INTO owners (code, name, phone, note, created_at) VALUES ('SQ01', 'From Script', '', '', '2024-03-20 14:00:00');`
	path := filepath.Join(t.TempDir(), "import.sql")
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	summary, err := f.ctrl.Import(path)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if summary != nil {
		t.Errorf("Import() of SQL returned summary %+v, want nil", summary)
	}
	got, err := f.store.GetOwner("SQ01")
	if err != nil {
		t.Fatalf("GetOwner() error = %v", err)
	}
	if got == nil || got.Name != "From Script" {
		t.Errorf("owner from script = %+v", got)
	}

	t.Run("unsupported extension is refused", func(t *testing.T) {
		if _, err := f.ctrl.Import("data.xml"); err == nil {
			t.Error("Import() of .xml expected error, got nil")
		}
	})
}
