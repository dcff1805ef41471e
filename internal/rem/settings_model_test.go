package rem_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"rem-go/internal/fs"
	"rem-go/internal/rem"
	"rem-go/internal/testutil"
)

func newSettingsModel(t *testing.T) (*rem.SettingsModel, *testutil.MemorySettingsStore) {
	t.Helper()
	store := testutil.NewMemorySettingsStore()
	model := rem.NewSettingsModel(store, fs.NewOSFilesystem(), rem.NewNopLogger())
	return model, store
}

func TestSettingsModel_Load(t *testing.T) {
	t.Run("empty store yields the defaults", func(t *testing.T) {
		model, _ := newSettingsModel(t)

		merged, err := model.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		defaults := rem.DefaultSettings()
		if len(merged) != len(defaults) {
			t.Errorf("Load() returned %d keys, want %d", len(merged), len(defaults))
		}
		if merged.String("theme") != "light" {
			t.Errorf("theme = %q, want default light", merged.String("theme"))
		}
	})

	t.Run("persisted overrides win over defaults", func(t *testing.T) {
		model, store := newSettingsModel(t)

		if err := store.Write(map[string]any{"theme": "dark"}); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		merged, err := model.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if merged.String("theme") != "dark" {
			t.Errorf("theme = %q, want persisted dark", merged.String("theme"))
		}
		// Keys the file is silent on still come back with their defaults.
		if merged.Int("window_width") != 1200 {
			t.Errorf("window_width = %d, want default 1200", merged.Int("window_width"))
		}
	})

	t.Run("unknown persisted keys are dropped", func(t *testing.T) {
		model, store := newSettingsModel(t)

		if err := store.Write(map[string]any{"legacy_flag": true, "theme": "dark"}); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		merged, err := model.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if _, present := merged["legacy_flag"]; present {
			t.Error("unknown key survived the merge")
		}
	})
}

func TestSettingsModel_Update(t *testing.T) {
	t.Run("persists the full merged mapping", func(t *testing.T) {
		model, store := newSettingsModel(t)

		if err := model.Update("theme", "dark"); err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		persisted, _ := store.Read()
		if len(persisted) != len(rem.DefaultSettings()) {
			t.Errorf("persisted %d keys, want the full mapping of %d", len(persisted), len(rem.DefaultSettings()))
		}
		if persisted["theme"] != "dark" {
			t.Errorf("persisted theme = %v, want dark", persisted["theme"])
		}
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		model, _ := newSettingsModel(t)

		if err := model.Update("no_such_key", "x"); err == nil {
			t.Error("Update() with unknown key expected error, got nil")
		}
	})

	t.Run("validates value kinds", func(t *testing.T) {
		model, _ := newSettingsModel(t)

		tests := []struct {
			key   string
			value any
		}{
			{"decimal_places", "two"},
			{"decimal_places", 2.5},
			{"auto_save", "yes"},
			{"company_code", 7},
			{"company_code", "  "},
		}
		for _, tt := range tests {
			if err := model.Update(tt.key, tt.value); err == nil {
				t.Errorf("Update(%s, %v) expected error, got nil", tt.key, tt.value)
			}
		}
	})

	t.Run("integral floats are accepted for int keys", func(t *testing.T) {
		model, _ := newSettingsModel(t)

		// JSON decoding produces float64 for all numbers.
		if err := model.Update("decimal_places", float64(3)); err != nil {
			t.Errorf("Update(decimal_places, 3.0) error = %v", err)
		}
	})

	t.Run("creates the directory for path-valued keys", func(t *testing.T) {
		model, _ := newSettingsModel(t)

		dir := filepath.Join(t.TempDir(), "photos")
		if err := model.Update(rem.SettingPhotoSavePath, dir); err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
			t.Errorf("photo directory not created: %v", err)
		}
	})
}

func TestSettingsModel_UpdateMany(t *testing.T) {
	t.Run("all pairs apply together", func(t *testing.T) {
		model, _ := newSettingsModel(t)

		err := model.UpdateMany(map[string]any{"theme": "dark", "window_width": 1600})
		if err != nil {
			t.Fatalf("UpdateMany() error = %v", err)
		}
		merged, _ := model.Load()
		if merged.String("theme") != "dark" || merged.Int("window_width") != 1600 {
			t.Errorf("merged = theme %q width %d", merged.String("theme"), merged.Int("window_width"))
		}
	})

	t.Run("one invalid pair aborts everything", func(t *testing.T) {
		model, _ := newSettingsModel(t)

		err := model.UpdateMany(map[string]any{"theme": "dark", "decimal_places": "lots"})
		if err == nil {
			t.Fatal("UpdateMany() with invalid pair expected error, got nil")
		}
		merged, _ := model.Load()
		if merged.String("theme") != "light" {
			t.Errorf("theme = %q after failed batch, want untouched default", merged.String("theme"))
		}
	})
}

func TestSettingsModel_Reset(t *testing.T) {
	model, store := newSettingsModel(t)

	if err := model.Update("theme", "dark"); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if err := model.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	persisted, _ := store.Read()
	if persisted["theme"] != "light" {
		t.Errorf("theme after reset = %v, want light", persisted["theme"])
	}
}

func TestSettingsModel_ExportImport(t *testing.T) {
	t.Run("round trip preserves overrides", func(t *testing.T) {
		model, _ := newSettingsModel(t)

		// Point the directory-valued keys at temp paths so the import's
		// side-effect provisioning stays inside the test sandbox.
		base := t.TempDir()
		err := model.UpdateMany(map[string]any{
			"currency":                 "EUR",
			rem.SettingPhotoSavePath:   filepath.Join(base, "photos"),
			rem.SettingBackupDirectory: filepath.Join(base, "backups"),
		})
		if err != nil {
			t.Fatalf("UpdateMany() error = %v", err)
		}
		path := filepath.Join(t.TempDir(), "settings.json")
		if err := model.Export(path); err != nil {
			t.Fatalf("Export() error = %v", err)
		}

		fresh, _ := newSettingsModel(t)
		if err := fresh.Import(path); err != nil {
			t.Fatalf("Import() error = %v", err)
		}
		merged, _ := fresh.Load()
		if merged.String("currency") != "EUR" {
			t.Errorf("currency after import = %q, want EUR", merged.String("currency"))
		}
	})

	t.Run("unknown keys in the import are dropped silently", func(t *testing.T) {
		model, _ := newSettingsModel(t)

		doc := map[string]any{"theme": "dark", "injected": "value"}
		data, _ := json.Marshal(doc)
		path := filepath.Join(t.TempDir(), "incoming.json")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}

		if err := model.Import(path); err != nil {
			t.Fatalf("Import() error = %v", err)
		}
		merged, _ := model.Load()
		if merged.String("theme") != "dark" {
			t.Errorf("theme = %q, want dark", merged.String("theme"))
		}
		if _, present := merged["injected"]; present {
			t.Error("unknown key survived the import")
		}
	})

	t.Run("malformed import file fails", func(t *testing.T) {
		model, _ := newSettingsModel(t)

		path := filepath.Join(t.TempDir(), "broken.json")
		if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		if err := model.Import(path); err == nil {
			t.Error("Import() of malformed file expected error, got nil")
		}
	})
}
