package database_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"rem-go/internal/config"
	"rem-go/internal/database"
	"rem-go/internal/database/migrations"
	"rem-go/internal/rem"
)

func newStore(t *testing.T) *database.SQLiteStore {
	t.Helper()
	db, err := database.OpenConnection(":memory:")
	if err != nil {
		t.Fatalf("OpenConnection() error = %v", err)
	}
	if err := migrations.Up(db); err != nil {
		t.Fatalf("Up() error = %v", err)
	}
	store := database.NewSQLiteStoreFromDB(db)
	t.Cleanup(func() { store.Close() })
	return store
}

func seedOwner(t *testing.T, store *database.SQLiteStore, code, name string) {
	t.Helper()
	err := store.CreateOwner(&rem.Owner{
		Code:      code,
		Name:      name,
		CreatedAt: time.Date(2024, 3, 20, 14, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreateOwner(%s) error = %v", code, err)
	}
}

func TestSQLiteStore_OwnerNameExists(t *testing.T) {
	store := newStore(t)
	seedOwner(t, store, "AB12", "Morgan Yu")

	tests := []struct {
		name        string
		lookup      string
		excludeCode string
		want        bool
	}{
		{"exact match", "Morgan Yu", "", true},
		{"case folded", "MORGAN YU", "", true},
		{"absent name", "Nobody Here", "", false},
		{"own record excluded", "Morgan Yu", "AB12", false},
		{"other record excluded", "Morgan Yu", "ZZ99", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.OwnerNameExists(tt.lookup, tt.excludeCode)
			if err != nil {
				t.Fatalf("OwnerNameExists() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("OwnerNameExists(%q, %q) = %v, want %v", tt.lookup, tt.excludeCode, got, tt.want)
			}
		})
	}
}

func TestSQLiteStore_UpdateMissingRows(t *testing.T) {
	store := newStore(t)

	if err := store.UpdateOwner(&rem.Owner{Code: "ZZ99", Name: "Ghost"}); !errors.Is(err, rem.ErrNotFound) {
		t.Errorf("UpdateOwner() of missing row error = %v, want ErrNotFound", err)
	}
	if err := store.DeleteOwner("ZZ99"); !errors.Is(err, rem.ErrNotFound) {
		t.Errorf("DeleteOwner() of missing row error = %v, want ErrNotFound", err)
	}
	if err := store.DeleteProperty("Z999XXXX"); !errors.Is(err, rem.ErrNotFound) {
		t.Errorf("DeleteProperty() of missing row error = %v, want ErrNotFound", err)
	}
}

func TestSQLiteStore_PropertyPhotosRoundTrip(t *testing.T) {
	store := newStore(t)
	seedOwner(t, store, "AB12", "Morgan Yu")

	now := time.Date(2024, 3, 20, 14, 0, 0, 0, time.UTC)
	p := &rem.Property{
		Code:      "A1001234",
		OwnerCode: "AB12",
		TypeCode:  "01",
		Address:   "12 Harbor Rd",
		Area:      150,
		Status:    rem.DefaultPropertyStatus,
		Photos:    []string{"A100_20240320_140000_aaaa.jpg", "A100_20240320_140100_bbbb.jpg"},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := store.CreateProperty(p); err != nil {
		t.Fatalf("CreateProperty() error = %v", err)
	}

	got, err := store.GetProperty("A1001234")
	if err != nil {
		t.Fatalf("GetProperty() error = %v", err)
	}
	if len(got.Photos) != 2 || got.Photos[0] != p.Photos[0] || got.Photos[1] != p.Photos[1] {
		t.Errorf("Photos = %v, want %v", got.Photos, p.Photos)
	}
	if got.OwnerName != "Morgan Yu" {
		t.Errorf("OwnerName = %q, want the joined owner name", got.OwnerName)
	}

	// Clearing the photos persists as an empty list, not a ghost entry.
	got.Photos = nil
	if err := store.UpdateProperty(got); err != nil {
		t.Fatalf("UpdateProperty() error = %v", err)
	}
	got, _ = store.GetProperty("A1001234")
	if len(got.Photos) != 0 {
		t.Errorf("Photos after clear = %v, want none", got.Photos)
	}
}

func TestSQLiteStore_DumpTable(t *testing.T) {
	store := newStore(t)
	seedOwner(t, store, "AB12", "Morgan Yu")

	t.Run("returns columns and rows with readable timestamps", func(t *testing.T) {
		columns, rows, err := store.DumpTable("owners")
		if err != nil {
			t.Fatalf("DumpTable() error = %v", err)
		}
		if columns[0] != "code" {
			t.Errorf("columns = %v, want code first", columns)
		}
		if len(rows) != 1 {
			t.Fatalf("rows = %d, want 1", len(rows))
		}
		for i, col := range columns {
			if col != "created_at" {
				continue
			}
			s, ok := rows[0][i].(string)
			if !ok {
				t.Fatalf("created_at dumped as %T, want string", rows[0][i])
			}
			if !strings.HasPrefix(s, "2024-03-20 14:00:00") {
				t.Errorf("created_at = %q", s)
			}
		}
	})

	t.Run("unknown table is refused", func(t *testing.T) {
		if _, _, err := store.DumpTable("sqlite_master"); err == nil {
			t.Error("DumpTable() of schema table expected error, got nil")
		}
	})
}

func TestSQLiteStore_InsertOrReplaceRow(t *testing.T) {
	store := newStore(t)
	seedOwner(t, store, "AB12", "Morgan Yu")

	t.Run("replaces by primary key", func(t *testing.T) {
		err := store.InsertOrReplaceRow("owners",
			[]string{"code", "name", "phone", "note", "created_at"},
			[]any{"AB12", "Replaced", "", "", "2024-03-20 14:00:00"})
		if err != nil {
			t.Fatalf("InsertOrReplaceRow() error = %v", err)
		}
		got, _ := store.GetOwner("AB12")
		if got == nil || got.Name != "Replaced" {
			t.Errorf("owner after upsert = %+v", got)
		}
	})

	t.Run("rejects unknown tables and bad identifiers", func(t *testing.T) {
		if err := store.InsertOrReplaceRow("ghosts", []string{"code"}, []any{"x"}); err == nil {
			t.Error("unknown table expected error, got nil")
		}
		if err := store.InsertOrReplaceRow("owners", []string{`name"; DROP TABLE owners; --`}, []any{"x"}); err == nil {
			t.Error("hostile column name expected error, got nil")
		}
		if err := store.InsertOrReplaceRow("owners", []string{"code", "name"}, []any{"x"}); err == nil {
			t.Error("mismatched columns and values expected error, got nil")
		}
	})
}

func TestSQLiteStore_ExecScript(t *testing.T) {
	store := newStore(t)

	t.Run("applies the whole script", func(t *testing.T) {
		script := `
INSERT INTO owners (code, name, phone, note, created_at) VALUES ('SC01', 'One', '', '', '2024-03-20 14:00:00');
INSERT INTO owners (code, name, phone, note, created_at) VALUES ('SC02', 'Two', '', '', '2024-03-20 14:00:00');
`
		if err := store.ExecScript(script); err != nil {
			t.Fatalf("ExecScript() error = %v", err)
		}
		owners, err := store.ListOwners()
		if err != nil {
			t.Fatalf("ListOwners() error = %v", err)
		}
		if len(owners) != 2 {
			t.Errorf("owners = %d, want 2", len(owners))
		}
	})

	t.Run("a failing statement rolls the script back", func(t *testing.T) {
		script := `
INSERT INTO owners (code, name, phone, note, created_at) VALUES ('RB01', 'Kept?', '', '', '2024-03-20 14:00:00');
INSERT INTO no_such_table (x) VALUES (1);
`
		if err := store.ExecScript(script); err == nil {
			t.Fatal("ExecScript() with broken statement expected error, got nil")
		}
		got, err := store.GetOwner("RB01")
		if err != nil {
			t.Fatalf("GetOwner() error = %v", err)
		}
		if got != nil {
			t.Error("row from failed script survived the rollback")
		}
	})
}

func TestSQLiteStore_Statistics(t *testing.T) {
	store := newStore(t)
	seedOwner(t, store, "AB12", "With Props")
	seedOwner(t, store, "CD34", "Without Props")

	now := time.Date(2024, 3, 20, 14, 0, 0, 0, time.UTC)
	props := []*rem.Property{
		{Code: "A1001234", OwnerCode: "AB12", TypeCode: "01", Address: "a", Area: 100, Status: rem.DefaultPropertyStatus, CreatedAt: now, UpdatedAt: now},
		{Code: "B2001234", OwnerCode: "AB12", TypeCode: "02", Address: "b", Area: 200, Status: rem.DefaultPropertyStatus, CreatedAt: now, UpdatedAt: now},
	}
	for _, p := range props {
		if err := store.CreateProperty(p); err != nil {
			t.Fatalf("CreateProperty() error = %v", err)
		}
	}

	stats, err := store.GetStatistics()
	if err != nil {
		t.Fatalf("GetStatistics() error = %v", err)
	}
	if stats.TotalOwners != 2 || stats.TotalProperties != 2 {
		t.Errorf("totals = %d owners, %d properties, want 2 and 2", stats.TotalOwners, stats.TotalProperties)
	}
	if stats.TotalArea != 300 || stats.AverageArea != 150 {
		t.Errorf("area = %g total, %g average", stats.TotalArea, stats.AverageArea)
	}
	if stats.ByType["01"] != 1 || stats.ByType["02"] != 1 {
		t.Errorf("ByType = %v", stats.ByType)
	}
}

func TestNewStoreFromConfig(t *testing.T) {
	t.Run("sqlite creates the data directory", func(t *testing.T) {
		dir := t.TempDir() + "/data"
		store, err := database.NewStoreFromConfig(config.DatabaseConfig{Type: "sqlite", DataDir: dir})
		if err != nil {
			t.Fatalf("NewStoreFromConfig() error = %v", err)
		}
		defer store.Close()
		if !strings.HasSuffix(store.Path(), "realestate.db") {
			t.Errorf("Path() = %q, want a realestate.db file", store.Path())
		}
	})

	t.Run("sqlite without a data dir is rejected", func(t *testing.T) {
		if _, err := database.NewStoreFromConfig(config.DatabaseConfig{Type: "sqlite"}); err == nil {
			t.Error("NewStoreFromConfig() without data_dir expected error, got nil")
		}
	})

	t.Run("memory", func(t *testing.T) {
		store, err := database.NewStoreFromConfig(config.DatabaseConfig{Type: "memory"})
		if err != nil {
			t.Fatalf("NewStoreFromConfig() error = %v", err)
		}
		defer store.Close()
		if store.Path() != ":memory:" {
			t.Errorf("Path() = %q, want :memory:", store.Path())
		}
	})

	t.Run("unknown type is rejected", func(t *testing.T) {
		if _, err := database.NewStoreFromConfig(config.DatabaseConfig{Type: "postgres"}); err == nil {
			t.Error("NewStoreFromConfig() with unknown type expected error, got nil")
		}
	})
}
