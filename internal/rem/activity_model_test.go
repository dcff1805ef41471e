package rem_test

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"rem-go/internal/fs"
	"rem-go/internal/rem"
	"rem-go/internal/testutil"
)

func newActivityModel(t *testing.T, clock rem.Clock) *rem.ActivityModel {
	t.Helper()
	return rem.NewActivityModel(testutil.NewMemoryActivityStore(), fs.NewOSFilesystem(), clock, rem.NewNopLogger())
}

func TestActivityModel_Record(t *testing.T) {
	t.Run("newest entry comes first", func(t *testing.T) {
		clock := testutil.FixedClock()
		model := newActivityModel(t, clock)

		for i := 0; i < 3; i++ {
			if err := model.Record(rem.ActionOwnerCreated, fmt.Sprintf("entry %d", i), nil); err != nil {
				t.Fatalf("Record() error = %v", err)
			}
			clock.Advance(time.Minute)
		}

		entries, err := model.Recent(0)
		if err != nil {
			t.Fatalf("Recent() error = %v", err)
		}
		if len(entries) != 3 {
			t.Fatalf("Recent() returned %d entries, want 3", len(entries))
		}
		if entries[0].Description != "entry 2" {
			t.Errorf("first entry = %q, want the most recent", entries[0].Description)
		}
	})

	t.Run("retention is capped", func(t *testing.T) {
		clock := testutil.FixedClock()
		model := newActivityModel(t, clock)

		for i := 0; i < rem.MaxActivityEntries+20; i++ {
			if err := model.Record(rem.ActionPropertyUpdated, fmt.Sprintf("entry %d", i), nil); err != nil {
				t.Fatalf("Record() error = %v", err)
			}
			clock.Advance(time.Second)
		}

		entries, err := model.Recent(0)
		if err != nil {
			t.Fatalf("Recent() error = %v", err)
		}
		if len(entries) != rem.MaxActivityEntries {
			t.Errorf("retained %d entries, want cap of %d", len(entries), rem.MaxActivityEntries)
		}
		// The survivors are the newest ones.
		want := fmt.Sprintf("entry %d", rem.MaxActivityEntries+19)
		if entries[0].Description != want {
			t.Errorf("newest retained entry = %q, want %q", entries[0].Description, want)
		}
	})

	t.Run("records the actor", func(t *testing.T) {
		model := newActivityModel(t, testutil.FixedClock())

		if err := model.Record(rem.ActionDataExport, "export", nil); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
		entries, _ := model.Recent(1)
		if entries[0].User != rem.ActivityUser {
			t.Errorf("user = %q, want %q", entries[0].User, rem.ActivityUser)
		}
	})
}

func TestActivityModel_Queries(t *testing.T) {
	clock := testutil.FixedClock()
	model := newActivityModel(t, clock)

	if err := model.Record(rem.ActionOwnerCreated, "owner one", nil); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	clock.Advance(time.Hour)
	if err := model.Record(rem.ActionPropertyCreated, "property one", nil); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	clock.Advance(time.Hour)
	if err := model.Record(rem.ActionOwnerCreated, "owner two", nil); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	t.Run("recent honors the limit", func(t *testing.T) {
		entries, err := model.Recent(2)
		if err != nil {
			t.Fatalf("Recent() error = %v", err)
		}
		if len(entries) != 2 {
			t.Errorf("Recent(2) = %d entries, want 2", len(entries))
		}
	})

	t.Run("by type filters", func(t *testing.T) {
		entries, err := model.ByType(rem.ActionOwnerCreated)
		if err != nil {
			t.Fatalf("ByType() error = %v", err)
		}
		if len(entries) != 2 {
			t.Errorf("ByType(owner_created) = %d entries, want 2", len(entries))
		}
	})

	t.Run("by date range is inclusive", func(t *testing.T) {
		from := testutil.FixedClock().Now()
		entries, err := model.ByDateRange(from, from.Add(time.Hour))
		if err != nil {
			t.Fatalf("ByDateRange() error = %v", err)
		}
		if len(entries) != 2 {
			t.Errorf("ByDateRange() = %d entries, want the first two", len(entries))
		}
	})

	t.Run("delete by timestamp", func(t *testing.T) {
		entries, _ := model.Recent(1)
		if err := model.Delete(entries[0].Timestamp); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		remaining, _ := model.Recent(0)
		if len(remaining) != 2 {
			t.Errorf("entries after delete = %d, want 2", len(remaining))
		}

		err := model.Delete("2099-01-01T00:00:00Z")
		if !errors.Is(err, rem.ErrNotFound) {
			t.Errorf("Delete() unknown timestamp error = %v, want ErrNotFound", err)
		}
	})
}

func TestActivityModel_Clear(t *testing.T) {
	model := newActivityModel(t, testutil.FixedClock())

	for i := 0; i < 5; i++ {
		if err := model.Record(rem.ActionSettingsUpdated, "change", nil); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	removed, err := model.Clear()
	if err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if removed != 5 {
		t.Errorf("Clear() removed = %d, want 5", removed)
	}
	entries, _ := model.Recent(0)
	if len(entries) != 0 {
		t.Errorf("entries after clear = %d, want 0", len(entries))
	}
}

func TestActivityModel_Statistics(t *testing.T) {
	clock := testutil.FixedClock()

	// One entry ten days back, one yesterday, one right now, all through
	// models sharing the same store but carrying different clocks.
	store := testutil.NewMemoryActivityStore()
	tenDaysAgo := rem.NewActivityModel(store, fs.NewOSFilesystem(), testutil.NewStubClock(clock.Now().AddDate(0, 0, -10)), rem.NewNopLogger())
	yesterday := rem.NewActivityModel(store, fs.NewOSFilesystem(), testutil.NewStubClock(clock.Now().AddDate(0, 0, -1)), rem.NewNopLogger())
	current := rem.NewActivityModel(store, fs.NewOSFilesystem(), clock, rem.NewNopLogger())

	if err := tenDaysAgo.Record(rem.ActionOwnerCreated, "old", nil); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := yesterday.Record(rem.ActionOwnerCreated, "recent", nil); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := current.Record(rem.ActionPropertyCreated, "now", nil); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	stats, err := current.Statistics()
	if err != nil {
		t.Fatalf("Statistics() error = %v", err)
	}
	if stats.Total != 3 {
		t.Errorf("Total = %d, want 3", stats.Total)
	}
	if stats.Today != 1 {
		t.Errorf("Today = %d, want 1", stats.Today)
	}
	if stats.ThisWeek != 2 {
		t.Errorf("ThisWeek = %d, want 2 (the ten-day-old entry ages out)", stats.ThisWeek)
	}
	if stats.ByType[rem.ActionOwnerCreated] != 2 {
		t.Errorf("ByType[owner_created] = %d, want 2", stats.ByType[rem.ActionOwnerCreated])
	}
}

func TestActivityModel_Export(t *testing.T) {
	model := newActivityModel(t, testutil.FixedClock())

	if err := model.Record(rem.ActionBackupCreated, "backup", map[string]any{"size": 42}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "activity.json")
	if err := model.Export(path); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	data, err := fs.NewOSFilesystem().ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(data) == 0 {
		t.Error("export file is empty")
	}
}
