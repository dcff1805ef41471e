package rem_test

import (
	"errors"
	"testing"

	"rem-go/internal/fs"
	"rem-go/internal/rem"
	"rem-go/internal/testutil"
)

type propertyControllerFixture struct {
	ctrl       *rem.PropertyController
	properties *rem.PropertyModel
	activity   *rem.ActivityModel
	photos     *testutil.StubPhotoManager
	view       *testutil.SpyView
	owner      *rem.Owner
}

func newPropertyControllerFixture(t *testing.T) *propertyControllerFixture {
	t.Helper()
	store := testutil.NewTestStore(t)
	gen := rem.NewCodeGenerator(store)
	clock := testutil.FixedClock()
	logger := rem.NewNopLogger()
	osfs := fs.NewOSFilesystem()
	view := testutil.NewSpyView()

	owners := rem.NewOwnerModel(store, gen, clock, logger)
	properties := rem.NewPropertyModel(store, gen, clock, logger)
	activity := rem.NewActivityModel(testutil.NewMemoryActivityStore(), osfs, clock, logger)
	settings := rem.NewSettingsModel(testutil.NewMemorySettingsStore(), osfs, logger)
	photos := testutil.NewStubPhotoManager()

	owner := &rem.Owner{Name: "Fixture Owner"}
	if err := owners.Create(owner); err != nil {
		t.Fatalf("Create() owner error = %v", err)
	}

	ctrl := rem.NewPropertyController(properties, activity, photos, settings, view, logger)
	t.Cleanup(ctrl.Close)
	return &propertyControllerFixture{
		ctrl:       ctrl,
		properties: properties,
		activity:   activity,
		photos:     photos,
		view:       view,
		owner:      owner,
	}
}

func (f *propertyControllerFixture) create(t *testing.T) *rem.Property {
	t.Helper()
	p := validProperty(f.owner.Code)
	if err := f.ctrl.Create(p); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return p
}

func TestPropertyController_Create(t *testing.T) {
	f := newPropertyControllerFixture(t)

	p := f.create(t)
	if f.view.Refreshes != 1 {
		t.Errorf("Refreshes = %d, want 1", f.view.Refreshes)
	}
	entries, err := f.activity.ByType(rem.ActionPropertyCreated)
	if err != nil {
		t.Fatalf("ByType() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Details["code"] != p.Code {
		t.Errorf("activity = %+v, want one entry carrying the code", entries)
	}
}

func TestPropertyController_AddPhoto(t *testing.T) {
	t.Run("imports and attaches the photo", func(t *testing.T) {
		f := newPropertyControllerFixture(t)
		p := f.create(t)

		filename, err := f.ctrl.AddPhoto(p.Code, "source.jpg")
		if err != nil {
			t.Fatalf("AddPhoto() error = %v", err)
		}
		got, err := f.properties.Get(p.Code)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if len(got.Photos) != 1 || got.Photos[0] != filename {
			t.Errorf("Photos = %v, want [%s]", got.Photos, filename)
		}
		entries, _ := f.activity.ByType(rem.ActionPhotosAdded)
		if len(entries) != 1 {
			t.Errorf("photos_added entries = %d, want 1", len(entries))
		}
	})

	t.Run("unknown property is refused before any import", func(t *testing.T) {
		f := newPropertyControllerFixture(t)

		_, err := f.ctrl.AddPhoto("Z9991234", "source.jpg")
		if !errors.Is(err, rem.ErrNotFound) {
			t.Fatalf("AddPhoto() error = %v, want ErrNotFound", err)
		}
		if len(f.photos.Saved) != 0 {
			t.Errorf("photo imported for a missing property: %v", f.photos.Saved)
		}
	})

	t.Run("import failure leaves the record untouched", func(t *testing.T) {
		f := newPropertyControllerFixture(t)
		p := f.create(t)
		f.photos.SaveErr = errors.New("unsupported image format")

		if _, err := f.ctrl.AddPhoto(p.Code, "source.txt"); err == nil {
			t.Fatal("AddPhoto() with failing import expected error, got nil")
		}
		got, _ := f.properties.Get(p.Code)
		if len(got.Photos) != 0 {
			t.Errorf("Photos = %v, want none", got.Photos)
		}
		if len(f.view.Errors) == 0 {
			t.Error("view did not receive the failure message")
		}
	})
}

func TestPropertyController_RemovePhoto(t *testing.T) {
	f := newPropertyControllerFixture(t)
	p := f.create(t)

	filename, err := f.ctrl.AddPhoto(p.Code, "source.jpg")
	if err != nil {
		t.Fatalf("AddPhoto() error = %v", err)
	}
	if err := f.ctrl.RemovePhoto(p.Code, filename); err != nil {
		t.Fatalf("RemovePhoto() error = %v", err)
	}

	got, _ := f.properties.Get(p.Code)
	if len(got.Photos) != 0 {
		t.Errorf("Photos = %v, want none", got.Photos)
	}
	if len(f.photos.Removed) != 1 || f.photos.Removed[0] != filename {
		t.Errorf("Removed = %v, want [%s]", f.photos.Removed, filename)
	}
}

func TestPropertyController_Delete(t *testing.T) {
	f := newPropertyControllerFixture(t)
	p := f.create(t)

	first, err := f.ctrl.AddPhoto(p.Code, "a.jpg")
	if err != nil {
		t.Fatalf("AddPhoto() error = %v", err)
	}
	second, err := f.ctrl.AddPhoto(p.Code, "b.jpg")
	if err != nil {
		t.Fatalf("AddPhoto() error = %v", err)
	}

	if err := f.ctrl.Delete(p.Code); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	got, _ := f.properties.Get(p.Code)
	if got != nil {
		t.Error("property still present after Delete")
	}
	// Both photo files are cleaned up with the record.
	if len(f.photos.Removed) != 2 || f.photos.Removed[0] != first || f.photos.Removed[1] != second {
		t.Errorf("Removed = %v, want [%s %s]", f.photos.Removed, first, second)
	}

	if err := f.ctrl.Delete(p.Code); !errors.Is(err, rem.ErrNotFound) {
		t.Errorf("Delete() of missing property error = %v, want ErrNotFound", err)
	}
}

func TestPropertyController_SetStatus(t *testing.T) {
	f := newPropertyControllerFixture(t)
	p := f.create(t)

	if err := f.ctrl.SetStatus(p.Code, "Sold"); err != nil {
		t.Fatalf("SetStatus() error = %v", err)
	}
	got, _ := f.properties.Get(p.Code)
	if got.Status != "Sold" {
		t.Errorf("Status = %q, want Sold", got.Status)
	}

	if err := f.ctrl.SetStatus(p.Code, "Haunted"); err == nil {
		t.Error("SetStatus() with unknown status expected error, got nil")
	}
}

func TestPropertyController_Refresh(t *testing.T) {
	f := newPropertyControllerFixture(t)
	p := f.create(t)

	if err := f.ctrl.Refresh(); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	got := f.view.LastProperties()
	if len(got) != 1 || got[0].Code != p.Code {
		t.Errorf("view properties = %+v, want the created property", got)
	}
}
