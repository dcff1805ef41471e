package rem_test

import (
	"errors"
	"testing"

	"rem-go/internal/rem"
	"rem-go/internal/testutil"
)

func TestOwnerModel_Create(t *testing.T) {
	t.Run("fills in a generated code and creation time", func(t *testing.T) {
		store := testutil.NewTestStore(t)
		clock := testutil.FixedClock()
		model := rem.NewOwnerModel(store, rem.NewCodeGenerator(store), clock, rem.NewNopLogger())

		o := &rem.Owner{Name: "Alex Rivera", Phone: "555-0100"}
		if err := model.Create(o); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if !rem.ValidOwnerCode(o.Code) {
			t.Errorf("generated code = %q, want valid owner code", o.Code)
		}
		if !o.CreatedAt.Equal(clock.Now()) {
			t.Errorf("CreatedAt = %v, want clock time %v", o.CreatedAt, clock.Now())
		}

		got, err := model.Get(o.Code)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got == nil || got.Name != "Alex Rivera" || got.Phone != "555-0100" {
			t.Errorf("Get() = %+v, want stored owner", got)
		}
	})

	t.Run("accepts a caller-supplied valid code", func(t *testing.T) {
		store := testutil.NewTestStore(t)
		model := rem.NewOwnerModel(store, rem.NewCodeGenerator(store), testutil.FixedClock(), rem.NewNopLogger())

		o := &rem.Owner{Code: "XY12", Name: "Coded Owner"}
		if err := model.Create(o); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if o.Code != "XY12" {
			t.Errorf("code = %q, want supplied XY12", o.Code)
		}
	})

	t.Run("rejects a malformed supplied code", func(t *testing.T) {
		store := testutil.NewTestStore(t)
		model := rem.NewOwnerModel(store, rem.NewCodeGenerator(store), testutil.FixedClock(), rem.NewNopLogger())

		if err := model.Create(&rem.Owner{Code: "toolong1", Name: "Bad Code"}); err == nil {
			t.Error("Create() with malformed code expected error, got nil")
		}
	})

	t.Run("rejects a blank name", func(t *testing.T) {
		store := testutil.NewTestStore(t)
		model := rem.NewOwnerModel(store, rem.NewCodeGenerator(store), testutil.FixedClock(), rem.NewNopLogger())

		if err := model.Create(&rem.Owner{Name: "  "}); err == nil {
			t.Error("Create() with blank name expected error, got nil")
		}
	})

	t.Run("rejects a duplicate name case-insensitively", func(t *testing.T) {
		store := testutil.NewTestStore(t)
		model := rem.NewOwnerModel(store, rem.NewCodeGenerator(store), testutil.FixedClock(), rem.NewNopLogger())

		if err := model.Create(&rem.Owner{Name: "Morgan Yu"}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		err := model.Create(&rem.Owner{Name: "MORGAN YU"})
		if !errors.Is(err, rem.ErrDuplicateName) {
			t.Errorf("Create() duplicate error = %v, want ErrDuplicateName", err)
		}
	})

	t.Run("trims surrounding whitespace from the name", func(t *testing.T) {
		store := testutil.NewTestStore(t)
		model := rem.NewOwnerModel(store, rem.NewCodeGenerator(store), testutil.FixedClock(), rem.NewNopLogger())

		o := &rem.Owner{Name: "  Padded Name  "}
		if err := model.Create(o); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if o.Name != "Padded Name" {
			t.Errorf("name = %q, want trimmed", o.Name)
		}
	})
}

func TestOwnerModel_Update(t *testing.T) {
	t.Run("rewrites an existing owner", func(t *testing.T) {
		store := testutil.NewTestStore(t)
		model := rem.NewOwnerModel(store, rem.NewCodeGenerator(store), testutil.FixedClock(), rem.NewNopLogger())

		o := &rem.Owner{Name: "Before Update"}
		if err := model.Create(o); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		o.Name = "After Update"
		o.Phone = "555-0199"
		if err := model.Update(o); err != nil {
			t.Fatalf("Update() error = %v", err)
		}

		got, _ := model.Get(o.Code)
		if got.Name != "After Update" || got.Phone != "555-0199" {
			t.Errorf("Get() after update = %+v", got)
		}
	})

	t.Run("keeps the name when only the holder changes case", func(t *testing.T) {
		store := testutil.NewTestStore(t)
		model := rem.NewOwnerModel(store, rem.NewCodeGenerator(store), testutil.FixedClock(), rem.NewNopLogger())

		o := &rem.Owner{Name: "Same Owner"}
		if err := model.Create(o); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		// Updating an owner to its own name must not trip the duplicate check.
		o.Name = "same owner"
		if err := model.Update(o); err != nil {
			t.Errorf("Update() to own name error = %v", err)
		}
	})

	t.Run("fails for an unknown code", func(t *testing.T) {
		store := testutil.NewTestStore(t)
		model := rem.NewOwnerModel(store, rem.NewCodeGenerator(store), testutil.FixedClock(), rem.NewNopLogger())

		err := model.Update(&rem.Owner{Code: "QQ99", Name: "Ghost"})
		if !errors.Is(err, rem.ErrNotFound) {
			t.Errorf("Update() unknown owner error = %v, want ErrNotFound", err)
		}
	})
}

func TestOwnerModel_Delete(t *testing.T) {
	t.Run("removes an owner without properties", func(t *testing.T) {
		store := testutil.NewTestStore(t)
		model := rem.NewOwnerModel(store, rem.NewCodeGenerator(store), testutil.FixedClock(), rem.NewNopLogger())

		o := &rem.Owner{Name: "Removable"}
		if err := model.Create(o); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if err := model.Delete(o.Code); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		got, err := model.Get(o.Code)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got != nil {
			t.Errorf("Get() after delete = %+v, want nil", got)
		}
	})

	t.Run("refuses while properties reference the owner", func(t *testing.T) {
		store := testutil.NewTestStore(t)
		gen := rem.NewCodeGenerator(store)
		clock := testutil.FixedClock()
		owners := rem.NewOwnerModel(store, gen, clock, rem.NewNopLogger())
		properties := rem.NewPropertyModel(store, gen, clock, rem.NewNopLogger())

		o := &rem.Owner{Name: "Landlord"}
		if err := owners.Create(o); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		p := &rem.Property{OwnerCode: o.Code, TypeCode: "0301", Address: "1 Main St", Area: 120}
		if err := properties.Create(p); err != nil {
			t.Fatalf("Create() property error = %v", err)
		}

		err := owners.Delete(o.Code)
		if !errors.Is(err, rem.ErrOwnerHasProperties) {
			t.Fatalf("Delete() error = %v, want ErrOwnerHasProperties", err)
		}

		// After the property goes away the owner becomes deletable.
		if err := properties.Delete(p.Code); err != nil {
			t.Fatalf("Delete() property error = %v", err)
		}
		if err := owners.Delete(o.Code); err != nil {
			t.Errorf("Delete() after property removal error = %v", err)
		}
	})

	t.Run("fails for an unknown code", func(t *testing.T) {
		store := testutil.NewTestStore(t)
		model := rem.NewOwnerModel(store, rem.NewCodeGenerator(store), testutil.FixedClock(), rem.NewNopLogger())

		err := model.Delete("QQ99")
		if !errors.Is(err, rem.ErrNotFound) {
			t.Errorf("Delete() unknown owner error = %v, want ErrNotFound", err)
		}
	})
}

func TestOwnerModel_Search(t *testing.T) {
	store := testutil.NewTestStore(t)
	model := rem.NewOwnerModel(store, rem.NewCodeGenerator(store), testutil.FixedClock(), rem.NewNopLogger())

	for _, name := range []string{"Ada Lovelace", "Grace Hopper", "Adele Goldberg"} {
		if err := model.Create(&rem.Owner{Name: name}); err != nil {
			t.Fatalf("Create(%s) error = %v", name, err)
		}
	}

	t.Run("matches by name substring", func(t *testing.T) {
		got, err := model.Search("Ad")
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if len(got) != 2 {
			t.Errorf("Search(\"Ad\") returned %d owners, want 2", len(got))
		}
	})

	t.Run("blank term returns everyone", func(t *testing.T) {
		got, err := model.Search("   ")
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if len(got) != 3 {
			t.Errorf("Search(blank) returned %d owners, want 3", len(got))
		}
	})
}

func TestOwnerModel_Statistics(t *testing.T) {
	store := testutil.NewTestStore(t)
	gen := rem.NewCodeGenerator(store)
	clock := testutil.FixedClock()
	owners := rem.NewOwnerModel(store, gen, clock, rem.NewNopLogger())
	properties := rem.NewPropertyModel(store, gen, clock, rem.NewNopLogger())

	with := &rem.Owner{Name: "Has Property"}
	without := &rem.Owner{Name: "No Property"}
	for _, o := range []*rem.Owner{with, without} {
		if err := owners.Create(o); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	if err := properties.Create(&rem.Property{OwnerCode: with.Code, TypeCode: "0301", Address: "2 Oak Ave", Area: 80}); err != nil {
		t.Fatalf("Create() property error = %v", err)
	}

	stats, err := owners.Statistics()
	if err != nil {
		t.Fatalf("Statistics() error = %v", err)
	}
	if stats.Total != 2 || stats.WithProperties != 1 || stats.WithoutProperties != 1 {
		t.Errorf("Statistics() = %+v, want total 2, with 1, without 1", stats)
	}
}
