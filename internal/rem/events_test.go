package rem_test

import (
	"testing"

	"rem-go/internal/rem"
	"rem-go/internal/testutil"
)

// recordingSubscriber collects events and optionally runs a hook on each one.
type recordingSubscriber struct {
	name   string
	events []rem.Event
	hook   func(e rem.Event)
}

func (s *recordingSubscriber) OnModelChanged(e rem.Event) {
	s.events = append(s.events, e)
	if s.hook != nil {
		s.hook(e)
	}
}

func newOwnerModel(t *testing.T) *rem.OwnerModel {
	t.Helper()
	store := testutil.NewTestStore(t)
	gen := rem.NewCodeGenerator(store)
	return rem.NewOwnerModel(store, gen, testutil.FixedClock(), rem.NewNopLogger())
}

func TestNotification_Ordering(t *testing.T) {
	model := newOwnerModel(t)

	var order []string
	first := &recordingSubscriber{name: "first", hook: func(rem.Event) { order = append(order, "first") }}
	second := &recordingSubscriber{name: "second", hook: func(rem.Event) { order = append(order, "second") }}
	model.Subscribe(first)
	model.Subscribe(second)

	if err := model.Create(&rem.Owner{Name: "Jordan Example"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("notification order = %v, want [first second]", order)
	}
	if len(first.events) != 1 || first.events[0].Kind != rem.EventOwnerCreated {
		t.Errorf("first subscriber events = %+v, want one owner_created", first.events)
	}
}

func TestNotification_DuplicateSubscribe(t *testing.T) {
	model := newOwnerModel(t)

	sub := &recordingSubscriber{}
	model.Subscribe(sub)
	model.Subscribe(sub)

	if err := model.Create(&rem.Owner{Name: "Solo Subscriber"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(sub.events) != 1 {
		t.Errorf("subscriber received %d events, want 1", len(sub.events))
	}
}

func TestNotification_AfterCommit(t *testing.T) {
	store := testutil.NewTestStore(t)
	gen := rem.NewCodeGenerator(store)
	model := rem.NewOwnerModel(store, gen, testutil.FixedClock(), rem.NewNopLogger())

	// Reading the record from inside the handler must observe the new state:
	// the store write commits before any notification goes out.
	var observed *rem.Owner
	sub := &recordingSubscriber{hook: func(e rem.Event) {
		o, err := store.GetOwner(e.Key)
		if err != nil {
			t.Errorf("GetOwner(%s) inside notification error = %v", e.Key, err)
			return
		}
		observed = o
	}}
	model.Subscribe(sub)

	if err := model.Create(&rem.Owner{Name: "Visible Immediately"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if observed == nil {
		t.Fatal("record not visible inside notification handler")
	}
	if observed.Name != "Visible Immediately" {
		t.Errorf("observed name = %q, want %q", observed.Name, "Visible Immediately")
	}
}

func TestNotification_NoEventOnFailedMutation(t *testing.T) {
	model := newOwnerModel(t)

	sub := &recordingSubscriber{}
	model.Subscribe(sub)

	if err := model.Create(&rem.Owner{Name: "   "}); err == nil {
		t.Fatal("Create() with blank name expected error, got nil")
	}
	if len(sub.events) != 0 {
		t.Errorf("subscriber received %d events after failed mutation, want 0", len(sub.events))
	}
}

func TestNotification_UnsubscribeDuringNotify(t *testing.T) {
	model := newOwnerModel(t)

	var later *recordingSubscriber
	first := &recordingSubscriber{}
	first.hook = func(rem.Event) {
		model.Unsubscribe(later)
	}
	later = &recordingSubscriber{}

	model.Subscribe(first)
	model.Subscribe(later)

	// The in-flight notification iterates over a snapshot, so the removed
	// subscriber still sees this event but none afterwards.
	if err := model.Create(&rem.Owner{Name: "Snapshot One"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(later.events) != 1 {
		t.Fatalf("removed subscriber events = %d, want 1 (current event still delivered)", len(later.events))
	}

	if err := model.Create(&rem.Owner{Name: "Snapshot Two"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(later.events) != 1 {
		t.Errorf("removed subscriber events = %d after second mutation, want 1", len(later.events))
	}
	if len(first.events) != 2 {
		t.Errorf("remaining subscriber events = %d, want 2", len(first.events))
	}
}
