package rem

// EventKind tags a model change notification.
type EventKind string

const (
	EventOwnerCreated    EventKind = "owner_created"
	EventOwnerUpdated    EventKind = "owner_updated"
	EventOwnerDeleted    EventKind = "owner_deleted"
	EventPropertyCreated EventKind = "property_created"
	EventPropertyUpdated EventKind = "property_updated"
	EventPropertyDeleted EventKind = "property_deleted"
	EventSettingsUpdated EventKind = "settings_updated"
	EventSettingsReset   EventKind = "settings_reset"
)

// Event describes a committed model mutation. Key is the affected record's
// primary key (owner code, property code, or setting name).
type Event struct {
	Kind EventKind
	Key  string
}

// Subscriber receives synchronous change notifications from a model.
// Implementations must be cheap and idempotent: a notification means the
// mutation is already durably committed, so re-reading the record inside
// the handler observes the new state.
type Subscriber interface {
	OnModelChanged(e Event)
}

// notifier maintains an ordered subscriber list for a model. Subscribers are
// invoked in registration order, exactly once per event, and only after the
// underlying mutation committed. It is embedded by the models, which call
// notify from their mutation paths.
//
// The model does not own subscriber lifetimes: a subscriber that goes away
// must Unsubscribe itself. Unsubscribe is safe to call from inside a
// notification because notify iterates over a snapshot of the list.
type notifier struct {
	subs []Subscriber
}

// Subscribe registers s for change notifications. Registering the same
// subscriber twice is a no-op.
func (n *notifier) Subscribe(s Subscriber) {
	for _, existing := range n.subs {
		if existing == s {
			return
		}
	}
	n.subs = append(n.subs, s)
}

// Unsubscribe removes s from the subscriber list. Unknown subscribers are
// ignored.
func (n *notifier) Unsubscribe(s Subscriber) {
	for i, existing := range n.subs {
		if existing == s {
			n.subs = append(n.subs[:i], n.subs[i+1:]...)
			return
		}
	}
}

// notify delivers e to every subscriber registered at the time of the call.
func (n *notifier) notify(e Event) {
	snapshot := make([]Subscriber, len(n.subs))
	copy(snapshot, n.subs)
	for _, s := range snapshot {
		s.OnModelChanged(e)
	}
}
