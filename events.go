package libevents

import (
	"sort"

	"github.com/google/uuid"
)

// allEvent is the pseudo-event whose handlers receive every triggered event.
const allEvent = "all"

type (
	// HandlerFunc is run when a subscribed event fires. A returned error aborts the
	// trigger call and is handed back to its caller.
	HandlerFunc func(ev *Event) error

	// Callback is a subscribable handler. Callbacks are matched by identity in Off and
	// StopListening, so keep the pointer around to unsubscribe later.
	// A Callback without a function can be subscribed but fails with an InvocationError
	// when its event fires.
	Callback struct {
		fn HandlerFunc
	}

	// Event is what a handler receives.
	Event struct {
		// Name is the concrete event name, also for handlers bound to "all".
		Name string
		// Args are the extra arguments passed to Trigger.
		Args []any
		// Context is the context the handler was bound with, or the emitter when none was given.
		// Handlers bound through ListenTo receive the listener.
		Context any
		// Emitter is the object Trigger was called on.
		Emitter *Events
	}

	// Emitter is implemented by every type embedding Events.
	Emitter interface {
		emitter() *Events
	}

	// Events holds an object's event registry and its listening relationships.
	// Embed it to turn any type into an emitter and listener. The zero value is ready to
	// use. Events must not be copied after first use and is not safe for concurrent use.
	Events struct {
		id          string
		events      map[string][]*handler
		listeners   map[string]*listening
		listeningTo map[string]*listening
	}

	// EventMap maps event names (or space separated lists of names) to callbacks.
	EventMap map[string]*Callback
)

// NewCallback wraps fn into a Callback.
func NewCallback(fn HandlerFunc) *Callback {
	return &Callback{fn: fn}
}

// Func wraps a handler that cannot fail.
func Func(fn func(ev *Event)) *Callback {
	if fn == nil {
		return &Callback{}
	}
	return &Callback{fn: func(ev *Event) error {
		fn(ev)
		return nil
	}}
}

// Arg returns the i-th trigger argument or nil when there is none.
func (ev *Event) Arg(i int) any {
	if i < 0 || i >= len(ev.Args) {
		return nil
	}
	return ev.Args[i]
}

func (e *Events) emitter() *Events {
	return e
}

// ID returns the identifier used to key this object's listening relationships.
func (e *Events) ID() string {
	if e.id == "" {
		e.id = uuid.NewString()
	}
	return e.id
}

// HasEvents reports whether anything is subscribed to this emitter.
func (e *Events) HasEvents() bool {
	return len(e.events) > 0
}

// EventNames returns the names with at least one subscription, sorted.
func (e *Events) EventNames() []string {
	names := make([]string, 0, len(e.events))
	for name := range e.events {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HandlerCount returns how many handlers are subscribed to name.
func (e *Events) HandlerCount(name string) int {
	return len(e.events[name])
}

// ListeningToCount returns the number of emitters this object listens to.
func (e *Events) ListeningToCount() int {
	return len(e.listeningTo)
}

// ListenerCount returns the number of objects listening to this emitter.
func (e *Events) ListenerCount() int {
	return len(e.listeners)
}
