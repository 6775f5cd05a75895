package libevents

import "reflect"

// handler is one subscription record.
type handler struct {
	callback  *Callback
	context   any
	once      bool
	fired     bool
	removed   bool
	listening *listening
}

func (h *handler) invoke(ev *Event) error {
	if h.callback.fn == nil {
		return &InvocationError{Event: ev.Name}
	}
	return h.callback.fn(ev)
}

func (h *handler) matches(callback *Callback, context any) bool {
	if callback != nil && callback != h.callback {
		return false
	}
	if context != nil && !sameContext(context, h.context) {
		return false
	}
	return true
}

// On binds callback to each of the space separated event names. Binding to "all"
// receives every event. A nil callback is ignored.
func (e *Events) On(names string, callback *Callback, context ...any) *Events {
	for _, b := range normalize(named(names), callback, context) {
		e.add(b.name, b.callback, b.context, false, nil)
	}
	return e
}

// OnMap binds every callback of m. See normalize for how context is resolved.
func (e *Events) OnMap(m EventMap, context ...any) *Events {
	for _, b := range normalize(mapped(m), nil, context) {
		e.add(b.name, b.callback, b.context, false, nil)
	}
	return e
}

// Once is like On, but each bound name fires at most once before it is removed.
func (e *Events) Once(names string, callback *Callback, context ...any) *Events {
	for _, b := range normalize(named(names), callback, context) {
		e.add(b.name, b.callback, b.context, true, nil)
	}
	return e
}

// OnceMap is the map form of Once.
func (e *Events) OnceMap(m EventMap, context ...any) *Events {
	for _, b := range normalize(mapped(m), nil, context) {
		e.add(b.name, b.callback, b.context, true, nil)
	}
	return e
}

// Off removes handlers. An empty names removes from every event, a nil callback
// matches any callback and an omitted context matches any context. Off with no
// arguments at all resets the emitter.
func (e *Events) Off(names string, callback *Callback, context ...any) *Events {
	return e.off(named(names), callback, context)
}

// OffMap is the map form of Off.
func (e *Events) OffMap(m EventMap, context ...any) *Events {
	return e.off(mapped(m), nil, context)
}

// Trigger fires every space separated event name in order, then the "all" handlers for
// that name. Dispatch runs on a snapshot of the handlers taken when each name starts
// firing: handlers added meanwhile wait for the next trigger, handlers removed
// meanwhile are skipped. The first handler error stops the trigger and is returned.
func (e *Events) Trigger(names string, args ...any) error {
	if len(e.events) == 0 {
		return nil
	}
	for _, b := range normalize(named(names), nil, nil) {
		if err := e.trigger(b.name, args); err != nil {
			return err
		}
	}
	return nil
}

func (e *Events) trigger(name string, args []any) error {
	handlers := snapshot(e.events[name])
	all := snapshot(e.events[allEvent])

	if err := e.dispatch(name, name, handlers, args); err != nil {
		return err
	}
	return e.dispatch(allEvent, name, all, args)
}

func (e *Events) dispatch(key, name string, handlers []*handler, args []any) error {
	for _, h := range handlers {
		if h.removed {
			continue
		}
		ev := &Event{Name: name, Args: args, Context: h.context, Emitter: e}
		if ev.Context == nil {
			ev.Context = e
		}
		if !h.once {
			if err := h.invoke(ev); err != nil {
				return err
			}
			continue
		}
		if h.fired {
			continue
		}
		h.fired = true
		if err := e.invokeOnce(key, h, ev); err != nil {
			return err
		}
	}
	return nil
}

// invokeOnce runs a once handler and removes it after it returns, so a nested trigger
// of the same event still finds it registered but already fired.
func (e *Events) invokeOnce(key string, h *handler, ev *Event) error {
	defer e.removeHandler(key, h)
	return h.invoke(ev)
}

func (e *Events) add(name string, callback *Callback, context any, once bool, l *listening) {
	if callback == nil {
		return
	}
	if e.events == nil {
		e.events = make(map[string][]*handler)
	}
	e.events[name] = append(e.events[name], &handler{
		callback:  callback,
		context:   context,
		once:      once,
		listening: l,
	})
	if l != nil {
		l.retain()
	}
}

func (e *Events) off(spec eventSpec, callback *Callback, args []any) *Events {
	if len(e.events) == 0 && len(e.listeners) == 0 {
		return e
	}
	for _, b := range normalize(spec, callback, args) {
		e.remove(b.name, b.callback, b.context)
	}
	return e
}

func (e *Events) remove(name string, callback *Callback, context any) {
	if name == "" && callback == nil && context == nil {
		e.reset()
		return
	}

	names := []string{name}
	if name == "" {
		names = e.EventNames()
	}

	for _, n := range names {
		handlers, ok := e.events[n]
		if !ok {
			continue
		}
		var kept []*handler
		for _, h := range handlers {
			if !h.matches(callback, context) {
				kept = append(kept, h)
				continue
			}
			e.detach(h)
		}
		e.store(n, kept)
	}
}

// removeHandler removes exactly h from the key sequence.
func (e *Events) removeHandler(key string, h *handler) {
	if h.removed {
		return
	}
	handlers := e.events[key]
	kept := make([]*handler, 0, len(handlers))
	for _, other := range handlers {
		if other != h {
			kept = append(kept, other)
		}
	}
	e.store(key, kept)
	e.detach(h)
}

// reset drops every handler and every relationship in which e is the emitter.
func (e *Events) reset() {
	for _, handlers := range e.events {
		for _, h := range handlers {
			h.removed = true
		}
	}
	e.events = nil
	for _, l := range e.listeners {
		l.cleanup()
	}
}

// detach marks h dead and releases its relationship.
func (e *Events) detach(h *handler) {
	if h.removed {
		return
	}
	h.removed = true
	if h.listening != nil {
		h.listening.release()
	}
}

// store replaces the sequence for name, pruning the key when it is empty. The old
// slice is never modified so in-flight snapshots stay intact.
func (e *Events) store(name string, handlers []*handler) {
	if len(handlers) == 0 {
		delete(e.events, name)
		return
	}
	if e.events == nil {
		e.events = make(map[string][]*handler)
	}
	e.events[name] = handlers
}

func snapshot(handlers []*handler) []*handler {
	if len(handlers) == 0 {
		return nil
	}
	out := make([]*handler, len(handlers))
	copy(out, handlers)
	return out
}

// sameContext compares two contexts by identity without panicking on values whose
// dynamic type is not comparable.
func sameContext(a, b any) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta == nil || ta.Comparable() {
		return a == b
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch va.Kind() {
	case reflect.Map, reflect.Slice, reflect.Func:
		return va.Pointer() == vb.Pointer()
	}
	return false
}
