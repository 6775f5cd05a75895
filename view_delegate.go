package libevents

import (
	stderrors "errors"
	"strings"
	"unicode"
)

// delegatedBinding is one native registration made by a view. handler is the wrapper
// registered on the root element; listener is what the caller passed in.
type delegatedBinding struct {
	eventType string
	selector  string
	listener  *DOMListener
	handler   *DOMListener
}

// Delegate listens for eventType on the root element. With a selector, listener runs
// once for every element between the event target and the root, the root excluded,
// that matches the selector, with ev.DelegateTarget set to that element. Without one it
// runs for every event with ev.DelegateTarget set to the root.
//
// Every call registers a new native listener, even for a repeated listener.
func (v *View) Delegate(eventType, selector string, listener *DOMListener) *View {
	if v.el == nil || listener == nil {
		return v
	}

	root := v.el
	handler := NewDOMListener(func(ev *DOMEvent) {
		if selector == "" {
			ev.DelegateTarget = root
			listener.Handle(ev)
			return
		}
		for node := ev.Target; node != nil && node != root; node = node.ParentElement() {
			if node.Matches(selector) {
				ev.DelegateTarget = node
				listener.Handle(ev)
			}
		}
	})

	root.AddEventListener(eventType, handler)
	v.domEvents = append(v.domEvents, &delegatedBinding{
		eventType: eventType,
		selector:  selector,
		listener:  listener,
		handler:   handler,
	})
	v.logger.Debugf("delegated %q on %q", eventType, selector)

	return v
}

// Undelegate removes the bindings for eventType. A non-empty selector and a non-nil
// listener further restrict which bindings go. An empty eventType removes everything.
func (v *View) Undelegate(eventType, selector string, listener *DOMListener) *View {
	if eventType == "" {
		return v.UndelegateEvents()
	}
	if v.el == nil || len(v.domEvents) == 0 {
		return v
	}

	kept := make([]*delegatedBinding, 0, len(v.domEvents))
	for _, b := range v.domEvents {
		match := b.eventType == eventType &&
			(selector == "" || b.selector == selector) &&
			(listener == nil || b.listener == listener)
		if !match {
			kept = append(kept, b)
			continue
		}
		v.el.RemoveEventListener(b.eventType, b.handler)
		v.logger.Debugf("undelegated %q on %q", b.eventType, b.selector)
	}
	v.domEvents = kept

	return v
}

// UndelegateEvents removes every binding the view made on its root element.
func (v *View) UndelegateEvents() *View {
	if v.el != nil {
		for _, b := range v.domEvents {
			v.el.RemoveEventListener(b.eventType, b.handler)
		}
	}
	if len(v.domEvents) > 0 {
		v.logger.Debugf("undelegated %d bindings", len(v.domEvents))
	}
	v.domEvents = nil
	return v
}

// DelegateEvents replaces the view's bindings with events, or with the declared events
// map when events is nil. It undelegates first, so an empty map leaves no bindings and
// repeated calls do not add up. Keys are delegated in sorted order. Method names are
// resolved against the view's methods now; entries that cannot be resolved are skipped
// and reported as *ConfigurationError values joined into the returned error.
func (v *View) DelegateEvents(events DOMEventsMap) error {
	if events == nil {
		events = v.declared
	}
	if events == nil {
		return nil
	}

	v.UndelegateEvents()

	var errs []error
	for _, key := range sortedKeys(events) {
		h := events[key]
		eventType, selector := splitDelegateKey(key)
		fn := v.resolve(h)
		if fn == nil || eventType == "" {
			err := &ConfigurationError{Key: key, Method: h.method}
			v.logger.WithField("key", key).Warnf("skipping binding: %s", err)
			errs = append(errs, err)
			continue
		}
		v.Delegate(eventType, selector, v.bind(fn))
	}

	return stderrors.Join(errs...)
}

func (v *View) bind(fn DOMHandlerFunc) *DOMListener {
	return NewDOMListener(func(ev *DOMEvent) {
		fn(v, ev)
	})
}

// splitDelegateKey splits "click .button" into its event type and selector.
func splitDelegateKey(key string) (eventType, selector string) {
	key = strings.TrimSpace(key)
	i := strings.IndexFunc(key, unicode.IsSpace)
	if i < 0 {
		return key, ""
	}
	return key[:i], strings.TrimSpace(key[i:])
}
