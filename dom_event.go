package libevents

type (
	// DOMListener is a native event listener. Listeners are removed by identity, so keep
	// the pointer to unregister it later.
	DOMListener struct {
		fn func(ev *DOMEvent)
	}

	// DOMEvent is a native event dispatched through an element tree.
	DOMEvent struct {
		// Type is the event type, e.g. "click".
		Type string
		// Bubbles makes the event travel from the target up through its ancestors.
		Bubbles bool
		// Cancelable allows PreventDefault to take effect.
		Cancelable bool
		// Detail carries custom event data.
		Detail any

		// Target is the element the event was dispatched on.
		Target Element
		// CurrentTarget is the element whose listeners are running.
		CurrentTarget Element
		// DelegateTarget is set by view delegation to the element that matched the
		// delegated selector, or to the view's root element for selector-less bindings.
		DelegateTarget Element

		defaultPrevented            bool
		propagationStopped          bool
		immediatePropagationStopped bool
	}
)

// NewDOMListener wraps fn into a DOMListener.
func NewDOMListener(fn func(ev *DOMEvent)) *DOMListener {
	return &DOMListener{fn: fn}
}

// Handle runs the listener. It is a no-op on a nil listener.
func (l *DOMListener) Handle(ev *DOMEvent) {
	if l == nil || l.fn == nil {
		return
	}
	l.fn(ev)
}

// NewDOMEvent creates an event of the given type.
func NewDOMEvent(eventType string, bubbles, cancelable bool) *DOMEvent {
	return &DOMEvent{Type: eventType, Bubbles: bubbles, Cancelable: cancelable}
}

// NewCustomEvent creates a non-bubbling event carrying detail.
func NewCustomEvent(eventType string, detail any) *DOMEvent {
	return &DOMEvent{Type: eventType, Detail: detail}
}

// PreventDefault marks the event as canceled when it is cancelable.
func (ev *DOMEvent) PreventDefault() {
	if ev.Cancelable {
		ev.defaultPrevented = true
	}
}

// DefaultPrevented reports whether PreventDefault took effect.
func (ev *DOMEvent) DefaultPrevented() bool {
	return ev.defaultPrevented
}

// StopPropagation keeps the event from reaching further ancestors. Listeners of the
// current element still run.
func (ev *DOMEvent) StopPropagation() {
	ev.propagationStopped = true
}

// StopImmediatePropagation also skips the remaining listeners of the current element.
func (ev *DOMEvent) StopImmediatePropagation() {
	ev.propagationStopped = true
	ev.immediatePropagationStopped = true
}

func (ev *DOMEvent) IsPropagationStopped() bool {
	return ev.propagationStopped
}
