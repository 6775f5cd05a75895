package libevents

import (
	"sync"
	"sync/atomic"
)

type (
	// nativeListeners maps event types to the native listeners of one element.
	nativeListeners struct {
		listeners map[string][]*nativeEntry
		lock      sync.RWMutex
	}

	// nativeEntry is one registration. removed is set when the registration goes away
	// so an emission already in flight skips it.
	nativeEntry struct {
		listener *DOMListener
		removed  atomic.Bool
	}
)

func newNativeListeners() *nativeListeners {
	return &nativeListeners{
		listeners: make(map[string][]*nativeEntry),
	}
}

// On registers listener for eventType. Registering the same listener twice makes it
// run twice.
func (n *nativeListeners) On(eventType string, listener *DOMListener) {
	if listener == nil {
		return
	}

	n.lock.Lock()
	defer n.lock.Unlock()

	n.listeners[eventType] = append(n.listeners[eventType], &nativeEntry{listener: listener})
}

// Off removes the first registration of listener for eventType.
func (n *nativeListeners) Off(eventType string, listener *DOMListener) {
	n.lock.Lock()
	defer n.lock.Unlock()

	current := n.listeners[eventType]
	for i, entry := range current {
		if entry.listener != listener {
			continue
		}
		entry.removed.Store(true)
		kept := make([]*nativeEntry, 0, len(current)-1)
		kept = append(kept, current[:i]...)
		kept = append(kept, current[i+1:]...)
		if len(kept) == 0 {
			delete(n.listeners, eventType)
		} else {
			n.listeners[eventType] = kept
		}
		return
	}
}

// Emit runs the listeners registered for ev.Type when Emit was called, skipping those
// removed since. The lock is not held while listeners run, so they may add or remove
// listeners.
func (n *nativeListeners) Emit(ev *DOMEvent) {
	n.lock.RLock()
	entries := n.listeners[ev.Type]
	n.lock.RUnlock()

	for _, entry := range entries {
		if ev.immediatePropagationStopped {
			return
		}
		if entry.removed.Load() {
			continue
		}
		entry.listener.Handle(ev)
	}
}

// Count returns the number of listeners registered for eventType.
func (n *nativeListeners) Count(eventType string) int {
	n.lock.RLock()
	defer n.lock.RUnlock()

	return len(n.listeners[eventType])
}

// Close removes every listener.
func (n *nativeListeners) Close() {
	n.lock.Lock()
	defer n.lock.Unlock()

	for _, entries := range n.listeners {
		for _, entry := range entries {
			entry.removed.Store(true)
		}
	}
	n.listeners = make(map[string][]*nativeEntry)
}
