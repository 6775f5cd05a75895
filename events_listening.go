package libevents

// listening is the relationship between a listener and an emitter. It is stored in
// listener.listeningTo under obj's id and in obj.listeners under the listener's id, and
// lives exactly as long as count is positive.
type listening struct {
	listener *Events
	obj      *Events
	count    int
}

func (l *listening) retain() {
	if l.count == 0 {
		if l.listener.listeningTo == nil {
			l.listener.listeningTo = make(map[string]*listening)
		}
		if l.obj.listeners == nil {
			l.obj.listeners = make(map[string]*listening)
		}
		l.listener.listeningTo[l.obj.ID()] = l
		l.obj.listeners[l.listener.ID()] = l
	}
	l.count++
}

func (l *listening) release() {
	l.count--
	if l.count <= 0 {
		l.cleanup()
	}
}

// cleanup removes the relationship from both sides.
func (l *listening) cleanup() {
	l.count = 0
	if l.listener.listeningTo[l.obj.ID()] == l {
		delete(l.listener.listeningTo, l.obj.ID())
	}
	if l.obj.listeners[l.listener.ID()] == l {
		delete(l.obj.listeners, l.listener.ID())
	}
}

// ListenTo binds callback to events of obj, keeping track of the relationship so
// StopListening can undo it. The callback runs with the listener as its context.
func (e *Events) ListenTo(obj Emitter, names string, callback *Callback) *Events {
	return e.listenTo(obj, named(names), callback, false)
}

// ListenToMap is the map form of ListenTo.
func (e *Events) ListenToMap(obj Emitter, m EventMap) *Events {
	return e.listenTo(obj, mapped(m), nil, false)
}

// ListenToOnce is like ListenTo, but each bound name fires at most once.
func (e *Events) ListenToOnce(obj Emitter, names string, callback *Callback) *Events {
	return e.listenTo(obj, named(names), callback, true)
}

// ListenToOnceMap is the map form of ListenToOnce.
func (e *Events) ListenToOnceMap(obj Emitter, m EventMap) *Events {
	return e.listenTo(obj, mapped(m), nil, true)
}

// StopListening removes callbacks bound through ListenTo. A nil obj stops listening to
// every emitter; empty names and a nil callback match everything.
func (e *Events) StopListening(obj Emitter, names string, callback *Callback) *Events {
	return e.stopListening(obj, named(names), callback)
}

// StopListeningMap is the map form of StopListening.
func (e *Events) StopListeningMap(obj Emitter, m EventMap) *Events {
	return e.stopListening(obj, mapped(m), nil)
}

func (e *Events) listenTo(obj Emitter, spec eventSpec, callback *Callback, once bool) *Events {
	if obj == nil {
		return e
	}
	target := obj.emitter()
	for _, b := range normalize(spec, callback, nil) {
		if b.callback == nil {
			continue
		}
		target.add(b.name, b.callback, e, once, e.relationship(target))
	}
	return e
}

// relationship returns the live relationship with obj or a new, not yet stored one.
func (e *Events) relationship(obj *Events) *listening {
	if l, ok := e.listeningTo[obj.ID()]; ok {
		return l
	}
	return &listening{listener: e, obj: obj}
}

func (e *Events) stopListening(obj Emitter, spec eventSpec, callback *Callback) *Events {
	if len(e.listeningTo) == 0 {
		return e
	}

	var targets []*listening
	if obj != nil {
		if l, ok := e.listeningTo[obj.emitter().ID()]; ok {
			targets = append(targets, l)
		}
	} else {
		for _, l := range e.listeningTo {
			targets = append(targets, l)
		}
	}

	for _, l := range targets {
		l.obj.off(spec, callback, []any{e})
	}
	return e
}
