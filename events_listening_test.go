package libevents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListenToAndStopListening(t *testing.T) {
	a, b := &Events{}, &Events{}
	calls := 0
	a.ListenTo(b, "all", Func(func(*Event) { calls++ }))
	_ = b.Trigger("anything")

	a.ListenTo(b, "all", Func(func(*Event) { t.Error("stopped") }))
	a.StopListening(nil, "", nil)
	_ = b.Trigger("anything")

	assert.Equal(t, 1, calls)
}

func TestListenToWithEventMaps(t *testing.T) {
	a, b := &Events{}, &Events{}
	calls := 0
	cb := Func(func(*Event) { calls++ })

	a.ListenToMap(b, EventMap{"event": cb})
	_ = b.Trigger("event")

	a.ListenToMap(b, EventMap{"event2": cb})
	b.On("event2", cb)
	a.StopListeningMap(b, EventMap{"event2": cb})
	_ = b.Trigger("event event2")

	a.StopListening(nil, "", nil)
	_ = b.Trigger("event event2")

	assert.Equal(t, 4, calls)
}

func TestStopListeningWithOmittedArgs(t *testing.T) {
	a, b := &Events{}, &Events{}
	calls := 0
	cb := Func(func(*Event) { calls++ })

	a.ListenTo(b, "event", cb)
	b.On("event", cb)
	a.ListenTo(b, "event2", cb)
	a.StopListeningMap(nil, EventMap{"event": cb})
	_ = b.Trigger("event event2")

	b.Off("", nil)
	a.ListenTo(b, "event event2", cb)
	a.StopListening(nil, "event", nil)
	a.StopListening(nil, "", nil)
	_ = b.Trigger("event2")

	assert.Equal(t, 2, calls)
}

func TestListenToOnce(t *testing.T) {
	obj := &counterObj{}
	incrA := Func(func(*Event) { obj.counterA++; _ = obj.Trigger("event") })
	incrB := Func(func(*Event) { obj.counterB++ })
	obj.ListenToOnce(obj, "event", incrA)
	obj.ListenToOnce(obj, "event", incrB)

	_ = obj.Trigger("event")
	assert.Equal(t, 1, obj.counterA)
	assert.Equal(t, 1, obj.counterB)
	assert.Equal(t, 0, obj.ListeningToCount())
}

func TestListenToOnceAndStopListening(t *testing.T) {
	a, b := &Events{}, &Events{}
	calls := 0
	a.ListenToOnce(b, "all", Func(func(*Event) { calls++ }))
	_ = b.Trigger("anything")
	_ = b.Trigger("anything")

	a.ListenToOnce(b, "all", Func(func(*Event) { t.Error("stopped") }))
	a.StopListening(nil, "", nil)
	_ = b.Trigger("anything")

	assert.Equal(t, 1, calls)
}

func TestListenToListenToOnceAndStopListening(t *testing.T) {
	a, b := &Events{}, &Events{}
	calls := 0
	a.ListenToOnce(b, "all", Func(func(*Event) { calls++ }))
	_ = b.Trigger("anything")
	_ = b.Trigger("anything")

	a.ListenTo(b, "all", Func(func(*Event) { t.Error("stopped") }))
	a.StopListening(nil, "", nil)
	_ = b.Trigger("anything")

	assert.Equal(t, 1, calls)
}

func TestListenToYourself(t *testing.T) {
	e := &Events{}
	m := newMockCallback(t)
	m.On("handle", "foo").Once()

	e.ListenTo(e, "foo", m.Callback())
	_ = e.Trigger("foo")

	e.StopListening(nil, "", nil)
	_ = e.Trigger("foo")

	m.AssertExpectations(t)
	assert.Equal(t, 0, e.ListeningToCount())
	assert.Equal(t, 0, e.ListenerCount())
}

func TestListenToContextIsListener(t *testing.T) {
	a, b := &Events{}, &Events{}
	var got any
	a.ListenTo(b, "event", Func(func(ev *Event) { got = ev.Context }))

	_ = b.Trigger("event")
	assert.Same(t, a, got)
}

func assertNoRelationship(t *testing.T, a, b *Events) {
	t.Helper()
	assert.Equal(t, 0, a.ListeningToCount())
	assert.Equal(t, 1, b.HandlerCount("event"))
	assert.Equal(t, 0, b.ListenerCount())
}

func TestStopListeningCleansUpReferences(t *testing.T) {
	cases := []struct {
		name string
		stop func(a, b *Events, fn *Callback)
	}{
		{"all", func(a, _ *Events, _ *Callback) { a.StopListening(nil, "", nil) }},
		{"obj", func(a, b *Events, _ *Callback) { a.StopListening(b, "", nil) }},
		{"obj and name", func(a, b *Events, _ *Callback) { a.StopListening(b, "event", nil) }},
		{"obj, name and callback", func(a, b *Events, fn *Callback) { a.StopListening(b, "event", fn) }},
	}

	for _, once := range []bool{false, true} {
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				a, b := &Events{}, &Events{}
				fn := Func(func(*Event) {})
				b.On("event", fn)

				if once {
					a.ListenToOnce(b, "event", fn)
				} else {
					a.ListenTo(b, "event", fn)
				}
				require.Equal(t, 1, a.ListeningToCount())
				require.Equal(t, 1, b.ListenerCount())

				tc.stop(a, b, fn)
				assertNoRelationship(t, a, b)
			})
		}
	}
}

func TestListenToAndOffCleansUpReferences(t *testing.T) {
	cases := []struct {
		name string
		off  func(a, b *Events, fn *Callback)
	}{
		{"reset", func(_, b *Events, _ *Callback) { b.Off("", nil) }},
		{"by name", func(_, b *Events, _ *Callback) { b.Off("event", nil) }},
		{"by callback", func(_, b *Events, fn *Callback) { b.Off("", fn) }},
		{"by context", func(a, b *Events, _ *Callback) { b.Off("", nil, a) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a, b := &Events{}, &Events{}
			fn := Func(func(*Event) {})
			a.ListenTo(b, "event", fn)

			tc.off(a, b, fn)
			assert.Equal(t, 0, a.ListeningToCount())
			assert.Equal(t, 0, b.ListenerCount())
		})
	}
}

func TestStopListeningByNameCleansUpReferences(t *testing.T) {
	a, b := &Events{}, &Events{}
	calls := 0
	a.ListenTo(b, "all", Func(func(*Event) { calls++ }))
	_ = b.Trigger("anything")

	a.ListenTo(b, "other", Func(func(*Event) { t.Error("stopped") }))
	a.StopListening(b, "other", nil)
	a.StopListening(b, "all", nil)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, a.ListeningToCount())
}

func TestListenToOnceCleansUpAfterFiring(t *testing.T) {
	a, b := &Events{}, &Events{}
	calls := 0
	a.ListenToOnce(b, "all", Func(func(*Event) { calls++ }))
	_ = b.Trigger("anything")

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, a.ListeningToCount())
	assert.Equal(t, 0, b.ListenerCount())
}

func TestListenToOnceWithEventMapsCleansUp(t *testing.T) {
	a, b := &Events{}, &Events{}
	calls := 0
	a.ListenToOnceMap(b, EventMap{
		"one": Func(func(ev *Event) {
			calls++
			assert.Same(t, a, ev.Context)
		}),
		"two": Func(func(*Event) { t.Error("not triggered") }),
	})
	_ = b.Trigger("one")

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, a.ListeningToCount())
}

func TestListenToWithoutCallback(t *testing.T) {
	e := &Events{}
	e.ListenTo(e, "foo", nil)

	assert.NoError(t, e.Trigger("foo"))
	assert.Equal(t, 0, e.ListeningToCount())
	assert.False(t, e.HasEvents())
}

func TestListenToOnceWithoutCallback(t *testing.T) {
	e := &Events{}
	assert.NoError(t, e.ListenToOnce(e, "event", nil).Trigger("event"))
	assert.Equal(t, 0, e.ListeningToCount())
}

func TestListenToOnceWithSpaceSeparatedEvents(t *testing.T) {
	one, two := &Events{}, &Events{}
	count := 1
	calls := 0
	one.ListenToOnce(two, "x y", Func(func(ev *Event) {
		calls++
		assert.Equal(t, count, ev.Arg(0))
		count++
	}))

	_ = two.Trigger("x", 1)
	_ = two.Trigger("x", 1)
	_ = two.Trigger("y", 2)
	_ = two.Trigger("y", 2)

	assert.Equal(t, 2, calls)
	assert.Equal(t, 0, one.ListeningToCount())
}

func TestRelationshipCountsSubscriptions(t *testing.T) {
	a, b := &Events{}, &Events{}
	fn := Func(func(*Event) {})
	a.ListenTo(b, "x y z", fn)

	l := a.listeningTo[b.ID()]
	require.NotNil(t, l)
	assert.Equal(t, 3, l.count)
	assert.Same(t, l, b.listeners[a.ID()])

	b.Off("x", nil)
	assert.Equal(t, 2, l.count)

	a.StopListening(b, "y z", fn)
	assert.Equal(t, 0, a.ListeningToCount())
	assert.Equal(t, 0, b.ListenerCount())
}

func TestListenToNilEmitter(t *testing.T) {
	a := &Events{}
	assert.NotPanics(t, func() {
		a.ListenTo(nil, "event", Func(func(*Event) {}))
	})
	assert.Equal(t, 0, a.ListeningToCount())
}
