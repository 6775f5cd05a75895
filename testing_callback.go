package libevents

import (
	"github.com/stretchr/testify/mock"
)

// mockCallback records every event it handles. Expect calls with
// m.On("handle", eventName).
type mockCallback struct {
	mock.Mock

	tapHandle func(ev *Event)

	cb *Callback
}

func newMockCallback(t mock.TestingT) *mockCallback {
	m := &mockCallback{}
	m.Test(t)
	return m
}

func (m *mockCallback) handle(ev *Event) error {
	if m.tapHandle != nil {
		m.tapHandle(ev)
	}
	args := m.Called(ev.Name)
	if len(args) == 0 {
		return nil
	}
	return args.Error(0)
}

// Callback returns the same *Callback on every call, so it can be unsubscribed.
func (m *mockCallback) Callback() *Callback {
	if m.cb == nil {
		m.cb = NewCallback(m.handle)
	}
	return m.cb
}

// mockDOMListener records every native event it handles. Expect calls with
// m.On("handle", eventType).
type mockDOMListener struct {
	mock.Mock

	listener *DOMListener
}

func newMockDOMListener(t mock.TestingT) *mockDOMListener {
	m := &mockDOMListener{}
	m.Test(t)
	return m
}

func (m *mockDOMListener) handle(ev *DOMEvent) {
	m.Called(ev.Type)
}

func (m *mockDOMListener) Listener() *DOMListener {
	if m.listener == nil {
		m.listener = NewDOMListener(m.handle)
	}
	return m.listener
}
