package libevents

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrInvocation      = errors.New("callback is not invocable")
	ErrConfiguration   = errors.New("invalid events configuration")
	ErrInvalidSelector = errors.New("invalid selector")
)

// InvocationError is returned by Trigger when a subscribed Callback has no function.
type InvocationError struct {
	Event string
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("event %q: %s", e.Event, ErrInvocation)
}

func (e *InvocationError) Unwrap() error { return ErrInvocation }

// ConfigurationError reports a declared events map entry that cannot be delegated.
type ConfigurationError struct {
	Key    string
	Method string
}

func (e *ConfigurationError) Error() string {
	if e.Method == "" {
		return fmt.Sprintf("events map key %q: %s: no handler", e.Key, ErrConfiguration)
	}
	return fmt.Sprintf("events map key %q: %s: method %q is not defined", e.Key, ErrConfiguration, e.Method)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

func wrapSelectorError(err error, selector string) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(ErrInvalidSelector, "%q: %s", selector, err)
}
