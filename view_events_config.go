package libevents

import (
	stderrors "errors"
	"io"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DecodeEventsMap reads a YAML mapping of "eventType selector" keys to method names:
//
//	click .open: open
//	"keypress #new-todo": createOnEnter
//
// An empty document decodes to an empty map. Entries without a method name are left
// out and reported as *ConfigurationError values; the map of the valid entries is
// returned together with them.
func DecodeEventsMap(r io.Reader) (DOMEventsMap, error) {
	var raw map[string]string
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return DOMEventsMap{}, nil
		}
		return nil, errors.Wrap(err, "cannot decode events map")
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	events := make(DOMEventsMap, len(raw))
	var errs []error
	for _, key := range keys {
		method := strings.TrimSpace(raw[key])
		if method == "" {
			errs = append(errs, &ConfigurationError{Key: key})
			continue
		}
		events[key] = Method(method)
	}

	return events, stderrors.Join(errs...)
}
