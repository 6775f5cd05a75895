package libevents

import (
	"sort"
	"strings"
	"unicode"
)

type (
	// eventSpec is the name argument accepted by every entry point: a single name, a
	// space separated list of names, or a map of names to callbacks.
	eventSpec struct {
		names string
		m     EventMap
	}

	// binding is one normalized (name, callback, context) triple.
	binding struct {
		name     string
		callback *Callback
		context  any
	}
)

func named(names string) eventSpec {
	return eventSpec{names: names}
}

func mapped(m EventMap) eventSpec {
	return eventSpec{m: m}
}

// normalize expands spec into one binding per event name.
//
// For the map form the callback argument is unused and args hold the context: a single
// value is the shared context, and with two values the second one, given explicitly,
// wins. For the string form args[0], if any, is the context.
func normalize(spec eventSpec, callback *Callback, args []any) []binding {
	if spec.m != nil {
		context := mapContext(args)
		keys := make([]string, 0, len(spec.m))
		for key := range spec.m {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		var out []binding
		for _, key := range keys {
			for _, name := range splitNames(key) {
				out = append(out, binding{name: name, callback: spec.m[key], context: context})
			}
		}
		return out
	}

	var context any
	if len(args) > 0 {
		context = args[0]
	}

	names := splitNames(spec.names)
	out := make([]binding, 0, len(names))
	for _, name := range names {
		out = append(out, binding{name: name, callback: callback, context: context})
	}
	return out
}

func mapContext(args []any) any {
	switch len(args) {
	case 0:
		return nil
	case 1:
		return args[0]
	default:
		return args[1]
	}
}

// splitNames splits names on whitespace. A string without whitespace, the empty string
// included, is a single name.
func splitNames(names string) []string {
	if !strings.ContainsFunc(names, unicode.IsSpace) {
		return []string{names}
	}
	return strings.Fields(names)
}

