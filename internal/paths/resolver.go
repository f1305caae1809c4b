// Package paths implements dotted-path value extraction over nested records.
//
// Resolution is reflection-free: record types opt in by implementing
// Traversable, and plain map[string]any values traverse by key. A missing
// segment anywhere along the path is a soft miss, not an error, so prefill
// degrades gracefully when optional intake data is not yet known.
package paths

import "strings"

// Traversable is implemented by record types that expose named fields for
// path resolution. Field returns (value, true) when the field is present and
// populated, and (nil, false) otherwise.
type Traversable interface {
	Field(name string) (any, bool)
}

// Resolve walks record segment by segment along the dotted path. It returns
// (nil, false) when any segment is missing, empty, or lands on a
// non-traversable leaf with path remaining.
func Resolve(record any, dottedPath string) (any, bool) {
	if dottedPath == "" {
		return nil, false
	}
	current := record
	for _, segment := range strings.Split(dottedPath, ".") {
		next, ok := step(current, segment)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

func step(node any, segment string) (any, bool) {
	switch n := node.(type) {
	case Traversable:
		return n.Field(segment)
	case map[string]any:
		v, ok := n[segment]
		if !ok || v == nil {
			return nil, false
		}
		return v, true
	default:
		return nil, false
	}
}
