// Package expansion tracks which branches of a rendered value tree are open.
//
// A [State] is an immutable set of encoded [value.Path]s. Every operation
// returns a new State and leaves its receiver untouched, so a caller can keep
// an older State while a newer one is computed. Membership is path-exact: the
// openness of a parent and of its children are independent bits.
//
// The zero State is empty and ready to use.
package expansion

import (
	"maps"
	"slices"

	"github.com/matzehuels/apiscope/pkg/value"
)

// State is the set of open node paths.
type State struct {
	open map[string]struct{}
}

// Empty returns a State with no open paths.
func Empty() State { return State{} }

// Reset returns an empty State. Callers use it when the displayed entity changes.
func Reset() State { return Empty() }

// Of returns a State with the given paths open.
func Of(paths ...value.Path) State {
	s := State{open: make(map[string]struct{}, len(paths))}
	for _, p := range paths {
		s.open[p.Encode()] = struct{}{}
	}
	return s
}

// IsOpen reports whether exactly p is open.
func (s State) IsOpen(p value.Path) bool {
	return s.Contains(p.Encode())
}

// Contains reports whether the encoded path key is open.
func (s State) Contains(key string) bool {
	_, ok := s.open[key]
	return ok
}

// Toggle closes p if it is open and opens it otherwise.
// Toggling the same path twice yields a State equal to s.
func (s State) Toggle(p value.Path) State {
	key := p.Encode()
	next := s.clone()
	if _, ok := next.open[key]; ok {
		delete(next.open, key)
	} else {
		next.open[key] = struct{}{}
	}
	return next
}

// Open returns s with p open.
func (s State) Open(p value.Path) State {
	if s.IsOpen(p) {
		return s
	}
	next := s.clone()
	next.open[p.Encode()] = struct{}{}
	return next
}

// Close returns s with p closed.
func (s State) Close(p value.Path) State {
	if !s.IsOpen(p) {
		return s
	}
	next := s.clone()
	delete(next.open, p.Encode())
	return next
}

// Len returns the number of open paths.
func (s State) Len() int { return len(s.open) }

// Keys returns the open encoded paths in sorted order.
func (s State) Keys() []string {
	return slices.Sorted(maps.Keys(s.open))
}

// Equal reports whether both states hold the same open paths.
func (s State) Equal(t State) bool {
	if len(s.open) != len(t.open) {
		return false
	}
	for k := range s.open {
		if _, ok := t.open[k]; !ok {
			return false
		}
	}
	return true
}

func (s State) clone() State {
	next := State{open: make(map[string]struct{}, len(s.open)+1)}
	for k := range s.open {
		next.open[k] = struct{}{}
	}
	return next
}
