package expansion

import (
	"github.com/matzehuels/apiscope/pkg/value"
)

// ExpandAll returns a State in which every non-empty container of v is open.
// v is the node found at path at; the returned paths are rooted at at.
func ExpandAll(v value.Value, at value.Path) State {
	return ExpandDepth(v, at, -1)
}

// ExpandDepth opens the non-empty containers fewer than depth levels below at.
// A depth of 1 opens only at itself; 0 opens nothing; a negative depth has no limit.
func ExpandDepth(v value.Value, at value.Path, depth int) State {
	s := State{open: make(map[string]struct{})}
	expand(s.open, v, at, depth)
	return s
}

// Merge returns the union of s and t.
func (s State) Merge(t State) State {
	next := s.clone()
	for k := range t.open {
		next.open[k] = struct{}{}
	}
	return next
}

func expand(open map[string]struct{}, v value.Value, at value.Path, depth int) {
	if depth == 0 || v.Len() == 0 {
		return
	}
	open[at.Encode()] = struct{}{}
	switch v.Kind() {
	case value.KindArray:
		for i, item := range v.Items() {
			expand(open, item, at.Index(i), depth-1)
		}
	case value.KindObject:
		for _, f := range v.Fields() {
			expand(open, f.Value, at.Key(f.Key), depth-1)
		}
	}
}
