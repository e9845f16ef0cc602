package routes

import (
	"strconv"
	"strings"
)

// RootKey is the group key of routes with no non-empty path segment.
const RootKey = "/"

// Group is a set of routes sharing a first path segment.
type Group struct {
	Key    string
	Routes []Route
}

// Label returns the route count as shown next to the group key,
// e.g. "(1 route)" or "(3 routes)".
func (g Group) Label() string {
	n := len(g.Routes)
	if n == 1 {
		return "(1 route)"
	}
	return "(" + strconv.Itoa(n) + " routes)"
}

// GroupKey returns the grouping key for a route path: "/" plus the first
// non-empty segment, or "/" when there is none.
func GroupKey(path string) string {
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			return "/" + seg
		}
	}
	return RootKey
}

// GroupByPrefix partitions rs by [GroupKey]. Groups are ordered by the first
// occurrence of their key and routes keep their input order within a group.
// The result is never nil.
func GroupByPrefix(rs []Route) []Group {
	groups := make([]Group, 0)
	index := make(map[string]int)
	for _, r := range rs {
		key := GroupKey(r.Path)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key})
		}
		groups[i].Routes = append(groups[i].Routes, r)
	}
	return groups
}

// Total returns the number of routes across all groups.
func Total(groups []Group) int {
	n := 0
	for _, g := range groups {
		n += len(g.Routes)
	}
	return n
}
