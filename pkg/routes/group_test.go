package routes

import (
	"reflect"
	"testing"
)

func TestGroupKey(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/", "/"},
		{"", "/"},
		{"//", "/"},
		{"users", "/users"},
		{"/users", "/users"},
		{"/users/1", "/users"},
		{"//users//1", "/users"},
		{"/api/v1/items", "/api"},
		{"/users?x=1", "/users?x=1"},
	}
	for _, tt := range tests {
		if got := GroupKey(tt.path); got != tt.want {
			t.Errorf("GroupKey(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestGroupByPrefixEmpty(t *testing.T) {
	for _, in := range [][]Route{nil, {}} {
		got := GroupByPrefix(in)
		if got == nil {
			t.Fatal("GroupByPrefix returned nil")
		}
		if len(got) != 0 {
			t.Errorf("got %d groups, want 0", len(got))
		}
	}
}

func TestGroupByPrefixOrder(t *testing.T) {
	in := []Route{
		{Method: MethodGet, Path: "/users"},
		{Method: MethodGet, Path: "/posts/1"},
		{Method: MethodPost, Path: "/users"},
		{Method: MethodGet, Path: "/"},
		{Method: MethodDelete, Path: "/posts/1"},
		{Method: MethodGet, Path: "/users/1/posts"},
	}
	groups := GroupByPrefix(in)

	var keys []string
	for _, g := range groups {
		keys = append(keys, g.Key)
	}
	if want := []string{"/users", "/posts", "/"}; !reflect.DeepEqual(keys, want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}

	users := groups[0].Routes
	if len(users) != 3 || users[0].Method != MethodGet || users[1].Method != MethodPost || users[2].Path != "/users/1/posts" {
		t.Errorf("users group = %+v", users)
	}
	if Total(groups) != len(in) {
		t.Errorf("Total = %d, want %d", Total(groups), len(in))
	}
}

func TestGroupByPrefixDoesNotAliasInput(t *testing.T) {
	in := []Route{{Path: "/a"}, {Path: "/a"}}
	groups := GroupByPrefix(in)
	groups[0].Routes[0].Path = "/changed"
	if in[0].Path != "/a" {
		t.Error("grouping shares storage with its input")
	}
}

func TestGroupLabel(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "(0 routes)"},
		{1, "(1 route)"},
		{2, "(2 routes)"},
	}
	for _, tt := range tests {
		g := Group{Key: "/x", Routes: make([]Route, tt.n)}
		if got := g.Label(); got != tt.want {
			t.Errorf("Label() with %d routes = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestParseMethod(t *testing.T) {
	tests := map[string]Method{
		"GET":     MethodGet,
		"get":     MethodGet,
		" Post ":  MethodPost,
		"put":     MethodPut,
		"DELETE":  MethodDelete,
		"patch":   MethodPatch,
		"OPTIONS": MethodOther,
		"":        MethodOther,
	}
	for in, want := range tests {
		if got := ParseMethod(in); got != want {
			t.Errorf("ParseMethod(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseStatus(t *testing.T) {
	tests := map[string]Status{
		"success": StatusSuccess,
		"SUCCESS": StatusSuccess,
		"error":   StatusError,
		"pending": StatusPending,
		"":        StatusPending,
		"weird":   StatusPending,
	}
	for in, want := range tests {
		if got := ParseStatus(in); got != want {
			t.Errorf("ParseStatus(%q) = %q, want %q", in, got, want)
		}
	}
}
