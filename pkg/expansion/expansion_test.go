package expansion

import (
	"testing"

	"github.com/matzehuels/apiscope/pkg/value"
)

func TestEmpty(t *testing.T) {
	var zero State
	for _, s := range []State{zero, Empty(), Reset()} {
		if s.Len() != 0 {
			t.Errorf("Len() = %d, want 0", s.Len())
		}
		if s.IsOpen(value.Root()) {
			t.Error("root should not be open in an empty state")
		}
	}
}

func TestToggle(t *testing.T) {
	root := value.Root()
	s := Empty().Toggle(root)

	if !s.IsOpen(root) {
		t.Fatal("root should be open after one toggle")
	}
	if s = s.Toggle(root); s.IsOpen(root) {
		t.Error("root should be closed after two toggles")
	}
}

func TestToggleInvolution(t *testing.T) {
	paths := []value.Path{
		value.Root(),
		value.Root().Key("a"),
		value.Root().Key("a").Index(0),
		value.Root().Key("never-rendered"),
	}
	states := []State{
		Empty(),
		Of(value.Root()),
		Of(value.Root().Key("a"), value.Root().Key("b")),
	}

	for _, s := range states {
		for _, p := range paths {
			if got := s.Toggle(p).Toggle(p); !got.Equal(s) {
				t.Errorf("toggle(toggle(%v, %s)) = %v", s.Keys(), p, got.Keys())
			}
		}
	}
}

func TestToggleDoesNotMutateReceiver(t *testing.T) {
	before := Of(value.Root())
	after := before.Toggle(value.Root().Key("x"))

	if before.Len() != 1 || before.IsOpen(value.Root().Key("x")) {
		t.Error("Toggle mutated its receiver")
	}
	if after.Len() != 2 {
		t.Errorf("after.Len() = %d, want 2", after.Len())
	}

	closed := after.Toggle(value.Root())
	if !after.IsOpen(value.Root()) || closed.IsOpen(value.Root()) {
		t.Error("closing a path must only affect the returned state")
	}
}

func TestIsOpenIsPathExact(t *testing.T) {
	parent := value.Root().Key("items")
	s := Of(parent)

	notOpen := []value.Path{
		value.Root(),
		parent.Index(0),
		value.Root().Key("item"),
		value.Root().Key("itemsx"),
		value.Root().Key("other"),
	}
	for _, p := range notOpen {
		if s.IsOpen(p) {
			t.Errorf("IsOpen(%s) = true with only %s open", p, parent)
		}
	}

	child := Of(parent.Index(0))
	if child.IsOpen(parent) {
		t.Error("an open child must not open its parent")
	}
}

func TestOpenClose(t *testing.T) {
	p := value.Root().Key("a")

	s := Empty().Open(p).Open(p)
	if s.Len() != 1 || !s.IsOpen(p) {
		t.Errorf("Open twice: Keys() = %v", s.Keys())
	}
	if s = s.Close(p).Close(p); s.Len() != 0 {
		t.Errorf("Close twice: Keys() = %v", s.Keys())
	}
}

func TestKeysSorted(t *testing.T) {
	s := Of(value.Root().Key("b"), value.Root(), value.Root().Key("a"))
	want := []string{"root", "root.a", "root.b"}
	got := s.Keys()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Keys() = %v, want %v", got, want)
		}
	}
	if !s.Contains("root.a") || s.Contains("root.c") {
		t.Error("Contains mismatch")
	}
}

func TestExpandAll(t *testing.T) {
	v := value.MustParse(`{"a": [1, {"b": []}, {"c": {"d": 1}}], "e": {}, "f": "x"}`)

	s := ExpandAll(v, value.Root())
	want := []string{"root", "root.a", "root.a[1]", "root.a[2]", "root.a[2].c"}
	got := s.Keys()
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExpandDepth(t *testing.T) {
	v := value.MustParse(`{"a": {"b": {"c": 1}}}`)

	tests := []struct {
		depth int
		want  int
	}{
		{0, 0},
		{1, 1},
		{2, 2},
		{3, 3},
		{10, 3},
		{-1, 3},
	}

	for _, tt := range tests {
		if got := ExpandDepth(v, value.Root(), tt.depth).Len(); got != tt.want {
			t.Errorf("ExpandDepth(depth=%d).Len() = %d, want %d", tt.depth, got, tt.want)
		}
	}
}

func TestMerge(t *testing.T) {
	a := Of(value.Root())
	b := Of(value.Root().Key("x"))
	m := a.Merge(b)

	if m.Len() != 2 || a.Len() != 1 || b.Len() != 1 {
		t.Errorf("Merge lens = %d/%d/%d, want 2/1/1", m.Len(), a.Len(), b.Len())
	}
}
