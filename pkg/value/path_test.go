package value

import (
	"testing"

	errs "github.com/matzehuels/apiscope/pkg/errors"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		path Path
		want string
	}{
		{"root", Root(), "root"},
		{"key", Root().Key("users"), "root.users"},
		{"index", Root().Index(0), "root[0]"},
		{"mixed", Root().Key("users").Index(12).Key("name"), "root.users[12].name"},
		{"empty key", Root().Key(""), "root."},
		{"dot in key", Root().Key("a.b"), `root.a\.b`},
		{"bracket in key", Root().Key("a[0]"), `root.a\[0]`},
		{"backslash in key", Root().Key(`a\b`), `root.a\\b`},
		{"numeric key", Root().Key("0"), "root.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.path.Encode(); got != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}

// Paths that a naive "root-a-0" style join would collapse must stay distinct.
func TestEncodeInjective(t *testing.T) {
	paths := []Path{
		Root(),
		Root().Key(""),
		Root().Key("").Key(""),
		Root().Key("0"),
		Root().Index(0),
		Root().Key("a").Key("b"),
		Root().Key("a.b"),
		Root().Key("a").Index(0),
		Root().Key("a[0]"),
		Root().Key("a-0"),
		Root().Key(`a\`).Key("b"),
		Root().Key(`a\.b`),
		Root().Key("root"),
		Root().Index(1).Index(0),
		Root().Index(10),
	}

	seen := make(map[string]int)
	for i, p := range paths {
		enc := p.Encode()
		if j, ok := seen[enc]; ok {
			t.Errorf("paths %d and %d both encode to %q", j, i, enc)
		}
		seen[enc] = i
	}
}

func TestParsePathRoundTrip(t *testing.T) {
	paths := []Path{
		Root(),
		Root().Key("users").Index(0).Key("name"),
		Root().Key(""),
		Root().Key(`we\ird.key[with]stuff`),
		Root().Index(0).Index(123).Key("ü.ñ"),
		Root().Key("a]b"),
	}

	for _, p := range paths {
		t.Run(p.Encode(), func(t *testing.T) {
			got, err := ParsePath(p.Encode())
			if err != nil {
				t.Fatalf("ParsePath(%q) error: %v", p.Encode(), err)
			}
			if !got.Equal(p) {
				t.Errorf("ParsePath(%q) = %q, want %q", p.Encode(), got.Encode(), p.Encode())
			}
		})
	}
}

func TestParsePathRejects(t *testing.T) {
	inputs := []string{
		"",
		"users",
		"roots",
		"root[",
		"root[]",
		"root[01]",
		"root[-1]",
		"root[a]",
		`root.a\`,
		`root.a\b`,
		"root]",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := ParsePath(in)
			if !errs.Is(err, errs.ErrCodeInvalidPath) {
				t.Errorf("ParsePath(%q) error = %v, want INVALID_PATH", in, err)
			}
		})
	}
}

func TestExtendDoesNotAlias(t *testing.T) {
	base := Root().Key("a").Key("b")
	x := base.Key("x")
	y := base.Key("y")

	if x.Encode() != "root.a.b.x" || y.Encode() != "root.a.b.y" {
		t.Errorf("sibling extensions interfere: %q, %q", x.Encode(), y.Encode())
	}
	if base.Len() != 2 {
		t.Errorf("Extend mutated the receiver: Len() = %d", base.Len())
	}
}

func TestPathHelpers(t *testing.T) {
	p := Root().Key("a").Index(3)

	last, ok := p.Last()
	if !ok || !last.IsIndex() || last.Index() != 3 {
		t.Errorf("Last() = %v, %v", last, ok)
	}
	if _, ok := Root().Last(); ok {
		t.Error("Root().Last() should report false")
	}
	if got := p.Parent().Encode(); got != "root.a" {
		t.Errorf("Parent() = %q, want root.a", got)
	}
	if !Root().Parent().IsRoot() {
		t.Error("Root().Parent() should be the root")
	}
	if !p.HasPrefix(Root().Key("a")) || p.HasPrefix(Root().Key("b")) {
		t.Error("HasPrefix mismatch")
	}
	if !PathOf(KeySegment("a"), IndexSegment(3)).Equal(p) {
		t.Error("PathOf should build the same path")
	}
	if KeySegment("k").Label() != "k: " || IndexSegment(2).Label() != "[2]: " {
		t.Error("unexpected segment labels")
	}
}
