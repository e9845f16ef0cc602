package tree

import (
	"strconv"
	"strings"

	"github.com/matzehuels/apiscope/pkg/expansion"
	"github.com/matzehuels/apiscope/pkg/value"
)

// Header glyphs.
const (
	GlyphOpen   = "▼"
	GlyphClosed = "▶"
)

// DefaultIndent is the number of spaces per depth level used by Format.
const DefaultIndent = 2

// Line is one display line of a rendered tree.
type Line struct {
	Depth int    // nesting level relative to the rendered node
	Text  string // Label + Body

	Label      string     // "[i]: " or "key: "; empty for the rendered node itself
	Body       string     // scalar text, empty literal, or container header
	Path       value.Path // node displayed on this line
	Kind       value.Kind
	Expandable bool // non-empty container that can be toggled
	Open       bool // expandable and currently open
}

// Render returns the display lines for v, which sits at path at, given the
// open paths in s. The first line always shows v itself at depth 0.
func Render(v value.Value, at value.Path, s expansion.State) []Line {
	var lines []Line
	return render(lines, v, at, s, 0, "")
}

func render(lines []Line, v value.Value, at value.Path, s expansion.State, depth int, label string) []Line {
	line := Line{
		Depth: depth,
		Label: label,
		Path:  at,
		Kind:  v.Kind(),
	}

	switch v.Kind() {
	case value.KindArray, value.KindObject:
		if v.Len() == 0 {
			line.Body = emptyLiteral(v.Kind())
			break
		}
		line.Expandable = true
		line.Open = s.IsOpen(at)
		line.Body = header(v, line.Open)
	default:
		line.Body = Scalar(v)
	}
	line.Text = label + line.Body
	lines = append(lines, line)

	if !line.Open {
		return lines
	}
	switch v.Kind() {
	case value.KindArray:
		for i, item := range v.Items() {
			seg := value.IndexSegment(i)
			lines = render(lines, item, at.Extend(seg), s, depth+1, seg.Label())
		}
	case value.KindObject:
		for _, f := range v.Fields() {
			seg := value.KeySegment(f.Key)
			lines = render(lines, f.Value, at.Extend(seg), s, depth+1, seg.Label())
		}
	}
	return lines
}

// Scalar returns the body text of a scalar value. Strings are quoted but their
// contents are not escaped. Containers yield "".
func Scalar(v value.Value) string {
	switch v.Kind() {
	case value.KindNull:
		return "null"
	case value.KindBool:
		return strconv.FormatBool(v.AsBool())
	case value.KindNumber:
		return value.FormatNumber(v.AsNumber())
	case value.KindString:
		return `"` + v.AsString() + `"`
	}
	return ""
}

func emptyLiteral(k value.Kind) string {
	if k == value.KindArray {
		return "[]"
	}
	return "{}"
}

func header(v value.Value, open bool) string {
	glyph := GlyphClosed
	if open {
		glyph = GlyphOpen
	}
	if v.Kind() == value.KindArray {
		return glyph + " Array[" + strconv.Itoa(v.Len()) + "]"
	}
	return glyph + " Object"
}

// Format joins lines into text, indenting each by indent spaces per depth
// level. Every line, including the last, ends with a newline.
func Format(lines []Line, indent int) string {
	if indent < 0 {
		indent = 0
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(strings.Repeat(" ", l.Depth*indent))
		b.WriteString(l.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

// Texts returns the Text of every line, for callers that only need strings.
func Texts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

// IndexOf returns the position of the line showing p, or -1.
func IndexOf(lines []Line, p value.Path) int {
	for i, l := range lines {
		if l.Path.Equal(p) {
			return i
		}
	}
	return -1
}

// Count returns the number of nodes in v, which bounds the length of any
// rendering of v.
func Count(v value.Value) int { return value.Count(v) }
