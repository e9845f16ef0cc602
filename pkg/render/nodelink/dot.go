package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	errs "github.com/matzehuels/apiscope/pkg/errors"
	"github.com/matzehuels/apiscope/pkg/expansion"
	"github.com/matzehuels/apiscope/pkg/render/tree"
	"github.com/matzehuels/apiscope/pkg/value"
)

// DefaultMaxLabel is the label length used when Options.MaxLabel is zero.
const DefaultMaxLabel = 40

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the encoded node path as a second label line.
	Detailed bool

	// MaxLabel truncates node bodies longer than this many runes.
	// Zero means DefaultMaxLabel; negative disables truncation.
	MaxLabel int
}

// ToDOT converts the visible part of v to Graphviz DOT format. A node is
// visible exactly when [tree.Render] would show a line for it, so collapsed
// containers appear as a single node. Node IDs are encoded paths and edges are
// labelled with the field name or index that leads to the child.
//
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT(v value.Value, at value.Path, s expansion.State, opts Options) string {
	lines := tree.Render(v, at, s)

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=11];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	for _, l := range lines {
		label := fmtLabel(l, opts)
		attrs := fmtAttrs(l, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", l.Path.Encode(), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, l := range lines[1:] {
		seg, _ := l.Path.Last()
		edge := strings.TrimSuffix(seg.Label(), ": ")
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", l.Path.Parent().Encode(), l.Path.Encode(), edge)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(l tree.Line, opts Options) string {
	body := truncate(l.Body, opts.MaxLabel)
	if !opts.Detailed {
		return body
	}
	return body + "\n" + l.Path.Encode()
}

func truncate(s string, limit int) string {
	if limit == 0 {
		limit = DefaultMaxLabel
	}
	r := []rune(s)
	if limit < 0 || len(r) <= limit {
		return s
	}
	if limit == 1 {
		return "…"
	}
	return string(r[:limit-1]) + "…"
}

var kindFill = map[value.Kind]string{
	value.KindNull:   "gainsboro",
	value.KindBool:   "thistle",
	value.KindNumber: "lightcyan",
	value.KindString: "honeydew",
}

func fmtAttrs(l tree.Line, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if fill, ok := kindFill[l.Kind]; ok {
		attrs = append(attrs, "fillcolor="+fill)
	}
	if l.Expandable && !l.Open {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with
// [render.ToPDF] or [render.ToPNG].
//
// [render.ToPDF]: github.com/matzehuels/apiscope/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/apiscope/pkg/render.ToPNG
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
