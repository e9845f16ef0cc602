// Package render turns JSON values into human-readable output.
//
// # Overview
//
//   - Collapsible text trees (in [tree] subpackage)
//   - Node-link diagrams of the visible tree (in [nodelink] subpackage)
//   - Generic format conversion (SVG to PDF/PNG)
//
// # Text Trees
//
// The [tree] subpackage is the core renderer. It produces one display line per
// visible node, driven by an expansion state that records which containers are
// open:
//
//	lines := tree.Render(v, value.Root(), state)
//	fmt.Print(tree.Format(lines, 2))
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage draws the same visible tree as a Graphviz diagram.
// Only nodes that the text tree would show appear in the diagram.
//
//	dot := nodelink.ToDOT(v, value.Root(), state, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// (from librsvg). Missing tooling is reported with an UNSUPPORTED error code.
//
// [tree]: github.com/matzehuels/apiscope/pkg/render/tree
// [nodelink]: github.com/matzehuels/apiscope/pkg/render/nodelink
package render
