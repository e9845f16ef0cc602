// Package nodelink renders JSON trees as node-link diagrams.
//
// # Overview
//
// This package draws the visible part of a value as a Graphviz graph: each
// node is a box holding the same body the text tree shows, and each edge is
// labelled with the field name or array index that leads to the child. It is
// an alternative to the text tree when a payload is easier to grasp as a
// picture.
//
// # Usage
//
// Convert a value to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(v, value.Root(), state, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Collapsed containers are drawn with dashed outlines. Node IDs are encoded
// paths such as root.items[0], so a diagram can be cross-referenced with the
// --open flag of the tree command.
//
// # Options
//
//   - Detailed: adds the encoded path under each node body
//   - MaxLabel: truncates long bodies (default 40 runes)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion lives in the parent render package and
// requires librsvg (rsvg-convert).
package nodelink
