// Package pkg provides the libraries behind apiscope, a terminal viewer for
// API-monitoring data.
//
// # Overview
//
// The monitoring backend exports the last JSON payload of every API it checks
// and the routes it discovered for every project. The pkg directory turns
// those exports into readable output and is organized into these areas:
//
//  1. [value] - Order-preserving JSON values and node paths
//  2. [expansion] - Immutable sets of open branches
//  3. [render] - Collapsible text trees and node-link diagrams
//  4. [routes] - Route descriptors, grouping and summaries
//  5. [monitor] - Monitoring snapshots (APIs and projects)
//  6. [session] - Viewer state tied to the displayed entity
//  7. [config], [errors], [observability], [buildinfo] - Shared plumbing
//
// # Architecture
//
// The typical data flow:
//
//	snapshot or payload file
//	         ↓
//	    [monitor] / [value] (decode, keep key order)
//	         ↓
//	    [session] + [expansion] (which branches are open)
//	         ↓
//	    [render/tree] (display lines)
//	         ↓
//	    text, JSON, DOT, SVG, PDF or PNG
//
// Route lists take a separate path through [routes.GroupByPrefix].
//
// # Quick Start
//
//	v, _ := value.Parse(data)
//	state := expansion.Empty().Toggle(value.Root())
//	lines := tree.Render(v, value.Root(), state)
//	fmt.Print(tree.Format(lines, tree.DefaultIndent))
//
// None of these packages log. Diagnostics flow through [observability] hooks,
// which the CLI wires to its logger.
//
// [value]: github.com/matzehuels/apiscope/pkg/value
// [expansion]: github.com/matzehuels/apiscope/pkg/expansion
// [render]: github.com/matzehuels/apiscope/pkg/render
// [render/tree]: github.com/matzehuels/apiscope/pkg/render/tree
// [routes]: github.com/matzehuels/apiscope/pkg/routes
// [routes.GroupByPrefix]: github.com/matzehuels/apiscope/pkg/routes#GroupByPrefix
// [monitor]: github.com/matzehuels/apiscope/pkg/monitor
// [session]: github.com/matzehuels/apiscope/pkg/session
// [config]: github.com/matzehuels/apiscope/pkg/config
// [errors]: github.com/matzehuels/apiscope/pkg/errors
// [observability]: github.com/matzehuels/apiscope/pkg/observability
// [buildinfo]: github.com/matzehuels/apiscope/pkg/buildinfo
package pkg
