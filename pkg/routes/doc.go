// Package routes groups discovered HTTP routes for display.
//
// # Overview
//
// The monitoring backend discovers the routes a project exposes and checks
// them one by one. This package takes that flat, ordered list and organises it
// the way the dashboard shows it: by first path segment.
//
//	groups := routes.GroupByPrefix(rs)
//	for _, g := range groups {
//	    fmt.Println(g.Key, g.Label())   // "/users (2 routes)"
//	}
//
// # Grouping Rules
//
// The key of a route is "/" followed by the first non-empty segment of its
// path, or "/" when the path has no such segment. Groups appear in order of
// the first occurrence of their key, and routes inside a group keep their
// input order. Grouping is a single pass and never fails.
//
// # Input Formats
//
// [ReadJSON] accepts either a JSON array of routes or an object with a
// "routes" array, as exported by the backend. [ReadTOML] reads [[routes]]
// tables. [ReadFile] and [Decode] pick the decoder from the file extension.
//
// # Metrics
//
// [Summarize] computes the totals shown above a project's route list: number
// of routes, successful, failed and pending checks, and the average response
// time over routes that carry one.
package routes
