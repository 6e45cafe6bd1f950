// Package transform derives level structure from a hypergraph.
//
// # Overview
//
// The layout engine draws a hypergraph as horizontal bands. Each band is a
// level: a set of edges whose inputs are available once the bands above it
// have run. [ComputeLevels] assigns every reachable edge to exactly one level
// by walking forward from the source nodes.
//
// # Diagnostics
//
// Layering never fails. Edges that cannot be reached from a source are
// returned as [OrphanedEdgeError] values in [Levels.Orphans], and edges that
// were reached before all of their inputs were produced are listed in
// [Levels.Premature]. Callers decide whether either is fatal; [Levels.Err]
// joins the orphans into a single error for callers that want one.
package transform
