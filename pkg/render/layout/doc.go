// Package layout computes 2D positions for hypergraph drawings.
//
// # Overview
//
// [Build] turns a hypergraph into a flat list of positioned primitives that
// a sink can paint without knowing anything about the graph:
//
//   - [Box]: the body of one edge, with a reserved label slot for plain edges
//   - [Anchor]: a node marker, or an invisible routing waypoint
//   - [Connector]: a vertical link between two points, dashed for the
//     separators between sibling subgraphs
//
// All coordinates are absolute user units. The layering from
// [transform.ComputeLevels] decides the vertical band of each edge; edges in
// a band are packed left to right.
//
// # Geometry
//
// A plain edge occupies [BoxWidth] horizontally and one height unit
// ([LevelStep]) vertically. Its input anchors sit on a row near the top of
// the band and its outputs on a row near the bottom, spread by [FanOut]:
// odd rows put the middle endpoint on the center line and grow outwards,
// even rows straddle it.
//
// A hierarchical edge lays out its subgraphs recursively, side by side.
// Each subgraph reserves [SubgraphSpan] of its reported width. The composite
// body spans all of them and is one height unit taller than the tallest
// subgraph; its anchor rows fan out over the full composite width.
//
// # Node Reuse
//
// A node drawn by one edge and referenced by another is not drawn twice.
// The first placement is remembered together with the origin of the frame it
// was drawn in, and later references connect to it by re-projecting that
// position into their own frame. The memory is scoped to a single graph in a
// single [Build] call, so a subgraph instance reused by two edges is drawn
// independently each time.
//
// # Options
//
//   - [WithOrigin]: top-left corner of the outermost frame (default (1, 10))
//   - [WithMaxDepth]: hierarchical recursion limit (default 64)
//
// [transform.ComputeLevels]: github.com/matzehuels/hypertower/pkg/hypergraph/transform
package layout
