// Package hypergraph provides a directed hypergraph whose edges may expand
// into nested sub-hypergraphs.
//
// # Overview
//
// Hypertower draws computations as string diagrams: values (nodes) flow top
// to bottom through operations (edges). An edge consumes an ordered list of
// input nodes and produces an ordered list of output nodes. Its body is one of
// two variants:
//
//   - [Plain]: a leaf operation with a text label
//   - [Hierarchical]: an operation whose internals are one or more
//     sub-hypergraphs, drawn inline left to right inside the edge's box
//
// # Basic Usage
//
// Create a graph with [New], nodes with [Hypergraph.AddNode], and edges with
// [Hypergraph.AddPlainEdge] or [Hypergraph.AddHierarchicalEdge]:
//
//	g := hypergraph.New(nil)
//	a := g.AddNode("A")
//	b := g.AddNode("B")
//	c := g.AddNode("C")
//	_, err := g.AddPlainEdge([]*hypergraph.Node{a, b}, []*hypergraph.Node{c}, "f")
//
// # Identifiers
//
// Nodes and edges draw their ids from one counter owned by the hypergraph, so
// in the snippet above a=0, b=1, c=2 and the edge is 3. Ids are unique within
// a hypergraph only; nested subgraphs have independent id spaces. Use
// [WithFirstID] to start the counter elsewhere.
//
// # Adjacency
//
// Two indexes are maintained as edges are added:
//
//   - [Hypergraph.Outgoing]: edges that consume a node (node is an input)
//   - [Hypergraph.Incoming]: edges that produce a node (node is an output)
//
// A node that is consumed but never produced is a source. The layering in the
// [transform] subpackage starts from sources.
//
// # Validation
//
// Edge constructors validate before mutating: an edge with a nil or foreign
// endpoint, an empty input or output list, or an unusable hierarchical body is
// rejected with a sentinel error and the graph is left unchanged.
// [Hypergraph.Validate] additionally checks index symmetry and rejects
// hypergraphs that are nested inside themselves.
//
// # Concurrency
//
// Hypergraph instances are not safe for concurrent use. Once fully built, a
// graph can be read by multiple goroutines, for example several layout passes
// with different options.
//
// [transform]: github.com/matzehuels/hypertower/pkg/hypergraph/transform
package hypergraph
