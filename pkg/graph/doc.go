// Package graph provides serialization types for hypergraphs and layouts.
//
// This package defines the canonical wire format for hypertower's data, used
// for input files, API requests and responses, caching, and cross-tool
// interoperability.
//
// # Architecture
//
// The package sits at the serialization boundary between internal
// representations and external formats:
//
//   - [Graph], [Layout]: Serialization types (this package)
//   - hypergraph.Hypergraph: Internal graph representation
//   - layout.Result: Internal layout (positioned primitives)
//
// Use [FromHypergraph]/[ToHypergraph] and [FromResult]/[Layout.ToResult] to
// convert between them.
//
// # Constants
//
// This package is the single source of truth for visualization constants:
//
//	graph.VizTypeLayered    // "layered"
//	graph.VizTypeNodelink   // "nodelink"
//	graph.StyleSimple       // "simple"
//
// # Graph Serialization
//
// Graphs are recursive: a hierarchical edge embeds its subgraphs, and node
// references are local to the graph that declares them.
//
//	{
//	  "nodes": [{"id": 0, "label": "A"}, {"id": 1, "label": "B"}],
//	  "edges": [
//	    {"inputs": [0], "outputs": [1], "label": "f"},
//	    {"inputs": [1], "outputs": [0], "subgraphs": [{"nodes": [], "edges": []}]}
//	  ]
//	}
//
// Declared ids are references only. [ToHypergraph] rebuilds the graph through
// the hypergraph constructors, so ids are reallocated and every
// construction-time check (foreign nodes, empty endpoints, empty bodies)
// applies to decoded input.
//
// Common operations:
//
//	data, _ := graph.FromHypergraph(g)  // Hypergraph → Graph
//	g, _ = graph.ToHypergraph(data)     // Graph → Hypergraph
//	raw, _ := graph.MarshalGraph(g)     // Hypergraph → JSON, used for content hashes
//
// Reading and writing graph files (JSON, TOML, YAML) is the io package's job.
//
// # Layout Serialization
//
// Layouts are discriminated by VizType:
//
//	l, _ := graph.UnmarshalLayout(data)
//	if l.IsLayered() {
//	    // Use l.Boxes, l.Anchors, l.Connectors
//	} else {
//	    // Use l.DOT for Graphviz rendering
//	}
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
