package graph

import (
	"errors"
	"fmt"
	"maps"

	"github.com/matzehuels/hypertower/pkg/hypergraph"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Visualization types.
const (
	VizTypeLayered  = "layered"
	VizTypeNodelink = "nodelink"
)

// Visual styles for rendering.
const (
	StyleSimple = "simple"
)

// Metadata keys recognized on the graph-level meta object.
const (
	MetaTitle = "title"
)

var (
	// ErrUnknownNode is returned by [ToHypergraph] when an edge references a
	// node id that is not declared in the same graph.
	ErrUnknownNode = errors.New("edge references undeclared node")

	// ErrDuplicateNode is returned by [ToHypergraph] when two nodes share an id.
	ErrDuplicateNode = errors.New("duplicate node id")

	// ErrAmbiguousBody is returned by [ToHypergraph] when an edge has both a
	// label and subgraphs.
	ErrAmbiguousBody = errors.New("edge has both a label and subgraphs")
)

// =============================================================================
// Graph - Hypergraph Serialization
// =============================================================================

// Graph is the canonical serialization format for hypergraphs.
// Used for input files, API requests, caching, and cross-tool compatibility.
//
// The format is recursive: a hierarchical edge embeds its subgraphs. Node ids
// are references local to the graph they are declared in.
type Graph struct {
	Nodes []Node         `json:"nodes" bson:"nodes" toml:"nodes" yaml:"nodes"`
	Edges []Edge         `json:"edges" bson:"edges" toml:"edges" yaml:"edges"`
	Meta  map[string]any `json:"meta,omitempty" bson:"meta,omitempty" toml:"meta,omitempty" yaml:"meta,omitempty"`
}

// Node is a declared node.
type Node struct {
	ID    int    `json:"id" bson:"id" toml:"id" yaml:"id"`
	Label string `json:"label" bson:"label" toml:"label" yaml:"label"`
}

// Edge is a hyperedge. An edge with subgraphs is hierarchical; otherwise it is
// plain and Label names the operation.
type Edge struct {
	ID        int     `json:"id,omitempty" bson:"id,omitempty" toml:"id,omitempty" yaml:"id,omitempty"`
	Inputs    []int   `json:"inputs" bson:"inputs" toml:"inputs" yaml:"inputs"`
	Outputs   []int   `json:"outputs" bson:"outputs" toml:"outputs" yaml:"outputs"`
	Label     string  `json:"label,omitempty" bson:"label,omitempty" toml:"label,omitempty" yaml:"label,omitempty"`
	Subgraphs []Graph `json:"subgraphs,omitempty" bson:"subgraphs,omitempty" toml:"subgraphs,omitempty" yaml:"subgraphs,omitempty"`
}

// IsHierarchical reports whether the edge embeds subgraphs.
func (e *Edge) IsHierarchical() bool { return len(e.Subgraphs) > 0 }

// Title returns the graph title from metadata, or "".
func (g Graph) Title() string {
	s, _ := g.Meta[MetaTitle].(string)
	return s
}

// Walk calls fn for g and every nested subgraph, depth first, with the
// nesting depth of each (0 for g).
func (g Graph) Walk(fn func(sub Graph, depth int)) {
	g.walk(fn, 0)
}

func (g Graph) walk(fn func(Graph, int), depth int) {
	fn(g, depth)
	for _, e := range g.Edges {
		for _, sub := range e.Subgraphs {
			sub.walk(fn, depth+1)
		}
	}
}

// =============================================================================
// Hypergraph ↔ Graph Conversion
// =============================================================================

// FromHypergraph converts a hypergraph and all of its subgraphs to the
// serialization format. Nodes keep creation order and edges insertion order.
// Returns an error if g is nested inside itself, which has no finite form.
func FromHypergraph(g *hypergraph.Hypergraph) (Graph, error) {
	if err := g.Validate(); err != nil {
		return Graph{}, err
	}
	return fromHypergraph(g), nil
}

func fromHypergraph(g *hypergraph.Hypergraph) Graph {
	out := Graph{
		Nodes: make([]Node, 0, g.NodeCount()),
		Edges: make([]Edge, 0, g.EdgeCount()),
		Meta:  copyMeta(g.Meta()),
	}
	for _, n := range g.Nodes() {
		out.Nodes = append(out.Nodes, Node{ID: n.ID(), Label: n.Label()})
	}
	for _, e := range g.Edges() {
		se := Edge{
			ID:      e.ID(),
			Inputs:  nodeIDs(e.Inputs()),
			Outputs: nodeIDs(e.Outputs()),
		}
		if label, ok := e.Label(); ok {
			se.Label = label
		}
		for _, sub := range e.Subgraphs() {
			se.Subgraphs = append(se.Subgraphs, fromHypergraph(sub))
		}
		out.Edges = append(out.Edges, se)
	}
	return out
}

// ToHypergraph rebuilds a hypergraph through its constructors, so every
// construction-time check applies. Declared node ids are only references:
// the rebuilt graph allocates fresh ids in declaration order.
func ToHypergraph(gr Graph) (*hypergraph.Hypergraph, error) {
	g := hypergraph.New(copyMeta(gr.Meta))

	byID := make(map[int]*hypergraph.Node, len(gr.Nodes))
	for _, n := range gr.Nodes {
		if _, dup := byID[n.ID]; dup {
			return nil, fmt.Errorf("node %d: %w", n.ID, ErrDuplicateNode)
		}
		byID[n.ID] = g.AddNode(n.Label)
	}

	for i, e := range gr.Edges {
		in, err := resolve(byID, e.Inputs)
		if err != nil {
			return nil, fmt.Errorf("edge %d inputs: %w", i, err)
		}
		out, err := resolve(byID, e.Outputs)
		if err != nil {
			return nil, fmt.Errorf("edge %d outputs: %w", i, err)
		}

		if !e.IsHierarchical() {
			if _, err := g.AddPlainEdge(in, out, e.Label); err != nil {
				return nil, fmt.Errorf("edge %d: %w", i, err)
			}
			continue
		}
		if e.Label != "" {
			return nil, fmt.Errorf("edge %d: %w", i, ErrAmbiguousBody)
		}
		subs := make([]*hypergraph.Hypergraph, 0, len(e.Subgraphs))
		for j, sg := range e.Subgraphs {
			sub, err := ToHypergraph(sg)
			if err != nil {
				return nil, fmt.Errorf("edge %d subgraph %d: %w", i, j, err)
			}
			subs = append(subs, sub)
		}
		if _, err := g.AddHierarchicalEdge(in, out, subs); err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
	}
	return g, nil
}

// =============================================================================
// Internal Helpers
// =============================================================================

func resolve(byID map[int]*hypergraph.Node, ids []int) ([]*hypergraph.Node, error) {
	out := make([]*hypergraph.Node, 0, len(ids))
	for _, id := range ids {
		n, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("node %d: %w", id, ErrUnknownNode)
		}
		out = append(out, n)
	}
	return out, nil
}

func nodeIDs(ns []*hypergraph.Node) []int {
	out := make([]int, len(ns))
	for i, n := range ns {
		out[i] = n.ID()
	}
	return out
}

// copyMeta creates a shallow copy of metadata to avoid mutation.
// Returns nil for empty input so serialized graphs omit the field.
func copyMeta(m map[string]any) map[string]any {
	if len(m) == 0 {
		return nil
	}
	return maps.Clone(m)
}
