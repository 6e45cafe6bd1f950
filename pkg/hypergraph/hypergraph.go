package hypergraph

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrForeignNode is returned by [Hypergraph.AddPlainEdge] and
	// [Hypergraph.AddHierarchicalEdge] when an endpoint is nil or was created
	// by a different hypergraph. Node ids are only unique within their owner,
	// so accepting a foreign node would silently corrupt the adjacency indexes.
	ErrForeignNode = errors.New("node belongs to a different hypergraph")

	// ErrEmptyEndpoints is returned when an edge is constructed with zero
	// inputs or zero outputs. The fan-out placement divides by the row size
	// and is undefined for empty rows.
	ErrEmptyEndpoints = errors.New("edge needs at least one input and one output")

	// ErrNoSubgraphs is returned by [Hypergraph.AddHierarchicalEdge] when the
	// subgraph list is empty.
	ErrNoSubgraphs = errors.New("hierarchical edge needs at least one subgraph")

	// ErrNilSubgraph is returned by [Hypergraph.AddHierarchicalEdge] when one
	// of the subgraphs is nil.
	ErrNilSubgraph = errors.New("hierarchical edge subgraph must not be nil")

	// ErrSelfNesting is returned by [Hypergraph.AddHierarchicalEdge] when a
	// hypergraph is listed as its own subgraph, and by [Hypergraph.Validate]
	// when a nesting cycle is detected through deeper levels.
	ErrSelfNesting = errors.New("hypergraph is nested inside itself")

	// ErrIndexMismatch is returned by [Hypergraph.Validate] when the adjacency
	// indexes disagree with the edge list. This indicates memory corruption or
	// a bug; the public API cannot produce it.
	ErrIndexMismatch = errors.New("adjacency index does not match edges")
)

// Metadata stores arbitrary key-value pairs attached to a hypergraph, such as
// a display title or rendering hints. It is never nil after [New].
type Metadata map[string]any

// Hypergraph owns an id space shared by its nodes and edges, the ordered edge
// list, and two adjacency indexes keyed by node id.
//
// The structure is append-only: nodes and edges are added through the
// constructors and never removed or mutated. A Hypergraph is not safe for
// concurrent use; adding edges while a layout pass reads the graph is undefined.
type Hypergraph struct {
	nextID   int
	nodes    []*Node
	edges    []*Edge
	outgoing map[int][]*Edge // node id -> edges consuming the node
	incoming map[int][]*Edge // node id -> edges producing the node
	meta     Metadata
}

// Option configures a Hypergraph at construction time.
type Option func(*Hypergraph)

// WithFirstID makes the shared id counter start at id instead of zero.
func WithFirstID(id int) Option {
	return func(g *Hypergraph) { g.nextID = id }
}

// New creates an empty hypergraph with optional graph-level metadata.
// The metadata parameter can be nil, in which case an empty map is created.
func New(meta Metadata, opts ...Option) *Hypergraph {
	if meta == nil {
		meta = Metadata{}
	}
	g := &Hypergraph{
		outgoing: make(map[int][]*Edge),
		incoming: make(map[int][]*Edge),
		meta:     meta,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Meta returns the graph-level metadata map.
func (g *Hypergraph) Meta() Metadata { return g.meta }

// AddNode allocates the next id and returns a new node owned by g.
// The adjacency indexes are untouched until the node is used by an edge.
func (g *Hypergraph) AddNode(label string) *Node {
	n := &Node{id: g.allocID(), label: label, owner: g}
	g.nodes = append(g.nodes, n)
	return n
}

// AddPlainEdge adds a leaf edge carrying a text label.
//
// Returns ErrEmptyEndpoints if inputs or outputs is empty and ErrForeignNode
// if any endpoint is nil or owned by another hypergraph. On error the graph is
// left unchanged.
func (g *Hypergraph) AddPlainEdge(inputs, outputs []*Node, label string) (*Edge, error) {
	if err := g.checkEndpoints(inputs, outputs); err != nil {
		return nil, fmt.Errorf("add plain edge %q: %w", label, err)
	}
	return g.insert(inputs, outputs, Plain{Label: label}), nil
}

// AddHierarchicalEdge adds an edge whose body is the ordered list of
// subgraphs, drawn inline left to right.
//
// In addition to the endpoint checks of [Hypergraph.AddPlainEdge] it returns
// ErrNoSubgraphs, ErrNilSubgraph, or ErrSelfNesting for an unusable body.
func (g *Hypergraph) AddHierarchicalEdge(inputs, outputs []*Node, subgraphs []*Hypergraph) (*Edge, error) {
	if err := g.checkEndpoints(inputs, outputs); err != nil {
		return nil, fmt.Errorf("add hierarchical edge: %w", err)
	}
	if len(subgraphs) == 0 {
		return nil, fmt.Errorf("add hierarchical edge: %w", ErrNoSubgraphs)
	}
	for i, sub := range subgraphs {
		switch {
		case sub == nil:
			return nil, fmt.Errorf("add hierarchical edge: subgraph %d: %w", i, ErrNilSubgraph)
		case sub == g:
			return nil, fmt.Errorf("add hierarchical edge: subgraph %d: %w", i, ErrSelfNesting)
		}
	}
	return g.insert(inputs, outputs, Hierarchical{Subgraphs: slices.Clone(subgraphs)}), nil
}

func (g *Hypergraph) allocID() int {
	id := g.nextID
	g.nextID++
	return id
}

func (g *Hypergraph) checkEndpoints(inputs, outputs []*Node) error {
	if len(inputs) == 0 || len(outputs) == 0 {
		return ErrEmptyEndpoints
	}
	for i, n := range inputs {
		if !g.Owns(n) {
			return fmt.Errorf("input %d: %w", i, ErrForeignNode)
		}
	}
	for i, n := range outputs {
		if !g.Owns(n) {
			return fmt.Errorf("output %d: %w", i, ErrForeignNode)
		}
	}
	return nil
}

func (g *Hypergraph) insert(inputs, outputs []*Node, body Body) *Edge {
	e := &Edge{
		id:      g.allocID(),
		inputs:  slices.Clone(inputs),
		outputs: slices.Clone(outputs),
		body:    body,
	}
	g.edges = append(g.edges, e)
	for _, n := range e.inputs {
		g.outgoing[n.id] = append(g.outgoing[n.id], e)
	}
	for _, n := range e.outputs {
		g.incoming[n.id] = append(g.incoming[n.id], e)
	}
	return e
}

// Owns reports whether n was created by g.
func (g *Hypergraph) Owns(n *Node) bool { return n != nil && n.owner == g }

// Nodes returns all nodes in creation order.
func (g *Hypergraph) Nodes() []*Node { return slices.Clone(g.nodes) }

// Edges returns all edges in insertion order.
func (g *Hypergraph) Edges() []*Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes created by g.
func (g *Hypergraph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in g.
func (g *Hypergraph) EdgeCount() int { return len(g.edges) }

// Edge returns the edge with the given id and true, or nil and false.
func (g *Hypergraph) Edge(id int) (*Edge, bool) {
	for _, e := range g.edges {
		if e.id == id {
			return e, true
		}
	}
	return nil, false
}

// Node returns the node with the given id and true, or nil and false.
func (g *Hypergraph) Node(id int) (*Node, bool) {
	for _, n := range g.nodes {
		if n.id == id {
			return n, true
		}
	}
	return nil, false
}

// Outgoing returns the edges that consume n (n is one of their inputs), in
// insertion order. The returned slice should be treated as read-only.
func (g *Hypergraph) Outgoing(n *Node) []*Edge {
	if !g.Owns(n) {
		return nil
	}
	return g.outgoing[n.id]
}

// Incoming returns the edges that produce n (n is one of their outputs), in
// insertion order. The returned slice should be treated as read-only.
func (g *Hypergraph) Incoming(n *Node) []*Edge {
	if !g.Owns(n) {
		return nil
	}
	return g.incoming[n.id]
}

// HasProducer reports whether some edge lists n among its outputs.
func (g *Hypergraph) HasProducer(n *Node) bool {
	if !g.Owns(n) {
		return false
	}
	_, ok := g.incoming[n.id]
	return ok
}

// SourceNodes returns every edge input that no edge produces, scanning edges
// in insertion order. A node feeding several edges is listed once per use.
func (g *Hypergraph) SourceNodes() []*Node {
	var sources []*Node
	for _, e := range g.edges {
		for _, n := range e.inputs {
			if _, produced := g.incoming[n.id]; !produced {
				sources = append(sources, n)
			}
		}
	}
	return sources
}

// Depth returns the hierarchical nesting depth: 1 for a graph without
// hierarchical edges, one more than the deepest subgraph otherwise.
// Nesting cycles are cut at the repeated graph.
func (g *Hypergraph) Depth() int {
	return g.depth(map[*Hypergraph]bool{})
}

func (g *Hypergraph) depth(active map[*Hypergraph]bool) int {
	if active[g] {
		return 0
	}
	active[g] = true
	defer delete(active, g)

	deepest := 0
	for _, e := range g.edges {
		for _, sub := range e.Subgraphs() {
			deepest = max(deepest, sub.depth(active))
		}
	}
	return deepest + 1
}

// Validate checks graph integrity and returns nil if valid.
// It verifies that both adjacency indexes agree with the edge list and that
// no hypergraph is nested inside itself at any depth.
func (g *Hypergraph) Validate() error {
	if err := g.validateIndexes(); err != nil {
		return err
	}
	return g.detectNestingCycles()
}

func (g *Hypergraph) validateIndexes() error {
	for _, e := range g.edges {
		for _, n := range e.inputs {
			if !slices.Contains(g.outgoing[n.id], e) {
				return fmt.Errorf("edge %d input %d: %w", e.id, n.id, ErrIndexMismatch)
			}
		}
		for _, n := range e.outputs {
			if !slices.Contains(g.incoming[n.id], e) {
				return fmt.Errorf("edge %d output %d: %w", e.id, n.id, ErrIndexMismatch)
			}
		}
	}
	return nil
}

func (g *Hypergraph) detectNestingCycles() error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[*Hypergraph]int)
	var hasCycle bool

	var dfs func(h *Hypergraph)
	dfs = func(h *Hypergraph) {
		color[h] = gray
		for _, e := range h.edges {
			for _, sub := range e.Subgraphs() {
				switch color[sub] {
				case white:
					dfs(sub)
				case gray:
					hasCycle = true
				}
				if hasCycle {
					return
				}
			}
		}
		color[h] = black
	}

	dfs(g)
	if hasCycle {
		return ErrSelfNesting
	}
	return nil
}
