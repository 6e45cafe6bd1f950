package hypergraph

import (
	"fmt"
	"slices"
)

// Node is an identified, labeled vertex. Nodes are created only through
// [Hypergraph.AddNode] and never change afterwards.
type Node struct {
	id    int
	label string
	owner *Hypergraph
}

// ID returns the node id, unique within the owning hypergraph only.
func (n *Node) ID() int { return n.id }

// Label returns the display label.
func (n *Node) Label() string { return n.label }

func (n *Node) String() string { return fmt.Sprintf("%s#%d", n.label, n.id) }

// Body is the variant part of an [Edge]: exactly one of [Plain] or
// [Hierarchical]. The interface is sealed so no third variant can exist.
type Body interface {
	isBody()
}

// Plain is the body of a leaf edge: a labeled operation box.
type Plain struct {
	Label string
}

// Hierarchical is the body of an edge that expands into nested
// sub-hypergraphs, drawn inline left to right in slice order.
type Hierarchical struct {
	Subgraphs []*Hypergraph
}

func (Plain) isBody()        {}
func (Hierarchical) isBody() {}

// Edge is a hyperedge with ordered inputs and outputs. Order is significant:
// it determines left-to-right placement of the anchors.
type Edge struct {
	id      int
	inputs  []*Node
	outputs []*Node
	body    Body
}

// ID returns the edge id, allocated from the same counter as node ids.
func (e *Edge) ID() int { return e.id }

// Inputs returns a copy of the input nodes.
func (e *Edge) Inputs() []*Node { return slices.Clone(e.inputs) }

// Outputs returns a copy of the output nodes.
func (e *Edge) Outputs() []*Node { return slices.Clone(e.outputs) }

// Body returns the edge variant.
func (e *Edge) Body() Body { return e.body }

// Arity returns max(#inputs, #outputs), the value box sizing depends on.
func (e *Edge) Arity() int { return max(len(e.inputs), len(e.outputs)) }

// IsHierarchical reports whether the body is [Hierarchical].
func (e *Edge) IsHierarchical() bool {
	_, ok := e.body.(Hierarchical)
	return ok
}

// Label returns the plain label and true, or "" and false for hierarchical
// edges.
func (e *Edge) Label() (string, bool) {
	p, ok := e.body.(Plain)
	return p.Label, ok
}

// Subgraphs returns a copy of the nested hypergraphs, or nil for plain edges.
func (e *Edge) Subgraphs() []*Hypergraph {
	if h, ok := e.body.(Hierarchical); ok {
		return slices.Clone(h.Subgraphs)
	}
	return nil
}

func (e *Edge) String() string {
	if label, ok := e.Label(); ok {
		return fmt.Sprintf("%s#%d", label, e.id)
	}
	return fmt.Sprintf("<%d subgraphs>#%d", len(e.Subgraphs()), e.id)
}
