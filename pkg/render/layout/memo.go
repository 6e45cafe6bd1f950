package layout

import "github.com/matzehuels/hypertower/pkg/hypergraph"

// placement is the first recorded position of a node: a position local to the
// frame it was drawn in, and that frame's absolute origin.
type placement struct {
	Position Point
	Offset   Point
}

// project returns the recorded position expressed in a frame whose origin is
// at offset. Adding offset back yields the original absolute position exactly.
func (p placement) project(offset Point) Point {
	return p.Position.Sub(offset.Sub(p.Offset))
}

// positionMemo remembers where each node of one graph invocation was first
// drawn, so later edges referencing the node connect back to it instead of
// drawing a second marker.
type positionMemo map[*hypergraph.Node]placement

func (m positionMemo) lookup(n *hypergraph.Node) (placement, bool) {
	p, ok := m[n]
	return p, ok
}

func (m positionMemo) record(n *hypergraph.Node, local, offset Point) {
	if _, ok := m[n]; !ok {
		m[n] = placement{Position: local, Offset: offset}
	}
}
