package transform

import (
	"errors"
	"fmt"

	"github.com/matzehuels/hypertower/pkg/hypergraph"
)

// ErrOrphanedEdge marks an edge that the layering never reached. It is wrapped
// by [OrphanedEdgeError]; match it with errors.Is.
var ErrOrphanedEdge = errors.New("edge not reachable from any source")

// OrphanedEdgeError reports one edge missing from every level, typically
// because all of its inputs are produced inside a cycle or by the edge itself.
type OrphanedEdgeError struct {
	EdgeID int
}

func (e *OrphanedEdgeError) Error() string {
	return fmt.Sprintf("edge %d: %v", e.EdgeID, ErrOrphanedEdge)
}

func (e *OrphanedEdgeError) Unwrap() error { return ErrOrphanedEdge }

// Level is one horizontal band of the layout: the edges placed at the same
// depth, in the order the walk discovered them.
type Level struct {
	Index int
	Edges []*hypergraph.Edge
}

// Levels is the result of [ComputeLevels].
type Levels struct {
	// Levels are ordered top to bottom, starting at index 0.
	Levels []Level

	// Orphans holds one diagnostic per edge that no level contains.
	Orphans []*OrphanedEdgeError

	// Premature lists edges placed at a level no deeper than the level
	// producing one of their inputs. The frontier walk places an edge at the
	// first level that reaches it, so an edge whose inputs arrive at
	// different depths can be drawn above one of its producers.
	Premature []*hypergraph.Edge
}

// Len returns the number of levels.
func (l Levels) Len() int { return len(l.Levels) }

// EdgeCount returns the number of placed edges across all levels.
func (l Levels) EdgeCount() int {
	n := 0
	for _, lv := range l.Levels {
		n += len(lv.Edges)
	}
	return n
}

// LevelOf returns the level index of the edge with the given id, or -1 if the
// edge was not placed.
func (l Levels) LevelOf(edgeID int) int {
	for _, lv := range l.Levels {
		for _, e := range lv.Edges {
			if e.ID() == edgeID {
				return lv.Index
			}
		}
	}
	return -1
}

// Err joins the orphan diagnostics into a single error, or returns nil when
// every edge was placed.
func (l Levels) Err() error {
	if len(l.Orphans) == 0 {
		return nil
	}
	errs := make([]error, len(l.Orphans))
	for i, o := range l.Orphans {
		errs[i] = o
	}
	return errors.Join(errs...)
}

// ComputeLevels partitions the edges of g into levels by walking forward from
// the source nodes.
//
// A source node is an edge input that no edge produces. Level 0 holds every
// edge consuming a source whose inputs are all sources. Each following level
// holds the edges consuming an output of the previous level. Within a level,
// edges appear in discovery order: by the position of the node that reached
// them, then by that node's outgoing order.
//
// # Algorithm
//
//  1. Collect source nodes, scanning edges and their inputs in order
//  2. Seed the frontier with edges that consume a source and only sources
//  3. Record the frontier as the next level and mark its edges selected
//  4. The next frontier is every unselected edge consuming an output of the
//     current frontier
//  5. Repeat until the frontier is empty
//
// An edge is placed at most once, at the first level that reaches it. This
// makes the walk terminate on graphs with production cycles; edges that are
// never reached are reported in [Levels.Orphans] rather than failing the pass.
//
// # Performance
//
// Time complexity is O(E·k) where k is the largest edge arity.
func ComputeLevels(g *hypergraph.Hypergraph) Levels {
	selected := make(map[*hypergraph.Edge]bool, g.EdgeCount())

	var frontier frontierSet
	for _, n := range g.SourceNodes() {
		for _, e := range g.Outgoing(n) {
			if onlySources(g, e) {
				frontier.add(e)
			}
		}
	}

	var res Levels
	producedAt := make(map[*hypergraph.Node]int) // deepest producing level
	for len(frontier.edges) > 0 {
		lv := Level{Index: len(res.Levels), Edges: frontier.edges}
		res.Levels = append(res.Levels, lv)
		for _, e := range lv.Edges {
			selected[e] = true
		}

		var next frontierSet
		for _, e := range lv.Edges {
			for _, out := range e.Outputs() {
				producedAt[out] = lv.Index
				for _, consumer := range g.Outgoing(out) {
					if !selected[consumer] {
						next.add(consumer)
					}
				}
			}
		}
		frontier = next
	}

	for _, e := range g.Edges() {
		if !selected[e] {
			res.Orphans = append(res.Orphans, &OrphanedEdgeError{EdgeID: e.ID()})
		}
	}
	res.Premature = findPremature(res.Levels, producedAt)
	return res
}

// frontierSet is an insertion-ordered edge set.
type frontierSet struct {
	edges []*hypergraph.Edge
	seen  map[*hypergraph.Edge]bool
}

func (f *frontierSet) add(e *hypergraph.Edge) {
	if f.seen == nil {
		f.seen = make(map[*hypergraph.Edge]bool)
	}
	if !f.seen[e] {
		f.seen[e] = true
		f.edges = append(f.edges, e)
	}
}

func onlySources(g *hypergraph.Hypergraph, e *hypergraph.Edge) bool {
	for _, n := range e.Inputs() {
		if g.HasProducer(n) {
			return false
		}
	}
	return true
}

func findPremature(levels []Level, producedAt map[*hypergraph.Node]int) []*hypergraph.Edge {
	var out []*hypergraph.Edge
	for _, lv := range levels {
		for _, e := range lv.Edges {
			for _, in := range e.Inputs() {
				if at, ok := producedAt[in]; ok && at >= lv.Index {
					out = append(out, e)
					break
				}
			}
		}
	}
	return out
}
