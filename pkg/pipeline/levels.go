package pipeline

import (
	"errors"
	"fmt"

	"github.com/matzehuels/hypertower/pkg/hypergraph"
	"github.com/matzehuels/hypertower/pkg/hypergraph/transform"
)

// LevelTable is the serializable form of [transform.Levels]. The CLI prints
// it and the API returns it; unlike transform.Levels it holds no live edges
// and can be cached.
type LevelTable struct {
	Levels    []LevelRow `json:"levels"`
	Orphans   []EdgeRef  `json:"orphans,omitempty"`
	Premature []EdgeRef  `json:"premature,omitempty"`
}

// LevelRow is one level: its index and edges in discovery order.
type LevelRow struct {
	Index int       `json:"index"`
	Edges []EdgeRef `json:"edges"`
}

// EdgeRef describes an edge by id, label and endpoint labels.
type EdgeRef struct {
	ID        int      `json:"id"`
	Label     string   `json:"label,omitempty"`
	Subgraphs int      `json:"subgraphs,omitempty"`
	Inputs    []string `json:"inputs"`
	Outputs   []string `json:"outputs"`
}

// IsHierarchical reports whether the edge has subgraphs.
func (e EdgeRef) IsHierarchical() bool { return e.Subgraphs > 0 }

// Name returns the plain label, or a subgraph count for hierarchical edges.
func (e EdgeRef) Name() string {
	if e.IsHierarchical() {
		return fmt.Sprintf("<%d subgraphs>", e.Subgraphs)
	}
	return e.Label
}

// NewLevelTable builds the table for the levels of g.
func NewLevelTable(g *hypergraph.Hypergraph, l transform.Levels) LevelTable {
	t := LevelTable{Levels: make([]LevelRow, len(l.Levels))}
	for i, lv := range l.Levels {
		row := LevelRow{Index: lv.Index, Edges: make([]EdgeRef, len(lv.Edges))}
		for j, e := range lv.Edges {
			row.Edges[j] = edgeRef(e)
		}
		t.Levels[i] = row
	}
	for _, o := range l.Orphans {
		if e, ok := g.Edge(o.EdgeID); ok {
			t.Orphans = append(t.Orphans, edgeRef(e))
		}
	}
	for _, e := range l.Premature {
		t.Premature = append(t.Premature, edgeRef(e))
	}
	return t
}

func edgeRef(e *hypergraph.Edge) EdgeRef {
	ref := EdgeRef{
		ID:        e.ID(),
		Subgraphs: len(e.Subgraphs()),
		Inputs:    labels(e.Inputs()),
		Outputs:   labels(e.Outputs()),
	}
	ref.Label, _ = e.Label()
	return ref
}

func labels(ns []*hypergraph.Node) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.Label()
	}
	return out
}

// EdgeCount returns the number of placed edges.
func (t LevelTable) EdgeCount() int {
	n := 0
	for _, row := range t.Levels {
		n += len(row.Edges)
	}
	return n
}

// Err reports every orphaned edge, or nil when all edges were placed.
// Each joined error matches [transform.ErrOrphanedEdge].
func (t LevelTable) Err() error {
	var out []error
	for _, o := range t.Orphans {
		out = append(out, &transform.OrphanedEdgeError{EdgeID: o.ID})
	}
	return errors.Join(out...)
}
