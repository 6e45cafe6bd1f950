package hypergraph_test

import (
	"fmt"

	"github.com/matzehuels/hypertower/pkg/hypergraph"
)

func in(ns ...*hypergraph.Node) []*hypergraph.Node { return ns }

func ExampleHypergraph_basic() {
	// A two-input operation followed by a unary one: (A, B) -f-> C -g-> D
	g := hypergraph.New(nil)
	a := g.AddNode("A")
	b := g.AddNode("B")
	c := g.AddNode("C")
	d := g.AddNode("D")
	f, _ := g.AddPlainEdge(in(a, b), in(c), "f")
	_, _ = g.AddPlainEdge(in(c), in(d), "g")

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("f id:", f.ID())
	fmt.Println("Consumers of C:", g.Outgoing(c))
	fmt.Println("Sources:", g.SourceNodes())
	// Output:
	// Nodes: 4
	// Edges: 2
	// f id: 4
	// Consumers of C: [g#5]
	// Sources: [A#0 B#1]
}

func ExampleHypergraph_AddHierarchicalEdge() {
	// Outer graph: C -[inner, other]-> H
	outer := hypergraph.New(nil)
	c := outer.AddNode("C")
	h := outer.AddNode("H")

	inner := hypergraph.New(nil)
	d := inner.AddNode("D")
	e := inner.AddNode("E")
	_, _ = inner.AddPlainEdge(in(d), in(e), "g")

	other := hypergraph.New(nil)
	m := other.AddNode("M")
	n := other.AddNode("N")
	_, _ = other.AddPlainEdge(in(m), in(n), "l")

	edge, err := outer.AddHierarchicalEdge(in(c), in(h), []*hypergraph.Hypergraph{inner, other})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println("Hierarchical:", edge.IsHierarchical())
	fmt.Println("Subgraphs:", len(edge.Subgraphs()))
	fmt.Println("Depth:", outer.Depth())
	// Output:
	// Hierarchical: true
	// Subgraphs: 2
	// Depth: 2
}

func ExampleHypergraph_AddPlainEdge_foreignNode() {
	g := hypergraph.New(nil)
	other := hypergraph.New(nil)
	a := g.AddNode("A")
	x := other.AddNode("X")

	_, err := g.AddPlainEdge(in(a), in(x), "f")
	fmt.Println(err)
	// Output:
	// add plain edge "f": output 0: node belongs to a different hypergraph
}
