package graph_test

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matzehuels/hypertower/pkg/graph"
	"github.com/matzehuels/hypertower/pkg/hypergraph"
	"github.com/matzehuels/hypertower/pkg/render/layout"
)

func ExampleMarshalGraph() {
	g := hypergraph.New(nil)
	a, b := g.AddNode("A"), g.AddNode("B")
	_, _ = g.AddPlainEdge([]*hypergraph.Node{a}, []*hypergraph.Node{b}, "f")

	data, err := graph.MarshalGraph(g)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Print(string(data))
	// Output:
	// {
	//   "nodes": [
	//     {
	//       "id": 0,
	//       "label": "A"
	//     },
	//     {
	//       "id": 1,
	//       "label": "B"
	//     }
	//   ],
	//   "edges": [
	//     {
	//       "id": 2,
	//       "inputs": [
	//         0
	//       ],
	//       "outputs": [
	//         1
	//       ],
	//       "label": "f"
	//     }
	//   ]
	// }
}

func ExampleToHypergraph() {
	jsonData := `{
		"nodes": [
			{"id": 0, "label": "raw"},
			{"id": 1, "label": "clean"},
			{"id": 2, "label": "report"}
		],
		"edges": [
			{"inputs": [0], "outputs": [1], "label": "c"},
			{"inputs": [1], "outputs": [2], "subgraphs": [
				{
					"nodes": [{"id": 0, "label": "in"}, {"id": 1, "label": "out"}],
					"edges": [{"inputs": [0], "outputs": [1], "label": "s"}]
				}
			]}
		]
	}`

	var data graph.Graph
	if err := json.Unmarshal([]byte(jsonData), &data); err != nil {
		fmt.Println("Error:", err)
		return
	}
	g, err := graph.ToHypergraph(data)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.Edges())
	fmt.Println("Depth:", g.Depth())
	// Output:
	// Nodes: 3
	// Edges: [c#3 <1 subgraphs>#4]
	// Depth: 1
}

func ExampleToHypergraph_undeclaredNode() {
	jsonData := `{
		"nodes": [{"id": 0, "label": "A"}],
		"edges": [{"inputs": [0], "outputs": [7], "label": "f"}]
	}`

	var data graph.Graph
	if err := json.Unmarshal([]byte(jsonData), &data); err != nil {
		fmt.Println("Error:", err)
		return
	}
	_, err := graph.ToHypergraph(data)
	fmt.Println(err)
	// Output:
	// edge 0 outputs: node 7: edge references undeclared node
}

func ExampleWriteLayoutFile() {
	g := hypergraph.New(nil)
	a, b := g.AddNode("A"), g.AddNode("B")
	_, _ = g.AddPlainEdge([]*hypergraph.Node{a}, []*hypergraph.Node{b}, "f")

	path := filepath.Join(os.TempDir(), "hypertower-example.layout.json")
	defer os.Remove(path)

	if err := graph.WriteLayoutFile(graph.FromResult(layout.Build(g)), path); err != nil {
		fmt.Println("Error:", err)
		return
	}

	l, err := graph.ReadLayoutFile(path)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Boxes:", len(l.Boxes))
	fmt.Println("Units:", l.Units.Width, "x", l.Units.Height)
	fmt.Println("Levels:", l.Levels)
	// Output:
	// Boxes: 1
	// Units: 3 x 1
	// Levels: [[2]]
}
