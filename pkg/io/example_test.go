package io_test

import (
	"fmt"
	"os"
	"strings"

	errs "github.com/matzehuels/hypertower/pkg/errors"
	"github.com/matzehuels/hypertower/pkg/hypergraph"
	"github.com/matzehuels/hypertower/pkg/io"
)

func ExampleRead() {
	src := `
nodes:
  - {id: 0, label: A}
  - {id: 1, label: B}
  - {id: 2, label: C}
edges:
  - {inputs: [0, 1], outputs: [2], label: join}
`
	g, err := io.Read(strings.NewReader(src), io.FormatYAML)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println(g.Edges())
	fmt.Println(g.SourceNodes())
	// Output:
	// [join#3]
	// [A#0 B#1]
}

func ExampleRead_invalidLabel() {
	src := `{"nodes": [{"id": 0, "label": "tab\there"}], "edges": []}`

	_, err := io.Read(strings.NewReader(src), io.FormatJSON)
	fmt.Println(errs.GetCode(err))
	// Output:
	// INVALID_LABEL
}

func ExampleWrite() {
	g := hypergraph.New(nil)
	a, b := g.AddNode("A"), g.AddNode("B")
	_, _ = g.AddPlainEdge([]*hypergraph.Node{a}, []*hypergraph.Node{b}, "f")

	if err := io.Write(g, os.Stdout, io.FormatYAML); err != nil {
		fmt.Println("Error:", err)
	}
	// Output:
	// nodes:
	//   - id: 0
	//     label: A
	//   - id: 1
	//     label: B
	// edges:
	//   - id: 2
	//     inputs:
	//       - 0
	//     outputs:
	//       - 1
	//     label: f
}
