// Package io imports and exports hypergraph files.
//
// # Formats
//
// Three encodings of the same recursive document are supported, chosen by
// file extension:
//
//	.json          encoding/json
//	.toml          github.com/BurntSushi/toml
//	.yaml, .yml    gopkg.in/yaml.v3
//
// All three decode into [graph.Graph] and are then rebuilt with
// [graph.ToHypergraph], so every construction-time check applies to file
// input. A TOML graph looks like this:
//
//	[[nodes]]
//	id = 0
//	label = "raw"
//
//	[[nodes]]
//	id = 1
//	label = "clean"
//
//	[[edges]]
//	inputs = [0]
//	outputs = [1]
//	label = "c"
//
// # Validation
//
// Every node and edge label at every nesting depth is checked with
// errors.ValidateLabel before the graph is built. Failures carry a code from
// pkg/errors (INVALID_LABEL, INVALID_INPUT, INVALID_GRAPH, FILE_NOT_FOUND …)
// so the CLI and the server can report them uniformly.
//
// # Import
//
//	g, err := io.ImportFile("pipeline.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Export
//
//	err := io.ExportFile(g, "pipeline.yaml")
//
// Export writes the logical structure only. Layouts are serialized with
// [graph.FromResult] and the JSON sink.
//
// # Concurrency
//
// All functions are safe to call concurrently with other readers of the same
// hypergraph. Imported hypergraphs are independent instances.
package io
