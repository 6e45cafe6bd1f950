// Package pkg provides the core libraries for hypertower.
//
// # Overview
//
// Hypertower draws hypergraphs whose edges may themselves contain whole
// hypergraphs. Edges are partitioned into levels by walking forward from the
// source nodes, and every level becomes one row of the diagram; a
// hierarchical edge is expanded in place into its subgraphs, laid out the
// same way one nesting level down.
//
// # Architecture
//
// The typical data flow:
//
//	graph file (JSON, TOML, YAML) or API request
//	         ↓
//	[io] → [hypergraph]
//	         ↓
//	[hypergraph/transform] (levels, orphans)
//	         ↓
//	[render/layout] (boxes, anchors, connectors)
//	         ↓
//	[render/sink] → SVG, PNG, PDF, JSON
//	[render/nodelink] → DOT and Graphviz output
//
// [pipeline] runs these stages with caching through [cache] and reports
// timings through [observability]. The CLI and [server] are thin shells
// around it.
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/hypertower/pkg/hypergraph"
//	    "github.com/matzehuels/hypertower/pkg/render/layout"
//	    "github.com/matzehuels/hypertower/pkg/render/sink"
//	)
//
//	g := hypergraph.New(nil)
//	a, b := g.AddNode("a"), g.AddNode("b")
//	g.AddPlainEdge([]*hypergraph.Node{a}, []*hypergraph.Node{b}, "f")
//
//	res := layout.Build(g)
//	svg := sink.RenderSVG(res)
//
// # Packages
//
// [hypergraph] - The graph model: nodes, plain edges carrying a label and
// hierarchical edges carrying subgraphs. Nodes and edges share one id
// counter per graph.
//
// [hypergraph/transform] - Level computation. Edges no source reaches are
// reported as orphans rather than dropped silently.
//
// [render/layout] - The recursive layout engine. Sizes are computed bottom
// up and memoized per graph; positions are assigned top down.
//
// [render/sink] - Output formats for layered layouts.
//
// [render/styles] - Visual styles and label typesetting.
//
// [render/nodelink] - Graphviz node-link diagrams.
//
// [render] - Shared SVG conversion (PDF, PNG) through librsvg.
//
// [graph] - Serialization types for graphs and layouts.
//
// [io] - Graph import and export.
//
// [pipeline] - Orchestration (parse → levels → layout → render).
//
// [cache] - File, Redis and MongoDB result caches.
//
// [server] - The HTTP API.
//
// [observability] - Pipeline, cache and server hooks with a Prometheus
// implementation.
//
// [errors] - Error codes shared by the CLI and the API.
//
// [fonts] - The embedded label font.
//
// [buildinfo] - Version information.
//
// [hypergraph]: https://pkg.go.dev/github.com/matzehuels/hypertower/pkg/hypergraph
// [hypergraph/transform]: https://pkg.go.dev/github.com/matzehuels/hypertower/pkg/hypergraph/transform
// [render/layout]: https://pkg.go.dev/github.com/matzehuels/hypertower/pkg/render/layout
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/hypertower/pkg/render/sink
// [render/styles]: https://pkg.go.dev/github.com/matzehuels/hypertower/pkg/render/styles
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/hypertower/pkg/render/nodelink
// [render]: https://pkg.go.dev/github.com/matzehuels/hypertower/pkg/render
// [graph]: https://pkg.go.dev/github.com/matzehuels/hypertower/pkg/graph
// [io]: https://pkg.go.dev/github.com/matzehuels/hypertower/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/hypertower/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/hypertower/pkg/cache
// [server]: https://pkg.go.dev/github.com/matzehuels/hypertower/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/hypertower/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/hypertower/pkg/errors
// [fonts]: https://pkg.go.dev/github.com/matzehuels/hypertower/pkg/fonts
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/hypertower/pkg/buildinfo
package pkg
