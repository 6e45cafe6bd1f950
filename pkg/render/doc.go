// Package render provides visualization rendering for hypergraphs.
//
// # Overview
//
// This package contains the rendering pipeline that turns a hypergraph into
// visual output. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - The layered layout engine (in [layout] subpackage)
//   - Output sinks and styles (in [sink] and [styles] subpackages)
//   - Node-link diagrams (in [nodelink] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). The layered PDF sink and the
// node-link renderer both use them; layered PNG output is rasterized natively.
//
//	svg := sink.RenderSVG(result, opts...)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// # Layered Visualization
//
// Data flows top to bottom through discrete levels. Each hyperedge is a box
// whose inputs enter from above and whose outputs leave below; hierarchical
// edges draw their subgraphs inline inside the box.
//
//   - [layout]: Position computation
//   - [sink]: Output formats (SVG, JSON, PNG, PDF)
//   - [styles]: Visual styles and label typesetting
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders the hypergraph with Graphviz: nodes as
// ellipses, hyperedges as boxes, and hierarchical bodies as clusters.
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [layout]: github.com/matzehuels/hypertower/pkg/render/layout
// [sink]: github.com/matzehuels/hypertower/pkg/render/sink
// [styles]: github.com/matzehuels/hypertower/pkg/render/styles
// [nodelink]: github.com/matzehuels/hypertower/pkg/render/nodelink
package render
