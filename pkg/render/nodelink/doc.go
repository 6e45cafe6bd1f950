// Package nodelink renders hypergraphs as traditional node-link diagrams.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz. It is
// an alternative to the layered layout for cases where a conventional
// diagram is preferred, for example to inspect a graph that the layered
// layout rejects as orphaned.
//
// Hyperedges have no direct counterpart in DOT, so every hyperedge becomes a
// box node with an arrow from each input and to each output. The subgraphs
// of a hierarchical edge are drawn as dashed clusters next to the edge's box.
//
// # Usage
//
// Convert a hypergraph to DOT format, then render to SVG:
//
//	dot, err := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0) // 2x scale
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
