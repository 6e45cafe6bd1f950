// Package sink provides output format renderers for layered hypergraph
// layouts.
//
// # Overview
//
// A "sink" transforms a computed [layout.Result] into a final output format.
// This package provides renderers for:
//
//   - SVG: Scalable vector graphics with optional hover highlighting
//   - JSON: Layout data export for external tools
//   - PDF: Print-ready output (requires rsvg-convert)
//   - PNG: Raster image output, drawn natively
//
// # SVG Output
//
// [RenderSVG] paints the drawables of a result in their stacking order:
// hierarchical bodies before the boxes nested in them, then connectors, then
// visible anchors. Edge labels are fit into each box's label slot by a
// [styles.Typesetter]; labels that do not fit are dropped.
//
//	svg := sink.RenderSVG(res,
//	    sink.WithTitle("pipeline"),
//	    sink.WithTypesetter(&styles.FontTypesetter{}),
//	    sink.WithInteraction(),
//	)
//
// # JSON Output
//
// [RenderJSON] exports the complete layout in the [graph.Layout] format. It
// can be read back with [graph.UnmarshalLayout] and rendered again after
// [graph.Layout.ToResult], producing the same picture.
//
// # PDF and PNG Output
//
// [RenderPDF] renders SVG first and converts it with [render.ToPDF], which
// requires librsvg:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [RenderPNG] rasterizes with gg and needs no external tools.
package sink
