// Package styles defines visual styles and label typesetting for layered
// layouts.
//
// # Overview
//
// Styles control how each drawable of a layout is written to SVG:
//
//   - [Style]: The interface that all styles implement
//   - [Simple]: A clean, minimal style with solid strokes
//
// # The Style Interface
//
// All styles implement [Style], which provides methods for rendering each
// visual element:
//
//   - RenderDefs: SVG <defs> section (embedded fonts)
//   - RenderBox: Edge bodies, plain and hierarchical
//   - RenderConnector: Links between anchors, and dashed separators
//   - RenderAnchor: Node markers with their labels
//   - RenderLabel: Typeset edge labels
//
// Connectors are drawn as cubic curves with vertical tangents at both ends
// (see [LinkVertical]). Straight vertical connectors degenerate to lines.
//
// # Typesetting
//
// Edge labels must fit a small fixed slot. A [Typesetter] picks the font size
// and truncates when needed:
//
//   - [FontTypesetter] measures glyph advances with the embedded Go font
//   - [Heuristic] assumes a fixed average character width
//
// Usage:
//
//	ts := &styles.FontTypesetter{}
//	defer ts.Close()
//	g, err := ts.Typeset("reduce", 16, 16)
package styles
