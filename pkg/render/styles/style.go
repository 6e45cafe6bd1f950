package styles

import "bytes"

// Style defines the visual appearance of a layered layout.
// Implementations control how boxes, connectors, anchors, and labels are drawn.
type Style interface {
	// RenderDefs writes SVG <defs> content (fonts, markers, gradients).
	RenderDefs(buf *bytes.Buffer)
	// RenderBox writes the SVG for a single edge body.
	RenderBox(buf *bytes.Buffer, b Box)
	// RenderConnector writes the SVG for a link between two points.
	RenderConnector(buf *bytes.Buffer, c Connector)
	// RenderAnchor writes the SVG for a node marker.
	RenderAnchor(buf *bytes.Buffer, a Anchor)
	// RenderLabel writes the SVG for a typeset edge label.
	RenderLabel(buf *bytes.Buffer, l Label)
}

// Box contains all data needed to render one edge body.
type Box struct {
	ID           string  // Element identifier, unique within the document
	EdgeID       int     // Edge the box belongs to
	Hierarchical bool    // Whether the body holds nested subgraphs
	Depth        int     // Nesting depth, 0 for top-level edges
	X, Y, W, H   float64 // Position and dimensions
}

// Connector contains positioning data for a vertical link.
type Connector struct {
	X1, Y1, X2, Y2 float64 // Endpoints, drawn from (X1,Y1) to (X2,Y2)
	Dashed         bool    // Separator between sibling subgraphs
}

// Anchor contains positioning data for a node marker.
type Anchor struct {
	NodeID int     // Node identifier within its graph
	Label  string  // Display text, drawn beside the marker
	X, Y   float64 // Center
	Depth  int     // Nesting depth
}

// Label is a typeset edge label placed in its slot.
type Label struct {
	EdgeID     int     // Edge the label belongs to
	Glyph      Glyph   // Typeset text
	X, Y, W, H float64 // Slot the glyph is centered in
}

// CX returns the horizontal center of the label slot.
func (l Label) CX() float64 { return l.X + l.W/2 }

// CY returns the vertical center of the label slot.
func (l Label) CY() float64 { return l.Y + l.H/2 }
