package layout

// BoxKind distinguishes the two edge body variants in a layout.
type BoxKind string

const (
	KindPlain        BoxKind = "plain"
	KindHierarchical BoxKind = "hierarchical"
)

// Drawable is implemented by [Box], [Anchor], and [Connector]. The set is
// closed; sinks switch over the concrete types.
type Drawable interface {
	drawable()
}

// Box is the placed body of one edge.
type Box struct {
	EdgeID int     `json:"edge_id"`
	Kind   BoxKind `json:"kind"`
	Depth  int     `json:"depth"` // 0 for top-level edges

	// Slot is the band reserved for the edge: its horizontal span and
	// Units·LevelStep of height starting at the level's y offset.
	Slot  Rect `json:"slot"`
	Units int  `json:"units"`

	// Body is the drawn rounded rectangle.
	Body Rect `json:"body"`

	// LabelSlot is the 16×16 area reserved for the typeset label of a plain
	// edge. Zero for hierarchical edges.
	LabelSlot Rect   `json:"label_slot,omitzero"`
	Label     string `json:"label,omitempty"`
}

// Anchor is a node marker. Invisible anchors are routing waypoints with zero
// radius and no label.
type Anchor struct {
	NodeID  int    `json:"node_id"`
	Label   string `json:"label,omitempty"`
	At      Point  `json:"at"`
	Visible bool   `json:"visible"`
	Depth   int    `json:"depth"`
}

// Connector is a vertical link from one point to another. Solid connectors
// carry data; dashed connectors separate sibling subgraphs.
type Connector struct {
	From   Point `json:"from"`
	To     Point `json:"to"`
	Dashed bool  `json:"dashed,omitempty"`
}

func (Box) drawable()       {}
func (Anchor) drawable()    {}
func (Connector) drawable() {}
