package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/matzehuels/hypertower/pkg/render/layout"
)

// =============================================================================
// Layout - Unified Visualization Format
// =============================================================================

// Layout is the serialization format for visualizations.
//
// This is a discriminated union type - check VizType to determine which
// fields are populated:
//
//	Layered ("layered"):
//	  - Boxes, Anchors, Connectors: positioned primitives
//	  - Units, Origin: abstract size and frame origin of the layout pass
//	  - Levels: edge ids per top-level level
//
//	Nodelink ("nodelink"):
//	  - DOT: Graphviz DOT string for rendering
//	  - Engine: Graphviz layout engine (e.g., "dot")
//
// Shared fields: Width and Height (frame dimensions in user units), Style,
// Title, and Diagnostics.
//
// The internal representation is [layout.Result]; use [FromResult] and
// [Layout.ToResult] to convert between them.
type Layout struct {
	// Discriminator
	VizType string `json:"viz_type" bson:"viz_type"`

	// Common dimensions and style
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
	Style  string  `json:"style,omitempty" bson:"style,omitempty"`
	Title  string  `json:"title,omitempty" bson:"title,omitempty"`

	// Layered-specific
	Units      Size        `json:"units" bson:"units"`
	Origin     Point       `json:"origin" bson:"origin"`
	Boxes      []Box       `json:"boxes,omitempty" bson:"boxes,omitempty"`
	Anchors    []Anchor    `json:"anchors,omitempty" bson:"anchors,omitempty"`
	Connectors []Connector `json:"connectors,omitempty" bson:"connectors,omitempty"`
	Levels     [][]int     `json:"levels,omitempty" bson:"levels,omitempty"`

	// Diagnostics holds the messages of non-fatal layout problems.
	Diagnostics []string `json:"diagnostics,omitempty" bson:"diagnostics,omitempty"`

	// Nodelink-specific
	DOT    string `json:"dot,omitempty" bson:"dot,omitempty"`
	Engine string `json:"engine,omitempty" bson:"engine,omitempty"`
}

// IsLayered returns true if this is a layered layout.
func (l *Layout) IsLayered() bool { return l.VizType == VizTypeLayered }

// IsNodelink returns true if this is a nodelink layout.
func (l *Layout) IsNodelink() bool { return l.VizType == VizTypeNodelink }

// =============================================================================
// Primitives
// =============================================================================

// Size is the abstract extent reported by the layout pass.
type Size struct {
	Width  int `json:"width" bson:"width"`
	Height int `json:"height" bson:"height"`
}

// Point is a 2D coordinate.
type Point struct {
	X float64 `json:"x" bson:"x" toml:"x"`
	Y float64 `json:"y" bson:"y" toml:"y"`
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
	W float64 `json:"w" bson:"w"`
	H float64 `json:"h" bson:"h"`
}

// Box is a positioned edge body.
type Box struct {
	EdgeID    int    `json:"edge_id" bson:"edge_id"`
	Kind      string `json:"kind" bson:"kind"`
	Depth     int    `json:"depth,omitempty" bson:"depth,omitempty"`
	Slot      Rect   `json:"slot" bson:"slot"`
	Units     int    `json:"units" bson:"units"`
	Body      Rect   `json:"body" bson:"body"`
	LabelSlot *Rect  `json:"label_slot,omitempty" bson:"label_slot,omitempty"`
	Label     string `json:"label,omitempty" bson:"label,omitempty"`
}

// Anchor is a node marker or routing waypoint.
type Anchor struct {
	NodeID  int     `json:"node_id" bson:"node_id"`
	Label   string  `json:"label,omitempty" bson:"label,omitempty"`
	X       float64 `json:"x" bson:"x"`
	Y       float64 `json:"y" bson:"y"`
	Visible bool    `json:"visible,omitempty" bson:"visible,omitempty"`
	Depth   int     `json:"depth,omitempty" bson:"depth,omitempty"`
}

// Connector is a vertical link between two points.
type Connector struct {
	From   Point `json:"from" bson:"from"`
	To     Point `json:"to" bson:"to"`
	Dashed bool  `json:"dashed,omitempty" bson:"dashed,omitempty"`
}

// =============================================================================
// layout.Result ↔ Layout Conversion
// =============================================================================

// FromResult serializes a layout pass. Width and Height are the result's
// [layout.Result.Frame].
func FromResult(r layout.Result) Layout {
	width, height := r.Frame()
	out := Layout{
		VizType:    VizTypeLayered,
		Width:      width,
		Height:     height,
		Units:      Size{Width: r.Size.Width, Height: r.Size.Height},
		Origin:     Point(r.Origin),
		Boxes:      make([]Box, len(r.Boxes)),
		Anchors:    make([]Anchor, len(r.Anchors)),
		Connectors: make([]Connector, len(r.Connectors)),
	}

	for i, b := range r.Boxes {
		box := Box{
			EdgeID: b.EdgeID,
			Kind:   string(b.Kind),
			Depth:  b.Depth,
			Slot:   Rect(b.Slot),
			Units:  b.Units,
			Body:   Rect(b.Body),
			Label:  b.Label,
		}
		if b.Kind == layout.KindPlain {
			slot := Rect(b.LabelSlot)
			box.LabelSlot = &slot
		}
		out.Boxes[i] = box
	}
	for i, a := range r.Anchors {
		out.Anchors[i] = Anchor{
			NodeID: a.NodeID, Label: a.Label,
			X: a.At.X, Y: a.At.Y,
			Visible: a.Visible, Depth: a.Depth,
		}
	}
	for i, c := range r.Connectors {
		out.Connectors[i] = Connector{From: Point(c.From), To: Point(c.To), Dashed: c.Dashed}
	}
	for _, lv := range r.Levels.Levels {
		ids := make([]int, len(lv.Edges))
		for j, e := range lv.Edges {
			ids[j] = e.ID()
		}
		out.Levels = append(out.Levels, ids)
	}
	for _, d := range r.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, d.Error())
	}
	return out
}

// ToResult converts a serialized layered layout back into the primitives a
// sink consumes. Level membership is not restored because it references
// live edges; diagnostics come back as plain errors.
func (l Layout) ToResult() layout.Result {
	r := layout.Result{
		Origin:     layout.Point(l.Origin),
		Size:       layout.Size{Width: l.Units.Width, Height: l.Units.Height},
		Boxes:      make([]layout.Box, len(l.Boxes)),
		Anchors:    make([]layout.Anchor, len(l.Anchors)),
		Connectors: make([]layout.Connector, len(l.Connectors)),
	}
	for i, b := range l.Boxes {
		box := layout.Box{
			EdgeID: b.EdgeID,
			Kind:   layout.BoxKind(b.Kind),
			Depth:  b.Depth,
			Slot:   layout.Rect(b.Slot),
			Units:  b.Units,
			Body:   layout.Rect(b.Body),
			Label:  b.Label,
		}
		if b.LabelSlot != nil {
			box.LabelSlot = layout.Rect(*b.LabelSlot)
		}
		r.Boxes[i] = box
	}
	for i, a := range l.Anchors {
		r.Anchors[i] = layout.Anchor{
			NodeID: a.NodeID, Label: a.Label,
			At:      layout.Point{X: a.X, Y: a.Y},
			Visible: a.Visible, Depth: a.Depth,
		}
	}
	for i, c := range l.Connectors {
		r.Connectors[i] = layout.Connector{From: layout.Point(c.From), To: layout.Point(c.To), Dashed: c.Dashed}
	}
	for _, d := range l.Diagnostics {
		r.Diagnostics = append(r.Diagnostics, errors.New(d))
	}
	return r
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Validates that required fields are present for the viz type.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}

	if l.VizType == "" {
		l.VizType = VizTypeLayered
	}

	switch {
	case l.IsLayered() && len(l.Boxes) == 0 && l.Units != (Size{}):
		return Layout{}, fmt.Errorf("layered layout reports size %dx%d but contains no boxes", l.Units.Width, l.Units.Height)
	case l.IsNodelink() && l.DOT == "":
		return Layout{}, fmt.Errorf("nodelink layout must contain DOT string")
	case !l.IsLayered() && !l.IsNodelink():
		return Layout{}, fmt.Errorf("unknown viz type %q", l.VizType)
	}

	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
