package layout

import "fmt"

// Layout constants, in user units (pixels in SVG output).
const (
	DefaultOriginX = 1
	DefaultOriginY = 10

	// DefaultMaxDepth bounds hierarchical recursion.
	DefaultMaxDepth = 64

	MinBoxWidth  = 60 // box width for arity up to CompactArity
	CompactArity = 3
	ArityStep    = 15 // extra width per endpoint beyond CompactArity

	LevelStep = 120 // vertical advance per height unit

	InputRowY      = 50  // plain edge input anchors, relative to the edge frame
	OutputRowY     = 130 // plain edge output anchors
	WaypointOffset = 10  // invisible waypoint distance from an anchor row
	AttachOffset   = 15  // body attach point distance from a waypoint

	BodySize  = 30
	BodyY     = 75
	LabelSize = 16
	LabelY    = 80

	GroupInsetX     = 10 // hierarchical frame relative to the edge slot
	GroupInsetY     = 40
	GroupInputRowY  = 15
	GroupOutputPad  = 65 // output row below 120·height
	GroupBodyY      = 40
	GroupBodyPad    = 5
	GroupGap        = 20
	SubgraphCursor  = 1 // first subgraph's horizontal offset inside the frame
	SubgraphOffsetY = 10
	SubgraphSpanPad = 40
)

// Point is a 2D coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

func (p Point) String() string { return fmt.Sprintf("(%g,%g)", p.X, p.Y) }

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// CenterX returns the horizontal center point.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the vertical center point.
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Union returns the smallest rectangle containing r and o. A zero Rect is
// treated as empty.
func (r Rect) Union(o Rect) Rect {
	if r == (Rect{}) {
		return o
	}
	if o == (Rect{}) {
		return r
	}
	x0, y0 := min(r.X, o.X), min(r.Y, o.Y)
	x1, y1 := max(r.Right(), o.Right()), max(r.Bottom(), o.Bottom())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// BoxWidth returns the horizontal span of an edge with the given arity
// (max of input and output counts).
func BoxWidth(arity int) int {
	if arity <= CompactArity {
		return MinBoxWidth
	}
	return MinBoxWidth + (arity-CompactArity)*ArityStep
}

// SubgraphSpan returns the horizontal space reserved for a nested graph that
// reported the given width estimate.
func SubgraphSpan(width int) int {
	if width <= CompactArity {
		return MinBoxWidth
	}
	return width*ArityStep + SubgraphSpanPad
}
