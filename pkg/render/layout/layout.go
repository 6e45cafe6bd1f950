package layout

import (
	"errors"
	"fmt"
	"slices"

	"github.com/matzehuels/hypertower/pkg/hypergraph"
	"github.com/matzehuels/hypertower/pkg/hypergraph/transform"
)

var (
	// ErrNestingTooDeep is reported when a hierarchical edge would recurse
	// past the configured maximum depth. The subgraph is left empty.
	ErrNestingTooDeep = errors.New("hierarchical nesting exceeds maximum depth")

	// ErrRecursiveNesting is reported when a subgraph is already being laid
	// out further up the recursion. The subgraph is left empty.
	ErrRecursiveNesting = errors.New("hypergraph is nested inside itself")
)

// Size is the extent of a layout in abstract units: Width is an arity-based
// width estimate and Height is the sum of per-level height units. A parent
// layout consumes these to size a hierarchical edge.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Result is the output of [Build].
type Result struct {
	Origin Point `json:"origin"`
	Size   Size  `json:"size"`

	Boxes      []Box       `json:"boxes"`
	Anchors    []Anchor    `json:"anchors"`
	Connectors []Connector `json:"connectors"`

	// Levels is the layering of the top-level graph.
	Levels transform.Levels `json:"-"`

	// Diagnostics collects non-fatal problems found anywhere in the
	// recursion: orphaned edges and skipped subgraphs.
	Diagnostics []error `json:"-"`
}

// Err joins the diagnostics into one error, or returns nil if there are none.
func (r Result) Err() error { return errors.Join(r.Diagnostics...) }

// Drawables returns every primitive in paint order: boxes from the outermost
// depth inwards, then connectors, then anchors.
func (r Result) Drawables() []Drawable {
	boxes := slices.Clone(r.Boxes)
	slices.SortStableFunc(boxes, func(a, b Box) int { return a.Depth - b.Depth })

	out := make([]Drawable, 0, len(boxes)+len(r.Connectors)+len(r.Anchors))
	for _, b := range boxes {
		out = append(out, b)
	}
	for _, c := range r.Connectors {
		out = append(out, c)
	}
	for _, a := range r.Anchors {
		out = append(out, a)
	}
	return out
}

// Bounds returns the smallest rectangle covering every drawn primitive.
func (r Result) Bounds() Rect {
	var bounds Rect
	for _, b := range r.Boxes {
		bounds = bounds.Union(b.Slot).Union(b.Body)
	}
	for _, a := range r.Anchors {
		bounds = bounds.Union(Rect{X: a.At.X, Y: a.At.Y})
	}
	for _, c := range r.Connectors {
		bounds = bounds.Union(Rect{X: c.From.X, Y: c.From.Y}).Union(Rect{X: c.To.X, Y: c.To.Y})
	}
	return bounds
}

// Frame returns the document size: the bounds extended by the origin margin
// on the right and bottom as well.
func (r Result) Frame() (width, height float64) {
	b := r.Bounds()
	return b.Right() + r.Origin.X, b.Bottom() + r.Origin.Y
}

// Option configures [Build].
type Option func(*config)

type config struct {
	origin   Point
	maxDepth int
}

// WithOrigin sets the top-left corner of the outermost frame.
// Default is (DefaultOriginX, DefaultOriginY).
func WithOrigin(x, y float64) Option {
	return func(c *config) { c.origin = Point{X: x, Y: y} }
}

// WithMaxDepth bounds how many hierarchical levels are expanded.
// Zero draws hierarchical edges with empty bodies; negative values are
// ignored. Default is DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		if depth >= 0 {
			c.maxDepth = depth
		}
	}
}

// Build lays out g and every nested subgraph.
//
// Edges are placed level by level: each level is one horizontal band whose
// edges are packed left to right in layering order. A plain edge gets a box
// of [BoxWidth] and one height unit. A hierarchical edge lays out each of its
// subgraphs side by side inside its body, separated by dashed connectors, and
// takes one unit more than its tallest subgraph.
//
// The first edge that touches a node draws the node's anchor. Every later
// edge touching the same node within the same graph connects to that anchor
// instead of drawing a new one.
//
// Build never fails. Unreachable edges and subgraphs that cannot be expanded
// are recorded in [Result.Diagnostics] and the rest of the layout proceeds.
func Build(g *hypergraph.Hypergraph, opts ...Option) Result {
	cfg := config{
		origin:   Point{X: DefaultOriginX, Y: DefaultOriginY},
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	b := &builder{
		maxDepth: cfg.maxDepth,
		active:   make(map[*hypergraph.Hypergraph]bool),
	}
	levels := transform.ComputeLevels(g)
	size := b.layoutGraph(g, levels, cfg.origin, 0, "")

	return Result{
		Origin:      cfg.origin,
		Size:        size,
		Boxes:       b.boxes,
		Anchors:     b.anchors,
		Connectors:  b.connectors,
		Levels:      levels,
		Diagnostics: b.diagnostics,
	}
}

// builder accumulates primitives for one top-level Build call.
type builder struct {
	maxDepth int
	active   map[*hypergraph.Hypergraph]bool

	boxes       []Box
	anchors     []Anchor
	connectors  []Connector
	diagnostics []error
}

func (b *builder) report(path string, err error) {
	if path != "" {
		err = fmt.Errorf("%s: %w", path, err)
	}
	b.diagnostics = append(b.diagnostics, err)
}

// layoutGraph places one graph with its outermost frame at origin and
// returns its size in abstract units.
func (b *builder) layoutGraph(g *hypergraph.Hypergraph, levels transform.Levels, origin Point, depth int, path string) Size {
	b.active[g] = true
	defer delete(b.active, g)

	for _, o := range levels.Orphans {
		b.report(path, o)
	}

	memo := positionMemo{}
	var (
		widths []int
		height int
	)
	v := origin.Y
	for _, lv := range levels.Levels {
		h := origin.X
		units := 0
		for _, e := range lv.Edges {
			if !e.IsHierarchical() {
				h += b.plain(e, Point{X: h, Y: v}, memo, depth)
				units = max(units, 1)
				continue
			}
			hs := b.hierarchical(e, Point{X: h, Y: v}, memo, depth, path)
			h += hs.advance
			units = max(units, hs.units)
			widths = append(widths, hs.rawWidth+1)
		}
		height += units
		v += float64(max(units*LevelStep, LevelStep))
	}

	for _, lv := range levels.Levels {
		arity := 0
		for _, e := range lv.Edges {
			arity += e.Arity()
		}
		widths = append(widths, max(arity, CompactArity*len(lv.Edges)))
	}

	width := 0
	if len(widths) > 0 {
		width = slices.Max(widths)
	}
	return Size{Width: width, Height: height}
}

// plain places a leaf edge in the frame at slot and returns its width.
func (b *builder) plain(e *hypergraph.Edge, slot Point, memo positionMemo, depth int) float64 {
	width := float64(BoxWidth(e.Arity()))
	middle := width / 2
	label, _ := e.Label()

	b.boxes = append(b.boxes, Box{
		EdgeID: e.ID(),
		Kind:   KindPlain,
		Depth:  depth,
		Slot:   Rect{X: slot.X, Y: slot.Y, W: width, H: LevelStep},
		Units:  1,
		Body: Rect{
			X: slot.X + middle - BodySize/2, Y: slot.Y + BodyY,
			W: BodySize, H: BodySize,
		},
		LabelSlot: Rect{
			X: slot.X + middle - LabelSize/2, Y: slot.Y + LabelY,
			W: LabelSize, H: LabelSize,
		},
		Label: label,
	})

	b.row(e.Inputs(), memo, slot, InputRowY, middle, width, true, depth)
	b.row(e.Outputs(), memo, slot, OutputRowY, middle, width, false, depth)
	return width
}

type hierarchicalSize struct {
	advance  float64 // horizontal space consumed in the level
	units    int     // height units, one more than the tallest subgraph
	rawWidth int     // sum of subgraph width estimates
}

// hierarchical lays out the subgraphs of e side by side inside a frame
// inset from slot, then draws the composite body and its anchor rows.
func (b *builder) hierarchical(e *hypergraph.Edge, slot Point, memo positionMemo, depth int, path string) hierarchicalSize {
	frame := slot.Add(Point{X: GroupInsetX, Y: GroupInsetY})
	subs := e.Subgraphs()

	var (
		cursor    = SubgraphCursor
		bounds    = make([]int, 0, len(subs))
		aggregate int
		rawWidth  int
		tallest   int
	)
	for i, sub := range subs {
		subPath := fmt.Sprintf("edge %d subgraph %d", e.ID(), i)
		if path != "" {
			subPath = path + ": " + subPath
		}

		var size Size
		switch {
		case b.active[sub]:
			b.report(subPath, ErrRecursiveNesting)
		case depth >= b.maxDepth:
			b.report(subPath, ErrNestingTooDeep)
		default:
			origin := frame.Add(Point{X: float64(cursor), Y: SubgraphOffsetY})
			size = b.layoutGraph(sub, transform.ComputeLevels(sub), origin, depth+1, subPath)
		}

		span := SubgraphSpan(size.Width)
		cursor += span
		bounds = append(bounds, cursor)
		aggregate += span
		rawWidth += size.Width
		tallest = max(tallest, size.Height)
	}

	bodyHeight := float64(LevelStep * tallest)
	for i := 0; i+1 < len(bounds); i++ {
		sep := frame.X + float64(bounds[i]) - 1
		b.connectors = append(b.connectors, Connector{
			From:   Point{X: sep, Y: frame.Y + GroupBodyY + bodyHeight},
			To:     Point{X: sep, Y: frame.Y + GroupBodyY},
			Dashed: true,
		})
	}

	advance := float64(cursor + GroupGap)
	b.boxes = append(b.boxes, Box{
		EdgeID: e.ID(),
		Kind:   KindHierarchical,
		Depth:  depth,
		Slot:   Rect{X: slot.X, Y: slot.Y, W: advance, H: float64(LevelStep * (tallest + 1))},
		Units:  tallest + 1,
		Body: Rect{
			X: frame.X, Y: frame.Y + GroupBodyY,
			W: float64(aggregate + GroupBodyPad), H: bodyHeight,
		},
	})

	width := float64(aggregate)
	middle := width / 2
	b.row(e.Inputs(), memo, frame, GroupInputRowY, middle, width, true, depth)
	b.row(e.Outputs(), memo, frame, bodyHeight+GroupOutputPad, middle, width, false, depth)

	return hierarchicalSize{advance: advance, units: tallest + 1, rawWidth: rawWidth}
}

// row places one anchor row of an edge. Positions are computed in the edge
// frame at origin and emitted in absolute coordinates.
//
// Each endpoint produces a visible anchor at the row (or a link back to the
// node's first anchor), an invisible waypoint just inside the row, and a
// connector from the waypoint to the body attach point at middle.
func (b *builder) row(nodes []*hypergraph.Node, memo positionMemo, origin Point, y, middle, width float64, input bool, depth int) {
	waypoint, attach := float64(WaypointOffset), float64(AttachOffset)
	if !input {
		waypoint, attach = -waypoint, -attach
	}

	for _, s := range FanOut(len(nodes), middle, width) {
		n := nodes[s.Index]
		wp := origin.Add(Point{X: s.X, Y: y + waypoint})

		if p, ok := memo.lookup(n); ok {
			b.connectors = append(b.connectors, Connector{From: wp, To: origin.Add(p.project(origin))})
		} else {
			local := Point{X: s.X, Y: y}
			at := origin.Add(local)
			b.anchors = append(b.anchors, Anchor{NodeID: n.ID(), Label: n.Label(), At: at, Visible: true, Depth: depth})
			b.connectors = append(b.connectors, Connector{From: wp, To: at})
			memo.record(n, local, origin)
		}

		b.anchors = append(b.anchors, Anchor{NodeID: n.ID(), At: wp, Depth: depth})
		b.connectors = append(b.connectors, Connector{
			From: origin.Add(Point{X: middle, Y: y + waypoint + attach}),
			To:   wp,
		})
	}
}
