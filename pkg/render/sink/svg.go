package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/hypertower/pkg/render/layout"
	"github.com/matzehuels/hypertower/pkg/render/styles"
)

const interactionCSS = `
    .box { transition: stroke-width 0.2s ease; }
    .box.highlight { stroke-width: 3; }`

const interactionJS = `
    document.querySelectorAll('.box').forEach(el => {
      el.addEventListener('mouseenter', () => el.classList.add('highlight'));
      el.addEventListener('mouseleave', () => el.classList.remove('highlight'));
    });`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style       styles.Style
	typesetter  styles.Typesetter
	title       string
	labels      bool
	interactive bool
}

// WithStyle sets the visual style. Default is [styles.Simple].
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithTypesetter sets how edge labels are fitted into their label slots.
// Default is [styles.Heuristic], which needs no font.
func WithTypesetter(t styles.Typesetter) SVGOption {
	return func(r *svgRenderer) { r.typesetter = t }
}

// WithTitle adds a <title> element to the document.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// WithoutLabels omits edge labels and node labels.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.labels = false } }

// WithInteraction adds hover highlighting of boxes.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interactive = true } }

// RenderSVG renders a layout as a standalone SVG document.
//
// Drawables are painted in [layout.Result.Drawables] order: boxes outermost
// first, each plain box followed by its label, then connectors, then visible
// anchors. Invisible anchors are routing waypoints and are not drawn.
func RenderSVG(res layout.Result, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	width, height := res.Frame()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", styles.EscapeXML(r.title))
	}

	r.style.RenderDefs(&buf)
	boxes := 0
	for _, d := range res.Drawables() {
		switch d := d.(type) {
		case layout.Box:
			r.style.RenderBox(&buf, styleBox(d, boxes))
			boxes++
			if r.labels {
				if l, ok := r.label(d); ok {
					r.style.RenderLabel(&buf, l)
				}
			}
		case layout.Connector:
			r.style.RenderConnector(&buf, styleConnector(d))
		case layout.Anchor:
			if d.Visible {
				r.style.RenderAnchor(&buf, r.styleAnchor(d))
			}
		}
	}
	if r.interactive {
		renderInteraction(&buf)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		style:      styles.Simple{},
		typesetter: styles.Heuristic{},
		labels:     true,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func renderInteraction(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", interactionCSS)
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", interactionJS)
}

// label typesets the label of a plain box into its slot. Labels that cannot
// be fit are dropped.
func (r svgRenderer) label(b layout.Box) (styles.Label, bool) {
	return typesetLabel(r.typesetter, b)
}

func (r svgRenderer) styleAnchor(a layout.Anchor) styles.Anchor {
	out := styles.Anchor{NodeID: a.NodeID, X: a.At.X, Y: a.At.Y, Depth: a.Depth}
	if r.labels {
		out.Label = a.Label
	}
	return out
}

func typesetLabel(ts styles.Typesetter, b layout.Box) (styles.Label, bool) {
	if b.Kind != layout.KindPlain || b.Label == "" {
		return styles.Label{}, false
	}
	slot := b.LabelSlot
	g, err := ts.Typeset(b.Label, slot.W, slot.H)
	if err != nil || g.Text == "" {
		return styles.Label{}, false
	}
	return styles.Label{EdgeID: b.EdgeID, Glyph: g, X: slot.X, Y: slot.Y, W: slot.W, H: slot.H}, true
}

// styleBox converts a layout box. Edge ids repeat across subgraphs, so the
// element id uses the paint index.
func styleBox(b layout.Box, index int) styles.Box {
	return styles.Box{
		ID:           fmt.Sprintf("box-%d", index),
		EdgeID:       b.EdgeID,
		Hierarchical: b.Kind == layout.KindHierarchical,
		Depth:        b.Depth,
		X:            b.Body.X, Y: b.Body.Y, W: b.Body.W, H: b.Body.H,
	}
}

func styleConnector(c layout.Connector) styles.Connector {
	return styles.Connector{X1: c.From.X, Y1: c.From.Y, X2: c.To.X, Y2: c.To.Y, Dashed: c.Dashed}
}
