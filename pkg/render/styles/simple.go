package styles

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/hypertower/pkg/fonts"
)

const (
	anchorRadius      = 4.0
	anchorLabelOffset = 7.0
	anchorFontSize    = 11.0
	strokeWidth       = 1.5
	separatorDash     = "4,4"
)

// depthFills shades hierarchical bodies from the outermost level inwards.
var depthFills = []string{"#f4f6fb", "#e9edf7", "#dde4f3", "#d2dbef"}

// DepthFill returns the fill of a hierarchical body at the given nesting
// depth. Depths past the palette reuse its darkest shade.
func DepthFill(depth int) string {
	return depthFills[max(0, min(depth, len(depthFills)-1))]
}

// Simple is a clean style with solid strokes, rounded boxes, and d3-style
// vertical links.
type Simple struct {
	// EmbedFont embeds the label font as a data URI, so the SVG renders the
	// same on machines without it.
	EmbedFont bool
}

func (s Simple) RenderDefs(buf *bytes.Buffer) {
	if !s.EmbedFont {
		return
	}
	fmt.Fprintf(buf, `  <defs><style>@font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); }</style></defs>`+"\n",
		fonts.FontFamily, fonts.RegularTTFBase64())
}

func (Simple) RenderBox(buf *bytes.Buffer, b Box) {
	if b.Hierarchical {
		fill := DepthFill(b.Depth)
		fmt.Fprintf(buf, `  <rect id="%s" class="box hierarchical" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="6" ry="6" fill="%s" stroke="#556" stroke-width="%.1f"/>`+"\n",
			EscapeXML(b.ID), b.X, b.Y, b.W, b.H, fill, strokeWidth)
		return
	}
	r := min(b.W, b.H) * 0.2
	fmt.Fprintf(buf, `  <rect id="%s" class="box" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.2f" ry="%.2f" fill="white" stroke="#333" stroke-width="%.1f"/>`+"\n",
		EscapeXML(b.ID), b.X, b.Y, b.W, b.H, r, r, strokeWidth)
}

func (Simple) RenderConnector(buf *bytes.Buffer, c Connector) {
	if c.Dashed {
		fmt.Fprintf(buf, `  <path class="separator" d="%s" fill="none" stroke="#889" stroke-width="1" stroke-dasharray="%s"/>`+"\n",
			LinkVertical(c.X1, c.Y1, c.X2, c.Y2), separatorDash)
		return
	}
	fmt.Fprintf(buf, `  <path class="link" d="%s" fill="none" stroke="#333" stroke-width="%.1f"/>`+"\n",
		LinkVertical(c.X1, c.Y1, c.X2, c.Y2), strokeWidth)
}

func (Simple) RenderAnchor(buf *bytes.Buffer, a Anchor) {
	fmt.Fprintf(buf, `  <circle class="anchor" data-node="%d" cx="%.2f" cy="%.2f" r="%.1f" fill="#333"/>`+"\n",
		a.NodeID, a.X, a.Y, anchorRadius)
	if a.Label == "" {
		return
	}
	fmt.Fprintf(buf, `  <text class="anchor-label" x="%.2f" y="%.2f" font-family="%s" font-size="%.1f" dominant-baseline="central">%s</text>`+"\n",
		a.X+anchorLabelOffset, a.Y, fonts.FallbackFontFamily, anchorFontSize, EscapeXML(a.Label))
}

func (Simple) RenderLabel(buf *bytes.Buffer, l Label) {
	if l.Glyph.Text == "" {
		return
	}
	fmt.Fprintf(buf, `  <text class="box-label" data-edge="%d" x="%.2f" y="%.2f" font-family="%s" font-size="%.2f" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
		l.EdgeID, l.CX(), l.CY(), fonts.FallbackFontFamily, l.Glyph.Size, EscapeXML(l.Glyph.Text))
}
