package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	errs "github.com/matzehuels/hypertower/pkg/errors"
	"github.com/matzehuels/hypertower/pkg/fonts"
	"github.com/matzehuels/hypertower/pkg/render/layout"
	"github.com/matzehuels/hypertower/pkg/render/styles"
)

// Colors match styles.Simple.
const (
	colorInk       = "#333333"
	colorSeparator = "#888899"
	colorFrame     = "#555566"
)

// MaxPNGPixels bounds the canvas of [RenderPNG]; larger images are refused
// before any pixel buffer is allocated.
const MaxPNGPixels = 64 << 20

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	typesetter styles.Typesetter
	labels     bool
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithPNGTypesetter sets the typesetter used to fit edge labels.
func WithPNGTypesetter(t styles.Typesetter) PNGOption {
	return func(r *pngRenderer) { r.typesetter = t }
}

// WithoutPNGLabels omits edge labels and node labels.
func WithoutPNGLabels() PNGOption { return func(r *pngRenderer) { r.labels = false } }

// RenderPNG rasterizes the layout natively, without an external converter.
// The image mirrors [RenderSVG] with the simple style.
func RenderPNG(res layout.Result, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0, typesetter: styles.Heuristic{}, labels: true}
	for _, opt := range opts {
		opt(&r)
	}

	width, height := res.Frame()
	pw, ph := max(math.Ceil(width*r.scale), 1), max(math.Ceil(height*r.scale), 1)
	if !(pw*ph <= MaxPNGPixels) {
		return nil, errs.New(errs.ErrCodeInvalidInput,
			"png canvas %.0fx%.0f exceeds %d pixels; lower the scale or render svg", pw, ph, MaxPNGPixels)
	}
	dc := gg.NewContext(int(pw), int(ph))
	dc.SetHexColor("#ffffff")
	dc.Clear()
	dc.Scale(r.scale, r.scale)

	faces := faceCache{}
	defer faces.close()

	for _, d := range res.Drawables() {
		switch d := d.(type) {
		case layout.Box:
			drawBox(dc, d)
			if r.labels {
				if l, ok := typesetLabel(r.typesetter, d); ok {
					if err := drawText(dc, faces, l.Glyph.Text, l.Glyph.Size, l.CX(), l.CY(), 0.5); err != nil {
						return nil, err
					}
				}
			}
		case layout.Connector:
			drawConnector(dc, d)
		case layout.Anchor:
			if !d.Visible {
				continue
			}
			dc.SetHexColor(colorInk)
			dc.DrawCircle(d.At.X, d.At.Y, 4)
			dc.Fill()
			if r.labels && d.Label != "" {
				if err := drawText(dc, faces, d.Label, 11, d.At.X+7, d.At.Y, 0); err != nil {
					return nil, err
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawBox(dc *gg.Context, b layout.Box) {
	body := b.Body
	if b.Kind == layout.KindHierarchical {
		dc.DrawRoundedRectangle(body.X, body.Y, body.W, body.H, 6)
		dc.SetHexColor(styles.DepthFill(b.Depth))
		dc.FillPreserve()
		dc.SetHexColor(colorFrame)
	} else {
		dc.DrawRoundedRectangle(body.X, body.Y, body.W, body.H, min(body.W, body.H)*0.2)
		dc.SetHexColor("#ffffff")
		dc.FillPreserve()
		dc.SetHexColor(colorInk)
	}
	dc.SetLineWidth(1.5)
	dc.Stroke()
}

func drawConnector(dc *gg.Context, c layout.Connector) {
	ym := (c.From.Y + c.To.Y) / 2
	dc.MoveTo(c.From.X, c.From.Y)
	dc.CubicTo(c.From.X, ym, c.To.X, ym, c.To.X, c.To.Y)
	if c.Dashed {
		dc.SetHexColor(colorSeparator)
		dc.SetLineWidth(1)
		dc.SetDash(4, 4)
	} else {
		dc.SetHexColor(colorInk)
		dc.SetLineWidth(1.5)
	}
	dc.Stroke()
	dc.SetDash()
}

// drawText draws s vertically centered at (x, y); ax is the horizontal
// anchor (0 left, 0.5 center).
func drawText(dc *gg.Context, faces faceCache, s string, size, x, y, ax float64) error {
	face, err := faces.get(size)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	dc.SetHexColor(colorInk)
	dc.DrawStringAnchored(s, x, y, ax, 0.35)
	return nil
}

// faceCache holds one font face per point size for a single render.
type faceCache map[float64]font.Face

func (c faceCache) get(size float64) (font.Face, error) {
	if f, ok := c[size]; ok {
		return f, nil
	}
	f, err := fonts.Face(size)
	if err != nil {
		return nil, err
	}
	c[size] = f
	return f, nil
}

func (c faceCache) close() {
	for _, f := range c {
		f.Close()
	}
}
