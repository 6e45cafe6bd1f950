package styles

import (
	"errors"
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font"

	"github.com/matzehuels/hypertower/pkg/fonts"
)

const (
	fontHeightRatio = 0.75
	fontCharWidth   = 0.55
	fontSizeMin     = 5.0
	fontSizeMax     = 14.0
	ellipsis        = ".."

	// referenceSize is the point size glyph advances are measured at.
	// Advances scale linearly, so one measurement sizes any font size.
	referenceSize = 100.0
)

// ErrSlotTooSmall is returned when not even the ellipsis fits the slot at the
// minimum font size.
var ErrSlotTooSmall = errors.New("label slot too small for any text")

// Glyph is a label ready to draw: the text to show (possibly truncated), its
// font size, and its advance width at that size.
type Glyph struct {
	Text  string
	Size  float64
	Width float64
}

// Typesetter fits a label into a w×h slot.
type Typesetter interface {
	Typeset(label string, w, h float64) (Glyph, error)
}

// FontTypesetter sizes labels by measuring them with the embedded font. The
// size is the largest that fits both dimensions, clamped to [MinSize,
// MaxSize]. A label that does not fit at MinSize is truncated with "..".
//
// The zero value uses package defaults. A FontTypesetter is safe for
// concurrent use.
type FontTypesetter struct {
	MinSize float64
	MaxSize float64

	once sync.Once
	mu   sync.Mutex
	face font.Face
	err  error
}

// Typeset implements [Typesetter].
func (t *FontTypesetter) Typeset(label string, w, h float64) (Glyph, error) {
	t.once.Do(func() { t.face, t.err = fonts.Face(referenceSize) })
	if t.err != nil {
		return Glyph{}, t.err
	}
	return fit(label, w, h, t.bounds, t.measure)
}

// Close releases the measuring face.
func (t *FontTypesetter) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.face == nil {
		return nil
	}
	return t.face.Close()
}

func (t *FontTypesetter) bounds() (float64, float64) {
	return orDefault(t.MinSize, fontSizeMin), orDefault(t.MaxSize, fontSizeMax)
}

// measure returns the advance of s at one point.
func (t *FontTypesetter) measure(s string) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return float64(font.MeasureString(t.face, s)) / 64 / referenceSize
}

// Heuristic sizes labels from a fixed average character width, without
// touching font data. It is the fallback when the font cannot be loaded and
// is deterministic across platforms.
type Heuristic struct {
	MinSize float64
	MaxSize float64
}

// Typeset implements [Typesetter].
func (h Heuristic) Typeset(label string, w, hgt float64) (Glyph, error) {
	bounds := func() (float64, float64) {
		return orDefault(h.MinSize, fontSizeMin), orDefault(h.MaxSize, fontSizeMax)
	}
	measure := func(s string) float64 { return float64(utf8.RuneCountInString(s)) * fontCharWidth }
	return fit(label, w, hgt, bounds, measure)
}

// fit picks the font size for label in a w×h slot given the per-point
// advance function, truncating when the minimum size still overflows.
func fit(label string, w, h float64, bounds func() (float64, float64), advance func(string) float64) (Glyph, error) {
	if label == "" {
		return Glyph{}, nil
	}
	lo, hi := bounds()
	hi = min(hi, h*fontHeightRatio)
	if hi < lo {
		return Glyph{}, ErrSlotTooSmall
	}

	if a := advance(label); a > 0 {
		if size := min(hi, w/a); size >= lo {
			return Glyph{Text: label, Size: size, Width: a * size}, nil
		}
	}

	runes := []rune(label)
	for n := len(runes) - 1; n >= 0; n-- {
		text := string(runes[:n]) + ellipsis
		if a := advance(text); a*lo <= w {
			return Glyph{Text: text, Size: lo, Width: a * lo}, nil
		}
	}
	return Glyph{}, ErrSlotTooSmall
}

func orDefault(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}
