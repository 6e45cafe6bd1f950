// Package fonts provides the embedded label font for rendering.
//
// Labels are set in Go Regular, which ships with golang.org/x/image. It is
// compiled into the binary, so measuring and rasterizing text needs no system
// fonts. The same face is used to size labels for the SVG sink, to draw them
// in the PNG sink, and is embedded into SVG output as a data URI.
package fonts

import (
	"encoding/base64"
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontFamily is the CSS font-family name for the embedded font.
const FontFamily = "Go"

// FallbackFontFamily provides fallback fonts for viewers that ignore the
// embedded font.
const FallbackFontFamily = `'Go', 'DejaVu Sans', Helvetica, Arial, sans-serif`

// RegularTTF returns the TTF font data.
func RegularTTF() []byte {
	return goregular.TTF
}

// Parsed font and base64 data are computed once on first access.
var (
	parsed     *opentype.Font
	parseErr   error
	parseOnce  sync.Once
	ttfBase64  string
	base64Once sync.Once
)

// Regular returns the parsed Go Regular font.
func Regular() (*opentype.Font, error) {
	parseOnce.Do(func() {
		parsed, parseErr = opentype.Parse(RegularTTF())
		if parseErr != nil {
			parseErr = fmt.Errorf("parse embedded font: %w", parseErr)
		}
	})
	return parsed, parseErr
}

// Face returns a face of the embedded font at size points and 72 DPI, so one
// point equals one layout unit. The caller owns the face and should close it.
func Face(size float64) (font.Face, error) {
	f, err := Regular()
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// RegularTTFBase64 returns the TTF font data as a base64 string.
// The result is cached after first computation.
func RegularTTFBase64() string {
	base64Once.Do(func() {
		ttfBase64 = base64.StdEncoding.EncodeToString(RegularTTF())
	})
	return ttfBase64
}
