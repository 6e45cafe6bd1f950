package errors

import (
	"math"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/matzehuels/hypertower/pkg/graph"
)

// MaxLabelLength bounds node and edge labels, in runes.
const MaxLabelLength = 256

// Render bounds. MaxOrigin limits each coordinate of the layout origin,
// MaxScale the PNG scale factor.
const (
	MaxOrigin = 10000
	MaxScale  = 8
)

// Known output formats and styles, shared by the CLI and the server.
var (
	Formats  = []string{"svg", "json", "png", "pdf", "dot"}
	Styles   = []string{graph.StyleSimple}
	VizTypes = []string{graph.VizTypeLayered, graph.VizTypeNodelink}
)

// ValidateLabel validates a node or edge label.
//
// Empty labels are allowed. Rejected are:
//   - Invalid UTF-8
//   - Control characters (including newlines)
//   - Labels longer than MaxLabelLength runes
func ValidateLabel(label string) error {
	if !utf8.ValidString(label) {
		return New(ErrCodeInvalidLabel, "label is not valid UTF-8")
	}
	if n := utf8.RuneCountInString(label); n > MaxLabelLength {
		return New(ErrCodeInvalidLabel, "label too long (%d runes, max %d)", n, MaxLabelLength)
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLabel, "label %q contains control characters", label)
		}
	}
	return nil
}

// ValidatePath validates a local file path supplied by a user.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 bytes
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateFormat checks that format is one of [Formats].
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
	return nil
}

// ValidateFormats splits a comma-separated list and validates every entry.
// Whitespace around entries is ignored and duplicates are removed.
func ValidateFormats(list string) ([]string, error) {
	var out []string
	for f := range strings.SplitSeq(list, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return nil, New(ErrCodeInvalidFormat, "no output format given")
	}
	return out, nil
}

// ValidateStyle checks that style is one of [Styles].
func ValidateStyle(style string) error {
	if !slices.Contains(Styles, style) {
		return New(ErrCodeInvalidStyle, "unknown style %q", style)
	}
	return nil
}

// ValidateVizType checks that vizType is one of [VizTypes].
func ValidateVizType(vizType string) error {
	if !slices.Contains(VizTypes, vizType) {
		return New(ErrCodeInvalidVizType, "unknown visualization type %q", vizType)
	}
	return nil
}

// ValidateScale checks that a PNG scale factor is finite and in (0, MaxScale].
func ValidateScale(scale float64) error {
	if math.IsNaN(scale) || scale <= 0 || scale > MaxScale {
		return New(ErrCodeInvalidInput, "scale %v out of range (want 0 < scale <= %d)", scale, MaxScale)
	}
	return nil
}

// ValidateOrigin checks that both origin coordinates are finite and within
// ±MaxOrigin.
func ValidateOrigin(x, y float64) error {
	for _, v := range []float64{x, y} {
		if math.IsNaN(v) || math.Abs(v) > MaxOrigin {
			return New(ErrCodeInvalidInput, "origin (%v, %v) out of range (want |x|, |y| <= %d)", x, y, MaxOrigin)
		}
	}
	return nil
}
