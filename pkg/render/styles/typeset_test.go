package styles

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestHeuristicTypeset(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		w, h    float64
		want    Glyph
		wantErr error
	}{
		{name: "empty", label: "", w: 16, h: 16, want: Glyph{}},
		{name: "single char capped by height", label: "f", w: 16, h: 16, want: Glyph{Text: "f", Size: 12, Width: 6.6000000000000005}},
		{name: "truncated", label: "filter", w: 16, h: 16, want: Glyph{Text: "fil..", Size: 5, Width: 13.750000000000002}},
		{name: "slot too short", label: "f", w: 16, h: 4, wantErr: ErrSlotTooSmall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Heuristic{}.Typeset(tt.label, tt.w, tt.h)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Typeset() error = %v, want %v", err, tt.wantErr)
			}
			if got.Text != tt.want.Text || !near(got.Size, tt.want.Size) || !near(got.Width, tt.want.Width) {
				t.Errorf("Typeset() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func near(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}

func TestFontTypesetterFitsSlot(t *testing.T) {
	ts := &FontTypesetter{}
	defer ts.Close()

	properties := gopter.NewProperties(gopter.DefaultTestParameters())
	properties.Property("glyph fits the slot or is rejected", prop.ForAll(
		func(label string, w float64) bool {
			g, err := ts.Typeset(label, w, 16)
			if err != nil {
				return errors.Is(err, ErrSlotTooSmall)
			}
			if label == "" {
				return g == Glyph{}
			}
			return g.Width <= w+1e-9 && g.Size >= fontSizeMin && g.Size <= 12
		},
		gen.AlphaString(),
		gen.Float64Range(4, 200),
	))
	properties.TestingRun(t)
}

func TestFontTypesetterTruncates(t *testing.T) {
	ts := &FontTypesetter{}
	defer ts.Close()

	g, err := ts.Typeset(strings.Repeat("w", 40), 16, 16)
	if err != nil {
		t.Fatalf("Typeset: %v", err)
	}
	if !strings.HasSuffix(g.Text, "..") || g.Size != fontSizeMin {
		t.Errorf("Typeset() = %+v, want truncated text at minimum size", g)
	}
}

func TestFontTypesetterConcurrent(t *testing.T) {
	ts := &FontTypesetter{}
	defer ts.Close()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				if _, err := ts.Typeset("map", 16, 16); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
