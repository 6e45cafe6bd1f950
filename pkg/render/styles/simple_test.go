package styles

import (
	"bytes"
	"strings"
	"testing"
)

func TestSimpleRenderDefs(t *testing.T) {
	var buf bytes.Buffer
	Simple{}.RenderDefs(&buf)
	if buf.Len() != 0 {
		t.Errorf("RenderDefs() wrote %d bytes, want 0", buf.Len())
	}

	buf.Reset()
	Simple{EmbedFont: true}.RenderDefs(&buf)
	if !strings.Contains(buf.String(), "@font-face") || !strings.Contains(buf.String(), "base64,") {
		t.Errorf("RenderDefs() with EmbedFont missing font face:\n%.200s", buf.String())
	}
}

func TestSimpleRenderBox(t *testing.T) {
	tests := []struct {
		name     string
		box      Box
		contains []string
	}{
		{
			name: "plain",
			box:  Box{ID: "box-2", EdgeID: 2, X: 16, Y: 85, W: 30, H: 30},
			contains: []string{
				`<rect`,
				`id="box-2"`,
				`class="box"`,
				`x="16.00"`,
				`y="85.00"`,
				`width="30.00"`,
				`rx="6.00"`,
				`fill="white"`,
			},
		},
		{
			name: "hierarchical",
			box:  Box{ID: "box-7", Hierarchical: true, Depth: 1, X: 11, Y: 210, W: 65, H: 120},
			contains: []string{
				`class="box hierarchical"`,
				`fill="#e9edf7"`,
				`height="120.00"`,
			},
		},
		{
			name: "deep hierarchical clamps shade",
			box:  Box{ID: "deep", Hierarchical: true, Depth: 40},
			contains: []string{
				`fill="#d2dbef"`,
			},
		},
		{
			name:     "escapes id",
			box:      Box{ID: "box<1>"},
			contains: []string{`id="box&lt;1&gt;"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Simple{}.RenderBox(&buf, tt.box)
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("RenderBox() output missing %q\nGot: %s", want, buf.String())
				}
			}
		})
	}
}

func TestSimpleRenderConnector(t *testing.T) {
	var buf bytes.Buffer
	Simple{}.RenderConnector(&buf, Connector{X1: 31, Y1: 190, X2: 31, Y2: 140})
	if !strings.Contains(buf.String(), `d="M31.00,190.00 C31.00,165.00 31.00,165.00 31.00,140.00"`) {
		t.Errorf("solid connector path wrong:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "dasharray") {
		t.Error("solid connector should not be dashed")
	}

	buf.Reset()
	Simple{}.RenderConnector(&buf, Connector{X1: 71, Y1: 210, X2: 71, Y2: 90, Dashed: true})
	for _, want := range []string{`class="separator"`, `stroke-dasharray="4,4"`} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("dashed connector missing %q\nGot: %s", want, buf.String())
		}
	}
}

func TestSimpleRenderAnchor(t *testing.T) {
	var buf bytes.Buffer
	Simple{}.RenderAnchor(&buf, Anchor{NodeID: 0, Label: "A&B", X: 31, Y: 60})
	out := buf.String()
	for _, want := range []string{`<circle`, `cx="31.00"`, `cy="60.00"`, `x="38.00"`, `>A&amp;B</text>`} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderAnchor() output missing %q\nGot: %s", want, out)
		}
	}

	buf.Reset()
	Simple{}.RenderAnchor(&buf, Anchor{NodeID: 1, X: 1, Y: 1})
	if strings.Contains(buf.String(), "<text") {
		t.Error("unlabeled anchor should not emit text")
	}
}

func TestSimpleRenderLabel(t *testing.T) {
	var buf bytes.Buffer
	Simple{}.RenderLabel(&buf, Label{EdgeID: 2, Glyph: Glyph{Text: "f", Size: 12}, X: 23, Y: 90, W: 16, H: 16})
	for _, want := range []string{`data-edge="2"`, `x="31.00"`, `y="98.00"`, `font-size="12.00"`, `>f</text>`} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("RenderLabel() output missing %q\nGot: %s", want, buf.String())
		}
	}

	buf.Reset()
	Simple{}.RenderLabel(&buf, Label{})
	if buf.Len() != 0 {
		t.Error("empty glyph should render nothing")
	}
}

func TestLinkVertical(t *testing.T) {
	got := LinkVertical(0, 0, 10, 100)
	want := "M0.00,0.00 C0.00,50.00 10.00,50.00 10.00,100.00"
	if got != want {
		t.Errorf("LinkVertical() = %q, want %q", got, want)
	}
}
