package nodelink

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/matzehuels/hypertower/pkg/hypergraph"
	"github.com/matzehuels/hypertower/pkg/render"
)

func ns(n ...*hypergraph.Node) []*hypergraph.Node { return n }

// nested builds A,B -f-> C -> [x -h-> y] -> D.
func nested(t *testing.T) *hypergraph.Hypergraph {
	t.Helper()
	sub := hypergraph.New(hypergraph.Metadata{"title": "inner"})
	x, y := sub.AddNode("x"), sub.AddNode("y")
	if _, err := sub.AddPlainEdge(ns(x), ns(y), "h"); err != nil {
		t.Fatal(err)
	}

	g := hypergraph.New(nil)
	a, b, c, d := g.AddNode("A"), g.AddNode("B"), g.AddNode("C"), g.AddNode("D")
	if _, err := g.AddPlainEdge(ns(a, b), ns(c), "f"); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddHierarchicalEdge(ns(c), ns(d), []*hypergraph.Hypergraph{sub}); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestToDOT(t *testing.T) {
	dot, err := ToDOT(nested(t), Options{})
	if err != nil {
		t.Fatalf("ToDOT: %v", err)
	}

	for _, want := range []string{
		`"g_n0" [label="A"];`,
		`"g_e4" [shape=box, style="rounded,filled", fillcolor=white, label="f"];`,
		`"g_n0" -> "g_e4";`,
		`"g_n1" -> "g_e4";`,
		`"g_e4" -> "g_n2";`,
		`label="1 subgraphs"`,
		`subgraph cluster_0 {`,
		`label="inner";`,
		`"g_e5_s0_n0" [label="x"];`,
		`"g_e5_s0_e2" -> "g_e5_s0_n1";`,
		`"g_e5" -> "g_e5_s0_n0" [style=dashed, arrowhead=none, lhead=cluster_0];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if !strings.HasPrefix(dot, "digraph G {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("DOT is not a closed digraph:\n%s", dot)
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot, err := ToDOT(nested(t), Options{Detailed: true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(dot, `label="f\n#4"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
}

func TestToDOTReusedSubgraph(t *testing.T) {
	sub := hypergraph.New(nil)
	x, y := sub.AddNode("x"), sub.AddNode("y")
	if _, err := sub.AddPlainEdge(ns(x), ns(y), "h"); err != nil {
		t.Fatal(err)
	}
	g := hypergraph.New(nil)
	a, b := g.AddNode("A"), g.AddNode("B")
	if _, err := g.AddHierarchicalEdge(ns(a), ns(b), []*hypergraph.Hypergraph{sub, sub}); err != nil {
		t.Fatal(err)
	}

	dot, err := ToDOT(g, Options{})
	if err != nil {
		t.Fatal(err)
	}
	// Each occurrence gets its own cluster and its own identifiers.
	for _, want := range []string{"cluster_0", "cluster_1", `"g_e2_s0_n0"`, `"g_e2_s1_n0"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q", want)
		}
	}
}

func TestToDOTRejectsNestingCycle(t *testing.T) {
	outer, inner := hypergraph.New(nil), hypergraph.New(nil)
	a, b := outer.AddNode("a"), outer.AddNode("b")
	if _, err := outer.AddHierarchicalEdge(ns(a), ns(b), []*hypergraph.Hypergraph{inner}); err != nil {
		t.Fatal(err)
	}
	x, y := inner.AddNode("x"), inner.AddNode("y")
	if _, err := inner.AddHierarchicalEdge(ns(x), ns(y), []*hypergraph.Hypergraph{outer}); err != nil {
		t.Fatal(err)
	}

	if _, err := ToDOT(outer, Options{}); !errors.Is(err, hypergraph.ErrSelfNesting) {
		t.Errorf("ToDOT() error = %v, want ErrSelfNesting", err)
	}
}

func TestRenderSVG(t *testing.T) {
	dot, err := ToDOT(nested(t), Options{})
	if err != nil {
		t.Fatal(err)
	}
	svg, err := RenderSVG(context.Background(), dot)
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	out := string(svg)
	if !strings.Contains(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `) {
		t.Errorf("root element not normalized:\n%.300s", out)
	}
	if !strings.Contains(out, ">inner<") {
		t.Error("cluster title missing from SVG")
	}
}

func TestRenderSVGInvalidDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), "digraph {"); err == nil {
		t.Error("expected error for malformed DOT")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "Rewrites",
			in:   `<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="x"><g/></svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`,
		},
		{
			name: "NoViewBox",
			in:   `<svg><g/></svg>`,
			want: `<svg><g/></svg>`,
		},
		{
			name: "ZeroSize",
			in:   `<svg viewBox="0 0 0 0"></svg>`,
			want: `<svg viewBox="0 0 0 0"></svg>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(normalizeViewBox([]byte(tt.in))); got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestRenderPDFWithoutConverter(t *testing.T) {
	if render.HasConverter() {
		t.Skip("rsvg-convert installed")
	}
	dot, err := ToDOT(nested(t), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := RenderPDF(context.Background(), dot); !errors.Is(err, render.ErrConverterMissing) {
		t.Errorf("RenderPDF() error = %v, want ErrConverterMissing", err)
	}
}
