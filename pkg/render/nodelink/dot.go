package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/hypertower/pkg/graph"
	"github.com/matzehuels/hypertower/pkg/hypergraph"
	"github.com/matzehuels/hypertower/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed appends node and edge ids to the labels.
	// When false, only the labels are shown.
	Detailed bool
}

// ToDOT converts a hypergraph to Graphviz DOT format for node-link
// visualization. The resulting DOT string can be rendered using [RenderSVG],
// [RenderPDF], or [RenderPNG].
//
// Nodes are ellipses and every hyperedge becomes a box node wired to its
// inputs and outputs. The subgraphs of a hierarchical edge are drawn as
// clusters hanging off the edge's box with dashed links.
//
// Ids are only unique within one hypergraph, so DOT identifiers carry the
// path of edges leading to the subgraph they belong to.
func ToDOT(g *hypergraph.Hypergraph, opts Options) (string, error) {
	if err := g.Validate(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  compound=true;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=ellipse, fontsize=14];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")

	w := dotWriter{buf: &buf, opts: opts}
	w.write(g, "g", "  ")

	buf.WriteString("}\n")
	return buf.String(), nil
}

type dotWriter struct {
	buf      *bytes.Buffer
	opts     Options
	clusters int
}

func (w *dotWriter) write(g *hypergraph.Hypergraph, prefix, indent string) {
	for _, n := range g.Nodes() {
		fmt.Fprintf(w.buf, "%s%q [label=%q];\n", indent, nodeID(prefix, n), w.label(n.Label(), n.ID()))
	}

	for _, e := range g.Edges() {
		id := edgeID(prefix, e)
		if label, ok := e.Label(); ok {
			fmt.Fprintf(w.buf, "%s%q [shape=box, style=\"rounded,filled\", fillcolor=white, label=%q];\n",
				indent, id, w.label(label, e.ID()))
		} else {
			fmt.Fprintf(w.buf, "%s%q [shape=box, style=\"rounded,filled,dashed\", fillcolor=lightgrey, label=%q];\n",
				indent, id, w.label(fmt.Sprintf("%d subgraphs", len(e.Subgraphs())), e.ID()))
		}
		for _, n := range e.Inputs() {
			fmt.Fprintf(w.buf, "%s%q -> %q;\n", indent, nodeID(prefix, n), id)
		}
		for _, n := range e.Outputs() {
			fmt.Fprintf(w.buf, "%s%q -> %q;\n", indent, id, nodeID(prefix, n))
		}

		for i, sub := range e.Subgraphs() {
			w.cluster(sub, id, fmt.Sprintf("%s_s%d", id, i), indent)
		}
	}
}

// cluster writes one subgraph body and links it to the owning edge's box.
// Empty subgraphs have nothing to link to and are drawn as empty clusters.
func (w *dotWriter) cluster(sub *hypergraph.Hypergraph, owner, prefix, indent string) {
	name := fmt.Sprintf("cluster_%d", w.clusters)
	w.clusters++

	fmt.Fprintf(w.buf, "%ssubgraph %s {\n", indent, name)
	fmt.Fprintf(w.buf, "%s  style=\"rounded,dashed\";\n", indent)
	fmt.Fprintf(w.buf, "%s  color=grey;\n", indent)
	if title, ok := sub.Meta()[graph.MetaTitle].(string); ok && title != "" {
		fmt.Fprintf(w.buf, "%s  label=%q;\n", indent, title)
	}
	w.write(sub, prefix, indent+"  ")
	fmt.Fprintf(w.buf, "%s}\n", indent)

	if nodes := sub.Nodes(); len(nodes) > 0 {
		fmt.Fprintf(w.buf, "%s%q -> %q [style=dashed, arrowhead=none, lhead=%s];\n",
			indent, owner, nodeID(prefix, nodes[0]), name)
	}
}

func (w *dotWriter) label(label string, id int) string {
	if !w.opts.Detailed {
		return label
	}
	return label + "\n#" + strconv.Itoa(id)
}

func nodeID(prefix string, n *hypergraph.Node) string {
	return prefix + "_n" + strconv.Itoa(n.ID())
}

func edgeID(prefix string, e *hypergraph.Edge) string {
	return prefix + "_e" + strconv.Itoa(e.ID())
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the diagram scales like the
// layered sinks: origin at zero, width and height equal to the viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
