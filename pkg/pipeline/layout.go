package pipeline

import (
	"github.com/matzehuels/hypertower/pkg/graph"
	"github.com/matzehuels/hypertower/pkg/hypergraph"
	"github.com/matzehuels/hypertower/pkg/render/layout"
	"github.com/matzehuels/hypertower/pkg/render/nodelink"
)

// NodelinkEngine is the Graphviz engine recorded in nodelink layouts.
const NodelinkEngine = "dot"

// GenerateLayout generates a complete layout for any visualization type.
// This is the unified entry point for generating serializable layout data.
//
// Layered layouts carry every positioned primitive plus the top-level
// levels and the diagnostics of the pass; nodelink layouts carry DOT.
// Diagnostics never fail the layout; callers decide whether to surface them.
func GenerateLayout(g *hypergraph.Hypergraph, opts Options) (graph.Layout, error) {
	opts.SetLayoutDefaults()

	var l graph.Layout
	if opts.IsNodelink() {
		dot, err := nodelink.ToDOT(g, nodelink.Options{})
		if err != nil {
			return graph.Layout{}, err
		}
		l = graph.Layout{VizType: graph.VizTypeNodelink, DOT: dot, Engine: NodelinkEngine}
	} else {
		l = graph.FromResult(layout.Build(g, opts.LayoutOptions()...))
	}

	l.Style = opts.Style
	l.Title = opts.Title
	if l.Title == "" {
		l.Title = graphTitle(g)
	}
	return l, nil
}

func graphTitle(g *hypergraph.Hypergraph) string {
	title, _ := g.Meta()[graph.MetaTitle].(string)
	return title
}
