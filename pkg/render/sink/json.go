package sink

import (
	"github.com/matzehuels/hypertower/pkg/graph"
	"github.com/matzehuels/hypertower/pkg/render/layout"
)

// RenderJSON exports the complete layout as JSON in the [graph.Layout]
// format: every positioned primitive, the top-level levels, and the
// diagnostics of the layout pass. The output can be read back with
// [graph.UnmarshalLayout] and rendered again with [graph.Layout.ToResult].
// Style and title belong to the pipeline, which records them on the
// [graph.Layout] it serializes.
func RenderJSON(res layout.Result) ([]byte, error) {
	return graph.MarshalLayout(graph.FromResult(res))
}
