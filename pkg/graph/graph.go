package graph

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/hypertower/pkg/hypergraph"
)

// MarshalGraph converts a hypergraph to indented JSON bytes. File and stream
// encodings in every supported format live in the io package.
func MarshalGraph(g *hypergraph.Hypergraph) ([]byte, error) {
	out, err := FromHypergraph(g)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return buf.Bytes(), nil
}
