package pipeline

import (
	"bytes"

	errs "github.com/matzehuels/hypertower/pkg/errors"
	"github.com/matzehuels/hypertower/pkg/hypergraph"
	graphio "github.com/matzehuels/hypertower/pkg/io"
)

// Input names the graph to parse: a file path, or inline data with an
// explicit format (API request bodies).
type Input struct {
	Path   string
	Data   []byte
	Format graphio.Format
}

// Parse decodes and builds the input hypergraph. Path wins over Data; the
// format of a path is taken from its extension unless Format is set.
func Parse(in Input) (*hypergraph.Hypergraph, error) {
	if in.Path != "" {
		if in.Format == "" {
			return graphio.ImportFile(in.Path)
		}
		return graphio.ImportFileAs(in.Path, in.Format)
	}
	if len(in.Data) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "no graph given")
	}
	format := in.Format
	if format == "" {
		format = graphio.FormatJSON
	}
	return graphio.Read(bytes.NewReader(in.Data), format)
}
