package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/hypertower/pkg/errors"
	"github.com/matzehuels/hypertower/pkg/graph"
	"github.com/matzehuels/hypertower/pkg/hypergraph"
)

// Format identifies an on-disk graph encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errs.New(errs.ErrCodeInvalidFormat, "cannot infer graph format from %q (want .json, .toml, .yaml or .yml)", path)
	}
}

// Decode reads a graph in the given format from r into the serialization
// type, without building it. Labels are validated.
func Decode(r io.Reader, format Format) (graph.Graph, error) {
	var g graph.Graph
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&g); err != nil {
			return graph.Graph{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode json")
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&g); err != nil {
			return graph.Graph{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode toml")
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&g); err != nil {
			return graph.Graph{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode yaml")
		}
	default:
		return graph.Graph{}, errs.New(errs.ErrCodeInvalidFormat, "unsupported graph format %q", format)
	}

	if err := validateLabels(g); err != nil {
		return graph.Graph{}, err
	}
	return g, nil
}

// Read decodes a graph in the given format from r and builds the
// hypergraph. Construction errors are classified with
// [errs.FromGraphError].
//
// The returned hypergraph is independent of r. Read does not close r.
func Read(r io.Reader, format Format) (*hypergraph.Hypergraph, error) {
	data, err := Decode(r, format)
	if err != nil {
		return nil, err
	}
	g, err := graph.ToHypergraph(data)
	if err != nil {
		return nil, errs.FromGraphError(err)
	}
	return g, nil
}

// ImportFile reads the graph at path, choosing the decoder by extension.
//
// A missing file yields FILE_NOT_FOUND; a malformed document INVALID_INPUT;
// a document that decodes but cannot be built INVALID_GRAPH or one of the
// more specific graph codes.
func ImportFile(path string) (*hypergraph.Hypergraph, error) {
	if err := errs.ValidatePath(path); err != nil {
		return nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	return ImportFileAs(path, format)
}

// ImportFileAs reads the graph at path in the given format, ignoring the
// extension.
func ImportFileAs(path string, format Format) (*hypergraph.Hypergraph, error) {
	if err := errs.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.FromGraphError(fmt.Errorf("open %s: %w", path, err))
	}
	return Read(bytes.NewReader(data), format)
}

func validateLabels(root graph.Graph) error {
	var err error
	root.Walk(func(g graph.Graph, depth int) {
		if err != nil {
			return
		}
		for _, n := range g.Nodes {
			if e := errs.ValidateLabel(n.Label); e != nil {
				err = errs.Wrap(errs.ErrCodeInvalidLabel, e, "node %d at depth %d", n.ID, depth)
				return
			}
		}
		for i, e := range g.Edges {
			if ve := errs.ValidateLabel(e.Label); ve != nil {
				err = errs.Wrap(errs.ErrCodeInvalidLabel, ve, "edge %d at depth %d", i, depth)
				return
			}
		}
	})
	return err
}
