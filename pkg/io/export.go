package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/hypertower/pkg/errors"
	"github.com/matzehuels/hypertower/pkg/graph"
	"github.com/matzehuels/hypertower/pkg/hypergraph"
)

// Write encodes g in the given format and writes it to w.
// The output can be re-imported with [Read] for round-trip processing.
func Write(g *hypergraph.Hypergraph, w io.Writer, format Format) error {
	data, err := graph.FromHypergraph(g)
	if err != nil {
		return errs.FromGraphError(err)
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(data); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return errs.New(errs.ErrCodeInvalidFormat, "unsupported graph format %q", format)
	}
	return nil
}

// ExportFile writes g to path, choosing the encoder by extension.
func ExportFile(g *hypergraph.Hypergraph, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(g, f, format)
}
