package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	errs "github.com/matzehuels/hypertower/pkg/errors"
	"github.com/matzehuels/hypertower/pkg/graph"
	"github.com/matzehuels/hypertower/pkg/hypergraph"
)

const tomlGraph = `
[meta]
title = "etl"

[[nodes]]
id = 0
label = "raw"

[[nodes]]
id = 1
label = "clean"

[[nodes]]
id = 2
label = "report"

[[edges]]
inputs = [0]
outputs = [1]
label = "c"

[[edges]]
inputs = [1]
outputs = [2]

  [[edges.subgraphs]]

    [[edges.subgraphs.nodes]]
    id = 0
    label = "in"

    [[edges.subgraphs.nodes]]
    id = 1
    label = "out"

    [[edges.subgraphs.edges]]
    inputs = [0]
    outputs = [1]
    label = "s"
`

const yamlGraph = `
meta:
  title: etl
nodes:
  - {id: 0, label: raw}
  - {id: 1, label: clean}
  - {id: 2, label: report}
edges:
  - {inputs: [0], outputs: [1], label: c}
  - inputs: [1]
    outputs: [2]
    subgraphs:
      - nodes:
          - {id: 0, label: in}
          - {id: 1, label: out}
        edges:
          - {inputs: [0], outputs: [1], label: s}
`

const jsonGraph = `{
  "meta": {"title": "etl"},
  "nodes": [
    {"id": 0, "label": "raw"},
    {"id": 1, "label": "clean"},
    {"id": 2, "label": "report"}
  ],
  "edges": [
    {"inputs": [0], "outputs": [1], "label": "c"},
    {"inputs": [1], "outputs": [2], "subgraphs": [{
      "nodes": [{"id": 0, "label": "in"}, {"id": 1, "label": "out"}],
      "edges": [{"inputs": [0], "outputs": [1], "label": "s"}]
    }]}
  ]
}`

func TestReadFormatsAgree(t *testing.T) {
	inputs := map[Format]string{
		FormatJSON: jsonGraph,
		FormatTOML: tomlGraph,
		FormatYAML: yamlGraph,
	}

	var want graph.Graph
	for _, format := range []Format{FormatJSON, FormatTOML, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			g, err := Read(strings.NewReader(inputs[format]), format)
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			got, err := graph.FromHypergraph(g)
			if err != nil {
				t.Fatal(err)
			}

			if format == FormatJSON {
				want = got
				return
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("%s graph differs from json (-json +%s):\n%s", format, format, diff)
			}
		})
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
		want   errs.Code
	}{
		{"malformed json", `{`, FormatJSON, errs.ErrCodeInvalidInput},
		{"malformed toml", `nodes = [`, FormatTOML, errs.ErrCodeInvalidInput},
		{"malformed yaml", "nodes: [", FormatYAML, errs.ErrCodeInvalidInput},
		{"unknown format", `{}`, Format("xml"), errs.ErrCodeInvalidFormat},
		{
			name:   "control char in label",
			input:  `{"nodes": [{"id": 0, "label": "a\nb"}], "edges": []}`,
			format: FormatJSON,
			want:   errs.ErrCodeInvalidLabel,
		},
		{
			name:   "undeclared node",
			input:  `{"nodes": [{"id": 0, "label": "a"}], "edges": [{"inputs": [0], "outputs": [3], "label": "f"}]}`,
			format: FormatJSON,
			want:   errs.ErrCodeInvalidGraph,
		},
		{
			name:   "empty endpoints",
			input:  `{"nodes": [{"id": 0, "label": "a"}], "edges": [{"inputs": [0], "outputs": [], "label": "f"}]}`,
			format: FormatJSON,
			want:   errs.ErrCodeEmptyEndpoints,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input), tt.format)
			if got := errs.GetCode(err); got != tt.want {
				t.Errorf("code = %q, want %q (err: %v)", got, tt.want, err)
			}
		})
	}
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"graph.json": jsonGraph,
		"graph.toml": tomlGraph,
		"graph.yml":  yamlGraph,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	for name := range files {
		t.Run(name, func(t *testing.T) {
			g, err := ImportFile(filepath.Join(dir, name))
			if err != nil {
				t.Fatalf("ImportFile: %v", err)
			}
			if g.NodeCount() != 3 || g.EdgeCount() != 2 || g.Depth() != 1 {
				t.Errorf("got %d nodes, %d edges, depth %d", g.NodeCount(), g.EdgeCount(), g.Depth())
			}
			if g.Meta()["title"] != "etl" {
				t.Errorf("title = %v, want etl", g.Meta()["title"])
			}
		})
	}
}

func TestImportFileErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
		want errs.Code
	}{
		{"missing", filepath.Join(dir, "missing.json"), errs.ErrCodeFileNotFound},
		{"unknown extension", filepath.Join(dir, "graph.xml"), errs.ErrCodeInvalidFormat},
		{"empty path", "", errs.ErrCodeInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ImportFile(tt.path)
			if got := errs.GetCode(err); got != tt.want {
				t.Errorf("code = %q, want %q (err: %v)", got, tt.want, err)
			}
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	src, err := Read(strings.NewReader(jsonGraph), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := graph.FromHypergraph(src)

	for _, format := range []Format{FormatJSON, FormatTOML, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(src, &buf, format); err != nil {
				t.Fatalf("Write: %v", err)
			}
			back, err := Read(&buf, format)
			if err != nil {
				t.Fatalf("Read: %v\n%s", err, buf.String())
			}
			got, _ := graph.FromHypergraph(back)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExportFile(t *testing.T) {
	g := hypergraph.New(nil)
	a, b := g.AddNode("a"), g.AddNode("b")
	if _, err := g.AddPlainEdge([]*hypergraph.Node{a}, []*hypergraph.Node{b}, "f"); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := ExportFile(g, path); err != nil {
		t.Fatalf("ExportFile: %v", err)
	}
	back, err := ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if back.EdgeCount() != 1 {
		t.Errorf("edges = %d, want 1", back.EdgeCount())
	}
}

func TestImportExampleGraphs(t *testing.T) {
	tests := []struct {
		file         string
		title        string
		nodes, edges int
		depth        int
	}{
		{"build.json", "build", 3, 2, 1},
		{"release.yaml", "release", 3, 2, 2},
		{"feedback.toml", "feedback", 4, 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			g, err := ImportFile(filepath.Join("..", "..", "examples", "graphs", tt.file))
			if err != nil {
				t.Fatalf("ImportFile: %v", err)
			}
			if got := g.Meta()[graph.MetaTitle]; got != tt.title {
				t.Errorf("title = %v, want %q", got, tt.title)
			}
			if g.NodeCount() != tt.nodes || g.EdgeCount() != tt.edges {
				t.Errorf("got %d nodes, %d edges; want %d, %d", g.NodeCount(), g.EdgeCount(), tt.nodes, tt.edges)
			}
			if got := g.Depth(); got != tt.depth {
				t.Errorf("depth = %d, want %d", got, tt.depth)
			}
		})
	}
}
