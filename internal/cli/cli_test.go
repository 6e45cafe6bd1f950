package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	errs "github.com/matzehuels/hypertower/pkg/errors"
	graphio "github.com/matzehuels/hypertower/pkg/io"
	"github.com/matzehuels/hypertower/pkg/pipeline"
)

const chainGraph = `{
  "nodes": [{"id": 0, "label": "src"}, {"id": 1, "label": "obj"}, {"id": 2, "label": "bin"}],
  "edges": [
    {"inputs": [0], "outputs": [1], "label": "compile"},
    {"inputs": [1], "outputs": [2], "label": "link"}
  ],
  "meta": {"title": "build"}
}`

// captureStdout redirects the CLI's stdout for the duration of the test.
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

// isolate points config and cache lookups at temporary directories.
func isolate(t *testing.T) (cacheHome string) {
	t.Helper()
	cacheHome = t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	return cacheHome
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in      string
		want    []string
		wantErr bool
	}{
		{in: "", want: []string{"svg"}},
		{in: "svg,png", want: []string{"svg", "png"}},
		{in: "svg, dot", want: []string{"svg", "dot"}},
		{in: "gif", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseFormats(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseFormats(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLevelsCommand(t *testing.T) {
	isolate(t)
	out := captureStdout(t)
	input := writeTemp(t, "build.json", chainGraph)

	if err := execute(t, "levels", input); err != nil {
		t.Fatalf("levels: %v", err)
	}
	for _, want := range []string{"compile", "link", "src", "bin"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("levels output missing %q:\n%s", want, out)
		}
	}
}

func TestLevelsCommandJSON(t *testing.T) {
	isolate(t)
	out := captureStdout(t)
	input := writeTemp(t, "build.json", chainGraph)

	if err := execute(t, "levels", "--json", input); err != nil {
		t.Fatalf("levels --json: %v", err)
	}
	var table pipeline.LevelTable
	if err := json.Unmarshal(out.Bytes(), &table); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(table.Levels) != 2 {
		t.Fatalf("levels = %d, want 2", len(table.Levels))
	}
	if got := table.Levels[1].Edges[0].Label; got != "link" {
		t.Errorf("level 1 edge = %q, want link", got)
	}
}

func TestLevelsCommandStrict(t *testing.T) {
	isolate(t)
	captureStdout(t)
	// c and d feed each other and no source reaches them.
	input := writeTemp(t, "cycle.json", `{
  "nodes": [{"id": 0, "label": "s"}, {"id": 1, "label": "x"}, {"id": 2, "label": "c"}, {"id": 3, "label": "d"}],
  "edges": [
    {"inputs": [0], "outputs": [1], "label": "h"},
    {"inputs": [2], "outputs": [3], "label": "f"},
    {"inputs": [3], "outputs": [2], "label": "g"}
  ]
}`)

	if err := execute(t, "levels", input); err != nil {
		t.Fatalf("levels without --strict: %v", err)
	}
	if err := execute(t, "levels", "--strict", input); err == nil {
		t.Fatal("levels --strict: expected error for orphaned edges")
	}
}

func TestLayoutThenVisualize(t *testing.T) {
	isolate(t)
	captureStdout(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "build.json")
	if err := os.WriteFile(input, []byte(chainGraph), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := execute(t, "layout", input); err != nil {
		t.Fatalf("layout: %v", err)
	}
	layoutPath := filepath.Join(dir, "build.layout.json")
	if _, err := os.Stat(layoutPath); err != nil {
		t.Fatalf("layout file not written: %v", err)
	}

	if err := execute(t, "visualize", layoutPath, "-f", "svg,png"); err != nil {
		t.Fatalf("visualize: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "build.png")); err != nil {
		t.Errorf("png not written: %v", err)
	}
	svg, err := os.ReadFile(filepath.Join(dir, "build.svg"))
	if err != nil {
		t.Fatalf("svg not written: %v", err)
	}
	if !bytes.HasPrefix(svg, []byte("<svg")) {
		t.Errorf("svg output starts with %q", svg[:min(len(svg), 20)])
	}
}

func TestRenderToStdout(t *testing.T) {
	isolate(t)
	out := captureStdout(t)
	input := writeTemp(t, "build.json", chainGraph)

	if err := execute(t, "--no-cache", "render", input, "-f", "dot", "-o", "-"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(out.String(), "digraph") {
		t.Errorf("stdout = %q, want DOT", out.String())
	}
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	isolate(t)
	captureStdout(t)
	input := writeTemp(t, "build.json", chainGraph)

	if err := execute(t, "render", input, "-f", "gif"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestConvertToFile(t *testing.T) {
	isolate(t)
	captureStdout(t)
	input := writeTemp(t, "build.json", chainGraph)
	output := filepath.Join(t.TempDir(), "build.yaml")

	if err := execute(t, "convert", input, "-o", output); err != nil {
		t.Fatalf("convert: %v", err)
	}
	g, err := graphio.ImportFile(output)
	if err != nil {
		t.Fatalf("import converted graph: %v", err)
	}
	if g.NodeCount() != 3 || g.EdgeCount() != 2 {
		t.Errorf("converted graph has %d nodes and %d edges, want 3 and 2", g.NodeCount(), g.EdgeCount())
	}
}

func TestConvertToStdout(t *testing.T) {
	isolate(t)
	out := captureStdout(t)
	input := writeTemp(t, "build.json", chainGraph)

	if err := execute(t, "convert", input, "--to", "toml"); err != nil {
		t.Fatalf("convert: %v", err)
	}
	g, err := graphio.Read(strings.NewReader(out.String()), graphio.FormatTOML)
	if err != nil {
		t.Fatalf("stdout is not a toml graph: %v\n%s", err, out.String())
	}
	if g.EdgeCount() != 2 {
		t.Errorf("edges = %d, want 2", g.EdgeCount())
	}
}

func TestConvertRejectsConflictingFormats(t *testing.T) {
	isolate(t)
	captureStdout(t)
	input := writeTemp(t, "build.json", chainGraph)

	err := execute(t, "convert", input, "-o", filepath.Join(t.TempDir(), "out.yaml"), "--to", "toml")
	if !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestCacheCommands(t *testing.T) {
	cacheHome := isolate(t)
	out := captureStdout(t)
	input := writeTemp(t, "build.json", chainGraph)

	if err := execute(t, "cache", "path"); err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if got, want := strings.TrimSpace(out.String()), filepath.Join(cacheHome, appName); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}

	if err := execute(t, "levels", input); err != nil {
		t.Fatalf("levels: %v", err)
	}
	out.Reset()
	if err := execute(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(out.String(), "Cleared 1 cached entry") {
		t.Errorf("cache clear output = %q", out.String())
	}
}

func TestCacheClearRejectsRemoteBackend(t *testing.T) {
	isolate(t)
	captureStdout(t)
	config := writeTemp(t, "config.toml", "[cache]\nbackend = \"redis\"\nurl = \"redis://localhost:6379/0\"\n")

	if err := execute(t, "--config", config, "cache", "clear"); err == nil {
		t.Fatal("expected error clearing a redis cache")
	}
}

func TestCompletionCommand(t *testing.T) {
	isolate(t)
	out := captureStdout(t)

	if err := execute(t, "completion", "bash"); err != nil {
		t.Fatalf("completion: %v", err)
	}
	if !strings.Contains(out.String(), appName) {
		t.Error("bash completion does not mention the command name")
	}
}
