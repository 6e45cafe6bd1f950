package cli

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hypertower/pkg/cache"
	"github.com/matzehuels/hypertower/pkg/graph"
	"github.com/matzehuels/hypertower/pkg/pipeline"
)

func TestReadConfig(t *testing.T) {
	path := writeTemp(t, "config.toml", `
[pipeline]
max_depth = 3
formats = ["svg", "png"]
origin = { x = 5, y = 6 }
style = "simple"

[cache]
backend = "file"
dir = "/tmp/hypertower-cache"
key_prefix = "staging:"

[server]
addr = ":9090"
max_body_bytes = 1024

[log]
level = "debug"
`)

	cfg, err := readConfig(path)
	if err != nil {
		t.Fatalf("readConfig: %v", err)
	}

	wantPipeline := pipeline.Options{
		MaxDepth: 3,
		Formats:  []string{"svg", "png"},
		Origin:   &graph.Point{X: 5, Y: 6},
		Style:    "simple",
	}
	if diff := cmp.Diff(wantPipeline, cfg.Pipeline, cmpopts.IgnoreUnexported(pipeline.Options{})); diff != "" {
		t.Errorf("pipeline options mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(cache.Config{Backend: cache.BackendFile, Dir: "/tmp/hypertower-cache", KeyPrefix: "staging:"}, cfg.Cache); diff != "" {
		t.Errorf("cache config mismatch (-want +got):\n%s", diff)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.MaxBodyBytes != 1024 {
		t.Errorf("server config = %+v", cfg.Server)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
}

func TestReadConfigUnknownKey(t *testing.T) {
	path := writeTemp(t, "config.toml", "[pipeline]\nmax_detph = 3\n")

	_, err := readConfig(path)
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "pipeline.max_detph") {
		t.Errorf("error %q does not name the key", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	isolate(t)

	c := New(io.Discard, LogInfo)
	if err := c.loadConfig(); err != nil {
		t.Errorf("missing default config: %v", err)
	}

	c.configPath = "/nonexistent/config.toml"
	if err := c.loadConfig(); err == nil {
		t.Error("missing explicit config should fail")
	}
}

func TestLoadConfigBadLogLevel(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.configPath = writeTemp(t, "config.toml", "[log]\nlevel = \"loud\"\n")

	if err := c.loadConfig(); err == nil {
		t.Error("expected error for invalid log level")
	}
}

func TestResolvePrecedence(t *testing.T) {
	tests := []struct {
		name string
		base pipeline.Options
		args []string
		want pipeline.Options
	}{
		{
			name: "flag defaults",
			want: pipeline.Options{
				VizType:  pipeline.DefaultVizType,
				MaxDepth: pipeline.DefaultMaxDepth,
				Formats:  []string{"svg"},
				Style:    pipeline.DefaultStyle,
				Scale:    pipeline.DefaultScale,
			},
		},
		{
			name: "config beats flag defaults",
			base: pipeline.Options{MaxDepth: 3, Formats: []string{"png"}, Origin: &graph.Point{X: 5, Y: 6}},
			want: pipeline.Options{
				VizType:  pipeline.DefaultVizType,
				MaxDepth: 3,
				Formats:  []string{"png"},
				Origin:   &graph.Point{X: 5, Y: 6},
				Style:    pipeline.DefaultStyle,
				Scale:    pipeline.DefaultScale,
			},
		},
		{
			name: "explicit flags beat config",
			base: pipeline.Options{MaxDepth: 3, Formats: []string{"png"}, Origin: &graph.Point{X: 5, Y: 6}},
			args: []string{"--max-depth", "-1", "-f", "svg,dot", "--origin-y", "20", "--no-labels"},
			want: pipeline.Options{
				VizType:    pipeline.DefaultVizType,
				MaxDepth:   -1,
				Formats:    []string{"svg", "dot"},
				Origin:     &graph.Point{X: 5, Y: 20},
				Style:      pipeline.DefaultStyle,
				Scale:      pipeline.DefaultScale,
				HideLabels: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var flags optionFlags
			cmd := &cobra.Command{Use: "test"}
			flags.addLayoutFlags(cmd)
			flags.addRenderFlags(cmd)
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatalf("ParseFlags: %v", err)
			}

			got, err := flags.resolve(cmd, tt.base)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			// Without a config origin the flag defaults fill it in.
			if tt.want.Origin == nil {
				origin := pipeline.DefaultOrigin()
				tt.want.Origin = &origin
			}
			if diff := cmp.Diff(tt.want, got, cmpopts.IgnoreUnexported(pipeline.Options{})); diff != "" {
				t.Errorf("resolve mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveLayoutOnly(t *testing.T) {
	var flags optionFlags
	cmd := &cobra.Command{Use: "test"}
	flags.addLayoutFlags(cmd)

	got, err := flags.resolve(cmd, pipeline.Options{Title: "from config", Formats: []string{"pdf"}})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.Title != "from config" || len(got.Formats) != 1 || got.Formats[0] != "pdf" {
		t.Errorf("render options without render flags should pass through, got %+v", got)
	}
}

func TestVizTypeOf(t *testing.T) {
	if got := vizTypeOf(graph.Layout{}); got != graph.VizTypeLayered {
		t.Errorf("vizTypeOf(empty) = %q", got)
	}
	if got := vizTypeOf(graph.Layout{VizType: graph.VizTypeNodelink}); got != graph.VizTypeNodelink {
		t.Errorf("vizTypeOf(nodelink) = %q", got)
	}
}

func TestNewRunnerScopesKeys(t *testing.T) {
	isolate(t)

	c := New(io.Discard, LogInfo)
	c.cfg.Cache = cache.Config{Backend: cache.BackendFile, Dir: t.TempDir(), KeyPrefix: "staging:"}
	runner, err := c.newRunner(context.Background())
	if err != nil {
		t.Fatalf("newRunner: %v", err)
	}
	defer runner.Close()

	if got := runner.Keyer.LevelsKey("h"); got != "staging:levels:h" {
		t.Errorf("LevelsKey = %q, want staging:levels:h", got)
	}

	c.cfg.Cache.KeyPrefix = ""
	plain, err := c.newRunner(context.Background())
	if err != nil {
		t.Fatalf("newRunner: %v", err)
	}
	defer plain.Close()
	if got := plain.Keyer.LevelsKey("h"); got != "levels:h" {
		t.Errorf("LevelsKey = %q, want levels:h", got)
	}
}
