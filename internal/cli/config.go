package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hypertower/pkg/cache"
	"github.com/matzehuels/hypertower/pkg/graph"
	"github.com/matzehuels/hypertower/pkg/pipeline"
	"github.com/matzehuels/hypertower/pkg/server"
)

// Config is the layout of the TOML config file.
//
//	[pipeline]
//	max_depth = 16
//	formats = ["svg", "png"]
//	origin = { x = 1, y = 10 }
//
//	[cache]
//	backend = "redis"
//	url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
//
//	[log]
//	level = "debug"
type Config struct {
	Pipeline pipeline.Options `toml:"pipeline"`
	Cache    cache.Config     `toml:"cache"`
	Server   server.Config    `toml:"server"`
	Log      LogConfig        `toml:"log"`
}

// LogConfig configures the CLI logger.
type LogConfig struct {
	Level string `toml:"level"`
}

// loadConfig reads the config file. A missing default file is not an
// error; a missing file named with --config is.
func (c *CLI) loadConfig() error {
	path := c.configPath
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	cfg, err := readConfig(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return nil
	}
	if err != nil {
		return err
	}
	c.cfg = cfg

	if cfg.Log.Level != "" {
		level, err := log.ParseLevel(cfg.Log.Level)
		if err != nil {
			return fmt.Errorf("config %s: %w", path, err)
		}
		c.SetLogLevel(level)
	}
	c.Logger.Debug("loaded config", "path", path)
	return nil
}

func readConfig(path string) (Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// =============================================================================
// Option Flags
// =============================================================================

// optionFlags binds pipeline options to command flags. Flags the user did
// not set fall back to the config file, then to pipeline defaults.
type optionFlags struct {
	opts    pipeline.Options
	originX float64
	originY float64
	formats string
}

func (f *optionFlags) addLayoutFlags(cmd *cobra.Command) {
	origin := pipeline.DefaultOrigin()
	fl := cmd.Flags()
	fl.StringVarP(&f.opts.VizType, "type", "t", pipeline.DefaultVizType, "visualization type: layered, nodelink")
	fl.IntVar(&f.opts.MaxDepth, "max-depth", pipeline.DefaultMaxDepth, "maximum hierarchical nesting to expand (negative: none)")
	fl.Float64Var(&f.originX, "origin-x", origin.X, "x of the outermost frame")
	fl.Float64Var(&f.originY, "origin-y", origin.Y, "y of the outermost frame")
}

func (f *optionFlags) addRenderFlags(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.formats, "format", "f", pipeline.FormatSVG, "output format(s): svg, json, png, pdf, dot (comma-separated)")
	fl.StringVar(&f.opts.Style, "style", pipeline.DefaultStyle, "visual style: simple")
	fl.StringVar(&f.opts.Title, "title", "", "diagram title (default: the graph's title)")
	fl.BoolVar(&f.opts.HideLabels, "no-labels", false, "omit edge labels")
	fl.BoolVar(&f.opts.FontLabels, "font-labels", false, "fit labels with real font metrics")
	fl.BoolVar(&f.opts.EmbedFont, "embed-font", false, "embed the label font in SVG output")
	fl.BoolVar(&f.opts.Interactive, "interactive", false, "highlight edges on hover (SVG)")
	fl.Float64Var(&f.opts.Scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	fl.BoolVar(&f.opts.Refresh, "refresh", false, "recompute instead of reading the cache")
}

// resolve merges flags over base. Only flags registered on cmd are
// considered.
func (f *optionFlags) resolve(cmd *cobra.Command, base pipeline.Options) (pipeline.Options, error) {
	out := base
	changed := func(name string) bool {
		fl := cmd.Flags().Lookup(name)
		return fl != nil && (fl.Changed || !isSet(base, name))
	}

	if changed("type") {
		out.VizType = f.opts.VizType
	}
	if changed("max-depth") {
		out.MaxDepth = f.opts.MaxDepth
	}
	if changed("origin-x") || changed("origin-y") {
		origin := pipeline.DefaultOrigin()
		if base.Origin != nil {
			origin = *base.Origin
		}
		if changed("origin-x") {
			origin.X = f.originX
		}
		if changed("origin-y") {
			origin.Y = f.originY
		}
		out.Origin = &origin
	}
	if changed("format") {
		formats, err := parseFormats(f.formats)
		if err != nil {
			return pipeline.Options{}, err
		}
		out.Formats = formats
	}
	if changed("style") {
		out.Style = f.opts.Style
	}
	if changed("title") {
		out.Title = f.opts.Title
	}
	if changed("scale") {
		out.Scale = f.opts.Scale
	}
	for name, dst := range map[string]*bool{
		"no-labels":   &out.HideLabels,
		"font-labels": &out.FontLabels,
		"embed-font":  &out.EmbedFont,
		"interactive": &out.Interactive,
		"refresh":     &out.Refresh,
	} {
		if fl := cmd.Flags().Lookup(name); fl != nil && fl.Changed {
			*dst = fl.Value.String() == "true"
		}
	}
	return out, nil
}

// isSet reports whether the config file gave a value for the option behind
// a flag.
func isSet(o pipeline.Options, flag string) bool {
	switch flag {
	case "type":
		return o.VizType != ""
	case "max-depth":
		return o.MaxDepth != 0
	case "origin-x", "origin-y":
		return o.Origin != nil
	case "format":
		return len(o.Formats) > 0
	case "style":
		return o.Style != ""
	case "title":
		return o.Title != ""
	case "scale":
		return o.Scale > 0
	}
	return false
}

// vizTypeOf returns the visualization type stored in a layout.
func vizTypeOf(l graph.Layout) string {
	if l.VizType == "" {
		return graph.VizTypeLayered
	}
	return l.VizType
}
