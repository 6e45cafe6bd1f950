// Package pipeline provides the core visualization pipeline for hypertower.
//
// This package implements the complete parse → levels → layout → render
// pipeline used by the CLI and the HTTP API. By centralizing this logic,
// both entry points apply the same defaults, validation and caching.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Parse: Decode a graph file or request body into a hypergraph
//  2. Levels: Partition the top-level edges into levels
//  3. Layout: Position boxes, anchors and connectors (or emit DOT)
//  4. Render: Generate output in various formats (SVG, PNG, PDF, JSON, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	g, err := pipeline.Parse(pipeline.Input{Path: "graph.yaml"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Execute(ctx, g, pipeline.Options{Formats: []string{"svg"}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	table, hit, err := runner.Levels(ctx, g, opts)
//	l, hit, err := runner.Layout(ctx, g, opts)
//	artifacts, hit, err := runner.Render(ctx, l, g, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hypertower/pkg/cache"
	errs "github.com/matzehuels/hypertower/pkg/errors"
	"github.com/matzehuels/hypertower/pkg/graph"
	"github.com/matzehuels/hypertower/pkg/hypergraph"
	"github.com/matzehuels/hypertower/pkg/render/layout"
	"github.com/matzehuels/hypertower/pkg/render/styles"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultMaxDepth bounds hierarchical expansion.
	DefaultMaxDepth = layout.DefaultMaxDepth

	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0

	// DefaultVizType is the default visualization type.
	DefaultVizType = graph.VizTypeLayered

	// DefaultStyle is the default visual style.
	DefaultStyle = graph.StyleSimple
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// DefaultOrigin is the top-left corner of the outermost layout frame.
func DefaultOrigin() graph.Point {
	return graph.Point{X: layout.DefaultOriginX, Y: layout.DefaultOriginY}
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for API requests and TOML for the
// CLI config file.
type Options struct {
	// Layout options
	VizType string       `json:"viz_type,omitempty" toml:"viz_type"`
	Origin  *graph.Point `json:"origin,omitempty" toml:"origin"`
	// MaxDepth bounds hierarchical expansion. Zero means DefaultMaxDepth; a
	// negative value expands no hierarchical edge.
	MaxDepth int `json:"max_depth,omitempty" toml:"max_depth"`

	// Render options
	Formats     []string `json:"formats,omitempty" toml:"formats"`
	Style       string   `json:"style,omitempty" toml:"style"`
	Title       string   `json:"title,omitempty" toml:"title"`
	HideLabels  bool     `json:"hide_labels,omitempty" toml:"hide_labels"`
	FontLabels  bool     `json:"font_labels,omitempty" toml:"font_labels"` // Fit labels with real glyph metrics
	EmbedFont   bool     `json:"embed_font,omitempty" toml:"embed_font"`
	Interactive bool     `json:"interactive,omitempty" toml:"interactive"`
	Scale       float64  `json:"scale,omitempty" toml:"scale"`

	// Refresh skips cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty" toml:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" toml:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the input hypergraph.
	Graph *hypergraph.Hypergraph

	// GraphHash is the content hash of the graph.
	GraphHash string

	// Levels is the level table of the top-level graph.
	Levels LevelTable

	// Layout contains the serialized layout.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	Depth      int
	LevelCount int
	LevelsTime time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LevelsHit bool // Whether the level table came from cache
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults for the full pipeline and validates.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if o.Origin == nil {
		origin := DefaultOrigin()
		o.Origin = &origin
	}
	if o.MaxDepth == 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := errs.ValidateVizType(o.VizType); err != nil {
		return err
	}
	return errs.ValidateOrigin(o.Origin.X, o.Origin.Y)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := errs.ValidateScale(o.Scale); err != nil {
		return err
	}
	for _, f := range o.Formats {
		if err := errs.ValidateFormat(f); err != nil {
			return err
		}
	}
	if err := errs.ValidateStyle(o.Style); err != nil {
		return err
	}
	return errs.ValidateLabel(o.Title)
}

// IsLayered returns true if this is a layered visualization.
func (o *Options) IsLayered() bool {
	return o.VizType == "" || o.VizType == graph.VizTypeLayered
}

// IsNodelink returns true if this is a nodelink visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == graph.VizTypeNodelink
}

// LayoutOptions translates the options for [layout.Build].
func (o *Options) LayoutOptions() []layout.Option {
	o.SetLayoutDefaults()
	return []layout.Option{
		layout.WithOrigin(o.Origin.X, o.Origin.Y),
		layout.WithMaxDepth(max(o.MaxDepth, 0)),
	}
}

// Typesetter returns the label typesetter the render options ask for.
func (o *Options) Typesetter() styles.Typesetter {
	if o.FontLabels {
		return &styles.FontTypesetter{}
	}
	return styles.Heuristic{}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	o.SetLayoutDefaults()
	return cache.LayoutKeyOpts{
		VizType:  o.VizType,
		OriginX:  o.Origin.X,
		OriginY:  o.Origin.Y,
		MaxDepth: o.MaxDepth,
		Style:    o.Style,
		Title:    o.Title,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:      format,
		Style:       o.Style,
		Title:       o.Title,
		ShowLabels:  !o.HideLabels,
		FontLabels:  o.FontLabels,
		EmbedFont:   o.EmbedFont,
		Interactive: o.Interactive,
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
