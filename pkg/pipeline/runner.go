package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hypertower/pkg/cache"
	"github.com/matzehuels/hypertower/pkg/graph"
	"github.com/matzehuels/hypertower/pkg/hypergraph"
	"github.com/matzehuels/hypertower/pkg/hypergraph/transform"
	"github.com/matzehuels/hypertower/pkg/observability"
)

// Cache key types reported to [observability.CacheHooks].
const (
	KeyTypeLevels   = "levels"
	KeyTypeLayout   = "layout"
	KeyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// GraphHash returns the content hash of g used in cache keys.
func GraphHash(g *hypergraph.Hypergraph) (string, error) {
	data, err := graph.MarshalGraph(g)
	if err != nil {
		return "", fmt.Errorf("serialize graph for cache key: %w", err)
	}
	return cache.Hash(data), nil
}

// Execute runs the complete levels → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, g *hypergraph.Hypergraph, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	hash, err := GraphHash(g)
	if err != nil {
		return nil, err
	}
	result := &Result{
		Graph:     g,
		GraphHash: hash,
		Artifacts: make(map[string][]byte),
	}
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	result.Stats.Depth = g.Depth()

	// Stage 1: Levels
	start := time.Now()
	table, hit, err := r.Levels(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("levels: %w", err)
	}
	result.Levels = table
	result.Stats.LevelCount = len(table.Levels)
	result.Stats.LevelsTime = time.Since(start)
	result.CacheInfo.LevelsHit = hit

	r.Logger.Info("computed levels",
		"levels", len(table.Levels),
		"orphans", len(table.Orphans),
		"duration", result.Stats.LevelsTime)

	// Stage 2: Layout
	start = time.Now()
	l, hit, err := r.Layout(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(start)
	result.CacheInfo.LayoutHit = hit

	r.Logger.Info("computed layout",
		"boxes", len(l.Boxes),
		"anchors", len(l.Anchors),
		"duration", result.Stats.LayoutTime)
	for _, d := range l.Diagnostics {
		r.Logger.Warn("layout diagnostic", "msg", d)
	}

	// Stage 3: Render
	start = time.Now()
	artifacts, hit, err := r.Render(ctx, l, g, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(start)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Levels computes the level table of g with caching and reports whether it
// came from the cache. Orphaned edges are part of the table, not an error.
func (r *Runner) Levels(ctx context.Context, g *hypergraph.Hypergraph, opts Options) (LevelTable, bool, error) {
	r.applyLogger(&opts)
	hooks := observability.Pipeline()
	hooks.OnLevelsStart(ctx, g.EdgeCount())
	start := time.Now()

	hash, err := GraphHash(g)
	if err != nil {
		hooks.OnLevelsComplete(ctx, 0, time.Since(start), err)
		return LevelTable{}, false, err
	}
	key := r.Keyer.LevelsKey(hash)

	if data, ok := r.lookup(ctx, key, KeyTypeLevels, opts); ok {
		var table LevelTable
		if err := json.Unmarshal(data, &table); err == nil {
			hooks.OnLevelsComplete(ctx, len(table.Levels), time.Since(start), nil)
			return table, true, nil
		}
		opts.Logger.Debug("discarding unreadable cache entry", "key", key)
	}

	table := NewLevelTable(g, transform.ComputeLevels(g))
	if data, err := json.Marshal(table); err == nil {
		r.store(ctx, key, KeyTypeLevels, data, cache.TTLLevels, opts)
	}

	hooks.OnLevelsComplete(ctx, len(table.Levels), time.Since(start), nil)
	return table, false, nil
}

// Layout generates a layout with caching and reports whether it came from
// the cache.
func (r *Runner) Layout(ctx context.Context, g *hypergraph.Hypergraph, opts Options) (l graph.Layout, hit bool, err error) {
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, false, err
	}
	r.applyLogger(&opts)
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.VizType, g.EdgeCount())
	start := time.Now()
	defer func() { hooks.OnLayoutComplete(ctx, opts.VizType, time.Since(start), err) }()

	hash, err := GraphHash(g)
	if err != nil {
		return graph.Layout{}, false, err
	}
	key := r.Keyer.LayoutKey(hash, opts.LayoutKeyOpts())

	if data, ok := r.lookup(ctx, key, KeyTypeLayout, opts); ok {
		if cached, err := graph.UnmarshalLayout(data); err == nil {
			return cached, true, nil
		}
		opts.Logger.Debug("discarding unreadable cache entry", "key", key)
	}

	l, err = GenerateLayout(g, opts)
	if err != nil {
		return graph.Layout{}, false, err
	}
	if data, err := graph.MarshalLayout(l); err == nil {
		r.store(ctx, key, KeyTypeLayout, data, cache.TTLLayout, opts)
	}
	return l, false, nil
}

// Render generates artifacts with caching and reports whether every
// requested format came from the cache. g may be nil when rendering a
// stored layout.
func (r *Runner) Render(ctx context.Context, l graph.Layout, g *hypergraph.Hypergraph, opts Options) (artifacts map[string][]byte, hit bool, err error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	defer func() { hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err) }()

	layoutData, err := graph.MarshalLayout(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	artifacts = make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if data, ok := r.lookup(ctx, key, KeyTypeArtifact, opts); ok {
			artifacts[format] = data
			continue
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	sub := opts
	sub.Formats = missing
	rendered, err := RenderFromLayout(ctx, l, g, sub)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		r.store(ctx, key, KeyTypeArtifact, data, cache.TTLArtifact, opts)
		artifacts[format] = data
	}
	return artifacts, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// lookup reads key unless a refresh was requested. Cache failures are
// logged and treated as misses.
func (r *Runner) lookup(ctx context.Context, key, keyType string, opts Options) ([]byte, bool) {
	if opts.Refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		opts.Logger.Warn("cache read failed", "key", key, "err", err)
		hit = false
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, keyType)
		return data, true
	}
	observability.Cache().OnCacheMiss(ctx, keyType)
	return nil, false
}

// store writes an entry; failures are logged, never returned.
func (r *Runner) store(ctx context.Context, key, keyType string, data []byte, ttl time.Duration, opts Options) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		opts.Logger.Warn("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
