package pipeline

import (
	"context"
	"fmt"

	errs "github.com/matzehuels/hypertower/pkg/errors"
	"github.com/matzehuels/hypertower/pkg/graph"
	"github.com/matzehuels/hypertower/pkg/hypergraph"
	"github.com/matzehuels/hypertower/pkg/render/nodelink"
	"github.com/matzehuels/hypertower/pkg/render/sink"
	"github.com/matzehuels/hypertower/pkg/render/styles"
)

// RenderFromLayout generates output artifacts in the requested formats.
//
// g is only needed for the dot format of a layered layout and may be nil
// when rendering a stored layout.
func RenderFromLayout(ctx context.Context, l graph.Layout, g *hypergraph.Hypergraph, opts Options) (map[string][]byte, error) {
	opts, l = applyLayoutMetadata(opts, l)
	if l.IsNodelink() {
		return renderNodelink(ctx, l, opts)
	}
	return renderLayered(ctx, l, g, opts)
}

// renderLayered generates layered outputs.
func renderLayered(ctx context.Context, l graph.Layout, g *hypergraph.Hypergraph, opts Options) (map[string][]byte, error) {
	res := l.ToResult()
	svgOpts := buildSVGOptions(l, opts)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(res, svgOpts...)
		case FormatPNG:
			pngOpts := []sink.PNGOption{sink.WithScale(opts.Scale), sink.WithPNGTypesetter(opts.Typesetter())}
			if opts.HideLabels {
				pngOpts = append(pngOpts, sink.WithoutPNGLabels())
			}
			data, err = sink.RenderPNG(res, pngOpts...)
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, res, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = graph.MarshalLayout(l)
		case FormatDOT:
			if g == nil {
				return nil, errs.New(errs.ErrCodeUnsupported, "dot output needs the source graph, not a stored layout")
			}
			var dot string
			dot, err = nodelink.ToDOT(g, nodelink.Options{})
			data = []byte(dot)
		default:
			return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported layered format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// renderNodelink generates nodelink outputs from the DOT of a layout.
func renderNodelink(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	if l.DOT == "" {
		return nil, errs.New(errs.ErrCodeInvalidInput, "nodelink layout missing DOT string")
	}

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, l.DOT)
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, l.DOT, opts.Scale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(ctx, l.DOT)
		case FormatJSON:
			data, err = graph.MarshalLayout(l)
		case FormatDOT:
			data = []byte(l.DOT)
		default:
			return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported nodelink format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// buildSVGOptions translates render options for the layered SVG sink.
func buildSVGOptions(l graph.Layout, opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{
		sink.WithStyle(styles.Simple{EmbedFont: opts.EmbedFont}),
		sink.WithTypesetter(opts.Typesetter()),
	}
	if l.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(l.Title))
	}
	if opts.HideLabels {
		svgOpts = append(svgOpts, sink.WithoutLabels())
	}
	if opts.Interactive {
		svgOpts = append(svgOpts, sink.WithInteraction())
	}
	return svgOpts
}

// applyLayoutMetadata applies layout metadata to options if not already set.
// This ensures that serialized layouts preserve their original rendering
// settings. An explicit title overrides the stored one.
func applyLayoutMetadata(opts Options, l graph.Layout) (Options, graph.Layout) {
	if opts.Style == "" && l.Style != "" {
		opts.Style = l.Style
	}
	if opts.Title != "" {
		l.Title = opts.Title
	}
	opts.SetRenderDefaults()
	return opts, l
}
