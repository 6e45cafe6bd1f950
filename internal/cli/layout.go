package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hypertower/pkg/graph"
	"github.com/matzehuels/hypertower/pkg/pipeline"
)

// layoutCommand creates the layout command for computing visualization layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output      string
		inputFormat string
		flags       optionFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [graph]",
		Short: "Compute a layout from a graph file",
		Long: `Compute a layout from a graph file.

The layout command reads a graph (JSON, TOML or YAML) and computes the
positions of every box, anchor and connector. The output is a layout.json
file (same format as 'render -f json') that can be rendered to SVG/PNG/PDF
using the 'visualize' command.

Supports both layered (-t layered) and nodelink (-t nodelink) visualization
types.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd, c.cfg.Pipeline)
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], inputFormat, opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVar(&inputFormat, "input-format", "", "graph format: json, toml, yaml (default: from extension)")
	flags.addLayoutFlags(cmd)
	cmd.Flags().StringVar(&flags.opts.Style, "style", pipeline.DefaultStyle, "visual style recorded in the layout")
	cmd.Flags().StringVar(&flags.opts.Title, "title", "", "title recorded in the layout (default: the graph's title)")
	cmd.Flags().BoolVar(&flags.opts.Refresh, "refresh", false, "recompute instead of reading the cache")

	return cmd
}

// runLayout loads the graph, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input, inputFormat string, opts pipeline.Options, output string) error {
	g, err := readGraph(input, inputFormat)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinner(ctx, fmt.Sprintf("Computing %s layout...", opts.VizType))
	spinner.Start()

	layout, cacheHit, err := runner.Layout(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
	}
	if err := graph.WriteLayoutFile(layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(g.NodeCount(), g.EdgeCount(), g.Depth(), cacheHit)
	for _, d := range layout.Diagnostics {
		printWarning("%s", d)
	}
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}
