package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hypertower/pkg/pipeline"
)

// renderCommand creates the render command, which runs the full pipeline.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output      string
		inputFormat string
		flags       optionFlags
	)

	cmd := &cobra.Command{
		Use:   "render [graph]",
		Short: "Render a graph file to SVG, PNG, PDF, JSON or DOT",
		Long: `Render a graph file to SVG, PNG, PDF, JSON or DOT.

Render is a shortcut for 'layout' followed by 'visualize'. Every stage is
cached, so re-rendering an unchanged graph in another format only runs the
renderer.

PDF output (and PNG output of nodelink diagrams) requires librsvg:
  brew install librsvg (macOS), apt install librsvg2-bin (Linux).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd, c.cfg.Pipeline)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], inputFormat, opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format, - for stdout) or base path (multiple)")
	cmd.Flags().StringVar(&inputFormat, "input-format", "", "graph format: json, toml, yaml (default: from extension)")
	flags.addLayoutFlags(cmd)
	flags.addRenderFlags(cmd)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input, inputFormat string, opts pipeline.Options, output string) error {
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

	spinner := newSpinner(ctx, "Rendering...")
	spinner.Start()

	result, err := runner.Execute(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if output != "-" {
		printLevelDiagnostics(result.Levels)
		for _, d := range result.Layout.Diagnostics {
			printWarning("%s", d)
		}
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		cacheHit:  result.CacheInfo.RenderHit,
	})
}
