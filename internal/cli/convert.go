package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/hypertower/pkg/errors"
	graphio "github.com/matzehuels/hypertower/pkg/io"
)

// convertCommand creates the convert command for re-encoding graph files.
func (c *CLI) convertCommand() *cobra.Command {
	var (
		output      string
		inputFormat string
		to          string
	)

	cmd := &cobra.Command{
		Use:   "convert [graph]",
		Short: "Convert a graph file between JSON, TOML and YAML",
		Long: `Convert a graph file between JSON, TOML and YAML.

The graph is built and validated before it is written, so node and edge ids
in the output are the reallocated ones. Without --output the graph is printed
to stdout in the --to format.`,
		Example: `  hypertower convert build.json -o build.yaml
  hypertower convert release.yaml --to toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(args[0], inputFormat, output, to)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file; the extension picks the format")
	cmd.Flags().StringVar(&inputFormat, "input-format", "", "graph format: json, toml, yaml (default: from extension)")
	cmd.Flags().StringVar(&to, "to", "", "format for stdout output: json, toml, yaml (default: json)")

	return cmd
}

func (c *CLI) runConvert(input, inputFormat, output, to string) error {
	if output != "" && to != "" {
		return errs.New(errs.ErrCodeInvalidInput, "--to applies to stdout output only; pick the format with the --output extension")
	}

	g, err := readGraph(input, inputFormat)
	if err != nil {
		return err
	}

	if output == "" {
		format := graphio.FormatJSON
		if to != "" {
			format = graphio.Format(to)
		}
		return graphio.Write(g, stdout, format)
	}

	if err := graphio.ExportFile(g, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	c.Logger.Debug("converted graph", "input", input, "output", output)
	printSuccess("Converted %s", input)
	printFile(output)
	printStats(g.NodeCount(), g.EdgeCount(), g.Depth(), false)
	return nil
}
