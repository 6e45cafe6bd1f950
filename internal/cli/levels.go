package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hypertower/pkg/hypergraph"
	graphio "github.com/matzehuels/hypertower/pkg/io"
	"github.com/matzehuels/hypertower/pkg/pipeline"
)

// levelsCommand creates the levels command for printing the level table.
func (c *CLI) levelsCommand() *cobra.Command {
	var (
		inputFormat string
		asJSON      bool
		strict      bool
	)

	cmd := &cobra.Command{
		Use:   "levels [graph]",
		Short: "Print the level table of a graph",
		Long: `Print the level table of a graph.

Levels are computed by walking forward from the source nodes: level 0 holds
the edges that consume only sources, and every following level the edges
consuming an output of the level before. Edges that no walk reaches are
reported as orphans.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLevels(cmd.Context(), args[0], inputFormat, asJSON, strict)
		},
	}

	cmd.Flags().StringVar(&inputFormat, "input-format", "", "graph format: json, toml, yaml (default: from extension)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the table as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when some edges are orphaned")

	return cmd
}

func (c *CLI) runLevels(ctx context.Context, input, inputFormat string, asJSON, strict bool) error {
	g, err := readGraph(input, inputFormat)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	table, cacheHit, err := runner.Levels(ctx, g, pipeline.Options{Logger: c.Logger})
	if err != nil {
		return fmt.Errorf("compute levels: %w", err)
	}
	prog.done("Computed levels", "levels", len(table.Levels), "cached", cacheHit)

	if asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(table); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(stdout, levelTable(table))
		printStats(g.NodeCount(), g.EdgeCount(), g.Depth(), cacheHit)
		printLevelDiagnostics(table)
	}

	if strict {
		return table.Err()
	}
	return nil
}

// readGraph loads a graph file. An empty format is inferred from the
// extension.
func readGraph(path, format string) (*hypergraph.Hypergraph, error) {
	g, err := pipeline.Parse(pipeline.Input{Path: path, Format: graphio.Format(format)})
	if err != nil {
		return nil, fmt.Errorf("load graph %s: %w", path, err)
	}
	return g, nil
}
