package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hypertower/pkg/cache"
	"github.com/matzehuels/hypertower/pkg/observability"
	"github.com/matzehuels/hypertower/pkg/server"
)

// serveCommand creates the command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the levels, layout and render pipeline over HTTP",
		Long: `Serve the pipeline over HTTP.

Graphs are posted as JSON to /v1/levels, /v1/layout and /v1/render; options
travel as query parameters. Prometheus metrics are exported on /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.cfg.Server
			if cmd.Flags().Changed("addr") || cfg.Addr == "" {
				cfg.Addr = addr
			}
			return c.runServe(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, cfg server.Config) error {
	ctx := cmd.Context()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	hooks := observability.NewPrometheusHooks(reg)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetServerHooks(hooks)
	defer observability.Reset()

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	cfg.Runner = runner
	cfg.Logger = c.Logger
	cfg.Gatherer = reg

	c.Logger.Debug("serving", "cache", c.cacheBackend())
	return server.New(cfg).ListenAndServe(ctx)
}

// cacheBackend names the backend newRunner opens.
func (c *CLI) cacheBackend() string {
	switch {
	case c.noCache:
		return cache.BackendNone
	case c.cfg.Cache.Backend == "":
		return cache.BackendFile
	}
	return c.cfg.Cache.Backend
}
