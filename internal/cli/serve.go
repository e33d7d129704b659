package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/anchorbox/internal/api"
	"github.com/matzehuels/anchorbox/pkg/cache"
	"github.com/matzehuels/anchorbox/pkg/observability"
)

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		scope   string
		maxBody int64
		timeout time.Duration
		cf      cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout pipeline over HTTP",
		Long: `Serve the layout pipeline over HTTP.

Routes: POST /v1/layout, POST /v1/check, POST /v1/graph, GET /v1/stats,
GET /healthz. Use --cache redis://... or mongodb://... to share results
between instances, and --scope to keep their keys apart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, cf)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()
			if scope != "" {
				runner.Keyer = cache.NewScopedKeyer(runner.Keyer, scope+":")
			}

			stats := observability.NewStats()
			observability.SetPipelineHooks(stats)
			observability.SetCacheHooks(stats)
			observability.SetHTTPHooks(stats)
			defer observability.Reset()

			srv := api.New(runner, c.Logger,
				api.WithStats(stats),
				api.WithMaxBodySize(maxBody),
				api.WithTimeout(timeout))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&scope, "scope", "", "cache key scope, e.g. an environment name")
	cmd.Flags().Int64Var(&maxBody, "max-body", api.DefaultMaxBodySize, "maximum request body size in bytes")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "request timeout (0 disables)")
	cf.register(cmd)

	return cmd
}
