package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shannonfano/internal/server"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the code engine over HTTP",
		Long: `Serve the code engine over HTTP.

Endpoints:
  GET  /healthz     liveness probe
  POST /v1/codes    codes for {"symbols": [{"name", "probability"}, ...]}
  POST /v1/text     codes for {"text": "...", "consider_gap": bool}
  POST /v1/encode   encode {"text": "...", "codes": [...]}

The server stops gracefully on SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			srv := server.New(runner, loggerFromContext(ctx), c.Config.Options())
			return srv.ListenAndServe(ctx, addr, server.Timeouts{
				Read:     c.Config.Server.ReadTimeout.Duration,
				Shutdown: c.Config.Server.ShutdownTimeout.Duration,
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
