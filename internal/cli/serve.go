package cli

import (
	"github.com/spf13/cobra"

	"github.com/snowdex/snowdex/internal/server"
)

// serveCommand creates the serve command for running the JSON API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog as a JSON API",
		Long: `Serve the catalog as a JSON API.

Endpoints are mounted under /api (packages, package detail, licenses,
stats), with /healthz for liveness and /metrics for Prometheus. The
server runs until interrupted and shuts down gracefully.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.ListenAddr = addr
			}

			srv := server.New(cfg, c.newStore(cfg), c.Logger)
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides the configured one)")

	return cmd
}
