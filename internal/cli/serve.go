package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/archispec/internal/server"
	"github.com/matzehuels/archispec/pkg/observability"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the conversion HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			ctx := cmd.Context()

			runner, err := c.newRunner(ctx, cfg.Cache, false)
			if err != nil {
				return err
			}
			defer runner.Close()

			st, err := newStore(ctx, cfg.Store)
			if err != nil {
				return err
			}
			defer st.Close(context.WithoutCancel(ctx))

			hooks := observability.NewLogHooks(c.Logger)
			observability.SetConversionHooks(hooks)
			observability.SetCacheHooks(hooks)
			observability.SetServerHooks(hooks)

			srv := server.New(runner, st, cfg.Convert.Options(), cfg.Server, c.Logger)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}
