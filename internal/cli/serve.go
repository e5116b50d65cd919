package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/barsvg/internal/config"
	"github.com/matzehuels/barsvg/internal/server"
)

type serveOpts struct {
	host string
	port int
}

// apply overlays explicitly set flags onto cfg.
func (o serveOpts) apply(cmd *cobra.Command, cfg config.Config) config.Config {
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = o.host
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = o.port
	}
	return cfg
}

// serveCommand starts the HTTP rendering server. Render defaults reload when
// the config file changes.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve barcodes over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg := opts.apply(cmd, c.cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			server.RegisterHooks()
			srv := server.New(cfg, logger)

			c.loader.Watch(func(next *config.Config, err error) {
				if err != nil {
					logger.Warn("ignoring invalid config change", "err", err)
					return
				}
				srv.UpdateConfig(opts.apply(cmd, *next))
			})
			if f := c.loader.ConfigFileUsed(); f != "" {
				logger.Info("watching config", "file", f)
			}

			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&opts.host, "host", "", "listen host (overrides config)")
	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "listen port (overrides config)")

	return cmd
}
