package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/fattree/pkg/cache"
	"github.com/matzehuels/fattree/pkg/metrics"
	"github.com/matzehuels/fattree/pkg/pipeline"
	"github.com/matzehuels/fattree/pkg/server"
	"github.com/matzehuels/fattree/pkg/session"
)

// apiKeyPrefix separates API cache entries from CLI entries in a shared cache.
const apiKeyPrefix = "api:"

// serveCommand creates the serve command, which runs the HTTP API until
// interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		topo topologyFlags
		addr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts, renders and selection sessions over HTTP",
		Example: `  fattree serve --addr :8080
  fattree serve --config fattree.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.config.Server
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			defaults := c.params(cmd, topo)
			if err := defaults.Validate(); err != nil {
				return err
			}

			store, err := c.openCache(ctx)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(store, cache.NewScopedKeyer(cache.NewDefaultKeyer(), apiKeyPrefix), c.Logger)
			defer runner.Close()

			sessions, err := c.config.Session.Open(ctx)
			if err != nil {
				return err
			}
			defer sessions.Close()
			if fs, ok := sessions.(*session.FileStore); ok {
				c.Logger.Debug("session directory", "path", fs.Path())
			}

			reg := metrics.NewRegistry()
			reg.Install()

			c.Logger.Info("starting server",
				"addr", cfg.Addr,
				"defaults", defaults,
				"cache", c.config.Cache.Backend,
				"sessions", c.config.Session.Backend)

			srv := server.New(runner, sessions,
				server.WithLogger(c.Logger),
				server.WithDefaults(defaults),
				server.WithSessionTTL(c.config.Session.TTL),
				server.WithMetrics(reg.Handler()),
			)
			return srv.ListenAndServe(ctx, server.Config{
				Addr:         cfg.Addr,
				ReadTimeout:  cfg.ReadTimeout,
				WriteTimeout: cfg.WriteTimeout,
			})
		},
	}

	topo.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}
