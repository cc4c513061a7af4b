// Package cli implements the fattree command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fattree/pkg/buildinfo"
	"github.com/matzehuels/fattree/pkg/cache"
	"github.com/matzehuels/fattree/pkg/config"
	"github.com/matzehuels/fattree/pkg/fattree"
	"github.com/matzehuels/fattree/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "fattree"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	config     config.Config
	configPath string
	noCache    bool
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "fattree lays out fat-tree networks and highlights host paths",
		Long: `fattree computes the drawing of a mirrored fat-tree network for a given depth
and switch width, wires its cables, and traces the path between two hosts.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (.toml, .yaml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the layout and render cache")

	root.AddCommand(c.statsCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.pathCommand())
	root.AddCommand(c.selectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	root.AddCommand(c.versionCommand())

	return root
}

// loadConfig replaces the defaults with the --config file, if one was given.
func (c *CLI) loadConfig() error {
	if c.configPath == "" {
		return nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.config = cfg
	c.Logger.Debug("loaded config", "path", c.configPath,
		"cache", cfg.Cache.Backend, "session", cfg.Session.Backend)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	store, err := c.openCache(ctx)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

// openCache opens the configured cache. A file cache that cannot be created
// degrades to no caching; other backends fail loudly.
func (c *CLI) openCache(ctx context.Context) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	store, err := c.config.Cache.Open(ctx)
	if err != nil {
		if c.config.Cache.Backend == config.CacheFile {
			c.Logger.Warn("cache disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		return nil, err
	}
	return store, nil
}

// =============================================================================
// Topology Flags
// =============================================================================

// topologyFlags are the --depth/--width flags shared by every command that
// builds a fat tree.
type topologyFlags struct {
	depth int
	width int
}

func (f *topologyFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.depth, "depth", "d", fattree.DefaultDepth, "number of switch levels")
	cmd.Flags().IntVarP(&f.width, "width", "w", fattree.DefaultWidth, "switch port count")
}

// params returns the configured topology with explicitly set flags applied.
func (c *CLI) params(cmd *cobra.Command, f topologyFlags) fattree.Params {
	p := c.config.Topology.Params()
	if cmd.Flags().Changed("depth") {
		p.Depth = f.depth
	}
	if cmd.Flags().Changed("width") {
		p.Width = f.width
	}
	return p
}

// hostFlags are the --from/--to host ordinals of a path query.
type hostFlags struct {
	from string
	to   string
}

func (f *hostFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "first host ordinal")
	cmd.Flags().StringVar(&f.to, "to", "", "second host ordinal")
}

// resolve parses the host references against the host count of p.
func (f hostFlags) resolve(p fattree.Params) ([]int, error) {
	counts, err := fattree.Summarize(p)
	if err != nil {
		return nil, err
	}
	return pipeline.ParseHosts([]string{f.from, f.to}, counts.Hosts)
}

// =============================================================================
// Version
// =============================================================================

func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printKeyValue("Version", buildinfo.Version)
			printKeyValue("Commit", buildinfo.Commit)
			printKeyValue("Built", buildinfo.Date)
		},
	}
}
