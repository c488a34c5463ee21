package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/nexusfab/tiletopo/internal/config"
	"github.com/nexusfab/tiletopo/pkg/buildinfo"
	"github.com/nexusfab/tiletopo/pkg/cache"
	"github.com/nexusfab/tiletopo/pkg/errors"
	"github.com/nexusfab/tiletopo/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = config.AppName

// Log levels accepted by New.
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

	// status receives the build spinner.
	status io.Writer
	flags  globalFlags
	cfg    *config.Config
}

// New creates a new CLI instance with a default logger. Logs and the build
// spinner both go to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), status: w}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "tiletopo builds relocatable routing graphs of FPGA tile types",
		Long: `tiletopo reads a per-family FPGA bit database, rewrites absolute wire names
into canonical relative names and builds the routing graph of every tile type
of a device.`,
		Version:       buildinfo.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.flags.verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	c.flags.register(root)

	root.AddCommand(c.normalizeCommand())
	root.AddCommand(c.classifyCommand())
	root.AddCommand(c.tiletypesCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	bc, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if c.cfg.Cache.Prefix != "" {
		keyer = cache.NewScopedKeyer(nil, c.cfg.Cache.Prefix)
	}
	return pipeline.NewRunner(bc, keyer, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	cc := c.cfg.Cache
	switch cc.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: cc.RedisAddr})
	case config.BackendMongo:
		return cache.NewMongoCache(ctx, cache.MongoConfig{URI: cc.MongoURI})
	}
	if cc.Dir == "" {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(cc.Dir)
}

// =============================================================================
// Pipeline Helpers
// =============================================================================

// options builds pipeline options for a device from the configuration.
func (c *CLI) options(family, device string) pipeline.Options {
	return pipeline.Options{
		Root:     c.cfg.Database.Root,
		Family:   family,
		Device:   device,
		BelsFile: c.cfg.Database.Bels,
		Workers:  c.cfg.Build.Workers,
		TTL:      c.cfg.Cache.TTL.Duration,
		Logger:   c.Logger,
	}
}

// build runs the pipeline for one device behind a spinner.
func (c *CLI) build(ctx context.Context, family, device string) (*pipeline.Result, error) {
	if c.cfg.Database.Root == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no database root: pass --root or set database.root in the config file")
	}
	runner, err := c.newRunner(ctx)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	spinner := newBuildSpinner(ctx, c.status, device)
	restore := spinner.attach()
	spinner.Start()
	result, err := runner.Execute(ctx, c.options(family, device))
	spinner.Stop()
	restore()
	if err != nil {
		return nil, err
	}
	prog.done("Built " + device)
	return result, nil
}

// target splits positional arguments of the form [FAMILY] DEVICE REST...
// where n is the count with the family present. Without it, the family
// comes from the configuration.
func (c *CLI) target(args []string, n int) (family, device string, rest []string, err error) {
	if len(args) == n {
		return args[0], args[1], args[2:], nil
	}
	family = c.cfg.Database.Family
	if family == "" {
		return "", "", nil, errors.New(errors.ErrCodeInvalidInput, "no family: pass FAMILY or set database.family in the config file")
	}
	return family, args[0], args[1:], nil
}

// targetArgs accepts n positional arguments, or n-1 when the family is
// configured.
func targetArgs(n int) cobra.PositionalArgs {
	return cobra.RangeArgs(n-1, n)
}
