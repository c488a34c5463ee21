package cli

import (
	"github.com/spf13/cobra"

	"github.com/nexusfab/tiletopo/internal/config"
)

// globalFlags holds the persistent flags shared by all commands. Set flags
// override the configuration file.
type globalFlags struct {
	configPath string
	root       string
	family     string
	bels       string
	workers    int
	noCache    bool
	verbose    bool
}

func (f *globalFlags) register(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/tiletopo/config.toml)")
	pf.StringVar(&f.root, "root", "", "bit database root directory")
	pf.StringVar(&f.family, "family", "", "default device family")
	pf.StringVar(&f.bels, "bels", "", "bel catalog (TOML)")
	pf.IntVar(&f.workers, "workers", 0, "concurrent tile-type builds (0 = GOMAXPROCS)")
	pf.BoolVar(&f.noCache, "no-cache", false, "disable the database file cache")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")
}

// apply overlays the set flags on cfg.
func (f *globalFlags) apply(cfg *config.Config) {
	if f.root != "" {
		cfg.Database.Root = f.root
	}
	if f.family != "" {
		cfg.Database.Family = f.family
	}
	if f.bels != "" {
		cfg.Database.Bels = f.bels
	}
	if f.workers > 0 {
		cfg.Build.Workers = f.workers
	}
	if f.noCache {
		cfg.Cache.Backend = config.BackendNone
	}
}

// loadConfig reads the configuration file and applies flag overrides.
func (c *CLI) loadConfig() error {
	path := c.flags.configPath
	if path == "" {
		if p, err := config.DefaultPath(); err == nil {
			path = p
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.flags.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}
