package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/nexusfab/tiletopo/pkg/bels"
	"github.com/nexusfab/tiletopo/pkg/cache"
	"github.com/nexusfab/tiletopo/pkg/database"
	"github.com/nexusfab/tiletopo/pkg/intern"
	"github.com/nexusfab/tiletopo/pkg/tiletype"
	"github.com/nexusfab/tiletopo/pkg/wires"
)

// boundsSource is implemented by sources that know the device bounds.
type boundsSource interface {
	Bounds(ctx context.Context, family, device string) (wires.Bounds, error)
}

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating build logic.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute loads the device and builds its tile-type registry.
//
// Any build error aborts the run; Execute never returns a partial result.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	result := &Result{RunID: uuid.NewString(), IDs: intern.New()}
	logger := opts.Logger.With("run", result.RunID[:8])

	// Stage 1: Load
	loadStart := time.Now()
	src := opts.Source
	if src == nil {
		src = r.Open(opts.Root, opts.TTL)
	}
	cat, err := r.catalog(opts)
	if err != nil {
		return nil, err
	}
	grid, err := src.Tilegrid(ctx, opts.Family, opts.Device)
	if err != nil {
		return nil, err
	}
	result.Tiles = grid.Sorted()
	if bs, ok := src.(boundsSource); ok {
		if result.Bounds, err = bs.Bounds(ctx, opts.Family, opts.Device); err != nil {
			return nil, err
		}
	} else {
		result.Bounds = grid.Extent()
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Tiles = len(result.Tiles)

	logger.Info("loaded tilegrid",
		"device", opts.Device,
		"tiles", len(result.Tiles),
		"max_row", result.Bounds.MaxRow,
		"max_col", result.Bounds.MaxCol,
		"duration", result.Stats.LoadTime)

	// Stage 2: Build
	buildStart := time.Now()
	reg, err := tiletype.NewRegistry(ctx, src, cat, result.IDs, opts.Family, opts.Device,
		tiletype.Options{Workers: opts.Workers})
	if err != nil {
		logger.Error("build failed", "err", err)
		return nil, err
	}
	result.Registry = reg
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.TileTypes = reg.Len()
	result.Stats.Wires = result.IDs.Len() - 1
	for _, name := range reg.Names() {
		tt, _ := reg.Get(name)
		if tt.HasRouting() {
			result.Stats.Routing++
		}
		result.Stats.Neighbours += len(tt.Neighbours())
		logger.Debug("built tile type",
			"tiletype", name,
			"wires", len(tt.Wires()),
			"driven", len(tt.DrivenWireIDs()),
			"neighbours", len(tt.Neighbours()))
	}

	logger.Info("built tile types",
		"tiletypes", result.Stats.TileTypes,
		"routing", result.Stats.Routing,
		"wires", result.Stats.Wires,
		"duration", result.Stats.BuildTime)

	return result, nil
}

// Open returns a database reader backed by the runner's cache.
func (r *Runner) Open(root string, ttl time.Duration) *database.DB {
	return database.Open(root, database.Options{Cache: r.Cache, Keyer: r.Keyer, TTL: ttl})
}

// catalog resolves the bel catalog of a run.
func (r *Runner) catalog(opts Options) (bels.Catalog, error) {
	if opts.Catalog != nil {
		return opts.Catalog, nil
	}
	if opts.BelsFile == "" {
		return bels.Empty, nil
	}
	return bels.LoadFile(opts.BelsFile)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
