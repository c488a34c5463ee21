// Package pipeline provides the device-analysis pipeline for tiletopo.
//
// This package implements the complete load → build sequence used by the
// CLI, the HTTP server and the browser. By centralizing this logic, every
// entry point builds tile types the same way.
//
// # Stages
//
//  1. Load: open the database tree, the device tile-grid and its bounds
//  2. Build: construct one tile type per distinct tile type of the device
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Root:   "/path/to/db",
//	    Family: "LIFCL",
//	    Device: "LIFCL-40",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	plc, _ := result.Registry.Get("PLC")
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nexusfab/tiletopo/pkg/bels"
	"github.com/nexusfab/tiletopo/pkg/errors"
	"github.com/nexusfab/tiletopo/pkg/intern"
	"github.com/nexusfab/tiletopo/pkg/tiletype"
	"github.com/nexusfab/tiletopo/pkg/wires"
)

// DefaultTTL is how long raw database files stay in the byte cache.
const DefaultTTL = 7 * 24 * time.Hour

// Options contains all configuration for a pipeline run.
type Options struct {
	// Database location
	Root   string `json:"root"`
	Family string `json:"family"`
	Device string `json:"device"`

	// BelsFile is an optional TOML bel catalog.
	BelsFile string `json:"bels_file,omitempty"`

	// Workers bounds concurrent tile-type builds. Zero uses GOMAXPROCS.
	Workers int `json:"workers,omitempty"`

	// TTL of cached database files. Zero uses DefaultTTL.
	TTL time.Duration `json:"ttl,omitempty"`

	// Runtime options (not serialized)
	Logger  *log.Logger     `json:"-"`
	Catalog bels.Catalog    `json:"-"` // overrides BelsFile
	Source  tiletype.Source `json:"-"` // overrides Root
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string

	// Registry holds the built tile types.
	Registry *tiletype.Registry

	// IDs is the interning table the registry's wire identifiers live in.
	IDs *intern.Table

	// Bounds of the device grid.
	Bounds wires.Bounds

	// Tiles of the device grid, sorted by row and column.
	Tiles []wires.Tile

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Tiles      int
	TileTypes  int
	Routing    int // tile types with pips or fixed connections
	Wires      int // interned wire names
	Neighbours int // distinct (tile type, neighbour) pairs
	LoadTime   time.Duration
	BuildTime  time.Duration
}

// Validate checks required fields and applies defaults.
func (o *Options) Validate() error {
	if o.Root == "" && o.Source == nil {
		return errors.New(errors.ErrCodeInvalidInput, "database root is required")
	}
	if err := errors.ValidateFamily(o.Family); err != nil {
		return err
	}
	if err := errors.ValidateDevice(o.Device); err != nil {
		return err
	}
	if o.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "workers must not be negative")
	}
	if o.TTL == 0 {
		o.TTL = DefaultTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}
