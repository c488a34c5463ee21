package tiletype

import (
	"context"
	"runtime"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nexusfab/tiletopo/pkg/bels"
	"github.com/nexusfab/tiletopo/pkg/database"
	"github.com/nexusfab/tiletopo/pkg/errors"
	"github.com/nexusfab/tiletopo/pkg/intern"
	"github.com/nexusfab/tiletopo/pkg/observability"
)

// Source provides the raw databases tile types are built from.
// *database.DB implements it.
type Source interface {
	TileBits(ctx context.Context, family, tiletype string) (*database.TileBits, error)
	Tilegrid(ctx context.Context, family, device string) (*database.Tilegrid, error)
}

// Options configures registry construction.
type Options struct {
	// Workers bounds concurrent tile-type builds. Zero uses GOMAXPROCS.
	Workers int
}

// Registry holds one TileType per distinct tile type of a device.
type Registry struct {
	Family string
	Device string

	types map[string]*TileType
}

// NewRegistry builds the tile types of every tile in the device grid.
//
// The first build error cancels the remaining builds and is returned; no
// partial registry is ever returned.
func NewRegistry(ctx context.Context, src Source, cat bels.Catalog, ids *intern.Table, family, device string, opts Options) (*Registry, error) {
	grid, err := src.Tilegrid(ctx, family, device)
	if err != nil {
		return nil, err
	}
	names := grid.TileTypes()

	start := time.Now()
	observability.Build().OnRegistryStart(ctx, family, device, len(names))
	types, err := BuildAll(ctx, src, cat, ids, family, names, opts)
	n := 0
	if err == nil {
		n = len(types)
	}
	observability.Build().OnRegistryComplete(ctx, family, device, n, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return &Registry{Family: family, Device: device, types: types}, nil
}

// BuildAll builds the named tile types concurrently. Duplicate names are
// built once.
func BuildAll(ctx context.Context, src Source, cat bels.Catalog, ids *intern.Table, family string, names []string, opts Options) (map[string]*TileType, error) {
	if cat == nil {
		cat = bels.Empty
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	unique := slices.Clone(names)
	slices.Sort(unique)
	unique = slices.Compact(unique)

	var mu sync.Mutex
	types := make(map[string]*TileType, len(unique))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, name := range unique {
		g.Go(func() error {
			tt, err := Load(ctx, src, cat, ids, family, name)
			if err != nil {
				return err
			}
			mu.Lock()
			types[name] = tt
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return types, nil
}

// Load fetches the raw database of one tile type and builds it.
func Load(ctx context.Context, src Source, cat bels.Catalog, ids *intern.Table, family, name string) (*TileType, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	observability.Build().OnTileTypeStart(ctx, family, name)

	var tt *TileType
	bits, err := src.TileBits(ctx, family, name)
	if err == nil {
		tt, err = Build(name, bits, cat.Bels(name), ids)
	}

	wires := 0
	if tt != nil {
		wires = len(tt.wires)
	}
	observability.Build().OnTileTypeComplete(ctx, family, name, wires, time.Since(start), err)
	if err != nil {
		if errors.GetCode(err) == "" {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "build tile type %s", name)
		}
		return nil, err
	}
	return tt, nil
}

// Get returns the tile type called name.
func (r *Registry) Get(name string) (*TileType, bool) {
	tt, ok := r.types[name]
	return tt, ok
}

// Names returns the tile-type names in the registry, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of tile types.
func (r *Registry) Len() int { return len(r.types) }
