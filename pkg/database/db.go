package database

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/nexusfab/tiletopo/pkg/cache"
	"github.com/nexusfab/tiletopo/pkg/errors"
	"github.com/nexusfab/tiletopo/pkg/observability"
	"github.com/nexusfab/tiletopo/pkg/wires"
)

// Options configures a DB.
type Options struct {
	// Cache keeps raw file bytes between sessions. Nil disables it.
	Cache cache.Cache

	// Keyer derives cache keys. Nil uses cache.NewDefaultKeyer.
	Keyer cache.Keyer

	// TTL of cached entries. Zero means no expiry.
	TTL time.Duration
}

// DB is a read-only view of a database tree. It is safe for concurrent use.
type DB struct {
	root  string
	cache cache.Cache
	keyer cache.Keyer
	ttl   time.Duration

	mu    sync.RWMutex
	bits  map[string]*TileBits
	grids map[string]*Tilegrid
	group singleflight.Group
}

// Open returns a DB rooted at root. The tree is read lazily.
func Open(root string, opts Options) *DB {
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	return &DB{
		root:  root,
		cache: opts.Cache,
		keyer: opts.Keyer,
		ttl:   opts.TTL,
		bits:  make(map[string]*TileBits),
		grids: make(map[string]*Tilegrid),
	}
}

// Root returns the database root directory.
func (db *DB) Root() string { return db.root }

// TileBits returns the raw database of a tile type.
func (db *DB) TileBits(ctx context.Context, family, tiletype string) (*TileBits, error) {
	if err := errors.ValidateFamily(family); err != nil {
		return nil, err
	}
	if err := errors.ValidateTileTypeName(tiletype); err != nil {
		return nil, err
	}
	memo := family + "/" + tiletype

	db.mu.RLock()
	b, ok := db.bits[memo]
	db.mu.RUnlock()
	if ok {
		return b, nil
	}

	v, err, _ := db.group.Do("bits:"+memo, func() (any, error) {
		path := filepath.Join(db.root, family, "tiletypes", tiletype+".json")
		key := db.keyer.TileBitsKey(db.root, family, tiletype)
		data, err := db.load(ctx, "tilebits", key, path)
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeTileTypeNotFound, err, "tile type %s/%s", family, tiletype)
		}
		if err != nil {
			return nil, err
		}
		b, err := ReadTileBits(bytes.NewReader(data))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeDatabase, err, "%s", path)
		}
		db.mu.Lock()
		db.bits[memo] = b
		db.mu.Unlock()
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*TileBits), nil
}

// Tilegrid returns the tile-grid of a device.
func (db *DB) Tilegrid(ctx context.Context, family, device string) (*Tilegrid, error) {
	if err := errors.ValidateFamily(family); err != nil {
		return nil, err
	}
	if err := errors.ValidateDevice(device); err != nil {
		return nil, err
	}
	memo := family + "/" + device

	db.mu.RLock()
	g, ok := db.grids[memo]
	db.mu.RUnlock()
	if ok {
		return g, nil
	}

	v, err, _ := db.group.Do("grid:"+memo, func() (any, error) {
		path := filepath.Join(db.root, family, device, "tilegrid.json")
		key := db.keyer.TilegridKey(db.root, family, device)
		data, err := db.load(ctx, "tilegrid", key, path)
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "tilegrid for %s/%s", family, device)
		}
		if err != nil {
			return nil, err
		}
		g, err := ReadTilegrid(bytes.NewReader(data))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeDatabase, err, "%s", path)
		}
		db.mu.Lock()
		db.grids[memo] = g
		db.mu.Unlock()
		return g, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Tilegrid), nil
}

// Bounds returns the grid bounds of a device from device.json, or the
// extent of its tile-grid when the file is absent.
func (db *DB) Bounds(ctx context.Context, family, device string) (wires.Bounds, error) {
	if err := errors.ValidateFamily(family); err != nil {
		return wires.Bounds{}, err
	}
	if err := errors.ValidateDevice(device); err != nil {
		return wires.Bounds{}, err
	}
	path := filepath.Join(db.root, family, device, "device.json")
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		g, err := db.Tilegrid(ctx, family, device)
		if err != nil {
			return wires.Bounds{}, err
		}
		return g.Extent(), nil
	}
	if err != nil {
		return wires.Bounds{}, errors.Wrap(errors.ErrCodeDatabase, err, "open %s", path)
	}
	defer f.Close()
	return ReadBounds(f)
}

// load returns the bytes of path, consulting the cache first. Cache
// failures are not fatal; the file is read instead.
func (db *DB) load(ctx context.Context, keyType, key, path string) ([]byte, error) {
	if data, hit, err := db.cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, keyType)
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, keyType)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := db.cache.Set(ctx, key, data, db.ttl); err == nil {
		observability.Cache().OnCacheSet(ctx, keyType, len(data))
	}
	return data, nil
}
