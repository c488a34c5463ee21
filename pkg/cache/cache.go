// Package cache provides byte caches for raw database artifacts.
//
// Loading a per-tile-type bit database means reading and decoding a file
// from the database tree. A [Cache] keeps the encoded bytes around between
// runs (file backend), or shares them between machines (Redis or MongoDB
// backends). [NewNullCache] disables caching.
//
// Keys are produced by a [Keyer] so that the same artifact always maps to
// the same key, and artifacts from different database trees never collide.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"time"
)

// Cache stores opaque byte blobs with an optional time-to-live.
//
// Implementations must be safe for concurrent use by multiple goroutines.
type Cache interface {
	// Get returns the cached data and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer generates cache keys for database artifacts.
type Keyer interface {
	// TileBitsKey is the key of the raw bit database of one tile type.
	TileBitsKey(root, family, tiletype string) string

	// TilegridKey is the key of a device tile-grid.
	TilegridKey(root, family, device string) string
}

// DefaultKeyer hashes the database root into every key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// keyVersion changes whenever the cached encoding of an artifact does, so
// that entries written by older binaries are never read back.
const keyVersion = "v1"

// hashKey returns kind:hex(sha256(parts)). Each part is length-prefixed,
// so ("ab", "c") and ("a", "bc") hash differently.
func hashKey(kind string, parts ...string) string {
	h := sha256.New()
	var n [binary.MaxVarintLen64]byte
	for _, p := range append([]string{keyVersion}, parts...) {
		h.Write(n[:binary.PutUvarint(n[:], uint64(len(p)))])
		h.Write([]byte(p))
	}
	return kind + ":" + hex.EncodeToString(h.Sum(nil))
}

// TileBitsKey implements Keyer.
func (DefaultKeyer) TileBitsKey(root, family, tiletype string) string {
	return hashKey("tilebits", root, family, tiletype)
}

// TilegridKey implements Keyer.
func (DefaultKeyer) TilegridKey(root, family, device string) string {
	return hashKey("tilegrid", root, family, device)
}

type nullCache struct{}

// NewNullCache returns a cache that stores nothing: every Get misses.
func NewNullCache() Cache { return nullCache{} }

func (nullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (nullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (nullCache) Delete(context.Context, string) error                     { return nil }
func (nullCache) Close() error                                             { return nil }
