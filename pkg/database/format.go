package database

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/nexusfab/tiletopo/pkg/errors"
	"github.com/nexusfab/tiletopo/pkg/wires"
)

// ConfigPip is a programmable interconnect point driving a wire.
type ConfigPip struct {
	FromWire string   `json:"from_wire"`
	Bits     []string `json:"bits,omitempty"`
}

// FixedConn is a permanent connection driving a wire.
type FixedConn struct {
	FromWire string `json:"from_wire"`
	Bidir    bool   `json:"bidir,omitempty"`
}

// TileBits is the raw database of one tile type. Pips and Conns are keyed
// by destination wire, in canonical form.
type TileBits struct {
	Pips  map[string][]ConfigPip `json:"pips"`
	Conns map[string][]FixedConn `json:"conns"`
}

// PipSinks returns the destination wires of all pips, sorted.
func (b *TileBits) PipSinks() []string { return sortedKeys(b.Pips) }

// ConnSinks returns the destination wires of all fixed connections, sorted.
func (b *TileBits) ConnSinks() []string { return sortedKeys(b.Conns) }

// TileData is one entry of a device tile-grid.
type TileData struct {
	TileType   string `json:"tiletype"`
	X          uint32 `json:"x"`
	Y          uint32 `json:"y"`
	StartBit   int    `json:"start_bit,omitempty"`
	StartFrame int    `json:"start_frame,omitempty"`
	Bits       int    `json:"bits,omitempty"`
	Frames     int    `json:"frames,omitempty"`
}

// Tilegrid lists the tiles of a device keyed by tile name, e.g.
// "R2C3:PLC".
type Tilegrid struct {
	Tiles map[string]TileData `json:"tiles"`
}

// Sorted returns the grid as tiles sorted by row, column, then name.
func (g *Tilegrid) Sorted() []wires.Tile {
	out := make([]wires.Tile, 0, len(g.Tiles))
	for name, t := range g.Tiles {
		out = append(out, wires.Tile{X: t.X, Y: t.Y, Name: name, TileType: t.TileType})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Name < b.Name
	})
	return out
}

// TileTypes returns the distinct tile-type names of the grid, sorted.
func (g *Tilegrid) TileTypes() []string {
	seen := make(map[string]struct{})
	for _, t := range g.Tiles {
		seen[t.TileType] = struct{}{}
	}
	return sortedKeys(seen)
}

// Extent returns the largest row and column used by any tile.
func (g *Tilegrid) Extent() wires.Bounds {
	var b wires.Bounds
	for _, t := range g.Tiles {
		b.MaxRow = max(b.MaxRow, t.Y)
		b.MaxCol = max(b.MaxCol, t.X)
	}
	return b
}

// ReadTileBits decodes a tile-type database from r.
//
// Every destination and source wire must be non-empty; an empty name is
// reported as a corrupt database.
func ReadTileBits(r io.Reader) (*TileBits, error) {
	var b TileBits
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDatabase, err, "decode tile bits")
	}
	if b.Pips == nil {
		b.Pips = map[string][]ConfigPip{}
	}
	if b.Conns == nil {
		b.Conns = map[string][]FixedConn{}
	}
	for to, pips := range b.Pips {
		if to == "" {
			return nil, errors.New(errors.ErrCodeDatabase, "pip with empty destination wire")
		}
		for _, p := range pips {
			if p.FromWire == "" {
				return nil, errors.New(errors.ErrCodeDatabase, "pip to %s has empty source wire", to)
			}
		}
	}
	for to, conns := range b.Conns {
		if to == "" {
			return nil, errors.New(errors.ErrCodeDatabase, "connection with empty destination wire")
		}
		for _, c := range conns {
			if c.FromWire == "" {
				return nil, errors.New(errors.ErrCodeDatabase, "connection to %s has empty source wire", to)
			}
		}
	}
	return &b, nil
}

// ReadTilegrid decodes a device tile-grid from r. Every tile must name its
// tile type.
func ReadTilegrid(r io.Reader) (*Tilegrid, error) {
	var g Tilegrid
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDatabase, err, "decode tilegrid")
	}
	for name, t := range g.Tiles {
		if t.TileType == "" {
			return nil, errors.New(errors.ErrCodeDatabase, "tile %s has no tile type", name)
		}
	}
	return &g, nil
}

// ReadBounds decodes device bounds from r.
func ReadBounds(r io.Reader) (wires.Bounds, error) {
	var b wires.Bounds
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return wires.Bounds{}, errors.Wrap(errors.ErrCodeDatabase, err, "decode device bounds")
	}
	return b, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
