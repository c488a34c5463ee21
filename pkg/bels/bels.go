// Package bels describes the basic logic elements of each tile type and
// the tile wires their pins connect to.
//
// Bel definitions are a collaborator of tile-type construction: a
// [Catalog] returns, for a tile-type name, the bels placed in that tile.
// Catalogs can be declared in TOML and loaded with [LoadFile] or [Parse]:
//
//	[[tiletype]]
//	name = "PLC"
//
//	[[tiletype.bel]]
//	name = "A0_LUT"
//	type = "OXIDE_COMB"
//	z = 0
//
//	[[tiletype.bel.pin]]
//	name = "Z"
//	dir = "OUTPUT"
//	wire = "JF0"
package bels

import (
	"fmt"
	"strings"

	"github.com/nexusfab/tiletopo/pkg/wires"
)

// PinDir is the direction of a bel pin.
type PinDir int

const (
	DirInput PinDir = iota
	DirOutput
	DirInout
)

func (d PinDir) String() string {
	switch d {
	case DirInput:
		return "INPUT"
	case DirOutput:
		return "OUTPUT"
	case DirInout:
		return "INOUT"
	}
	return fmt.Sprintf("PinDir(%d)", int(d))
}

// MarshalText implements encoding.TextMarshaler.
func (d PinDir) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *PinDir) UnmarshalText(text []byte) error {
	switch strings.ToUpper(string(text)) {
	case "INPUT", "IN":
		*d = DirInput
	case "OUTPUT", "OUT":
		*d = DirOutput
	case "INOUT", "BIDIR":
		*d = DirInout
	default:
		return fmt.Errorf("unknown pin direction %q", text)
	}
	return nil
}

// RelWire references a wire relative to the tile holding the bel.
type RelWire struct {
	RelX int32  `toml:"rel_x" json:"rel_x,omitempty"`
	RelY int32  `toml:"rel_y" json:"rel_y,omitempty"`
	Name string `toml:"wire" json:"wire"`
}

// RelName returns the canonical tile-relative name of the wire, e.g.
// "JF0" for a local wire or "N1:JCE0" for a wire one tile north.
func (w RelWire) RelName() string {
	if w.RelX == 0 && w.RelY == 0 {
		return w.Name
	}
	return wires.OffsetPrefix(int(w.RelX), int(w.RelY)) + wires.Sep + w.Name
}

// Pin is a bel pin and the tile wire it connects to.
type Pin struct {
	Name string `toml:"name" json:"name"`
	Desc string `toml:"desc" json:"desc,omitempty"`
	Dir  PinDir `toml:"dir" json:"dir"`
	RelWire
}

// Bel is a logic primitive within a tile.
type Bel struct {
	Name    string `toml:"name" json:"name"`
	BelType string `toml:"type" json:"type"`
	Z       uint32 `toml:"z" json:"z"`
	Pins    []Pin  `toml:"pin" json:"pins"`
}

// Catalog returns the bels of a tile type.
//
// Bels must be safe for concurrent use by multiple goroutines. An unknown
// tile type has no bels.
type Catalog interface {
	Bels(tiletype string) []Bel
}

// Map is a Catalog backed by a map from tile-type name to bels.
type Map map[string][]Bel

// Bels returns the bels declared for tiletype.
func (m Map) Bels(tiletype string) []Bel {
	return m[tiletype]
}

// Empty is a catalog without any bels.
var Empty Catalog = Map{}

var _ Catalog = Map(nil)
