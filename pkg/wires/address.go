package wires

import (
	"regexp"
	"strconv"

	"github.com/nexusfab/tiletopo/pkg/errors"
)

// wireRe is the absolute wire name grammar R<row>C<col>_<base>.
var wireRe = regexp.MustCompile(`^R(\d+)C(\d+)_(.+)$`)

// Address is a decoded absolute wire name.
type Address struct {
	Row  uint32
	Col  uint32
	Base string
}

// X returns the column of the wire's nominal tile.
func (a Address) X() uint32 { return a.Col }

// Y returns the row of the wire's nominal tile.
func (a Address) Y() uint32 { return a.Row }

// String re-encodes the address as R<row>C<col>_<base>.
func (a Address) String() string {
	return "R" + strconv.FormatUint(uint64(a.Row), 10) +
		"C" + strconv.FormatUint(uint64(a.Col), 10) + "_" + a.Base
}

// ParseAddress decodes an absolute wire name. A name that does not match
// the grammar exactly is a grammar violation.
func ParseAddress(wire string) (Address, error) {
	m := wireRe.FindStringSubmatch(wire)
	if m == nil {
		return Address{}, errors.New(errors.ErrCodeGrammar, "invalid wire name %q", wire)
	}
	row, err := strconv.ParseUint(m[1], 10, 32)
	if err != nil {
		return Address{}, errors.Wrap(errors.ErrCodeGrammar, err, "invalid row in wire name %q", wire)
	}
	col, err := strconv.ParseUint(m[2], 10, 32)
	if err != nil {
		return Address{}, errors.Wrap(errors.ErrCodeGrammar, err, "invalid column in wire name %q", wire)
	}
	return Address{Row: uint32(row), Col: uint32(col), Base: m[3]}, nil
}

// Bounds holds the grid extent of a device. It is immutable per device.
type Bounds struct {
	MaxRow uint32 `json:"max_row"`
	MaxCol uint32 `json:"max_col"`
}

// Tile is a grid cell as seen by the normalizer. X is the column and Y the
// row. Tiles are owned by the device tile-grid and never mutated here.
type Tile struct {
	X        uint32 `json:"x"`
	Y        uint32 `json:"y"`
	Name     string `json:"name"`
	TileType string `json:"tiletype"`
}
