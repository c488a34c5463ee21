package wires

import (
	"strconv"
	"strings"

	"github.com/nexusfab/tiletopo/pkg/errors"
)

// Sep separates a canonical name's prefix from its base name.
const Sep = ":"

// FASMSep replaces Sep in text formats where ':' is not legal.
const FASMSep = "__"

// VCC is the canonical name of every power rail.
const VCC = "G:VCC"

// Power rail suffixes. All rails collapse to one network.
var vccSuffixes = []string{"VCCHPRX", "VCCHPBX", "VCC"}

// NormalizeWire converts the absolute wire name of a wire observed from
// tile into its canonical, relocatable form. See the package documentation
// for the naming scheme.
func NormalizeWire(b Bounds, tile Tile, wire string) (string, error) {
	addr, err := ParseAddress(wire)
	if err != nil {
		return "", err
	}
	base := addr.Base

	for _, suffix := range vccSuffixes {
		if strings.HasSuffix(base, suffix) {
			return VCC, nil
		}
	}

	if strings.Contains(tile.Name, "TAP") && strings.HasPrefix(base, "H") {
		switch {
		case addr.Col < tile.X:
			return "BRANCH_L" + Sep + base, nil
		case addr.Col > tile.X:
			return "BRANCH_R" + Sep + base, nil
		default:
			return "", errors.New(errors.ErrCodeAmbiguous,
				"unable to determine TAP side of %q in %s at (%d, %d)", wire, tile.Name, tile.X, tile.Y)
		}
	}

	if class := Classify(base); class != ClassNone {
		return class.Prefix() + Sep + base, nil
	}

	base, wx, wy, err := NormalizeEdge(b, tile.X, tile.Y, addr.Col, addr.Row, base)
	if err != nil {
		return "", errors.Wrap(errors.GetCode(err), err, "wire %q in %s", wire, tile.Name)
	}
	if wx == tile.X && wy == tile.Y {
		return base, nil
	}
	dx := int(wx) - int(tile.X)
	dy := int(wy) - int(tile.Y)
	return OffsetPrefix(dx, dy) + Sep + base, nil
}

// OffsetPrefix encodes a relative displacement as ([NS]\d+)?([EW]\d+)?.
// Rows grow southwards, so a negative dy is north.
func OffsetPrefix(dx, dy int) string {
	var b strings.Builder
	if dy < 0 {
		b.WriteString("N" + strconv.Itoa(-dy))
	}
	if dy > 0 {
		b.WriteString("S" + strconv.Itoa(dy))
	}
	if dx > 0 {
		b.WriteString("E" + strconv.Itoa(dx))
	}
	if dx < 0 {
		b.WriteString("W" + strconv.Itoa(-dx))
	}
	return b.String()
}

// FASMName replaces the reserved separator for contexts that forbid ':'.
func FASMName(canonical string) string {
	return strings.Replace(canonical, Sep, FASMSep, 1)
}
