package wires

import (
	"regexp"
	"strconv"

	"github.com/nexusfab/tiletopo/pkg/errors"
)

// Directional span grammar: H<len><E|W><col><seg> and V<len><N|S><row><seg>.
var (
	hWireRe = regexp.MustCompile(`^H(\d{2})([EW])(\d{2})(\d{2})$`)
	vWireRe = regexp.MustCompile(`^V(\d{2})([NS])(\d{2})(\d{2})$`)
)

// span6Mid is the segment index a span-6 wire carries at its nominal
// position.
const span6Mid = 3

// span6Margin is how close to the edge a tile must be for span-6 names to
// be irregular.
const span6Margin = 5

// NormalizeEdge rewrites an irregular boundary name of a segmented
// directional wire to the name it would have at a mid-array position.
//
// tx, ty is the observing tile and wx, wy the nominal position decoded from
// the absolute name. The returned position is the corrected nominal
// position. Names outside the H/V span grammar are returned unchanged; an
// H/V name with an unrecognized span length is a grammar violation.
func NormalizeEdge(b Bounds, tx, ty, wx, wy uint32, base string) (string, uint32, uint32, error) {
	e := edge{
		maxX: int(b.MaxCol), maxY: int(b.MaxRow),
		tx: int(tx), ty: int(ty),
		wx: int(wx), wy: int(wy),
		base: base,
	}

	var (
		name   string
		nx, ny int
		ok     bool
		err    error
	)
	if m := hWireRe.FindStringSubmatch(base); m != nil {
		name, nx, ny, ok, err = e.horizontal(m[1], m[2], m[3], m[4])
	} else if m := vWireRe.FindStringSubmatch(base); m != nil {
		name, nx, ny, ok, err = e.vertical(m[1], m[2], m[3], m[4])
	}
	if err != nil {
		return "", 0, 0, err
	}
	if !ok {
		return base, wx, wy, nil
	}
	if nx < 0 || ny < 0 {
		return "", 0, 0, errors.New(errors.ErrCodeGrammar,
			"edge wire %q at (%d, %d) seen from tile (%d, %d) normalizes outside the device",
			base, wx, wy, tx, ty)
	}
	return name, uint32(nx), uint32(ny), nil
}

type edge struct {
	maxX, maxY int
	tx, ty     int
	wx, wy     int
	base       string
}

func (e edge) horizontal(span, dir, col, seg string) (string, int, int, bool, error) {
	switch span {
	case "01":
		// H01xyy00 --> x+1, H01xyy01
		if e.tx == e.maxX-1 {
			if seg != "00" {
				return "", 0, 0, false, errors.New(errors.ErrCodeGrammar,
					"unexpected segment %s of %q at right edge tile (%d, %d)", seg, e.base, e.tx, e.ty)
			}
			return "H01" + dir + col + "01", e.wx + 1, e.wy, true, nil
		}
	case "02":
		if e.tx == 1 {
			// H02E0002 --> x-1, H02E0001
			// H02W0000 --> x-1, H02W0001
			if dir == "E" && e.wx == 1 && seg == "02" {
				return "H02E" + col + "01", e.wx - 1, e.wy, true, nil
			} else if dir == "W" && e.wx == 1 && seg == "00" {
				return "H02W" + col + "01", e.wx - 1, e.wy, true, nil
			}
		} else if e.tx == e.maxX-1 {
			// H02E0000 --> x+1, H02E0001
			// H02W0002 --> x+1, H02W0001
			if dir == "E" && e.wx == e.maxX-1 && seg == "00" {
				return "H02E" + col + "01", e.wx + 1, e.wy, true, nil
			} else if dir == "W" && e.wx == e.maxX-1 && seg == "02" {
				return "H02W" + col + "01", e.wx + 1, e.wy, true, nil
			}
		}
	case "06":
		s, _ := strconv.Atoi(seg)
		name := "H06" + dir + col + "03"
		if e.tx <= span6Margin {
			// x-2, H06W0302 --> x-3, H06W0303
			// x-2, H06E0004 --> x-3, H06E0003
			if dir == "W" {
				return name, e.wx - (span6Mid - s), e.wy, true, nil
			}
			return name, e.wx - (s - span6Mid), e.wy, true, nil
		} else if e.tx >= e.maxX-span6Margin {
			if dir == "W" {
				return name, e.wx + (s - span6Mid), e.wy, true, nil
			}
			return name, e.wx + (span6Mid - s), e.wy, true, nil
		}
	default:
		return "", 0, 0, false, errors.New(errors.ErrCodeGrammar,
			"bad horizontal wire %q at tile (%d, %d)", e.base, e.tx, e.ty)
	}
	return "", 0, 0, false, nil
}

func (e edge) vertical(span, dir, row, seg string) (string, int, int, bool, error) {
	switch span {
	case "01":
		if e.ty == 1 && e.wy == 1 {
			if dir == "N" && seg == "00" {
				return "V01N" + row + "01", e.wx, e.wy - 1, true, nil
			}
			if dir == "S" && seg == "01" {
				return "V01S" + row + "01", e.wx, e.wy - 1, true, nil
			}
		}
	case "02":
		if e.ty == 1 {
			if dir == "S" && e.wy == 1 && seg == "02" {
				return "V02S" + row + "01", e.wx, e.wy - 1, true, nil
			}
			if dir == "N" && e.wy == 1 && seg == "00" {
				return "V02N" + row + "01", e.wx, e.wy - 1, true, nil
			}
		} else if e.ty == e.maxY-1 {
			if dir == "S" && e.wy == e.maxY-1 && seg == "00" {
				return "V02S" + row + "01", e.wx, e.wy + 1, true, nil
			}
			if dir == "N" && e.wy == e.maxY-1 && seg == "02" {
				return "V02N" + row + "01", e.wx, e.wy + 1, true, nil
			}
		}
	case "06":
		s, _ := strconv.Atoi(seg)
		name := "V06" + dir + row + "03"
		if e.ty <= span6Margin {
			// y-2, V06N0302 --> y-3, V06N0303
			// y-2, V06S0004 --> y-3, V06S0003
			if dir == "N" {
				return name, e.wx, e.wy - (span6Mid - s), true, nil
			}
			return name, e.wx, e.wy - (s - span6Mid), true, nil
		} else if e.ty >= e.maxY-span6Margin {
			// y+2, V06N0304 --> y+3, V06N0303
			// y+2, V06S0302 --> y+3, V06S0303
			if dir == "N" {
				return name, e.wx, e.wy + (s - span6Mid), true, nil
			}
			return name, e.wx, e.wy + (span6Mid - s), true, nil
		}
	default:
		return "", 0, 0, false, errors.New(errors.ErrCodeGrammar,
			"bad vertical wire %q at tile (%d, %d)", e.base, e.tx, e.ty)
	}
	return "", 0, 0, false, nil
}
