package tiletype

import (
	"cmp"
	"strconv"
	"strings"

	"github.com/nexusfab/tiletopo/pkg/errors"
	"github.com/nexusfab/tiletopo/pkg/wires"
)

// Kind is the variant of a Neighbour. The declaration order is the sort
// order of neighbours.
type Kind uint8

const (
	KindRelXY Kind = iota
	KindBranch
	KindBranchDriver
	KindSpine
	KindHRow
	KindGlobal
	KindDQSGroup
)

var kindTokens = [...]string{
	KindBranch:   "BRANCH",
	KindSpine:    "SPINE",
	KindHRow:     "HROW",
	KindGlobal:   "G",
	KindDQSGroup: "DQSG",
}

func (k Kind) String() string {
	switch k {
	case KindRelXY:
		return "RelXY"
	case KindBranch:
		return "Branch"
	case KindBranchDriver:
		return "BranchDriver"
	case KindSpine:
		return "Spine"
	case KindHRow:
		return "HRow"
	case KindGlobal:
		return "Global"
	case KindDQSGroup:
		return "DQSGroup"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// BranchSide is the side of a TAP tile a branch driver sits on.
type BranchSide uint8

const (
	Left BranchSide = iota
	Right
)

func (s BranchSide) String() string {
	if s == Left {
		return "Left"
	}
	return "Right"
}

// Neighbour describes how a wire relates to tiles other than its own.
//
// RelX and RelY are only meaningful for KindRelXY, Side only for
// KindBranchDriver; they are zero otherwise, so Neighbour values compare
// with == and can be used as map keys.
type Neighbour struct {
	Kind Kind
	RelX int32
	RelY int32
	Side BranchSide
}

// RelXY returns a relative-offset neighbour. Positive x is east, positive
// y is south.
func RelXY(x, y int32) Neighbour {
	return Neighbour{Kind: KindRelXY, RelX: x, RelY: y}
}

// BranchDriver returns the branch-driver neighbour on side.
func BranchDriver(side BranchSide) Neighbour {
	return Neighbour{Kind: KindBranchDriver, Side: side}
}

// Fixed-class neighbours.
var (
	Branch   = Neighbour{Kind: KindBranch}
	Spine    = Neighbour{Kind: KindSpine}
	HRow     = Neighbour{Kind: KindHRow}
	Global   = Neighbour{Kind: KindGlobal}
	DQSGroup = Neighbour{Kind: KindDQSGroup}
)

// Compare orders neighbours by kind, then by (RelX, RelY) for RelXY and
// Left before Right for branch drivers.
func Compare(a, b Neighbour) int {
	if c := cmp.Compare(a.Kind, b.Kind); c != 0 {
		return c
	}
	switch a.Kind {
	case KindRelXY:
		if c := cmp.Compare(a.RelX, b.RelX); c != 0 {
			return c
		}
		return cmp.Compare(a.RelY, b.RelY)
	case KindBranchDriver:
		return cmp.Compare(a.Side, b.Side)
	}
	return 0
}

// Less reports whether n sorts before o.
func (n Neighbour) Less(o Neighbour) bool { return Compare(n, o) < 0 }

// String returns the canonical prefix token of n, e.g. "N1E2", "BRANCH_L"
// or "G". A zero offset renders as "N0".
func (n Neighbour) String() string {
	switch n.Kind {
	case KindRelXY:
		if n.RelX == 0 && n.RelY == 0 {
			return "N0"
		}
		return wires.OffsetPrefix(int(n.RelX), int(n.RelY))
	case KindBranchDriver:
		if n.Side == Left {
			return "BRANCH_L"
		}
		return "BRANCH_R"
	}
	if int(n.Kind) < len(kindTokens) && kindTokens[n.Kind] != "" {
		return kindTokens[n.Kind]
	}
	return n.Kind.String()
}

// FormatWire joins a neighbour prefix and a base name into a canonical
// name. It is the inverse of ParseWire.
func FormatWire(n Neighbour, base string) string {
	return n.String() + wires.Sep + base
}

// ParseWire splits a canonical wire name into its neighbour and base name.
//
// A name without ':' has no neighbour and is returned unchanged. Otherwise
// the prefix before the first ':' is either a fixed class token or a
// compound offset such as "S2E1". Any other prefix is a grammar violation.
func ParseWire(name string) (*Neighbour, string, error) {
	prefix, base, found := strings.Cut(name, wires.Sep)
	if !found {
		return nil, name, nil
	}

	var n Neighbour
	switch prefix {
	case "BRANCH":
		n = Branch
	case "BRANCH_L":
		n = BranchDriver(Left)
	case "BRANCH_R":
		n = BranchDriver(Right)
	case "SPINE":
		n = Spine
	case "HROW":
		n = HRow
	case "G":
		n = Global
	case "DQSG":
		n = DQSGroup
	default:
		var err error
		if n, err = parseOffset(prefix); err != nil {
			return nil, "", errors.Wrap(errors.ErrCodeGrammar, err, "wire %q", name)
		}
	}
	return &n, base, nil
}

// parseOffset decodes a compound offset token. The token is split before
// every N, E, S or W; later tokens on the same axis override earlier ones.
func parseOffset(prefix string) (Neighbour, error) {
	if prefix == "" {
		return Neighbour{}, errors.New(errors.ErrCodeGrammar, "empty position token")
	}
	n := RelXY(0, 0)
	for len(prefix) > 0 {
		end := 1 + strings.IndexAny(prefix[1:], "NESW")
		if end == 0 {
			end = len(prefix)
		}
		tok := prefix[:end]
		prefix = prefix[end:]

		if !strings.ContainsRune("NESW", rune(tok[0])) {
			return Neighbour{}, errors.New(errors.ErrCodeGrammar, "bad position token %q", tok)
		}
		if !isDigits(tok[1:]) {
			return Neighbour{}, errors.New(errors.ErrCodeGrammar, "bad position token %q", tok)
		}
		mag, err := strconv.ParseInt(tok[1:], 10, 32)
		if err != nil {
			return Neighbour{}, errors.Wrap(errors.ErrCodeGrammar, err, "bad position token %q", tok)
		}
		switch tok[0] {
		case 'N':
			n.RelY = -int32(mag)
		case 'S':
			n.RelY = int32(mag)
		case 'E':
			n.RelX = int32(mag)
		case 'W':
			n.RelX = -int32(mag)
		}
	}
	return n, nil
}

// isDigits reports whether s is a non-empty run of ASCII digits. The
// direction letter carries the sign, so "N-1" and "N+1" are rejected.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
