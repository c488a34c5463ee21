package wires

import "regexp"

// Global clock distribution levels. The patterns are structural constants
// of the device family and are matched against the base name only.
var (
	// Horizontal branches
	hbranchRe = regexp.MustCompile(`^HPBX(\d{2})00$`)
	// Vertical spine
	spineRe = regexp.MustCompile(`^VPSX(\d{2})00$`)
	// Horizontal rows
	hrowRe = regexp.MustCompile(`^HPRX(\d{2})00$`)
	// Horizontal row drivers
	hrowDriverRe = regexp.MustCompile(`^([LR])HPRX(\d+)$`)
	// Central clock mux inputs
	centerMuxRe = regexp.MustCompile(`^J([HV])F([NESW])(\d+)_(DCSMUX|CMUX)_CORE_(DCSMUX|CMUX)(\d)$`)
	// Perimeter clock signals
	midMuxRe = regexp.MustCompile(`^(.*)(.)MID_CORE_(.)MIDMUX$`)
	// Edge clocks
	edgeClockRe = regexp.MustCompile(`^JECLKOUT(\d)_ECLKCASMUX_CORE_ECLKCASMUX(\d+)$`)
	// Edge clock sources
	edgeClockMuxInRe = regexp.MustCompile(`^JMUXIN(\d+)_ECLKBANK_CORE_ECLKBANK(\d+)$`)
	// DQS group shared signals
	dqsGroupRe = regexp.MustCompile(`^J(WRPNTR\d|RDPNTR\d|DQSR90|DQSW270|DQSW)_DQSBUF_CORE_I_DQS_TOP$`)
)

// General routing patterns, matched against absolute names.
var (
	generalRouteRe = regexp.MustCompile(`^R\d+C\d+_[VH]\d{2}[NESWTLBR]\d{4}`)
	cibSignalRe    = regexp.MustCompile(`^R\d+C\d+_J?(CIBMUXOUT|CIBMUXIN)?[ABCDMFQ]\d`)
	cibControlRe   = regexp.MustCompile(`^R\d+C\d+_J?(CIBMUXOUT|CIBMUXIN)?(CLK|LSR|CE)\d`)
	cibBounceRe    = regexp.MustCompile(`^R\d+C\d+_[NESW]BOUNCE`)
)

// Class is the global network a base wire name belongs to.
type Class int

const (
	// ClassNone marks a wire outside every global network.
	ClassNone Class = iota
	ClassBranch
	ClassSpine
	ClassHRow
	ClassGlobal
	ClassDQSGroup
)

// Prefix returns the canonical name prefix for the class, without the
// separator. ClassNone has no prefix.
func (c Class) Prefix() string {
	switch c {
	case ClassBranch:
		return "BRANCH"
	case ClassSpine:
		return "SPINE"
	case ClassHRow:
		return "HROW"
	case ClassGlobal:
		return "G"
	case ClassDQSGroup:
		return "DQSG"
	}
	return ""
}

func (c Class) String() string {
	if c == ClassNone {
		return "none"
	}
	return c.Prefix()
}

// Classify returns the global network of a base name. The classes are tried
// in priority order: branch, spine, row, other full globals, DQS group.
func Classify(base string) Class {
	switch {
	case IsBranch(base):
		return ClassBranch
	case IsSpine(base):
		return ClassSpine
	case IsHRow(base):
		return ClassHRow
	case IsFullGlobal(base):
		return ClassGlobal
	case IsDQSGroup(base):
		return ClassDQSGroup
	}
	return ClassNone
}

// IsGlobal reports whether base belongs to any global distribution network.
func IsGlobal(base string) bool { return Classify(base) != ClassNone }

// IsBranch reports whether base is a horizontal clock branch.
func IsBranch(base string) bool { return hbranchRe.MatchString(base) }

// IsSpine reports whether base is a vertical clock spine.
func IsSpine(base string) bool { return spineRe.MatchString(base) }

// IsHRow reports whether base is a horizontal clock row.
func IsHRow(base string) bool { return hrowRe.MatchString(base) }

// IsDQSGroup reports whether base is shared within a DQS group.
func IsDQSGroup(base string) bool { return dqsGroupRe.MatchString(base) }

// IsRowDriver reports whether base drives a horizontal clock row.
func IsRowDriver(base string) bool { return hrowDriverRe.MatchString(base) }

// IsCenterMux reports whether base is a central clock mux signal.
func IsCenterMux(base string) bool { return centerMuxRe.MatchString(base) }

// IsMidMux reports whether base is a perimeter clock mux signal.
func IsMidMux(base string) bool { return midMuxRe.MatchString(base) }

// IsEdgeClock reports whether base is an edge clock output.
func IsEdgeClock(base string) bool { return edgeClockRe.MatchString(base) }

// IsEdgeClockMuxIn reports whether base is an edge clock source.
func IsEdgeClockMuxIn(base string) bool { return edgeClockMuxInRe.MatchString(base) }

// IsFullGlobal reports whether base belongs to a device-wide network that
// has no finer classification.
func IsFullGlobal(base string) bool {
	return IsRowDriver(base) ||
		IsCenterMux(base) ||
		IsMidMux(base) ||
		IsEdgeClock(base) ||
		IsEdgeClockMuxIn(base)
}

// IsGeneralRouting reports whether the absolute wire name is a segmented
// general routing wire.
func IsGeneralRouting(wire string) bool { return generalRouteRe.MatchString(wire) }

// IsCIBSignal reports whether the absolute wire name is a CIB data signal.
func IsCIBSignal(wire string) bool { return cibSignalRe.MatchString(wire) }

// IsCIBControl reports whether the absolute wire name is a CIB clock,
// set/reset or clock-enable signal.
func IsCIBControl(wire string) bool { return cibControlRe.MatchString(wire) }

// IsBounce reports whether the absolute wire name is a bounce wire.
func IsBounce(wire string) bool { return cibBounceRe.MatchString(wire) }
