package wires

import (
	"fmt"
	"testing"

	"github.com/nexusfab/tiletopo/pkg/errors"
)

func TestNormalizeWire(t *testing.T) {
	plc := Tile{X: 10, Y: 10, Name: "R10C10:PLC", TileType: "PLC"}
	tap := Tile{X: 14, Y: 10, Name: "TAP_PLC_R10C14:TAP_PLC", TileType: "TAP_PLC"}
	rightCIB := Tile{X: 79, Y: 10, Name: "R10C79:CIB", TileType: "CIB"}

	tests := []struct {
		name string
		tile Tile
		wire string
		want string
	}{
		{"local", plc, "R10C10_A0", "A0"},
		{"north east", plc, "R8C11_H02E0001", "N2E1:H02E0001"},
		{"south east", plc, "R12C11_JF0", "S2E1:JF0"},
		{"west", plc, "R10C7_V06N0303", "W3:V06N0303"},
		{"north", plc, "R4C10_V06S0003", "N6:V06S0003"},
		{"south west", plc, "R11C9_Q3", "S1W1:Q3"},

		{"vcc", plc, "R3C4_VCC", VCC},
		{"vcc suffix", plc, "R10C10_LVCC", VCC},
		{"vcc hrow", plc, "R1C40_JVCCHPRX", VCC},
		{"vcc branch", plc, "R10C10_VCCHPBX", VCC},

		{"branch", plc, "R10C12_HPBX0300", "BRANCH:HPBX0300"},
		{"spine", plc, "R5C14_VPSX0100", "SPINE:VPSX0100"},
		{"hrow", plc, "R10C14_HPRX0700", "HROW:HPRX0700"},
		{"row driver", plc, "R10C14_LHPRX3", "G:LHPRX3"},
		{"edge clock", plc, "R1C1_JECLKOUT0_ECLKCASMUX_CORE_ECLKCASMUX1", "G:JECLKOUT0_ECLKCASMUX_CORE_ECLKCASMUX1"},
		{"dqs group", plc, "R30C1_JDQSW270_DQSBUF_CORE_I_DQS_TOP", "DQSG:JDQSW270_DQSBUF_CORE_I_DQS_TOP"},

		{"tap left", tap, "R10C13_HPBX0100", "BRANCH_L:HPBX0100"},
		{"tap right", tap, "R10C15_HPBX0100", "BRANCH_R:HPBX0100"},
		{"tap right general routing", tap, "R10C20_H06W0303", "BRANCH_R:H06W0303"},
		{"tap vertical", tap, "R9C14_VPSX0100", "SPINE:VPSX0100"},
		{"tap local", tap, "R10C14_JCLK0", "JCLK0"},

		{"right edge span 1", rightCIB, "R10C79_H01E0000", "E1:H01E0001"},
		{"right edge span 2", rightCIB, "R10C79_H02W0002", "E1:H02W0001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeWire(testBounds, tt.tile, tt.wire)
			if err != nil {
				t.Fatalf("NormalizeWire(%q) error: %v", tt.wire, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeWire(%q) = %q, want %q", tt.wire, got, tt.want)
			}
		})
	}
}

func TestNormalizeWireErrors(t *testing.T) {
	plc := Tile{X: 10, Y: 10, Name: "R10C10:PLC"}
	tap := Tile{X: 14, Y: 10, Name: "TAP_PLC_R10C14:TAP_PLC"}

	tests := []struct {
		name string
		tile Tile
		wire string
		code errors.Code
	}{
		{"bad grammar", plc, "X10C10_A0", errors.ErrCodeGrammar},
		{"relative input", plc, "N2:A0", errors.ErrCodeGrammar},
		{"bad span", plc, "R10C11_H05E0000", errors.ErrCodeGrammar},
		{"tap same column", tap, "R10C14_HPBX0100", errors.ErrCodeAmbiguous},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeWire(testBounds, tt.tile, tt.wire)
			if err == nil {
				t.Fatalf("NormalizeWire(%q) should fail", tt.wire)
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestNormalizeWirePositionIndependent(t *testing.T) {
	bases := []string{"A0", "H02E0001", "V06N0303", "JCIBMUXOUTQ2", "NBOUNCE"}
	offsets := [][2]int{{0, 0}, {1, 0}, {-1, 0}, {0, 3}, {0, -6}, {2, -1}, {-3, 4}}

	var want map[string]string
	for x := uint32(12); x <= 30; x += 3 {
		for y := uint32(12); y <= 30; y += 3 {
			tile := Tile{X: x, Y: y, Name: fmt.Sprintf("R%dC%d:PLC", y, x), TileType: "PLC"}
			got := make(map[string]string)
			for _, base := range bases {
				for _, off := range offsets {
					wire := fmt.Sprintf("R%dC%d_%s", int(y)+off[1], int(x)+off[0], base)
					name, err := NormalizeWire(testBounds, tile, wire)
					if err != nil {
						t.Fatalf("NormalizeWire(%q) error: %v", wire, err)
					}
					got[fmt.Sprintf("%s/%v", base, off)] = name
				}
			}
			if want == nil {
				want = got
				continue
			}
			for k, v := range got {
				if want[k] != v {
					t.Errorf("tile %s: %s = %q, want %q", tile.Name, k, v, want[k])
				}
			}
		}
	}
}

func TestNormalizeWireVCCAnywhere(t *testing.T) {
	for _, tile := range []Tile{{X: 0, Y: 0}, {X: 79, Y: 49}, {X: 14, Y: 3, Name: "TAP"}} {
		for _, wire := range []string{"R0C0_VCC", "R9C2_VCCHPRX", "R1C1_VCCHPBX"} {
			got, err := NormalizeWire(testBounds, tile, wire)
			if err != nil {
				t.Fatalf("NormalizeWire(%q) error: %v", wire, err)
			}
			if got != VCC {
				t.Errorf("NormalizeWire(%q) = %q, want %q", wire, got, VCC)
			}
		}
	}
}

func TestOffsetPrefix(t *testing.T) {
	tests := []struct {
		dx, dy int
		want   string
	}{
		{0, 0, ""},
		{0, -6, "N6"},
		{0, 2, "S2"},
		{1, 0, "E1"},
		{-3, 0, "W3"},
		{1, 2, "S2E1"},
		{-12, -1, "N1W12"},
	}
	for _, tt := range tests {
		if got := OffsetPrefix(tt.dx, tt.dy); got != tt.want {
			t.Errorf("OffsetPrefix(%d, %d) = %q, want %q", tt.dx, tt.dy, got, tt.want)
		}
	}
}

func TestFASMName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"N2E1:H02E0001", "N2E1__H02E0001"},
		{"G:VCC", "G__VCC"},
		{"A0", "A0"},
	}
	for _, tt := range tests {
		if got := FASMName(tt.in); got != tt.want {
			t.Errorf("FASMName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
