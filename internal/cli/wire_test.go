package cli

import (
	"strings"
	"testing"

	"github.com/nexusfab/tiletopo/pkg/errors"
)

func TestNormalizeCommand(t *testing.T) {
	base := []string{"normalize", "--tile", "R10C10:PLC", "--x", "10", "--y", "10", "--max-row", "50", "--max-col", "80"}

	tests := []struct {
		name  string
		flags []string
		wire  string
		want  string
	}{
		{"local", nil, "R10C10_JA0", "JA0"},
		{"offset", nil, "R9C11_JA0", "N1E1:JA0"},
		{"vcc", nil, "R3C4_VCCHPBX", "G:VCC"},
		{"global", nil, "R10C10_HPBX0100", "BRANCH:HPBX0100"},
		{"fasm", []string{"--fasm"}, "R11C10_JA0", "S1__JA0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(append(append([]string{}, base...), tt.flags...), tt.wire)
			out, err := runCLI(t, args...)
			if err != nil {
				t.Fatalf("normalize: %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestNormalizeCommandErrors(t *testing.T) {
	_, err := runCLI(t, "normalize", "--x", "1", "--y", "1", "JA0")
	if !errors.Is(err, errors.ErrCodeGrammar) {
		t.Errorf("bad grammar: err = %v", err)
	}

	_, err = runCLI(t, "normalize", "--tile", "R4C7:TAP_PLC", "--x", "7", "--y", "4", "R4C7_HPBX0100")
	if !errors.Is(err, errors.ErrCodeAmbiguous) {
		t.Errorf("TAP at own column: err = %v", err)
	}
}

func TestClassifyCommand(t *testing.T) {
	out, err := runCLI(t, "classify", "N1E2:V02S0100", "BRANCH_L:H01E0001", "VPSX0100")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	for _, want := range []string{"N1E2", "RelXY", "BRANCH_L", "BranchDriver", "SPINE"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if _, err := runCLI(t, "classify", "X3:JA0"); !errors.Is(err, errors.ErrCodeGrammar) {
		t.Errorf("bad prefix: err = %v", err)
	}
}
