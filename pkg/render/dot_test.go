package render

import (
	"fmt"
	"strings"
	"testing"

	"github.com/nexusfab/tiletopo/pkg/database"
	"github.com/nexusfab/tiletopo/pkg/intern"
	"github.com/nexusfab/tiletopo/pkg/tiletype"
)

func buildPLC(t *testing.T) (*tiletype.TileType, *intern.Table) {
	t.Helper()
	ids := intern.New()
	tt, err := tiletype.Build("PLC", &database.TileBits{
		Pips: map[string][]database.ConfigPip{
			"JA0": {{FromWire: "N1:V01S0000"}, {FromWire: "JB0"}},
		},
		Conns: map[string][]database.FixedConn{
			"JB0": {{FromWire: "G:VCC"}},
		},
	}, nil, ids)
	if err != nil {
		t.Fatal(err)
	}
	return tt, ids
}

func TestToDOT(t *testing.T) {
	tt, ids := buildPLC(t)
	dot := ToDOT(tt, ids, Options{})

	for _, want := range []string{
		`digraph "PLC" {`,
		`"N1:V01S0000" -> "JA0";`,
		`"JB0" -> "JA0";`,
		`"G:VCC" -> "JB0" [style=dashed];`,
		`"JA0" [label="JA0", fillcolor=lightblue];`,
		`"G:VCC" [label="G:VCC"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %s\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "subgraph") {
		t.Error("clusters should be off by default")
	}
	if dot != ToDOT(tt, ids, Options{}) {
		t.Error("ToDOT should be deterministic")
	}
}

func TestToDOTDetailedLeavesTableUnchanged(t *testing.T) {
	tt, ids := buildPLC(t)
	before := ids.Len()

	dot := ToDOT(tt, ids, Options{Detailed: true, Clusters: true})
	if got := ids.Len(); got != before {
		t.Errorf("intern table grew from %d to %d", before, got)
	}
	id, _ := ids.Lookup("JA0")
	if want := fmt.Sprintf(`label="JA0\n#%d"`, id); !strings.Contains(dot, want) {
		t.Errorf("DOT missing %s\n%s", want, dot)
	}

	// A table that never saw the tile type gets plain labels and no entries.
	other := intern.New()
	dot = ToDOT(tt, other, Options{Detailed: true})
	if other.Len() != 0 {
		t.Errorf("unrelated table grew to %d", other.Len())
	}
	if !strings.Contains(dot, `"JA0" [label="JA0"];`) {
		t.Errorf("unknown wires should get plain labels:\n%s", dot)
	}
}

func TestToDOTClusters(t *testing.T) {
	tt, ids := buildPLC(t)
	dot := ToDOT(tt, ids, Options{Clusters: true})

	if strings.Count(dot, "subgraph cluster_") != 2 {
		t.Errorf("want one cluster per neighbour:\n%s", dot)
	}
	if !strings.Contains(dot, `label="N1";`) || !strings.Contains(dot, `label="G";`) {
		t.Errorf("cluster labels missing:\n%s", dot)
	}
	if strings.Count(dot, `"G:VCC" [label=`) != 1 {
		t.Error("clustered wires must be declared once")
	}
}

func TestToDOTNeighbourFilter(t *testing.T) {
	tt, ids := buildPLC(t)
	g := tiletype.Global
	dot := ToDOT(tt, ids, Options{Neighbour: &g})

	if !strings.Contains(dot, `"G:VCC" -> "JB0"`) {
		t.Errorf("filtered DOT missing global edge:\n%s", dot)
	}
	if strings.Contains(dot, `"N1:V01S0000"`) {
		t.Errorf("filtered DOT should drop unrelated wires:\n%s", dot)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"out.svg":  FormatSVG,
		"out.SVG":  FormatSVG,
		"out.dot":  FormatDOT,
		"out.gv":   FormatDOT,
		"out.pdf":  FormatPDF,
		"out.png":  FormatPNG,
		"out":      FormatSVG,
		"out.json": FormatSVG,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50">`) {
		t.Errorf("normalizeViewBox = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Errorf("svg without viewBox should be unchanged, got %s", got)
	}
}
