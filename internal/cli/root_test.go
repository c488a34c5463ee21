package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/nexusfab/tiletopo/internal/config"
	"github.com/nexusfab/tiletopo/pkg/errors"
	"github.com/nexusfab/tiletopo/pkg/observability"
)

// runCLI executes the root command with args and returns what the command
// wrote to its output stream.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// writeDatabase creates a one-device database tree and returns its root.
func writeDatabase(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"LIFCL/tiletypes/PLC.json": `{
			"pips": {"JA0": [{"from_wire": "N1:V01S0000"}, {"from_wire": "W2:H02E0001"}]},
			"conns": {"JB0": [{"from_wire": "G:VCC"}]}
		}`,
		"LIFCL/tiletypes/CIB.json":        `{"pips": {}, "conns": {}}`,
		"LIFCL/LIFCL-40/tilegrid.json": `{"tiles": {
			"R5C5:PLC": {"tiletype": "PLC", "x": 5, "y": 5},
			"R5C6:CIB": {"tiletype": "CIB", "x": 6, "y": 5}
		}}`,
	}
	for name, data := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"normalize", "classify", "tiletypes", "show", "render", "serve", "browse", "cache", "completion"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	data := "[database]\nroot = \"/from/file\"\nfamily = \"LIFCL\"\n[build]\nworkers = 2\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	c.flags = globalFlags{configPath: path, root: "/from/flag", noCache: true}
	if err := c.loadConfig(); err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if c.cfg.Database.Root != "/from/flag" {
		t.Errorf("root = %q, want flag value", c.cfg.Database.Root)
	}
	if c.cfg.Database.Family != "LIFCL" || c.cfg.Build.Workers != 2 {
		t.Errorf("file values lost: %+v", c.cfg)
	}
	if c.cfg.Cache.Backend != config.BackendNone {
		t.Errorf("backend = %q, want none", c.cfg.Cache.Backend)
	}
}

func TestTarget(t *testing.T) {
	c := &CLI{cfg: &config.Config{}}

	fam, dev, rest, err := c.target([]string{"LIFCL", "LIFCL-40", "PLC"}, 3)
	if err != nil || fam != "LIFCL" || dev != "LIFCL-40" || len(rest) != 1 || rest[0] != "PLC" {
		t.Errorf("target = %q %q %v %v", fam, dev, rest, err)
	}

	if _, _, _, err := c.target([]string{"LIFCL-40", "PLC"}, 3); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("missing family: err = %v", err)
	}

	c.cfg.Database.Family = "LIFCL"
	fam, dev, rest, err = c.target([]string{"LIFCL-40", "PLC"}, 3)
	if err != nil || fam != "LIFCL" || dev != "LIFCL-40" || rest[0] != "PLC" {
		t.Errorf("configured family: %q %q %v %v", fam, dev, rest, err)
	}
}

func TestTiletypesCommand(t *testing.T) {
	root := writeDatabase(t)
	if _, err := runCLI(t, "--root", root, "--no-cache", "tiletypes", "LIFCL", "LIFCL-40"); err != nil {
		t.Fatalf("tiletypes: %v", err)
	}
}

func TestBuildReportsProgressThroughHooks(t *testing.T) {
	t.Cleanup(observability.Reset)
	rec := &recordingHooks{}
	observability.SetBuildHooks(rec)

	root := writeDatabase(t)
	if _, err := runCLI(t, "--root", root, "--no-cache", "tiletypes", "LIFCL", "LIFCL-40"); err != nil {
		t.Fatalf("tiletypes: %v", err)
	}

	if observability.Build() != observability.BuildHooks(rec) {
		t.Errorf("build left %T installed", observability.Build())
	}
	if len(rec.registry) != 1 || rec.registry[0] != "LIFCL-40" {
		t.Errorf("registry events = %v", rec.registry)
	}
	sort.Strings(rec.tiletypes)
	if strings.Join(rec.tiletypes, ",") != "CIB,PLC" {
		t.Errorf("tile-type events = %v, want CIB and PLC", rec.tiletypes)
	}
}

func TestTiletypesRequiresRoot(t *testing.T) {
	_, err := runCLI(t, "tiletypes", "LIFCL", "LIFCL-40")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestShowCommand(t *testing.T) {
	root := writeDatabase(t)
	if _, err := runCLI(t, "--root", root, "--family", "LIFCL", "show", "LIFCL-40", "PLC", "--wires"); err != nil {
		t.Fatalf("show: %v", err)
	}

	_, err := runCLI(t, "--root", root, "show", "LIFCL", "LIFCL-40", "EBR")
	if !errors.Is(err, errors.ErrCodeTileTypeNotFound) {
		t.Errorf("unknown tile type: err = %v", err)
	}
}

func TestRenderCommandDOT(t *testing.T) {
	root := writeDatabase(t)

	out, err := runCLI(t, "--root", root, "render", "LIFCL", "LIFCL-40", "PLC", "-f", "dot")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(out, `digraph "PLC"`) {
		t.Errorf("render output = %q", out)
	}

	path := filepath.Join(t.TempDir(), "plc.dot")
	if _, err := runCLI(t, "--root", root, "render", "LIFCL", "LIFCL-40", "PLC", "--neighbour", "N1", "-o", path); err != nil {
		t.Fatalf("render -o: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "N1:V01S0000") || strings.Contains(string(data), "W2:H02E0001") {
		t.Errorf("neighbour filter not applied:\n%s", data)
	}
}
