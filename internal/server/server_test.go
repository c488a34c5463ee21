package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/nexusfab/tiletopo/pkg/buildinfo"
	"github.com/nexusfab/tiletopo/pkg/pipeline"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "LIFCL", "tiletypes", "PLC.json"), `{
		"pips": {"JA0": [{"from_wire": "N1:V01S0000"}, {"from_wire": "BRANCH_L:H01E0001"}]},
		"conns": {"JB0": [{"from_wire": "G:VCC"}]}
	}`)
	writeFile(t, filepath.Join(root, "LIFCL", "LIFCL-40", "tilegrid.json"), `{
		"tiles": {"R5C5:PLC": {"tiletype": "PLC", "x": 5, "y": 5}}
	}`)
	writeFile(t, filepath.Join(root, "LIFCL", "LIFCL-40", "device.json"), `{"max_row": 50, "max_col": 80}`)

	logger := log.New(io.Discard)
	result, err := pipeline.NewRunner(nil, nil, logger).Execute(context.Background(), pipeline.Options{
		Root: root, Family: "LIFCL", Device: "LIFCL-40",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	ts := httptest.NewServer(New(result, logger).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string, v any) *http.Response {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return resp
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	var body map[string]any
	resp := get(t, ts, "/healthz", &body)
	if resp.StatusCode != http.StatusOK || body["status"] != "ok" {
		t.Errorf("healthz = %d %v", resp.StatusCode, body)
	}
	build, ok := body["build"].(map[string]any)
	if !ok || build["version"] != buildinfo.Get().Version {
		t.Errorf("healthz build = %v, want version %s", body["build"], buildinfo.Get().Version)
	}
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("response should carry a request ID")
	}
}

func TestRequestIDEcho(t *testing.T) {
	ts := newTestServer(t)
	const id = "6f1c1a0e-3b8e-4c43-9a55-0d7c4c1f2f10"
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != id {
		t.Errorf("request ID = %q, want %q", got, id)
	}
}

func TestTileTypes(t *testing.T) {
	ts := newTestServer(t)
	var list []TileTypeSummary
	get(t, ts, "/tiletypes", &list)
	if len(list) != 1 {
		t.Fatalf("tiletypes = %+v", list)
	}
	want := TileTypeSummary{Name: "PLC", Routing: true, Wires: 5, Driven: 2, Neighbours: 3}
	if list[0] != want {
		t.Errorf("summary = %+v, want %+v", list[0], want)
	}
}

func TestTileType(t *testing.T) {
	ts := newTestServer(t)
	var detail TileTypeDetail
	resp := get(t, ts, "/tiletypes/PLC", &detail)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if len(detail.WireList) != 5 {
		t.Errorf("wire_list = %+v", detail.WireList)
	}
	var tokens []string
	for _, n := range detail.NeighbourList {
		tokens = append(tokens, n.Token)
	}
	if got := strings.Join(tokens, ","); got != "N1,BRANCH_L,G" {
		t.Errorf("neighbours = %s", got)
	}
	if side := detail.NeighbourList[1].Side; side != "Left" {
		t.Errorf("branch side = %q", side)
	}

	var errBody map[string]string
	resp = get(t, ts, "/tiletypes/NOPE", &errBody)
	if resp.StatusCode != http.StatusNotFound || errBody["code"] != "TILETYPE_NOT_FOUND" {
		t.Errorf("missing tile type = %d %v", resp.StatusCode, errBody)
	}
}

func TestTileTypeDOT(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/tiletypes/PLC/dot")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.HasPrefix(string(body), `digraph "PLC"`) {
		t.Errorf("dot = %s", body)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/vnd.graphviz") {
		t.Errorf("content type = %s", ct)
	}
}

func TestNormalize(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		query  string
		status int
		want   string
	}{
		{"?tile=R10C10:PLC&x=10&y=10&wire=R9C11_JA0", http.StatusOK, "N1E1:JA0"},
		{"?tile=R10C10:PLC&x=10&y=10&wire=R10C10_JA0", http.StatusOK, "JA0"},
		{"?tile=R10C10:PLC&x=10&y=10&wire=R3C4_VCC", http.StatusOK, "G:VCC"},
		{"?tile=R10C10:PLC&x=10&y=10&wire=JA0", http.StatusBadRequest, ""},
		{"?tile=R10C10:TAP&x=10&y=10&wire=R10C10_H01E0001", http.StatusBadRequest, ""},
		{"?x=a&y=1&wire=R1C1_JA0", http.StatusBadRequest, ""},
		{"?x=1&y=1", http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var body map[string]string
			resp := get(t, ts, "/normalize"+tt.query, &body)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d (%v)", resp.StatusCode, tt.status, body)
			}
			if tt.want != "" && body["canonical"] != tt.want {
				t.Errorf("canonical = %q, want %q", body["canonical"], tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	ts := newTestServer(t)

	var resp ClassifyResponse
	get(t, ts, "/classify?wire=S2E1:JA0", &resp)
	if resp.Neighbour == nil || resp.Neighbour.Kind != "RelXY" || resp.Neighbour.RelX != 1 || resp.Neighbour.RelY != 2 {
		t.Errorf("classify = %+v", resp)
	}

	resp = ClassifyResponse{}
	get(t, ts, "/classify?wire=HPBX0100", &resp)
	if resp.Neighbour != nil || resp.Class != "BRANCH" {
		t.Errorf("classify local = %+v", resp)
	}

	var errBody map[string]string
	r := get(t, ts, "/classify?wire=Q1:JA0", &errBody)
	if r.StatusCode != http.StatusBadRequest || errBody["code"] != "GRAMMAR_VIOLATION" {
		t.Errorf("bad prefix = %d %v", r.StatusCode, errBody)
	}
}
