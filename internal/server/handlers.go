package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nexusfab/tiletopo/pkg/bels"
	"github.com/nexusfab/tiletopo/pkg/buildinfo"
	"github.com/nexusfab/tiletopo/pkg/errors"
	"github.com/nexusfab/tiletopo/pkg/render"
	"github.com/nexusfab/tiletopo/pkg/tiletype"
	"github.com/nexusfab/tiletopo/pkg/wires"
)

// TileTypeSummary is one entry of GET /tiletypes.
type TileTypeSummary struct {
	Name       string `json:"name"`
	Routing    bool   `json:"routing"`
	Wires      int    `json:"wires"`
	Driven     int    `json:"driven"`
	Neighbours int    `json:"neighbours"`
	Bels       int    `json:"bels"`
}

// WireInfo describes one wire of a tile type.
type WireInfo struct {
	Name   string `json:"name"`
	ID     uint32 `json:"id"`
	Driven bool   `json:"driven"`
}

// NeighbourInfo describes a neighbour and its wires.
type NeighbourInfo struct {
	Neighbour
	Wires []string `json:"wires,omitempty"`
}

// Neighbour is the JSON form of a tiletype.Neighbour.
type Neighbour struct {
	Token string `json:"token"`
	Kind  string `json:"kind"`
	RelX  int32  `json:"rel_x,omitempty"`
	RelY  int32  `json:"rel_y,omitempty"`
	Side  string `json:"side,omitempty"`
}

// TileTypeDetail is the body of GET /tiletypes/{name}.
type TileTypeDetail struct {
	TileTypeSummary
	WireList      []WireInfo      `json:"wire_list"`
	NeighbourList []NeighbourInfo `json:"neighbour_list"`
	BelList       []bels.Bel      `json:"bel_list"`
}

// NormalizeResponse is the body of GET /normalize.
type NormalizeResponse struct {
	Wire      string `json:"wire"`
	Tile      string `json:"tile"`
	Canonical string `json:"canonical"`
	FASM      string `json:"fasm"`
}

// ClassifyResponse is the body of GET /classify.
type ClassifyResponse struct {
	Wire      string     `json:"wire"`
	Base      string     `json:"base"`
	Neighbour *Neighbour `json:"neighbour"`
	Class     string     `json:"global_class"`
}

func toNeighbour(n tiletype.Neighbour) Neighbour {
	out := Neighbour{Token: n.String(), Kind: n.Kind.String()}
	switch n.Kind {
	case tiletype.KindRelXY:
		out.RelX, out.RelY = n.RelX, n.RelY
	case tiletype.KindBranchDriver:
		out.Side = n.Side.String()
	}
	return out
}

func summarize(tt *tiletype.TileType) TileTypeSummary {
	return TileTypeSummary{
		Name:       tt.Name,
		Routing:    tt.HasRouting(),
		Wires:      len(tt.WireIDs()),
		Driven:     len(tt.DrivenWireIDs()),
		Neighbours: len(tt.Neighbours()),
		Bels:       len(tt.Bels),
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"family":    s.result.Registry.Family,
		"device":    s.result.Registry.Device,
		"tiletypes": s.result.Registry.Len(),
		"build":     buildinfo.Get(),
	})
}

func (s *Server) handleTileTypes(w http.ResponseWriter, r *http.Request) {
	reg := s.result.Registry
	out := make([]TileTypeSummary, 0, reg.Len())
	for _, name := range reg.Names() {
		tt, _ := reg.Get(name)
		out = append(out, summarize(tt))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*tiletype.TileType, bool) {
	name := chi.URLParam(r, "name")
	tt, ok := s.result.Registry.Get(name)
	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeTileTypeNotFound, "tile type %q not found", name))
		return nil, false
	}
	return tt, true
}

func (s *Server) handleTileType(w http.ResponseWriter, r *http.Request) {
	tt, ok := s.lookup(w, r)
	if !ok {
		return
	}
	ids := s.result.IDs

	detail := TileTypeDetail{TileTypeSummary: summarize(tt), BelList: tt.Bels}
	if detail.BelList == nil {
		detail.BelList = []bels.Bel{}
	}
	for _, id := range tt.WireIDs() {
		detail.WireList = append(detail.WireList, WireInfo{
			Name:   ids.MustName(id),
			ID:     uint32(id),
			Driven: tt.IsDriven(id),
		})
	}
	for _, n := range tt.Neighbours() {
		info := NeighbourInfo{Neighbour: toNeighbour(n)}
		for _, id := range tt.NeighbourWireIDs(n) {
			info.Wires = append(info.Wires, ids.MustName(id))
		}
		detail.NeighbourList = append(detail.NeighbourList, info)
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleTileTypeDOT(w http.ResponseWriter, r *http.Request) {
	tt, ok := s.lookup(w, r)
	if !ok {
		return
	}
	opts := render.Options{Clusters: r.URL.Query().Get("clusters") != "false"}
	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	_, _ = w.Write([]byte(render.ToDOT(tt, s.result.IDs, opts)))
}

func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	wire := q.Get("wire")
	if wire == "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "wire is required"))
		return
	}
	x, errX := strconv.ParseUint(q.Get("x"), 10, 32)
	y, errY := strconv.ParseUint(q.Get("y"), 10, 32)
	if errX != nil || errY != nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "x and y must be non-negative integers"))
		return
	}
	tile := wires.Tile{X: uint32(x), Y: uint32(y), Name: q.Get("tile")}

	canon, err := wires.NormalizeWire(s.result.Bounds, tile, wire)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, NormalizeResponse{
		Wire:      wire,
		Tile:      tile.Name,
		Canonical: canon,
		FASM:      wires.FASMName(canon),
	})
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	wire := r.URL.Query().Get("wire")
	if wire == "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "wire is required"))
		return
	}
	n, base, err := tiletype.ParseWire(wire)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp := ClassifyResponse{Wire: wire, Base: base, Class: wires.Classify(base).String()}
	if n != nil {
		jn := toNeighbour(*n)
		resp.Neighbour = &jn
	}
	writeJSON(w, http.StatusOK, resp)
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeGrammar, errors.ErrCodeAmbiguous, errors.ErrCodeInvalidInput, errors.ErrCodeInvalidName:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeTileTypeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err, "request_id", requestIDFrom(r.Context()))
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, map[string]string{
		"code":  string(code),
		"error": errors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
