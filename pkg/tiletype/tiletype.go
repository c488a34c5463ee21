package tiletype

import (
	"slices"

	"github.com/nexusfab/tiletopo/pkg/bels"
	"github.com/nexusfab/tiletopo/pkg/database"
	"github.com/nexusfab/tiletopo/pkg/errors"
	"github.com/nexusfab/tiletopo/pkg/intern"
)

// TileType is the routing graph of one tile type. It is read-only after
// Build returns.
type TileType struct {
	Name string
	Bels []bels.Bel

	bits             *database.TileBits
	wires            map[string]struct{}
	wireIDs          map[intern.ID]struct{}
	drivenIDs        map[intern.ID]struct{}
	neighbourWireIDs map[Neighbour][]intern.ID
	neighbours       []Neighbour
}

// Build constructs the graph of tile type name from its raw database and
// bels. Wire names are interned into ids, which may be shared with
// concurrent builds.
//
// Every pip and connection destination is driven, as is every bel output
// pin. Wires with a neighbour prefix are grouped by neighbour; within a
// group, wires keep sorted name order. Bucket entries are the identifiers
// of the full canonical names, so every bucketed identifier is also a wire
// of the tile type.
func Build(name string, bits *database.TileBits, bs []bels.Bel, ids *intern.Table) (*TileType, error) {
	if bits == nil {
		bits = &database.TileBits{}
	}
	tt := &TileType{
		Name:             name,
		Bels:             bs,
		bits:             bits,
		wires:            make(map[string]struct{}),
		wireIDs:          make(map[intern.ID]struct{}),
		drivenIDs:        make(map[intern.ID]struct{}),
		neighbourWireIDs: make(map[Neighbour][]intern.ID),
	}

	add := func(wire string, driven bool) {
		id := ids.ID(wire)
		tt.wires[wire] = struct{}{}
		tt.wireIDs[id] = struct{}{}
		if driven {
			tt.drivenIDs[id] = struct{}{}
		}
	}

	for _, to := range bits.PipSinks() {
		add(to, true)
		for _, p := range bits.Pips[to] {
			add(p.FromWire, false)
		}
	}
	for _, to := range bits.ConnSinks() {
		add(to, true)
		for _, c := range bits.Conns[to] {
			add(c.FromWire, false)
		}
	}
	for _, bel := range bs {
		for _, pin := range bel.Pins {
			if pin.Name == "" || pin.RelWire.Name == "" {
				return nil, errors.New(errors.ErrCodeDatabase, "tile type %s: bel %s has a pin without wire", name, bel.Name)
			}
			add(pin.RelName(), pin.Dir == bels.DirOutput)
		}
	}

	for _, wire := range tt.Wires() {
		n, _, err := ParseWire(wire)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeGrammar, err, "tile type %s", name)
		}
		if n == nil {
			continue
		}
		tt.neighbourWireIDs[*n] = append(tt.neighbourWireIDs[*n], ids.ID(wire))
	}
	for n := range tt.neighbourWireIDs {
		tt.neighbours = append(tt.neighbours, n)
	}
	slices.SortFunc(tt.neighbours, Compare)

	return tt, nil
}

// HasRouting reports whether the tile type has at least one pip or fixed
// connection. Pure logic tile types have none.
func (tt *TileType) HasRouting() bool {
	return len(tt.bits.Pips) > 0 || len(tt.bits.Conns) > 0
}

// Bits returns the raw database the tile type was built from.
func (tt *TileType) Bits() *database.TileBits { return tt.bits }

// Wires returns all canonical wire names, sorted.
func (tt *TileType) Wires() []string {
	out := make([]string, 0, len(tt.wires))
	for w := range tt.wires {
		out = append(out, w)
	}
	slices.Sort(out)
	return out
}

// HasWire reports whether wire belongs to the tile type.
func (tt *TileType) HasWire(wire string) bool {
	_, ok := tt.wires[wire]
	return ok
}

// WireIDs returns the identifiers of all wires, sorted.
func (tt *TileType) WireIDs() []intern.ID { return sortedIDs(tt.wireIDs) }

// DrivenWireIDs returns the identifiers of driven wires, sorted.
func (tt *TileType) DrivenWireIDs() []intern.ID { return sortedIDs(tt.drivenIDs) }

// HasWireID reports whether id is a wire of the tile type.
func (tt *TileType) HasWireID(id intern.ID) bool {
	_, ok := tt.wireIDs[id]
	return ok
}

// IsDriven reports whether id is a driven wire of the tile type.
func (tt *TileType) IsDriven(id intern.ID) bool {
	_, ok := tt.drivenIDs[id]
	return ok
}

// Neighbours returns the neighbours the tile type has wires to, in
// Compare order.
func (tt *TileType) Neighbours() []Neighbour { return slices.Clone(tt.neighbours) }

// NeighbourWireIDs returns the wires grouped under n.
func (tt *TileType) NeighbourWireIDs(n Neighbour) []intern.ID {
	return slices.Clone(tt.neighbourWireIDs[n])
}

func sortedIDs(set map[intern.ID]struct{}) []intern.ID {
	out := make([]intern.ID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
