// Package tiletype builds the per-tile-type routing graph.
//
// A [TileType] collects every wire of a tile type from its programmable
// interconnect points, its fixed connections and its bel pins, interns the
// wire names, records which wires are driven, and groups the wires that
// reach outside the tile by [Neighbour].
//
// # Neighbours
//
// Canonical wire names carry an optional prefix before the first ':'.
// [ParseWire] turns that prefix back into a [Neighbour]:
//
//	JF0              local, no neighbour
//	N1E2:H02W0701    RelXY{RelX: 2, RelY: -1}
//	BRANCH_L:HPBX00  BranchDriver{Left}
//	G:VCC            Global
//
// [FormatWire] is the inverse for every prefix ParseWire accepts.
//
// # Registry
//
// [NewRegistry] builds one TileType per distinct tile type of a device. The
// builds run in parallel and share one [intern.Table]; each distinct tile
// type is built exactly once however many tiles of that type the grid has.
// A Registry is immutable once returned and safe for concurrent readers.
package tiletype
