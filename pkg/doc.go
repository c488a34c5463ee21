// Package pkg provides the core libraries of tiletopo.
//
// # Overview
//
// tiletopo turns the per-family bit database of an FPGA into relocatable
// routing graphs: every absolute wire name R<row>C<col>_<base> seen from a
// tile is rewritten into a canonical name that is either local to the
// tile, relative to a neighbouring tile (N1E2:V02S0100) or tagged with the
// global network it belongs to (BRANCH:HPBX0100, G:VCC). The pkg directory
// is organized into these areas:
//
//  1. [wires] - Wire address grammar, global-network classifier, edge and wire normalizers
//  2. [tiletype] - Neighbour classifier, tile-type graph builder and registry
//  3. [database], [bels], [intern] - Collaborators: bit database, bel catalog, string interning
//  4. [cache] - Byte caches for raw database files (file, Redis, MongoDB)
//  5. [pipeline] - Orchestration (load → build)
//  6. [render] - DOT, SVG, PDF and PNG export of tile-type graphs
//
// # Architecture
//
// The typical data flow through tiletopo:
//
//	Bit database (JSON) + bel catalog (TOML)
//	         ↓
//	    [database] → TileBits, Tilegrid, Bounds
//	         ↓
//	    [tiletype] → Registry of TileType graphs
//	         ↓
//	    [render] → DOT / SVG / PDF / PNG
//
// Wire names are normalized by [wires.NormalizeWire] when the database is
// produced and decoded by [tiletype.ParseWire] when tile types are built.
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Root:   "/path/to/db",
//	    Family: "LIFCL",
//	    Device: "LIFCL-40",
//	})
//	plc, _ := result.Registry.Get("PLC")
//	for _, n := range plc.Neighbours() {
//	    fmt.Println(n, len(plc.NeighbourWireIDs(n)))
//	}
//
// [wires]: https://pkg.go.dev/github.com/nexusfab/tiletopo/pkg/wires
// [tiletype]: https://pkg.go.dev/github.com/nexusfab/tiletopo/pkg/tiletype
// [database]: https://pkg.go.dev/github.com/nexusfab/tiletopo/pkg/database
// [bels]: https://pkg.go.dev/github.com/nexusfab/tiletopo/pkg/bels
// [intern]: https://pkg.go.dev/github.com/nexusfab/tiletopo/pkg/intern
// [cache]: https://pkg.go.dev/github.com/nexusfab/tiletopo/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/nexusfab/tiletopo/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/nexusfab/tiletopo/pkg/render
package pkg
