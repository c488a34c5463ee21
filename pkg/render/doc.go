// Package render exports the routing graph of a tile type.
//
// [ToDOT] converts a [tiletype.TileType] to Graphviz DOT: every wire is a
// node and every pip or fixed connection an edge from source to sink.
// Pips are solid, fixed connections dashed, driven wires filled. Wires
// reaching outside the tile are grouped into one cluster per neighbour.
//
//	dot := render.ToDOT(tt, ids, render.Options{Clusters: true})
//	svg, err := render.RenderSVG(ctx, dot)
//
// [RenderSVG] lays the graph out in-process with
// [github.com/goccy/go-graphviz]. PDF and PNG conversion ([ToPDF], [ToPNG])
// shells out to rsvg-convert from librsvg.
package render
