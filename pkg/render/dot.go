package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/nexusfab/tiletopo/pkg/intern"
	"github.com/nexusfab/tiletopo/pkg/tiletype"
)

// Options configures DOT generation.
type Options struct {
	// Clusters groups neighbour wires into one subgraph per neighbour.
	Clusters bool

	// Detailed adds the interned wire identifier to node labels.
	Detailed bool

	// Neighbour restricts the graph to edges touching wires of one
	// neighbour. Nil draws the whole tile type.
	Neighbour *tiletype.Neighbour
}

// ToDOT converts a tile type to Graphviz DOT format. Output is
// deterministic: nodes, clusters and edges are emitted in sorted order.
func ToDOT(tt *tiletype.TileType, ids *intern.Table, opts Options) string {
	keep := func(string) bool { return true }
	if opts.Neighbour != nil {
		members := make(map[string]bool)
		for _, id := range tt.NeighbourWireIDs(*opts.Neighbour) {
			members[ids.MustName(id)] = true
		}
		keep = func(w string) bool { return members[w] }
	}

	type edge struct {
		from, to string
		fixed    bool
	}
	var edges []edge
	used := make(map[string]bool)
	bits := tt.Bits()
	for _, to := range bits.PipSinks() {
		for _, p := range bits.Pips[to] {
			if keep(to) || keep(p.FromWire) {
				edges = append(edges, edge{p.FromWire, to, false})
				used[to], used[p.FromWire] = true, true
			}
		}
	}
	for _, to := range bits.ConnSinks() {
		for _, c := range bits.Conns[to] {
			if keep(to) || keep(c.FromWire) {
				edges = append(edges, edge{c.FromWire, to, true})
				used[to], used[c.FromWire] = true, true
			}
		}
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", tt.Name)
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=monospace, fontsize=12];\n")
	buf.WriteString("  edge [arrowsize=0.6];\n")
	buf.WriteString("\n")

	clustered := make(map[string]bool)
	if opts.Clusters {
		for i, n := range tt.Neighbours() {
			var members []string
			for _, id := range tt.NeighbourWireIDs(n) {
				if w := ids.MustName(id); used[w] || (opts.Neighbour == nil && tt.HasWire(w)) {
					members = append(members, w)
				}
			}
			if len(members) == 0 {
				continue
			}
			fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", i)
			fmt.Fprintf(&buf, "    label=%q;\n", n.String())
			buf.WriteString("    style=dashed;\n")
			for _, w := range members {
				fmt.Fprintf(&buf, "    %s\n", nodeLine(tt, ids, w, opts.Detailed))
				clustered[w] = true
			}
			buf.WriteString("  }\n")
		}
	}

	for _, w := range tt.Wires() {
		if clustered[w] || (opts.Neighbour != nil && !used[w]) {
			continue
		}
		fmt.Fprintf(&buf, "  %s\n", nodeLine(tt, ids, w, opts.Detailed))
	}

	buf.WriteString("\n")
	for _, e := range edges {
		if e.fixed {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed];\n", e.from, e.to)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.from, e.to)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLine(tt *tiletype.TileType, ids *intern.Table, wire string, detailed bool) string {
	label := wire
	id, known := ids.Lookup(wire)
	if detailed && known {
		label = fmt.Sprintf("%s\n#%d", wire, id)
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if known && tt.IsDriven(id) {
		attrs = append(attrs, "fillcolor=lightblue")
	}
	return fmt.Sprintf("%q [%s];", wire, strings.Join(attrs, ", "))
}
