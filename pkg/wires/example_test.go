package wires_test

import (
	"fmt"

	"github.com/nexusfab/tiletopo/pkg/wires"
)

func ExampleNormalizeWire() {
	bounds := wires.Bounds{MaxRow: 52, MaxCol: 86}
	tile := wires.Tile{X: 10, Y: 20, Name: "R20C10:PLC", TileType: "PLC"}

	for _, w := range []string{"R20C10_A0", "R18C11_H02E0001", "R20C12_HPBX0100", "R7C3_VCC"} {
		name, err := wires.NormalizeWire(bounds, tile, w)
		if err != nil {
			fmt.Println("error:", err)
			continue
		}
		fmt.Println(name)
	}
	// Output:
	// A0
	// N2E1:H02E0001
	// BRANCH:HPBX0100
	// G:VCC
}

func ExampleNormalizeEdge() {
	bounds := wires.Bounds{MaxRow: 52, MaxCol: 80}
	name, x, y, _ := wires.NormalizeEdge(bounds, 79, 10, 79, 10, "H01E0000")
	fmt.Println(name, x, y)
	// Output:
	// H01E0001 80 10
}
