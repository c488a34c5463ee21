package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nexusfab/tiletopo/pkg/errors"
	"github.com/nexusfab/tiletopo/pkg/intern"
	"github.com/nexusfab/tiletopo/pkg/tiletype"
)

// tiletypesCommand creates the tiletypes command, which builds a device and
// lists its tile types.
func (c *CLI) tiletypesCommand() *cobra.Command {
	var routingOnly bool

	cmd := &cobra.Command{
		Use:               "tiletypes [FAMILY] DEVICE",
		Short:             "Build a device and list its tile types",
		Example:           `  tiletopo tiletypes --root ./prjoxide/database LIFCL LIFCL-40`,
		Args:              targetArgs(2),
		ValidArgsFunction: c.completeTarget(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			family, device, _, err := c.target(args, 2)
			if err != nil {
				return err
			}
			result, err := c.build(cmd.Context(), family, device)
			if err != nil {
				return err
			}

			reg := result.Registry
			var rows [][]string
			for _, name := range reg.Names() {
				tt, _ := reg.Get(name)
				if routingOnly && !tt.HasRouting() {
					continue
				}
				rows = append(rows, []string{
					name,
					strconv.Itoa(len(tt.WireIDs())),
					strconv.Itoa(len(tt.DrivenWireIDs())),
					strconv.Itoa(len(tt.Neighbours())),
					strconv.Itoa(len(tt.Bels)),
				})
			}
			fmt.Println(renderTable([]string{"Tile type", "Wires", "Driven", "Neighbours", "Bels"}, rows))
			printStats(result.Stats.TileTypes, result.Stats.Routing, result.Stats.Wires)
			if len(rows) > 0 {
				printNewline()
				printNextStep("Inspect one", fmt.Sprintf("%s show %s %s %s", appName, family, device, rows[0][0]))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&routingOnly, "routing", false, "only list tile types with pips or fixed connections")
	return cmd
}

// showCommand creates the show command, which prints one tile type.
func (c *CLI) showCommand() *cobra.Command {
	var wiresFlag bool

	cmd := &cobra.Command{
		Use:               "show [FAMILY] DEVICE TILETYPE",
		Short:             "Show the neighbours and wires of a tile type",
		Example:           `  tiletopo show LIFCL LIFCL-40 PLC --wires`,
		Args:              targetArgs(3),
		ValidArgsFunction: c.completeTarget(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			family, device, rest, err := c.target(args, 3)
			if err != nil {
				return err
			}
			name := rest[0]
			if err := errors.ValidateTileTypeName(name); err != nil {
				return err
			}
			result, err := c.build(cmd.Context(), family, device)
			if err != nil {
				return err
			}
			tt, ok := result.Registry.Get(name)
			if !ok {
				return errors.New(errors.ErrCodeTileTypeNotFound, "tile type %q not used by %s", name, device)
			}
			printTileType(tt, result.IDs, wiresFlag)
			return nil
		},
	}

	cmd.Flags().BoolVar(&wiresFlag, "wires", false, "list every wire")
	return cmd
}

// printTileType prints the summary of tt, its neighbours and optionally
// its wires.
func printTileType(tt *tiletype.TileType, ids *intern.Table, withWires bool) {
	printNewline()
	fmt.Println(StyleTitle.Render(tt.Name))
	printKeyValue("Routing", strconv.FormatBool(tt.HasRouting()))
	printKeyValue("Wires", strconv.Itoa(len(tt.WireIDs())))
	printKeyValue("Driven", strconv.Itoa(len(tt.DrivenWireIDs())))
	printKeyValue("Bels", strconv.Itoa(len(tt.Bels)))
	printNewline()

	var rows [][]string
	for _, n := range tt.Neighbours() {
		rows = append(rows, []string{n.String(), n.Kind.String(), strconv.Itoa(len(tt.NeighbourWireIDs(n)))})
	}
	if len(rows) > 0 {
		fmt.Println(renderTable([]string{"Neighbour", "Kind", "Wires"}, rows))
	} else {
		printInfo("No neighbours")
	}

	for _, bel := range tt.Bels {
		pins := make([]string, 0, len(bel.Pins))
		for _, p := range bel.Pins {
			pins = append(pins, p.Name)
		}
		printDetail("%s (%s): %s", bel.Name, bel.BelType, strings.Join(pins, " "))
	}

	if withWires {
		printNewline()
		for _, id := range tt.WireIDs() {
			name := ids.MustName(id)
			if tt.IsDriven(id) {
				name = StyleSuccess.Render(name)
			}
			fmt.Println("  " + name)
		}
	}
}
