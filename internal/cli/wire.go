package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nexusfab/tiletopo/pkg/tiletype"
	"github.com/nexusfab/tiletopo/pkg/wires"
)

// normalizeOpts holds the flags of the normalize command.
type normalizeOpts struct {
	tile   string
	x, y   uint32
	maxRow uint32
	maxCol uint32
	fasm   bool
}

// normalizeCommand creates the normalize command. It needs no database:
// the observing tile and the device bounds come from flags.
func (c *CLI) normalizeCommand() *cobra.Command {
	var opts normalizeOpts

	cmd := &cobra.Command{
		Use:   "normalize WIRE...",
		Short: "Rewrite absolute wire names into canonical names",
		Long: `Rewrite absolute wire names (R<row>C<col>_<base>) as seen from one tile
into their canonical, relocatable form.`,
		Example: `  tiletopo normalize --tile R10C10:PLC --x 10 --y 10 --max-row 50 --max-col 80 R9C11_JA0`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b := wires.Bounds{MaxRow: opts.maxRow, MaxCol: opts.maxCol}
			tile := wires.Tile{X: opts.x, Y: opts.y, Name: opts.tile}
			out := cmd.OutOrStdout()
			for _, wire := range args {
				canon, err := wires.NormalizeWire(b, tile, wire)
				if err != nil {
					return err
				}
				if opts.fasm {
					canon = wires.FASMName(canon)
				}
				fmt.Fprintf(out, "%s %s %s\n", wire, StyleDim.Render(iconArrow), StyleHighlight.Render(canon))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.tile, "tile", "", "name of the observing tile (e.g. R10C10:PLC)")
	cmd.Flags().Uint32Var(&opts.x, "x", 0, "column of the observing tile")
	cmd.Flags().Uint32Var(&opts.y, "y", 0, "row of the observing tile")
	cmd.Flags().Uint32Var(&opts.maxRow, "max-row", 0, "largest row of the device")
	cmd.Flags().Uint32Var(&opts.maxCol, "max-col", 0, "largest column of the device")
	cmd.Flags().BoolVar(&opts.fasm, "fasm", false, "print FASM-safe names")

	return cmd
}

// classifyCommand creates the classify command.
func (c *CLI) classifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "classify CANONICAL...",
		Short:   "Decode canonical wire names into neighbour and base name",
		Example: `  tiletopo classify N1E2:V02S0100 BRANCH_L:H01E0001 JA0`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, len(args))
			for _, wire := range args {
				n, base, err := tiletype.ParseWire(wire)
				if err != nil {
					return err
				}
				token, kind := "-", "local"
				if n != nil {
					token, kind = n.String(), n.Kind.String()
				}
				rows = append(rows, []string{wire, token, kind, base, wires.Classify(base).String()})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Wire", "Neighbour", "Kind", "Base", "Global"}, rows))
			return nil
		},
	}
}
