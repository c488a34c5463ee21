package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nexusfab/tiletopo/pkg/errors"
	"github.com/nexusfab/tiletopo/pkg/render"
	"github.com/nexusfab/tiletopo/pkg/tiletype"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string // output file path; the extension selects the format
	format    string // explicit format, overrides the extension
	neighbour string // restrict to one neighbour token, e.g. "N1" or "BRANCH_L"
	clusters  bool   // group neighbour wires into subgraphs
	detailed  bool   // add wire identifiers to labels
}

// renderCommand creates the render command for exporting the routing graph
// of one tile type.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{clusters: true}

	cmd := &cobra.Command{
		Use:   "render [FAMILY] DEVICE TILETYPE",
		Short: "Render the routing graph of a tile type",
		Long: `Render the routing graph of a tile type as DOT, SVG, PDF or PNG.
PDF and PNG output requires rsvg-convert (librsvg).`,
		Example: `  tiletopo render LIFCL LIFCL-40 PLC -o plc.svg
  tiletopo render LIFCL LIFCL-40 TAP_PLC --neighbour BRANCH_L -o tap.dot`,
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

			ropts := render.Options{Clusters: opts.clusters, Detailed: opts.detailed}
			if opts.neighbour != "" {
				n, _, err := tiletype.ParseWire(opts.neighbour + ":_")
				if err != nil {
					return err
				}
				ropts.Neighbour = n
			}

			result, err := c.build(cmd.Context(), family, device)
			if err != nil {
				return err
			}
			tt, ok := result.Registry.Get(name)
			if !ok {
				return errors.New(errors.ErrCodeTileTypeNotFound, "tile type %q not used by %s", name, device)
			}

			format := opts.format
			if format == "" {
				format = render.FormatFromPath(opts.output)
			}
			data, err := render.Render(cmd.Context(), render.ToDOT(tt, result.IDs, ropts), format)
			if err != nil {
				return err
			}

			if opts.output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(opts.output, data, 0644); err != nil {
				return err
			}
			printSuccess("Rendered %s", name)
			printFile(opts.output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot, svg, pdf, png (default from extension)")
	cmd.Flags().StringVar(&opts.neighbour, "neighbour", "", "only edges touching wires of this neighbour")
	cmd.Flags().BoolVar(&opts.clusters, "clusters", opts.clusters, "group neighbour wires into subgraphs")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "add wire identifiers to labels")

	return cmd
}
