package cli

import (
	"github.com/spf13/cobra"

	"github.com/nexusfab/tiletopo/internal/server"
)

// serveCommand creates the serve command, which builds a device and exposes
// it over the HTTP API until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:               "serve [FAMILY] DEVICE",
		Short:             "Serve the tile types of a device over HTTP",
		Example:           `  tiletopo serve LIFCL LIFCL-40 --addr :8080`,
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
			if addr == "" {
				addr = c.cfg.Server.Addr
			}
			srv := server.New(result, loggerFromContext(cmd.Context()))
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}
