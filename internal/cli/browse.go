package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// browseCommand creates the browse command, an interactive terminal view of
// the tile types of a device.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "browse [FAMILY] DEVICE",
		Short:             "Interactively browse the tile types of a device",
		Example:           `  tiletopo browse LIFCL LIFCL-40`,
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
			if result.Registry.Len() == 0 {
				printWarning("%s has no tile types", device)
				return nil
			}
			p := tea.NewProgram(NewBrowserModel(result.Registry, result.IDs),
				tea.WithContext(cmd.Context()), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}
