package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nexusfab/tiletopo/pkg/database"
)

// completionCommand creates the completion command. The generated scripts
// complete FAMILY, DEVICE and TILETYPE arguments from the database root.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion bash|zsh|fish|powershell",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for tiletopo.

Positional arguments complete from the database: families are the
directories of --root holding a tiletypes/ directory, devices are the
directories of a family holding a tilegrid.json, and tile types are the
ones used by the device. Set database.root in the config file so that
completion works without --root on the command line.

  $ source <(tiletopo completion bash)
  $ tiletopo completion zsh > "${fpath[1]}/_tiletopo"
  $ tiletopo completion fish > ~/.config/fish/completions/tiletopo.fish
  PS> tiletopo completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			}
			return cmd.Root().GenPowerShellCompletionWithDesc(out)
		},
	}
}

// completeTarget completes the [FAMILY] DEVICE [TILETYPE] arguments of a
// command taking n arguments when the family is given. With a configured
// family the first argument is the device unless it names that family.
func (c *CLI) completeTarget(n int) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if c.cfg == nil {
			if err := c.loadConfig(); err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
		}
		if c.cfg.Database.Root == "" {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		if fam := c.cfg.Database.Family; fam != "" && (len(args) == 0 || args[0] != fam) {
			args = append([]string{fam}, args...)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		db := database.Open(c.cfg.Database.Root, database.Options{})

		var names []string
		var err error
		switch {
		case len(args) == 0:
			names, err = db.Families()
		case len(args) == 1:
			names, err = db.Devices(args[0])
		case len(args) == 2 && n > 2:
			var grid *database.Tilegrid
			if grid, err = db.Tilegrid(ctx, args[0], args[1]); err == nil {
				names = grid.TileTypes()
			}
		}
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		matches := names[:0:0]
		for _, name := range names {
			if strings.HasPrefix(name, toComplete) {
				matches = append(matches, name)
			}
		}
		return matches, cobra.ShellCompDirectiveNoFileComp
	}
}
