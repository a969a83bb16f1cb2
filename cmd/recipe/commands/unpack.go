package commands

import "github.com/spf13/cobra"

func (c *CLI) newUnpackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unpack <packages...>",
		Short: "Unpack installed recipes",
		Long: `Replaces each installed recipe by the dependencies it declares and removes it
from the manifest and the lock file.`,
		Example: "  recipe unpack silverstripe/recipe-core",
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Unpack(cmd.Context(), workingDir(cmd), args)
		},
	}
}
