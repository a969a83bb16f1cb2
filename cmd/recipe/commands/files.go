package commands

import "github.com/spf13/cobra"

func (c *CLI) newInstallFilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install-files [recipes...]",
		Short: "Install the project and public files of recipes",
		Long: `Copies the files declared by the named recipes, or by every installed recipe,
into the project. Files that exist or were installed before are left alone.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.InstallFiles(cmd.Context(), workingDir(cmd), args)
		},
	}
}

func (c *CLI) newCleanupProjectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup-project",
		Short: "Remove recipe file declarations from a newly created project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.CleanupProject(cmd.Context(), workingDir(cmd))
		},
	}
}
