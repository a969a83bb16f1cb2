// Package commands implements the CLI commands for the recipe tool.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/recipe/internal/app"
	"go.trai.ch/recipe/internal/build"
	"go.trai.ch/recipe/internal/core/ports"
)

// CLI represents the command line interface for recipe.
type CLI struct {
	app     Application
	logger  ports.Logger
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	RequireRecipe(ctx context.Context, dir string, opts app.RecipeOptions) error
	UpdateRecipe(ctx context.Context, dir string, opts app.RecipeOptions) error
	Unpack(ctx context.Context, dir string, packages []string) error
	InstallFiles(ctx context.Context, dir string, recipes []string) error
	CleanupProject(ctx context.Context, dir string) error
}

// jsonSwitcher is implemented by loggers that can emit JSON.
type jsonSwitcher interface {
	SetJSON(enable bool)
}

// New creates a new CLI instance with the given app. The --json flag is
// applied to logger when it supports JSON output.
func New(a Application, logger ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "recipe",
		Short:         "Inline, unpack and install the files of project recipes",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("working-dir", "d", ".", "Use the given directory as the project root")
	rootCmd.PersistentFlags().Bool("json", false, "Write log output as JSON")

	c := &CLI{
		app:     a,
		logger:  logger,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		enable, _ := cmd.Flags().GetBool("json")
		if switcher, ok := c.logger.(jsonSwitcher); ok && enable {
			switcher.SetJSON(true)
		}
	}

	rootCmd.AddCommand(c.newRequireRecipeCmd())
	rootCmd.AddCommand(c.newUpdateRecipeCmd())
	rootCmd.AddCommand(c.newUnpackCmd())
	rootCmd.AddCommand(c.newInstallFilesCmd())
	rootCmd.AddCommand(c.newCleanupProjectCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func workingDir(cmd *cobra.Command) string {
	dir, _ := cmd.Flags().GetString("working-dir")
	return dir
}
