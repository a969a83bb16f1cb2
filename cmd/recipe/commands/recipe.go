package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/recipe/internal/app"
)

func recipeOptions(args []string) app.RecipeOptions {
	opts := app.RecipeOptions{Recipe: args[0]}
	if len(args) > 1 {
		opts.Constraint = args[1]
	}
	return opts
}

func (c *CLI) newRequireRecipeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "require-recipe <recipe> [constraint]",
		Aliases: []string{"eject"},
		Short:   "Inline a recipe into the root manifest",
		Long: `Requires the recipe, copies its direct dependencies into the require section of
the root manifest and moves the recipe itself to provide. The inlined
dependencies can then be edited as though they were declared by the project.`,
		Example: "  recipe require-recipe silverstripe/recipe-blog ^2.0",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.RequireRecipe(cmd.Context(), workingDir(cmd), recipeOptions(args))
		},
	}
}

func (c *CLI) newUpdateRecipeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update-recipe <recipe> [constraint]",
		Short: "Update an installed recipe",
		Long: `Detects a recipe that is installed, inline or required directly, and updates it.
Without a constraint one is derived from the installed version.`,
		Example: "  recipe update-recipe silverstripe/recipe-blog",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.UpdateRecipe(cmd.Context(), workingDir(cmd), recipeOptions(args))
		},
	}
}
