package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/datatidy-cli/internal/analysis"
	"github.com/KaramelBytes/datatidy-cli/internal/recipe"
)

var recipeOutputPath string

var recipeCmd = &cobra.Command{
	Use:   "recipe",
	Short: "Create cleaning recipes",
}

var recipeInitCmd = &cobra.Command{
	Use:   "init <file>",
	Short: "Write a recipe listing every column that needs attention",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadInput(cmd, args[0])
		if err != nil {
			return err
		}
		rep := analysis.Profile(t, analysis.DefaultOptions())
		r := recipe.FromReport(rep, filepath.Base(args[0]))
		if err := r.Save(recipeOutputPath); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote recipe to %s (%d columns need attention)\n", recipeOutputPath, len(r.Fill))
		if len(r.Fill) == 0 {
			fmt.Println("No missing or invalid values found")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recipeCmd)
	recipeCmd.AddCommand(recipeInitCmd)
	addInputFlags(recipeInitCmd)
	recipeInitCmd.Flags().StringVarP(&recipeOutputPath, "output", "o", "recipe.yaml", "path to write the recipe")
}
