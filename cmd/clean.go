package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/datatidy-cli/internal/cleaning"
	"github.com/KaramelBytes/datatidy-cli/internal/recipe"
	"github.com/KaramelBytes/datatidy-cli/internal/table"
	"github.com/KaramelBytes/datatidy-cli/internal/utils"
)

var (
	clDrop         []string
	clFill         []string
	clRecipe       string
	clOutputPath   string
	clOutputFormat string
	clTarget       string
	clFeatures     []string
	clSplitOutput  string
	clLogOutput    string
)

var cleanCmd = &cobra.Command{
	Use:   "clean <file>",
	Short: "Drop columns and resolve missing values, then export",
	Long: `Drop columns and apply one missing-value strategy per column.

Strategies: none, mean, median, mode, zero, unknown, constant:<text>, drop.
Flags are merged over the recipe given with --recipe.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadInput(cmd, args[0])
		if err != nil {
			return err
		}
		plan, target, features, err := buildPlan()
		if err != nil {
			return err
		}

		res, err := cleaning.NewEngine(runLogger()).Run(t, plan)
		if err != nil {
			return err
		}
		for _, w := range res.Warnings {
			warnf("%v", w)
		}

		var split *table.Table
		switch {
		case target == "" && len(features) == 0:
		case clSplitOutput != "":
			if split, err = cleaning.Split(res.Table, target, features); err != nil {
				return err
			}
		case clTarget != "" || len(clFeatures) > 0:
			return errors.New("--split-output is required with --target/--features")
		default:
			warnf("recipe names a target/features split but --split-output is not set; skipping the split")
		}

		data, err := encodeTable(res.Table, formatFor(clOutputFormat, clOutputPath))
		if err != nil {
			return err
		}
		// status lines move to stderr when stdout carries the table
		status := statusWriter(clOutputPath == "")
		if err := writeOutput(cmd.OutOrStdout(), status, clOutputPath, data, "cleaned table"); err != nil {
			return err
		}
		if split != nil {
			data, err := encodeTable(split, formatFor("", clSplitOutput))
			if err != nil {
				return err
			}
			if err := writeOutput(cmd.OutOrStdout(), status, clSplitOutput, data, "split table"); err != nil {
				return err
			}
		}
		if clLogOutput != "" {
			b, err := utils.PrettyJSON(res)
			if err != nil {
				return err
			}
			if err := utils.SafeWriteFile(clLogOutput, b); err != nil {
				return fmt.Errorf("write cleaning log: %w", err)
			}
		}
		fmt.Fprintf(status, "✓ Cleaned %d rows x %d columns (%d rows dropped, %d actions)\n",
			res.RowsOut, len(res.ColumnsOut), res.RowsDropped, len(res.Actions))
		return nil
	},
}

// buildPlan merges --recipe with the command line flags.
func buildPlan() (cleaning.Plan, string, []string, error) {
	r := &recipe.Recipe{}
	if clRecipe != "" {
		loaded, err := recipe.Load(clRecipe)
		if err != nil {
			return cleaning.Plan{}, "", nil, err
		}
		r = loaded
	}
	if r.Fill == nil {
		r.Fill = map[string]string{}
	}
	r.Drop = append(r.Drop, clDrop...)
	for _, f := range clFill {
		col, strategy, ok := strings.Cut(f, "=")
		if !ok || strings.TrimSpace(col) == "" {
			return cleaning.Plan{}, "", nil, fmt.Errorf("invalid --fill %q (use column=strategy)", f)
		}
		r.Fill[strings.TrimSpace(col)] = strategy
	}
	if clTarget != "" {
		r.Target = clTarget
	}
	if len(clFeatures) > 0 {
		r.Features = clFeatures
	}
	plan, err := r.Plan(settings().DefaultConstant)
	if err != nil {
		return cleaning.Plan{}, "", nil, err
	}
	return plan, r.Target, r.Features, nil
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	addInputFlags(cleanCmd)
	cleanCmd.Flags().StringSliceVar(&clDrop, "drop", nil, "columns to drop (repeatable)")
	cleanCmd.Flags().StringArrayVar(&clFill, "fill", nil, "missing-value strategy as column=strategy (repeatable)")
	cleanCmd.Flags().StringVar(&clRecipe, "recipe", "", "YAML recipe with drop/fill/target/features")
	cleanCmd.Flags().StringVarP(&clOutputPath, "output", "o", "", "path to write the cleaned table (default stdout)")
	cleanCmd.Flags().StringVar(&clOutputFormat, "output-format", "", "output format: csv|xlsx (default: by extension)")
	cleanCmd.Flags().StringVar(&clTarget, "target", "", "target column for the split output")
	cleanCmd.Flags().StringSliceVar(&clFeatures, "features", nil, "feature columns for the split output")
	cleanCmd.Flags().StringVar(&clSplitOutput, "split-output", "", "path to write the feature+target table")
	cleanCmd.Flags().StringVar(&clLogOutput, "log-output", "", "path to write the cleaning log as JSON")
}
