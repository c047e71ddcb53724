package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/datatidy-cli/internal/analysis"
	"github.com/KaramelBytes/datatidy-cli/internal/cleaning"
	"github.com/KaramelBytes/datatidy-cli/internal/utils"
)

var (
	profJSON        bool
	profDrop        []string
	profMaxDistinct int
	profSampleRows  int
	profOutliers    bool
	profOutlierThr  float64
	profOutputPath  string
)

var profileCmd = &cobra.Command{
	Use:   "profile <file>",
	Short: "Report column kinds, missing values and distinct values",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		t, err := loadInput(cmd, path)
		if err != nil {
			return err
		}
		if len(profDrop) > 0 {
			if t, err = cleaning.Prune(t, profDrop); err != nil {
				return err
			}
		}

		c := settings()
		opt := analysis.DefaultOptions()
		opt.MaxDistinct = c.MaxDistinct
		if c.SampleRows > 0 {
			opt.SampleRows = c.SampleRows
		}
		opt.Outliers = c.Outliers
		if cmd.Flags().Changed("max-distinct") {
			opt.MaxDistinct = profMaxDistinct
		}
		if cmd.Flags().Changed("sample-rows") && profSampleRows > 0 {
			opt.SampleRows = profSampleRows
		}
		if cmd.Flags().Changed("outliers") {
			opt.Outliers = profOutliers
		}
		if profOutlierThr > 0 {
			opt.OutlierThreshold = profOutlierThr
		}

		rep := analysis.Profile(t, opt)
		rep.Name = filepath.Base(path)
		var out []byte
		if profJSON {
			if out, err = utils.PrettyJSON(rep); err != nil {
				return err
			}
			out = append(out, '\n')
		} else {
			out = []byte(rep.Markdown())
		}
		return writeOutput(cmd.OutOrStdout(), os.Stdout, profOutputPath, out, "profile")
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	addInputFlags(profileCmd)
	profileCmd.Flags().BoolVar(&profJSON, "json", false, "emit the profile as JSON instead of Markdown")
	profileCmd.Flags().StringSliceVar(&profDrop, "drop", nil, "columns to drop before profiling (repeatable)")
	profileCmd.Flags().IntVar(&profMaxDistinct, "max-distinct", 20, "distinct values listed per column (0 = unlimited)")
	profileCmd.Flags().IntVar(&profSampleRows, "sample-rows", 5, "number of sample rows to include")
	profileCmd.Flags().BoolVar(&profOutliers, "outliers", false, "compute robust outlier counts (MAD)")
	profileCmd.Flags().Float64Var(&profOutlierThr, "outlier-threshold", 3.5, "robust |z| threshold for outliers (MAD-based)")
	profileCmd.Flags().StringVarP(&profOutputPath, "output", "o", "", "optional path to write the profile")
}
