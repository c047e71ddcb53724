package cmd

import (
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/datatidy-cli/internal/cleaning"
)

var (
	spTarget       string
	spFeatures     []string
	spOutputPath   string
	spOutputFormat string
)

var splitCmd = &cobra.Command{
	Use:   "split <file>",
	Short: "Export the feature columns followed by the target column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadInput(cmd, args[0])
		if err != nil {
			return err
		}
		out, err := cleaning.Split(t, spTarget, spFeatures)
		if err != nil {
			return err
		}
		data, err := encodeTable(out, formatFor(spOutputFormat, spOutputPath))
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), statusWriter(spOutputPath == ""), spOutputPath, data, "split table")
	},
}

func init() {
	rootCmd.AddCommand(splitCmd)
	addInputFlags(splitCmd)
	splitCmd.Flags().StringVar(&spTarget, "target", "", "target column (placed last)")
	splitCmd.Flags().StringSliceVar(&spFeatures, "features", nil, "feature columns in output order")
	splitCmd.Flags().StringVarP(&spOutputPath, "output", "o", "", "path to write the split table (default stdout)")
	splitCmd.Flags().StringVar(&spOutputFormat, "output-format", "", "output format: csv|xlsx (default: by extension)")
}
