package main

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"archbench/internal/compare"
)

var (
	tableALabel string
	tableBLabel string
	tableCSV    bool
)

var tableCmd = &cobra.Command{
	Use:   "table <a.json> <b.json>",
	Short: "Print a min/median/max statistics table for two result files",
	Args:  cobra.ExactArgs(2),
	RunE:  runTable,
}

func init() {
	rootCmd.AddCommand(tableCmd)
	tableCmd.Flags().StringVar(&tableALabel, "a-label", "", "Label for first file (default: filename stem)")
	tableCmd.Flags().StringVar(&tableBLabel, "b-label", "", "Label for second file (default: filename stem)")
	tableCmd.Flags().BoolVar(&tableCSV, "csv", false, "Output as CSV instead of a formatted table")
}

func runTable(cmd *cobra.Command, args []string) error {
	aStats, err := compare.LoadStats(args[0])
	if err != nil {
		return err
	}
	bStats, err := compare.LoadStats(args[1])
	if err != nil {
		return err
	}

	aLabel := tableALabel
	if aLabel == "" {
		aLabel = fileStem(args[0])
	}
	bLabel := tableBLabel
	if bLabel == "" {
		bLabel = fileStem(args[1])
	}

	if tableCSV {
		return compare.WriteCSV(cmd.OutOrStdout(), aStats, bStats, aLabel, bLabel)
	}
	return compare.WriteTable(cmd.OutOrStdout(), aStats, bStats, aLabel, bLabel)
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
