package main

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"archbench/internal/compare"
)

var (
	compareOut   string
	compareTitle string

	fasterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	slowerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

var compareCmd = &cobra.Command{
	Use:   "compare <a.json> <b.json>",
	Short: "Compare two result files and render a bar chart",
	Long: `Loads two timing result files, prints the b/a mean ratio for every
benchmark name present in both, and renders a grouped bar chart of mean
seconds to an HTML file.`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().StringVar(&compareOut, "out", "results/compare.html", "Output HTML path for the chart")
	compareCmd.Flags().StringVar(&compareTitle, "title", "arm64 vs x86_64 (lower is better)", "Chart title")
}

func runCompare(cmd *cobra.Command, args []string) error {
	a, err := compare.LoadSeries(args[0], "")
	if err != nil {
		return err
	}
	b, err := compare.LoadSeries(args[1], "")
	if err != nil {
		return err
	}

	ratios, err := compare.Ratios(a, b)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s vs %s\n", a.Label, b.Label)
	for _, r := range ratios {
		fmt.Fprintf(cmd.OutOrStdout(), "- %s: %.6fs vs %.6fs  (b/a=%s)\n",
			r.Name, r.A, r.B, styleSpeedup(r.Speedup))
	}

	names, err := compare.CommonNames(a, b)
	if err != nil {
		return err
	}
	if err := compare.RenderBarChart(a, b, names, compareTitle, compareOut); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nWrote plot to: %s\n", compareOut)
	return nil
}

// styleSpeedup colors the b/a ratio: green when the first file is faster,
// red when it is slower.
func styleSpeedup(speedup float64) string {
	if math.IsInf(speedup, 1) {
		return "inf"
	}
	s := fmt.Sprintf("%.3fx", speedup)
	if speedup >= 1.0 {
		return fasterStyle.Render(s)
	}
	return slowerStyle.Render(s)
}
