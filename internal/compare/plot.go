package compare

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderBarChart writes a grouped bar chart of mean seconds per benchmark
// to an HTML file, creating parent directories as needed.
func RenderBarChart(a, b *Series, names []string, title, outPath string) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: "Mean time in seconds, lower is better",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Show: opts.Bool(true), Rotate: 25},
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(names).
		AddSeries(a.Label, barData(a, names)).
		AddSeries(b.Label, barData(b, names))

	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create plot file: %w", err)
	}
	defer f.Close()

	if err := bar.Render(f); err != nil {
		return fmt.Errorf("failed to render plot: %w", err)
	}
	return nil
}

func barData(s *Series, names []string) []opts.BarData {
	data := make([]opts.BarData, 0, len(names))
	for _, name := range names {
		data = append(data, opts.BarData{Value: s.Means[name]})
	}
	return data
}
