package compare

import (
	"fmt"
	"io"
	"math"
	"sort"
	"text/tabwriter"

	"archbench/internal/bench"
)

// Stats summarizes one benchmark's samples for the table view.
type Stats struct {
	Name   string
	Min    float64
	Median float64
	Max    float64
}

// LoadStats reads a result file into per-benchmark min/median/max seconds.
func LoadStats(path string) (map[string]Stats, error) {
	f, err := bench.Load(path)
	if err != nil {
		return nil, err
	}
	stats := make(map[string]Stats, len(f.Benchmarks))
	for _, b := range f.Benchmarks {
		stats[b.Name] = Stats{
			Name:   b.Name,
			Min:    b.Min(),
			Median: b.Median(),
			Max:    b.Max(),
		}
	}
	return stats, nil
}

// timeUnit picks a display unit for a value in seconds.
func timeUnit(seconds float64) (name string, scale float64) {
	switch {
	case seconds < 1e-6:
		return "ns", 1e9
	case seconds < 1e-3:
		return "µs", 1e6
	case seconds < 1.0:
		return "ms", 1e3
	default:
		return "s", 1
	}
}

// commonStatNames returns the sorted intersection of two stat maps.
func commonStatNames(a, b map[string]Stats) ([]string, error) {
	var names []string
	for name := range a {
		if _, ok := b[name]; ok {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no common benchmark names between the two files")
	}
	sort.Strings(names)
	return names, nil
}

// WriteCSV emits one row per common benchmark with seconds in scientific
// notation plus the B/A median ratio.
func WriteCSV(w io.Writer, a, b map[string]Stats, aLabel, bLabel string) error {
	names, err := commonStatNames(a, b)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Benchmark Name,"+
		"%s_min (s),%s_median (s),%s_max (s),"+
		"%s_min (s),%s_median (s),%s_max (s),"+
		"B/A_ratio\n",
		aLabel, aLabel, aLabel, bLabel, bLabel, bLabel)
	for _, name := range names {
		as, bs := a[name], b[name]
		ratio := math.Inf(1)
		if as.Median > 0 {
			ratio = bs.Median / as.Median
		}
		fmt.Fprintf(w, "%q,%.9e,%.9e,%.9e,%.9e,%.9e,%.9e,%.6e\n",
			name, as.Min, as.Median, as.Max, bs.Min, bs.Median, bs.Max, ratio)
	}
	return nil
}

// WriteTable prints a median comparison table in a single shared time unit,
// chosen from the median of all medians so most rows land in a readable
// range.
func WriteTable(w io.Writer, a, b map[string]Stats, aLabel, bLabel string) error {
	names, err := commonStatNames(a, b)
	if err != nil {
		return err
	}

	medians := make([]float64, 0, 2*len(names))
	for _, name := range names {
		medians = append(medians, a[name].Median, b[name].Median)
	}
	sort.Float64s(medians)
	unit, scale := timeUnit(medians[len(medians)/2])

	fmt.Fprintf(w, "\nBenchmark Comparison (median %s): %s vs %s\n", unit, aLabel, bLabel)
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "BENCHMARK\t%s\t%s\tRATIO\n", aLabel, bLabel)
	for _, name := range names {
		as, bs := a[name], b[name]
		fmt.Fprintf(tw, "%s\t%.3f\t%.3f\t%s\n",
			name, as.Median*scale, bs.Median*scale, formatRatio(as.Median, bs.Median))
	}
	return tw.Flush()
}

// formatRatio reports how side A compares to side B on medians: "2.10x"
// when A is faster, "1.50x slower" when B is.
func formatRatio(aMedian, bMedian float64) string {
	if aMedian <= 0 {
		return "inf"
	}
	ratio := bMedian / aMedian
	if ratio >= 1.0 {
		return fmt.Sprintf("%.2fx", ratio)
	}
	return fmt.Sprintf("%.2fx slower", aMedian/bMedian)
}
