// Package compare loads two timing result files and derives per-benchmark
// ratios, a statistics table, and a bar chart.
package compare

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"archbench/internal/bench"
)

// Series is one side of a comparison: a label plus mean seconds per
// benchmark name.
type Series struct {
	Label   string
	Machine string
	Means   map[string]float64
}

// LoadSeries reads a result file into a Series. An empty label defaults to
// the file name without its extension.
func LoadSeries(path, label string) (*Series, error) {
	f, err := bench.Load(path)
	if err != nil {
		return nil, err
	}
	if label == "" {
		label = stem(path)
	}
	means := make(map[string]float64, len(f.Benchmarks))
	for _, b := range f.Benchmarks {
		means[b.Name] = b.Mean()
	}
	return &Series{Label: label, Machine: f.Machine(), Means: means}, nil
}

// CommonNames returns the sorted benchmark names present in both series.
// Two series with no overlap cannot be compared.
func CommonNames(a, b *Series) ([]string, error) {
	var names []string
	for name := range a.Means {
		if _, ok := b.Means[name]; ok {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no common benchmark names between %s and %s", a.Label, b.Label)
	}
	sort.Strings(names)
	return names, nil
}

// Ratio is the per-benchmark outcome: mean seconds on each side and the
// b/a speedup (how many times slower side b is).
type Ratio struct {
	Name    string
	A       float64
	B       float64
	Speedup float64
}

// Ratios computes the b/a speedup for every common benchmark. A zero mean
// on side a yields +Inf rather than an error; the file validation already
// guarantees there was at least one sample.
func Ratios(a, b *Series) ([]Ratio, error) {
	names, err := CommonNames(a, b)
	if err != nil {
		return nil, err
	}
	ratios := make([]Ratio, 0, len(names))
	for _, name := range names {
		av, bv := a.Means[name], b.Means[name]
		speedup := math.Inf(1)
		if av > 0 {
			speedup = bv / av
		}
		ratios = append(ratios, Ratio{Name: name, A: av, B: bv, Speedup: speedup})
	}
	return ratios, nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
