package compare

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archbench/internal/bench"
)

func writeResultFile(t *testing.T, dir, name, machine string, means map[string]float64) string {
	t.Helper()
	file := &bench.ResultFile{
		Suite:    "go",
		Metadata: map[string]string{bench.MachineKey: machine},
	}
	for bname, mean := range means {
		file.Benchmarks = append(file.Benchmarks, bench.Result{
			Name:   bname,
			Values: []float64{mean},
		})
	}
	path := filepath.Join(dir, name)
	require.NoError(t, file.Save(path))
	return path
}

func TestLoadSeries(t *testing.T) {
	dir := t.TempDir()
	path := writeResultFile(t, dir, "go_arm64.json", "arm64", map[string]float64{"b1": 0.5})

	s, err := LoadSeries(path, "")
	require.NoError(t, err)
	assert.Equal(t, "go_arm64", s.Label)
	assert.Equal(t, "arm64", s.Machine)
	assert.Equal(t, 0.5, s.Means["b1"])

	labeled, err := LoadSeries(path, "native")
	require.NoError(t, err)
	assert.Equal(t, "native", labeled.Label)
}

func TestRatiosCoverEveryCommonName(t *testing.T) {
	dir := t.TempDir()
	aPath := writeResultFile(t, dir, "a.json", "arm64",
		map[string]float64{"b1": 1.0, "b2": 2.0, "only_a": 9.0})
	bPath := writeResultFile(t, dir, "b.json", "x86_64",
		map[string]float64{"b1": 3.0, "b2": 1.0, "only_b": 9.0})

	a, err := LoadSeries(aPath, "")
	require.NoError(t, err)
	b, err := LoadSeries(bPath, "")
	require.NoError(t, err)

	names, err := CommonNames(a, b)
	require.NoError(t, err)
	assert.Equal(t, []string{"b1", "b2"}, names)

	ratios, err := Ratios(a, b)
	require.NoError(t, err)
	require.Len(t, ratios, len(names))
	assert.Equal(t, "b1", ratios[0].Name)
	assert.InDelta(t, 3.0, ratios[0].Speedup, 1e-9)
	assert.Equal(t, "b2", ratios[1].Name)
	assert.InDelta(t, 0.5, ratios[1].Speedup, 1e-9)
}

func TestRatiosZeroMean(t *testing.T) {
	a := &Series{Label: "a", Means: map[string]float64{"b": 0}}
	b := &Series{Label: "b", Means: map[string]float64{"b": 1}}

	ratios, err := Ratios(a, b)
	require.NoError(t, err)
	require.Len(t, ratios, 1)
	assert.True(t, math.IsInf(ratios[0].Speedup, 1))
}

func TestNoCommonNames(t *testing.T) {
	a := &Series{Label: "a", Means: map[string]float64{"x": 1}}
	b := &Series{Label: "b", Means: map[string]float64{"y": 1}}

	_, err := CommonNames(a, b)
	assert.ErrorContains(t, err, "no common benchmark names")

	_, err = Ratios(a, b)
	assert.Error(t, err)
}
