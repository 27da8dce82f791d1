package compare

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStats() (map[string]Stats, map[string]Stats) {
	a := map[string]Stats{
		"b1": {Name: "b1", Min: 0.001, Median: 0.002, Max: 0.003},
		"b2": {Name: "b2", Min: 0.004, Median: 0.005, Max: 0.006},
	}
	b := map[string]Stats{
		"b1": {Name: "b1", Min: 0.002, Median: 0.004, Max: 0.005},
		"b2": {Name: "b2", Min: 0.001, Median: 0.0025, Max: 0.004},
	}
	return a, b
}

func TestWriteCSV(t *testing.T) {
	a, b := sampleStats()
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, a, b, "arm64", "x86_64"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3) // header + 2 rows
	assert.Contains(t, lines[0], "arm64_median (s)")
	assert.Contains(t, lines[0], "B/A_ratio")
	assert.Contains(t, lines[1], `"b1"`)
	assert.Contains(t, lines[2], `"b2"`)
	// b1: 0.004/0.002 = 2
	assert.Contains(t, lines[1], "2.000000e+00")
}

func TestWriteTable(t *testing.T) {
	a, b := sampleStats()
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, a, b, "arm64", "x86_64"))

	out := buf.String()
	assert.Contains(t, out, "Benchmark Comparison (median ms): arm64 vs x86_64")
	assert.Contains(t, out, "b1")
	assert.Contains(t, out, "b2")
	assert.Contains(t, out, "2.00x")        // b1: arm64 faster
	assert.Contains(t, out, "2.00x slower") // b2: arm64 slower
}

func TestWriteTableNoOverlap(t *testing.T) {
	a := map[string]Stats{"x": {Name: "x", Median: 1}}
	b := map[string]Stats{"y": {Name: "y", Median: 1}}

	var buf bytes.Buffer
	assert.Error(t, WriteTable(&buf, a, b, "a", "b"))
	assert.Error(t, WriteCSV(&buf, a, b, "a", "b"))
}

func TestFormatRatio(t *testing.T) {
	assert.Equal(t, "2.00x", formatRatio(1, 2))
	assert.Equal(t, "1.00x", formatRatio(1, 1))
	assert.Equal(t, "2.00x slower", formatRatio(2, 1))
	assert.Equal(t, "inf", formatRatio(0, 1))
}

func TestTimeUnit(t *testing.T) {
	unit, scale := timeUnit(5e-9)
	assert.Equal(t, "ns", unit)
	assert.Equal(t, 1e9, scale)

	unit, _ = timeUnit(5e-5)
	assert.Equal(t, "µs", unit)

	unit, _ = timeUnit(5e-2)
	assert.Equal(t, "ms", unit)

	unit, scale = timeUnit(2)
	assert.Equal(t, "s", unit)
	assert.Equal(t, 1.0, scale)
}
