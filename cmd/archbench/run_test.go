package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archbench/internal/bench"
)

// runGoSuite executes a minimal real run of the go suite into path.
func runGoSuite(t *testing.T, path string) {
	t.Helper()
	_, err := execute(t,
		"run", "--suite", "go", "--output", path,
		"--values", "1", "--warmups", "0", "--loops", "1")
	require.NoError(t, err)
}

func TestRunWritesValidResultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "go.json")
	runGoSuite(t, path)

	file, err := bench.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "go", file.Suite)
	assert.Equal(t, bench.HostMachine(), file.Machine())
	assert.NotEmpty(t, file.Benchmarks)
}

func TestRunUnknownSuite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	_, err := execute(t, "run", "--suite", "bogus", "--output", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown suite")
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunFastAndRigorousConflict(t *testing.T) {
	_, err := execute(t, "run", "--suite", "go",
		"--output", filepath.Join(t.TempDir(), "o.json"), "--fast", "--rigorous")
	assert.ErrorContains(t, err, "mutually exclusive")
}

func TestCompareEndToEnd(t *testing.T) {
	dir := t.TempDir()
	aPath := filepath.Join(dir, "a.json")
	bPath := filepath.Join(dir, "b.json")
	runGoSuite(t, aPath)
	runGoSuite(t, bPath)

	plot := filepath.Join(dir, "compare.html")
	out, err := execute(t, "compare", aPath, bPath, "--out", plot, "--title", "go: a vs b")
	require.NoError(t, err)

	// Every benchmark of the suite appears with a ratio.
	fileA, err := bench.Load(aPath)
	require.NoError(t, err)
	for _, b := range fileA.Benchmarks {
		assert.Contains(t, out, b.Name)
	}
	assert.Contains(t, out, "b/a=")

	info, err := os.Stat(plot)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestTableEndToEnd(t *testing.T) {
	dir := t.TempDir()
	aPath := filepath.Join(dir, "arm.json")
	bPath := filepath.Join(dir, "x86.json")
	runGoSuite(t, aPath)
	runGoSuite(t, bPath)

	out, err := execute(t, "table", aPath, bPath, "--a-label", "arm64", "--b-label", "x86_64")
	require.NoError(t, err)
	assert.Contains(t, out, "arm64 vs x86_64")
	assert.Contains(t, out, "go.int_loop_add[1e5]")

	csvOut, err := execute(t, "table", aPath, bPath, "--csv")
	require.NoError(t, err)
	assert.Contains(t, csvOut, "B/A_ratio")
	assert.Contains(t, csvOut, `"go.int_loop_add[1e5]"`)
}
