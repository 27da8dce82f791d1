package bench

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultStats(t *testing.T) {
	r := Result{Values: []float64{3, 1, 2, 4}}

	assert.InDelta(t, 2.5, r.Mean(), 1e-9)
	assert.InDelta(t, 2.5, r.Median(), 1e-9)
	assert.Equal(t, 1.0, r.Min())
	assert.Equal(t, 4.0, r.Max())

	odd := Result{Values: []float64{5, 1, 3}}
	assert.Equal(t, 3.0, odd.Median())

	empty := Result{}
	assert.Equal(t, 0.0, empty.Mean())
	assert.Equal(t, 0.0, empty.Median())
}

func TestValidate(t *testing.T) {
	valid := &ResultFile{
		Suite:    "go",
		Metadata: map[string]string{MachineKey: "arm64"},
		Benchmarks: []Result{
			{Name: "go.int_loop_add[1e5]", Values: []float64{0.001}},
		},
	}
	assert.NoError(t, valid.Validate())

	noSuite := &ResultFile{Metadata: map[string]string{MachineKey: "arm64"}}
	assert.ErrorContains(t, noSuite.Validate(), "suite")

	noMachine := &ResultFile{Suite: "go", Metadata: map[string]string{}}
	assert.ErrorContains(t, noMachine.Validate(), "machine")

	noValues := &ResultFile{
		Suite:      "go",
		Metadata:   map[string]string{MachineKey: "arm64"},
		Benchmarks: []Result{{Name: "b"}},
	}
	assert.ErrorContains(t, noValues.Validate(), "no timed values")
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "go_arm64.json")

	file := &ResultFile{
		Suite:    "go",
		Metadata: map[string]string{MachineKey: "arm64", "go_version": "go1.25"},
		Benchmarks: []Result{
			{Name: "go.map_get_hit[1e5]", InnerLoops: 30, Loops: 4, Values: []float64{0.002, 0.003}},
		},
	}
	require.NoError(t, file.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "go", loaded.Suite)
	assert.Equal(t, "arm64", loaded.Machine())
	require.Len(t, loaded.Benchmarks, 1)
	assert.Equal(t, file.Benchmarks[0], loaded.Benchmarks[0])
}

func TestLoadRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	_, err = Load(empty)
	assert.ErrorContains(t, err, "empty")

	garbage := filepath.Join(dir, "garbage.json")
	require.NoError(t, os.WriteFile(garbage, []byte("not json"), 0644))
	_, err = Load(garbage)
	assert.ErrorContains(t, err, "parse")

	noMeta := filepath.Join(dir, "nometa.json")
	require.NoError(t, os.WriteFile(noMeta, []byte(`{"suite":"go","benchmarks":[{"name":"b","values":[1]}]}`), 0644))
	_, err = Load(noMeta)
	assert.ErrorContains(t, err, "machine")
}
