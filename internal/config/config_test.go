package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	Load("")

	m := MatrixFromViper()
	assert.Equal(t, []string{"go", "numeric"}, m.Suites)
	assert.Equal(t, "results", m.OutputDir)
	assert.Equal(t, 8, m.Values)
	assert.Equal(t, 1, m.Warmups)
	assert.Equal(t, 1, m.GoMaxProcs)
	assert.Equal(t, "results/history.db", m.HistoryDB)
	assert.Contains(t, m.Runners, "arm64")
	assert.Contains(t, m.Runners, "x86_64")
	require.NoError(t, m.Validate())
}

func TestEnvOverrides(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	t.Setenv("ARCHBENCH_OUTPUT_DIR", "/tmp/bench-results")
	t.Setenv("ARCHBENCH_RUNNER_X86_64", "/opt/bin/archbench-x86")
	Load("")

	m := MatrixFromViper()
	assert.Equal(t, "/tmp/bench-results", m.OutputDir)
	assert.Equal(t, "/opt/bin/archbench-x86", m.Runners["x86_64"])
}

func TestMatrixValidate(t *testing.T) {
	valid := Matrix{Suites: []string{"go"}, OutputDir: "results", Values: 8}
	assert.NoError(t, valid.Validate())

	noSuites := valid
	noSuites.Suites = nil
	assert.ErrorContains(t, noSuites.Validate(), "no suites")

	noDir := valid
	noDir.OutputDir = ""
	assert.ErrorContains(t, noDir.Validate(), "output_dir")

	badValues := valid
	badValues.Values = 0
	assert.ErrorContains(t, badValues.Validate(), "values")

	badWarmups := valid
	badWarmups.Warmups = -1
	assert.ErrorContains(t, badWarmups.Validate(), "warmups")
}
