// Package config wires viper and .env loading for the archbench CLI.
package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load initializes configuration from an optional yaml file and ARCHBENCH_
// environment variables.
func Load(cfgFile string) {
	// explicit .env loading; a missing file is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("archbench")
	}

	viper.SetEnvPrefix("ARCHBENCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("suites", []string{"go", "numeric"})
	viper.SetDefault("output_dir", "results")
	viper.SetDefault("values", 8)
	viper.SetDefault("warmups", 1)
	viper.SetDefault("gomaxprocs", 1)
	viper.SetDefault("rosetta_prefix", runtime.GOOS == "darwin")
	viper.SetDefault("history_db", "results/history.db")
	viper.SetDefault("runner.arm64", "")
	viper.SetDefault("runner.x86_64", "")
	viper.SetDefault("verbose", false)

	// If a config file is found, read it in; otherwise defaults apply.
	_ = viper.ReadInConfig()
}

// Matrix is the typed view of the driver configuration.
type Matrix struct {
	Suites        []string
	OutputDir     string
	Values        int
	Warmups       int
	GoMaxProcs    int
	RosettaPrefix bool
	HistoryDB     string
	// Runners maps a normalized architecture name to its runner binary.
	// An empty path for the host architecture means the current executable.
	Runners map[string]string
}

// MatrixFromViper snapshots the driver settings.
func MatrixFromViper() Matrix {
	return Matrix{
		Suites:        viper.GetStringSlice("suites"),
		OutputDir:     viper.GetString("output_dir"),
		Values:        viper.GetInt("values"),
		Warmups:       viper.GetInt("warmups"),
		GoMaxProcs:    viper.GetInt("gomaxprocs"),
		RosettaPrefix: viper.GetBool("rosetta_prefix"),
		HistoryDB:     viper.GetString("history_db"),
		Runners: map[string]string{
			"arm64":  viper.GetString("runner.arm64"),
			"x86_64": viper.GetString("runner.x86_64"),
		},
	}
}

// Validate rejects configurations the driver cannot run with.
func (m Matrix) Validate() error {
	if len(m.Suites) == 0 {
		return fmt.Errorf("no suites configured")
	}
	if m.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if m.Values <= 0 {
		return fmt.Errorf("values must be positive, got %d", m.Values)
	}
	if m.Warmups < 0 {
		return fmt.Errorf("warmups must not be negative, got %d", m.Warmups)
	}
	if m.GoMaxProcs < 0 {
		return fmt.Errorf("gomaxprocs must not be negative, got %d", m.GoMaxProcs)
	}
	return nil
}
