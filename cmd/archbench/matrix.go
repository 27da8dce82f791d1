package main

import (
	"github.com/spf13/cobra"

	"archbench/internal/config"
	"archbench/internal/matrix"
)

var (
	matrixOutputDir string
	matrixSuites    []string
)

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Run every configured suite under both architectures and compare",
	Long: `The driver. For arm64 and then x86_64: resolves the architecture's
runner binary, verifies the architecture it reports, runs every
configured suite with consistent sampling parameters and pinned thread
limits, validates each output file, and captures an environment
snapshot. Afterwards it prints per-suite ratios and renders comparison
charts. Any failed check aborts the whole run.

Runner binaries come from the runner.arm64 / runner.x86_64 settings
(ARCHBENCH_RUNNER_ARM64 / ARCHBENCH_RUNNER_X86_64); the host
architecture defaults to this executable.`,
	RunE: runMatrix,
}

func init() {
	rootCmd.AddCommand(matrixCmd)
	matrixCmd.Flags().StringVar(&matrixOutputDir, "output-dir", "", "Directory for result files and plots (overrides config)")
	matrixCmd.Flags().StringSliceVar(&matrixSuites, "suite", nil, "Suites to run (overrides config)")
}

func runMatrix(cmd *cobra.Command, args []string) error {
	cfg := config.MatrixFromViper()
	if matrixOutputDir != "" {
		cfg.OutputDir = matrixOutputDir
	}
	if len(matrixSuites) > 0 {
		cfg.Suites = matrixSuites
	}

	driver := matrix.NewDriver(cfg, cmd.OutOrStdout())
	return driver.Run(cmd.Context())
}
