package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"archbench/internal/bench"
	"archbench/internal/suites"
)

var (
	runSuite    string
	runOutput   string
	runValues   int
	runWarmups  int
	runLoops    int
	runFast     bool
	runRigorous bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a benchmark suite and write a timing results file",
	Long: `Runs every benchmark of the named suite in-process, sampling each one
warmups + values times, and serializes the samples together with run
metadata (architecture, runner path, Go version, thread settings) to a
JSON file. Valid suites: ` + strings.Join(suites.Names(), ", ") + `.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&runSuite, "suite", "go", "Benchmark suite to run")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "Output JSON path (required)")
	runCmd.Flags().IntVar(&runValues, "values", 0, "Timed samples per benchmark (overrides preset)")
	runCmd.Flags().IntVar(&runWarmups, "warmups", -1, "Warmup samples per benchmark (overrides preset)")
	runCmd.Flags().IntVar(&runLoops, "loops", 0, "Calls per sample (0 = calibrate per benchmark)")
	runCmd.Flags().BoolVar(&runFast, "fast", false, "Fewer samples, faster turnaround")
	runCmd.Flags().BoolVar(&runRigorous, "rigorous", false, "More samples, more stable statistics")
	runCmd.MarkFlagRequired("output")
}

func runRun(cmd *cobra.Command, args []string) error {
	if runFast && runRigorous {
		return fmt.Errorf("--fast and --rigorous are mutually exclusive")
	}

	opts := bench.DefaultOptions()
	if runFast {
		opts = bench.FastOptions()
	}
	if runRigorous {
		opts = bench.RigorousOptions()
	}
	if runValues > 0 {
		opts.Values = runValues
	}
	if runWarmups >= 0 {
		opts.Warmups = runWarmups
	}
	opts.Loops = runLoops

	runner := bench.NewRunner(runSuite, opts)
	if err := suites.Register(runSuite, runner); err != nil {
		return err
	}

	file, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}
	if err := file.Save(runOutput); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d benchmarks (%s, %s) to %s\n",
		len(file.Benchmarks), runSuite, file.Machine(), runOutput)
	return nil
}
