// Package matrix sequences a full two-architecture benchmark run: resolve
// each architecture's runner binary, verify what it reports about itself,
// execute every configured suite with consistent parameters, validate the
// output files, and produce per-suite comparisons.
package matrix

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"

	"archbench/internal/bench"
	"archbench/internal/compare"
	"archbench/internal/config"
	"archbench/internal/history"
)

// Architectures is the fixed comparison pair, in execution order.
var Architectures = []string{"arm64", "x86_64"}

// threadEnvKeys are exported to child runners so both architectures see the
// same parallelism limits.
var threadEnvKeys = []string{
	"OMP_NUM_THREADS",
	"OPENBLAS_NUM_THREADS",
	"MKL_NUM_THREADS",
	"VECLIB_MAXIMUM_THREADS",
}

// Driver runs the matrix. Each check failure is fatal to the whole run; the
// caller gets a single error naming the failed step.
type Driver struct {
	cfg config.Matrix
	out io.Writer

	// execCommand allows mocking subprocess invocation in tests.
	execCommand func(name string, arg ...string) *exec.Cmd
	// hostMachine allows pinning the host architecture in tests.
	hostMachine string
}

// NewDriver builds a driver writing progress to out.
func NewDriver(cfg config.Matrix, out io.Writer) *Driver {
	return &Driver{
		cfg:         cfg,
		out:         out,
		execCommand: exec.Command,
		hostMachine: bench.HostMachine(),
	}
}

// Run executes the full matrix sequentially: each architecture's pass runs
// to completion before the next starts, then comparisons are produced for
// every suite present under both architectures.
func (d *Driver) Run(ctx context.Context) error {
	if err := d.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid matrix configuration: %w", err)
	}
	if err := os.MkdirAll(d.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", d.cfg.OutputDir, err)
	}

	var store *history.Store
	if d.cfg.HistoryDB != "" {
		s, err := history.NewStore(d.cfg.HistoryDB)
		if err != nil {
			return err
		}
		store = s
		defer store.Close()
	}

	for _, arch := range Architectures {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("matrix cancelled before %s pass: %w", arch, err)
		}
		if err := d.runArch(arch, store); err != nil {
			return err
		}
	}

	for _, suite := range d.cfg.Suites {
		if err := d.compareSuite(suite); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) runArch(arch string, store *history.Store) error {
	runner, err := d.resolveRunner(arch)
	if err != nil {
		return err
	}
	slog.Info("starting architecture pass", "arch", arch, "runner", runner)

	meta, err := d.verifyArch(arch, runner)
	if err != nil {
		return err
	}
	if err := d.captureEnv(arch, meta); err != nil {
		return err
	}

	for _, suite := range d.cfg.Suites {
		outPath := d.resultPath(suite, arch)
		fmt.Fprintf(d.out, "[%s] running suite %s -> %s\n", arch, suite, outPath)

		args := []string{
			"run",
			"--suite", suite,
			"--output", outPath,
			"--values", strconv.Itoa(d.cfg.Values),
			"--warmups", strconv.Itoa(d.cfg.Warmups),
		}
		cmd := d.command(arch, runner, args...)
		cmd.Env = d.childEnv()
		cmd.Stdout = d.out
		cmd.Stderr = d.out
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("suite %s failed under %s: %w", suite, arch, err)
		}

		file, err := d.validateOutput(outPath, arch)
		if err != nil {
			return err
		}
		if store != nil {
			if err := store.Record(arch, suite, outPath, len(file.Benchmarks)); err != nil {
				return fmt.Errorf("failed to record run history: %w", err)
			}
		}
	}
	return nil
}

// resolveRunner maps an architecture to its runner binary. The host
// architecture defaults to the current executable; any other architecture
// must be configured explicitly, and the configured path must exist.
func (d *Driver) resolveRunner(arch string) (string, error) {
	path := d.cfg.Runners[arch]
	if path == "" {
		if arch != d.hostMachine {
			return "", fmt.Errorf("no runner configured for %s (set runner.%s)", arch, arch)
		}
		exe, err := os.Executable()
		if err != nil {
			return "", fmt.Errorf("failed to locate current executable: %w", err)
		}
		return exe, nil
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("runner for %s not found at %s: %w", arch, path, err)
	}
	return path, nil
}

// command builds the subprocess invocation, inserting the Rosetta 2 prefix
// for the x86_64 runner on darwin when configured.
func (d *Driver) command(arch, runner string, args ...string) *exec.Cmd {
	if arch == "x86_64" && d.cfg.RosettaPrefix && runtime.GOOS == "darwin" {
		full := append([]string{"-x86_64", runner}, args...)
		return d.execCommand("arch", full...)
	}
	return d.execCommand(runner, args...)
}

// verifyArch asks the runner binary what architecture it actually executes
// as and fails loudly on a mismatch. This is what catches a native binary
// accidentally configured as the translated one.
func (d *Driver) verifyArch(arch, runner string) (map[string]string, error) {
	cmd := d.command(arch, runner, "env", "--json")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to probe runner for %s: %w", arch, err)
	}
	var meta map[string]string
	if err := json.Unmarshal(out, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse runner metadata for %s: %w", arch, err)
	}
	if reported := meta[bench.MachineKey]; reported != arch {
		return nil, fmt.Errorf("runner for %s reports architecture %q", arch, reported)
	}
	return meta, nil
}

// captureEnv writes the per-architecture environment snapshot: the runner's
// reported metadata followed by the thread-related variables the driver
// exports to it.
func (d *Driver) captureEnv(arch string, meta map[string]string) error {
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	path := filepath.Join(d.cfg.OutputDir, "env_"+arch+".txt")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create environment capture: %w", err)
	}
	defer f.Close()

	for _, k := range keys {
		fmt.Fprintf(f, "%s=%s\n", k, meta[k])
	}
	if d.cfg.GoMaxProcs > 0 {
		fmt.Fprintf(f, "driver.GOMAXPROCS=%d\n", d.cfg.GoMaxProcs)
		for _, k := range threadEnvKeys {
			fmt.Fprintf(f, "driver.%s=%d\n", k, d.cfg.GoMaxProcs)
		}
	}
	return nil
}

// childEnv pins the thread controls for child runners so neither side wins
// by a different parallelism default.
func (d *Driver) childEnv() []string {
	env := os.Environ()
	if d.cfg.GoMaxProcs > 0 {
		n := strconv.Itoa(d.cfg.GoMaxProcs)
		env = append(env, "GOMAXPROCS="+n)
		for _, k := range threadEnvKeys {
			env = append(env, k+"="+n)
		}
	}
	return env
}

// validateOutput checks that a suite run left behind a well-formed result
// file recorded under the expected architecture.
func (d *Driver) validateOutput(path, arch string) (*bench.ResultFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("expected output file %s is missing: %w", path, err)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("output file %s is empty", path)
	}
	file, err := bench.Load(path)
	if err != nil {
		return nil, err
	}
	if got := file.Machine(); got != arch {
		return nil, fmt.Errorf("output %s records architecture %q, expected %q", path, got, arch)
	}
	return file, nil
}

// compareSuite prints ratios and renders the bar chart for one suite's
// arm64/x86_64 pair.
func (d *Driver) compareSuite(suite string) error {
	a, err := compare.LoadSeries(d.resultPath(suite, Architectures[0]), Architectures[0])
	if err != nil {
		return fmt.Errorf("failed to load %s results for comparison: %w", suite, err)
	}
	b, err := compare.LoadSeries(d.resultPath(suite, Architectures[1]), Architectures[1])
	if err != nil {
		return fmt.Errorf("failed to load %s results for comparison: %w", suite, err)
	}

	ratios, err := compare.Ratios(a, b)
	if err != nil {
		return err
	}
	fmt.Fprintf(d.out, "\n%s: %s vs %s\n", suite, a.Label, b.Label)
	for _, r := range ratios {
		fmt.Fprintf(d.out, "- %s: %.6fs vs %.6fs  (b/a=%.3fx)\n", r.Name, r.A, r.B, r.Speedup)
	}

	outPath := filepath.Join(d.cfg.OutputDir, suite+"_compare.html")
	names, err := compare.CommonNames(a, b)
	if err != nil {
		return err
	}
	title := fmt.Sprintf("%s: arm64 vs x86_64 (lower is better)", suite)
	if err := compare.RenderBarChart(a, b, names, title, outPath); err != nil {
		return err
	}
	fmt.Fprintf(d.out, "wrote plot to %s\n", outPath)
	return nil
}

func (d *Driver) resultPath(suite, arch string) string {
	return filepath.Join(d.cfg.OutputDir, suite+"_"+arch+".json")
}
