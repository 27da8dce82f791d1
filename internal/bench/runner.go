package bench

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const (
	// minSampleTime is the calibration target: loops are doubled until a
	// single sample takes at least this long.
	minSampleTime = 100 * time.Millisecond

	maxCalibrationLoops = 1 << 24
)

// Options controls the sampling schedule shared by every benchmark in a run.
type Options struct {
	Warmups int // warmup samples discarded from statistics
	Values  int // timed samples recorded per benchmark
	Loops   int // calls per sample; 0 means calibrate per benchmark
}

// DefaultOptions returns the standard sampling schedule.
func DefaultOptions() Options {
	return Options{Warmups: 1, Values: 8}
}

// FastOptions trades stability for turnaround time.
func FastOptions() Options {
	return Options{Warmups: 1, Values: 3}
}

// RigorousOptions is for runs where noise matters more than wall time.
func RigorousOptions() Options {
	return Options{Warmups: 2, Values: 20}
}

// Benchmark is a single registered workload. InnerLoops declares how many
// times Fn repeats the measured operation internally, so recorded values are
// seconds per operation rather than seconds per call.
type Benchmark struct {
	Name       string
	Fn         func()
	InnerLoops int
}

// Runner samples a set of registered benchmarks and produces a ResultFile.
// Benchmarks run strictly sequentially in registration order.
type Runner struct {
	suite      string
	opts       Options
	metadata   map[string]string
	benchmarks []Benchmark
}

// NewRunner creates a runner for the named suite with the default run
// metadata attached.
func NewRunner(suite string, opts Options) *Runner {
	if opts.Values <= 0 {
		opts.Values = DefaultOptions().Values
	}
	return &Runner{
		suite:    suite,
		opts:     opts,
		metadata: DefaultMetadata(),
	}
}

// SetMetadata records an extra metadata key on the eventual result file.
func (r *Runner) SetMetadata(key, value string) {
	r.metadata[key] = value
}

// BenchFunc registers a benchmark. innerLoops must match the number of times
// fn repeats the measured operation; values below 1 are treated as 1.
func (r *Runner) BenchFunc(name string, fn func(), innerLoops int) {
	if innerLoops < 1 {
		innerLoops = 1
	}
	r.benchmarks = append(r.benchmarks, Benchmark{Name: name, Fn: fn, InnerLoops: innerLoops})
}

// Run executes every registered benchmark and returns the collected samples.
// The context is checked between benchmarks; a cancelled run returns an
// error and no partial file is produced.
func (r *Runner) Run(ctx context.Context) (*ResultFile, error) {
	if len(r.benchmarks) == 0 {
		return nil, fmt.Errorf("suite %s has no registered benchmarks", r.suite)
	}

	file := &ResultFile{
		Suite:      r.suite,
		Metadata:   r.metadata,
		Benchmarks: make([]Result, 0, len(r.benchmarks)),
	}

	for _, b := range r.benchmarks {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run cancelled before %s: %w", b.Name, err)
		}
		res, err := r.sample(b)
		if err != nil {
			return nil, err
		}
		slog.Debug("benchmark sampled",
			"suite", r.suite, "name", b.Name,
			"loops", res.Loops, "values", len(res.Values), "mean_s", res.Mean())
		file.Benchmarks = append(file.Benchmarks, res)
	}

	return file, nil
}

func (r *Runner) sample(b Benchmark) (Result, error) {
	loops := r.opts.Loops
	if loops <= 0 {
		loops = calibrate(b.Fn)
	}

	res := Result{
		Name:       b.Name,
		InnerLoops: b.InnerLoops,
		Loops:      loops,
	}
	perOp := float64(loops) * float64(b.InnerLoops)

	for i := 0; i < r.opts.Warmups; i++ {
		res.Warmups = append(res.Warmups, timeSample(b.Fn, loops)/perOp)
	}
	for i := 0; i < r.opts.Values; i++ {
		res.Values = append(res.Values, timeSample(b.Fn, loops)/perOp)
	}

	if len(res.Values) == 0 {
		return Result{}, fmt.Errorf("benchmark %s produced no values", b.Name)
	}
	return res, nil
}

// calibrate doubles the loop count until a sample crosses minSampleTime, so
// fast benchmarks are not dominated by timer resolution.
func calibrate(fn func()) int {
	loops := 1
	for loops < maxCalibrationLoops {
		elapsed := timeSample(fn, loops)
		if elapsed >= minSampleTime.Seconds() {
			break
		}
		loops *= 2
	}
	return loops
}

func timeSample(fn func(), loops int) float64 {
	start := time.Now()
	for i := 0; i < loops; i++ {
		fn()
	}
	return time.Since(start).Seconds()
}
