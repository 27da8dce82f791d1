// Package suites names the benchmark workload groups the runner can execute
// and registers their benchmarks on a bench.Runner.
package suites

import (
	"fmt"
	"sort"
	"strings"

	"archbench/internal/bench"
)

type registerFunc func(r *bench.Runner)

var registry = map[string]registerFunc{
	"go":          addGoBenchmarks,
	"numeric":     addNumericBenchmarks,
	"boost_train": addBoostTrainingBenchmarks,
	"boost_infer": addBoostInferenceBenchmarks,
}

// Names returns the known suite names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register adds the named suite's benchmarks to the runner. Unknown names
// are an error listing the valid choices.
func Register(name string, r *bench.Runner) error {
	add, ok := registry[name]
	if !ok {
		return fmt.Errorf("unknown suite %q (valid: %s)", name, strings.Join(Names(), ", "))
	}
	add(r)
	return nil
}
