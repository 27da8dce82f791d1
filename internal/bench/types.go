package bench

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// MachineKey is the metadata key holding the normalized CPU architecture.
// Every result file must carry it; the matrix driver refuses files that
// don't.
const MachineKey = "machine"

// Result holds the timing samples for a single benchmark.
type Result struct {
	Name       string    `json:"name"`
	InnerLoops int       `json:"inner_loops"`
	Loops      int       `json:"loops"`
	Warmups    []float64 `json:"warmups,omitempty"`
	Values     []float64 `json:"values"`
}

// ResultFile is one serialized suite run: per-benchmark sample arrays plus
// run metadata (architecture, runner path, runtime version, thread settings).
type ResultFile struct {
	Suite      string            `json:"suite"`
	Metadata   map[string]string `json:"metadata"`
	Benchmarks []Result          `json:"benchmarks"`
}

// Mean returns the arithmetic mean of the timed values in seconds.
func (r Result) Mean() float64 {
	if len(r.Values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range r.Values {
		sum += v
	}
	return sum / float64(len(r.Values))
}

// Median returns the median of the timed values in seconds.
func (r Result) Median() float64 {
	n := len(r.Values)
	if n == 0 {
		return 0
	}
	sorted := append([]float64(nil), r.Values...)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Min returns the smallest timed value in seconds.
func (r Result) Min() float64 {
	if len(r.Values) == 0 {
		return 0
	}
	min := r.Values[0]
	for _, v := range r.Values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Max returns the largest timed value in seconds.
func (r Result) Max() float64 {
	if len(r.Values) == 0 {
		return 0
	}
	max := r.Values[0]
	for _, v := range r.Values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Machine returns the architecture recorded in the file metadata.
func (f *ResultFile) Machine() string {
	return f.Metadata[MachineKey]
}

// Validate checks the structural invariants of a result file.
func (f *ResultFile) Validate() error {
	if f.Suite == "" {
		return fmt.Errorf("result file missing suite name")
	}
	if f.Metadata[MachineKey] == "" {
		return fmt.Errorf("result file missing %q metadata", MachineKey)
	}
	if len(f.Benchmarks) == 0 {
		return fmt.Errorf("result file contains no benchmarks")
	}
	for _, b := range f.Benchmarks {
		if b.Name == "" {
			return fmt.Errorf("result file contains a benchmark without a name")
		}
		if len(b.Values) == 0 {
			return fmt.Errorf("benchmark %s has no timed values", b.Name)
		}
	}
	return nil
}

// Save writes the result file as indented JSON, creating parent directories.
func (f *ResultFile) Save(path string) error {
	if err := f.Validate(); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads and validates a result file.
func Load(path string) (*ResultFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("result file %s is empty", path)
	}
	var f ResultFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse result file %s: %w", path, err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid result file %s: %w", path, err)
	}
	return &f, nil
}
