package suites

import "archbench/internal/bench"

// Sinks keep the compiler from eliminating benchmark bodies.
var (
	sinkInt   int
	sinkFloat float64
)

//go:noinline
func tiny(x int) int {
	return x + 1
}

type adder interface {
	add(int) int
}

type intAdder struct{ base int }

func (a intAdder) add(x int) int { return a.base + x }

// addGoBenchmarks registers the pure-language microbenchmarks. Bodies are
// kept allocation-light in the timed region so samples stay stable.
func addGoBenchmarks(r *bench.Runner) {
	// Tight integer loop (loop + integer arithmetic).
	r.BenchFunc("go.int_loop_add[1e5]", func() {
		s := 0
		for i := 0; i < 100_000; i++ {
			s += i
		}
		sinkInt = s
	}, 20)

	// Floating point arithmetic; values stay in registers.
	r.BenchFunc("go.float_mul_add[1e5]", func() {
		x, y := 1.0001, 0.9999
		for i := 0; i < 100_000; i++ {
			x = x*y + 0.000001
		}
		sinkFloat = x
	}, 10)

	// Slice append; growth allocation is part of the measurement.
	r.BenchFunc("go.slice_append[5e4]", func() {
		var s []int
		for i := 0; i < 50_000; i++ {
			s = append(s, i)
		}
		sinkInt = len(s)
	}, 30)

	// Map lookup against a pre-built map.
	m := make(map[int]int, 10_000)
	for i := 0; i < 10_000; i++ {
		m[i] = i + 1
	}
	r.BenchFunc("go.map_get_hit[1e5]", func() {
		s := 0
		for i := 0; i < 100_000; i++ {
			s += m[i%10_000]
		}
		sinkInt = s
	}, 30)

	// Call overhead for a small non-inlined function.
	r.BenchFunc("go.function_calls[2e5]", func() {
		s := 0
		for i := 0; i < 200_000; i++ {
			s += tiny(i)
		}
		sinkInt = s
	}, 10)

	// Dynamic dispatch through an interface value.
	var a adder = intAdder{base: 1}
	r.BenchFunc("go.iface_call[2e5]", func() {
		s := 0
		for i := 0; i < 200_000; i++ {
			s += a.add(i)
		}
		sinkInt = s
	}, 20)
}
