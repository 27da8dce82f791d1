package suites

import (
	"archbench/internal/bench"
	"archbench/internal/numeric"
)

// addNumericBenchmarks registers the numerical kernels. Inputs are built
// once at registration time so only the kernel is in the timed region.
func addNumericBenchmarks(r *bench.Runner) {
	rng := numeric.NewRNG(0)

	// 1D dot product.
	a1 := numeric.RandomVector(rng, 1<<22)
	b1 := numeric.RandomVector(rng, 1<<22)
	r.BenchFunc("numeric.dot[2^22,f64]", func() {
		sinkFloat = numeric.Dot(a1, b1)
	}, 10)

	// Dense matrix multiply.
	const n = 512
	a2 := numeric.RandomVector32(rng, n*n)
	b2 := numeric.RandomVector32(rng, n*n)
	out2 := make([]float32, n*n)
	r.BenchFunc("numeric.matmul[512x512,f32]", func() {
		numeric.MatMul(out2, a2, b2, n)
		sinkFloat = float64(out2[0])
	}, 5)

	// Real FFT.
	a3 := numeric.RandomVector(rng, 1<<17)
	scratch := make([]complex128, 1<<17)
	r.BenchFunc("numeric.fft.rfft[2^17,f64]", func() {
		spec, err := numeric.RFFT(a3, scratch)
		if err != nil {
			panic(err)
		}
		sinkFloat = real(spec[0])
	}, 3)

	// Elementwise exp.
	a4 := numeric.RandomVector32(rng, 1<<20)
	out4 := make([]float32, 1<<20)
	r.BenchFunc("numeric.exp[2^20,f32]", func() {
		numeric.Exp(out4, a4)
		sinkFloat = float64(out4[0])
	}, 10)

	// Reduction.
	a5 := numeric.RandomVector(rng, 1<<23)
	r.BenchFunc("numeric.sum[2^23,f64]", func() {
		sinkFloat = numeric.Sum(a5)
	}, 10)
}
