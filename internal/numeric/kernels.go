// Package numeric implements the numerical kernels timed by the numeric
// suite: BLAS-style dense operations, an FFT, and elementwise/reduction
// loops. The kernels are deliberately straightforward Go; the point is a
// stable arm64-vs-x86_64 signal, not peak FLOPS.
package numeric

import (
	"fmt"
	"math"
	"math/bits"
	"math/rand"
)

// NewRNG returns a deterministic generator so every run times identical data.
func NewRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// RandomVector fills a float64 vector with standard-normal samples.
func RandomVector(rng *rand.Rand, n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = rng.NormFloat64()
	}
	return v
}

// RandomVector32 fills a float32 vector with standard-normal samples.
func RandomVector32(rng *rand.Rand, n int) []float32 {
	v := make([]float32, n)
	for i := range v {
		v[i] = float32(rng.NormFloat64())
	}
	return v
}

// Dot returns the inner product of two equal-length float64 vectors.
func Dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

// MatMul computes out = a*b for row-major n×n float32 matrices using a
// cache-blocked ikj loop order.
func MatMul(out, a, b []float32, n int) {
	const block = 64
	for i := range out {
		out[i] = 0
	}
	for ii := 0; ii < n; ii += block {
		iMax := min(ii+block, n)
		for kk := 0; kk < n; kk += block {
			kMax := min(kk+block, n)
			for i := ii; i < iMax; i++ {
				for k := kk; k < kMax; k++ {
					aik := a[i*n+k]
					row := b[k*n:]
					outRow := out[i*n:]
					for j := 0; j < n; j++ {
						outRow[j] += aik * row[j]
					}
				}
			}
		}
	}
}

// FFT performs an in-place iterative radix-2 Cooley-Tukey transform.
// len(x) must be a power of two.
func FFT(x []complex128) error {
	n := len(x)
	if n == 0 || n&(n-1) != 0 {
		return fmt.Errorf("fft length %d is not a power of two", n)
	}

	// Bit-reversal permutation.
	shift := 64 - uint(bits.Len(uint(n-1)))
	for i := 0; i < n; i++ {
		j := int(bits.Reverse64(uint64(i)) >> shift)
		if j > i {
			x[i], x[j] = x[j], x[i]
		}
	}

	for size := 2; size <= n; size *= 2 {
		half := size / 2
		step := -2 * math.Pi / float64(size)
		for start := 0; start < n; start += size {
			for k := 0; k < half; k++ {
				angle := step * float64(k)
				w := complex(math.Cos(angle), math.Sin(angle))
				a := x[start+k]
				b := x[start+k+half] * w
				x[start+k] = a + b
				x[start+k+half] = a - b
			}
		}
	}
	return nil
}

// RFFT transforms a real float64 input and returns the non-redundant half
// of the spectrum (n/2+1 bins).
func RFFT(in []float64, scratch []complex128) ([]complex128, error) {
	n := len(in)
	if len(scratch) < n {
		scratch = make([]complex128, n)
	}
	buf := scratch[:n]
	for i, v := range in {
		buf[i] = complex(v, 0)
	}
	if err := FFT(buf); err != nil {
		return nil, err
	}
	return buf[:n/2+1], nil
}

// Exp applies e^x elementwise into out.
func Exp(out, in []float32) {
	for i, v := range in {
		out[i] = float32(math.Exp(float64(v)))
	}
}

// Sum reduces a float64 vector.
func Sum(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x
	}
	return s
}
