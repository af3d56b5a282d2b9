// Package bigfft implements fast multiplication of radix-10^4 magnitudes.
//
// The engine treats each operand's limbs as polynomial coefficients,
// evaluates both polynomials with an iterative radix-2 complex transform,
// multiplies pointwise, inverse-transforms, rounds every coefficient to the
// nearest integer and carry-propagates in the limb radix.
//
// Because the transform runs in float64, exactness holds only while the
// worst-case rounding error of a convolution coefficient stays below 1/2.
// With exact precomputed twiddle factors the error is bounded by roughly
//
//	(Base−1)² · (n/2) · log2(n) · 3ε
//
// which at the maximum permitted transform length n = 2^20 evaluates to
// ≈ 0.35 < 0.5 (ε = 2⁻⁵³), while n = 2^21 would exceed 1/2. Operands whose
// padded transform would be longer than maxFFTLen therefore never reach
// this path; Mul splits them with Karatsuba until the pieces fit.
package bigfft

import (
	"math"
	"math/bits"
	"sync"

	"github.com/agbru/bigcalc/internal/limb"
	"github.com/agbru/bigcalc/internal/parallel"
)

const (
	// maxFFTLen is the largest transform length with an exactness
	// guarantee (see the package comment for the bound).
	maxFFTLen = 1 << 20

	// parallelFFTLen is the transform length above which butterfly
	// blocks and the pointwise product are spread across CPUs.
	parallelFFTLen = 1 << 14

	// minParallelBlock keeps per-goroutine work above scheduling cost.
	minParallelBlock = 1 << 10
)

// rootsCache holds one precomputed twiddle table per transform length.
// Tables are immutable after creation and shared by all multiplications.
var rootsCache sync.Map // int -> []complex128

// rootsFor returns the table e^{2πik/n} for k in [0, n/2).
func rootsFor(n int) []complex128 {
	if cached, ok := rootsCache.Load(n); ok {
		return cached.([]complex128)
	}
	roots := make([]complex128, n/2)
	for k := range roots {
		ang := 2 * math.Pi * float64(k) / float64(n)
		roots[k] = complex(math.Cos(ang), math.Sin(ang))
	}
	actual, _ := rootsCache.LoadOrStore(n, roots)
	return actual.([]complex128)
}

// bitReverse permutes buf into bit-reversed index order.
// len(buf) must be a power of two.
func bitReverse(buf []complex128) {
	n := uint64(len(buf))
	shift := 64 - uint64(bits.TrailingZeros64(n))
	for i := uint64(0); i < n; i++ {
		irev := bits.Reverse64(i) >> shift
		if irev > i {
			buf[i], buf[irev] = buf[irev], buf[i]
		}
	}
}

// fft runs the in-place transform over buf; len(buf) must be a power of
// two. With invert set it applies the inverse transform, including the
// division by the transform length.
func fft(buf []complex128, invert bool) {
	n := len(buf)
	if n <= 1 {
		return
	}
	bitReverse(buf)
	roots := rootsFor(n)

	for size := 2; size <= n; size <<= 1 {
		half := size >> 1
		stride := n / size

		butterflies := func(lo, hi int) {
			for start := lo * size; start < hi*size; start += size {
				for k := 0; k < half; k++ {
					w := roots[k*stride]
					if invert {
						w = complex(real(w), -imag(w))
					}
					u := buf[start+k]
					v := buf[start+k+half] * w
					buf[start+k] = u + v
					buf[start+k+half] = u - v
				}
			}
		}

		blocks := n / size
		if n >= parallelFFTLen && blocks > 1 {
			parallel.ForEach(blocks, minParallelBlock/size+1, butterflies)
		} else {
			butterflies(0, blocks)
		}
	}

	if invert {
		inv := 1 / float64(n)
		scale := func(lo, hi int) {
			for i := lo; i < hi; i++ {
				buf[i] = complex(real(buf[i])*inv, imag(buf[i])*inv)
			}
		}
		if n >= parallelFFTLen {
			parallel.ForEach(n, minParallelBlock, scale)
		} else {
			scale(0, n)
		}
	}
}

// fftLen returns the transform length for operand limb counts la and lb:
// the smallest power of two at least twice the larger operand.
func fftLen(la, lb int) int {
	m := la
	if lb > m {
		m = lb
	}
	n := 1
	for n < 2*m {
		n <<= 1
	}
	return n
}

// mulFFT convolves two magnitudes through the transform. The caller must
// ensure fftLen(len(x), len(y)) <= maxFFTLen.
func mulFFT(x, y limb.Nat) limb.Nat {
	n := fftLen(len(x), len(y))

	fa := acquireComplex(n)
	defer releaseComplex(fa)
	fb := acquireComplex(n)
	defer releaseComplex(fb)

	for i, d := range x {
		fa[i] = complex(float64(d), 0)
	}
	for i, d := range y {
		fb[i] = complex(float64(d), 0)
	}

	fft(fa, false)
	fft(fb, false)

	pointwise := func(lo, hi int) {
		for i := lo; i < hi; i++ {
			fa[i] *= fb[i]
		}
	}
	if n >= parallelFFTLen {
		parallel.ForEach(n, minParallelBlock, pointwise)
	} else {
		pointwise(0, n)
	}

	fft(fa, true)

	// Round and carry in the limb radix. Coefficients peak below
	// 2^19·(10^4−1)² ≈ 5.3e13, so int64 holds every rounded value with
	// room for the running carry.
	z := make(limb.Nat, n)
	var carry int64
	for i := 0; i < n; i++ {
		t := int64(math.Round(real(fa[i]))) + carry
		carry = t / limb.Base
		z[i] = limb.Limb(t % limb.Base)
	}
	return z.Trim()
}
