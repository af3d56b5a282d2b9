package bigfft

import (
	"sync/atomic"

	"github.com/agbru/bigcalc/internal/limb"
)

// DefaultThreshold is the operand length, in limbs, above which the
// transform path replaces schoolbook multiplication. The crossover moves
// with hardware; calibration may override it at startup.
const DefaultThreshold = 64

// fftThreshold is the active schoolbook/FFT crossover, read atomically so
// a startup calibration pass can adjust it without racing in-flight
// multiplications.
var fftThreshold atomic.Int64

func init() {
	fftThreshold.Store(DefaultThreshold)
}

// Threshold returns the active schoolbook/FFT crossover in limbs.
func Threshold() int {
	return int(fftThreshold.Load())
}

// SetThreshold replaces the crossover and returns the previous value.
// Values below 1 reset to DefaultThreshold.
func SetThreshold(n int) int {
	if n < 1 {
		n = DefaultThreshold
	}
	return int(fftThreshold.Swap(int64(n)))
}

// Mul returns the product of two magnitudes. Every path is exact: small
// operands multiply schoolbook, mid-size operands go through the float64
// transform inside its documented accuracy bound, and operands too large
// for the bound are split by Karatsuba into transform-sized pieces.
func Mul(x, y limb.Nat) limb.Nat {
	if x.IsZero() || y.IsZero() {
		return limb.Nat{0}
	}
	t := Threshold()
	if len(x) < t && len(y) < t {
		return mulSchoolbook(x, y)
	}
	if fftLen(len(x), len(y)) <= maxFFTLen {
		return mulFFT(x, y)
	}
	return mulKaratsuba(x, y)
}

// mulSchoolbook is the O(la·lb) reference path, also used by tests as the
// oracle for the transform path.
func mulSchoolbook(x, y limb.Nat) limb.Nat {
	z := make([]uint64, len(x)+len(y))
	for i, xd := range x {
		var carry uint64
		xi := uint64(xd)
		for j, yd := range y {
			t := z[i+j] + xi*uint64(yd) + carry
			z[i+j] = t % limb.Base
			carry = t / limb.Base
		}
		z[i+len(y)] += carry
	}
	out := make(limb.Nat, len(z))
	for i, d := range z {
		out[i] = limb.Limb(d)
	}
	return limb.Nat(out).Trim()
}

// mulKaratsuba splits oversized operands at half the longer length and
// recombines three sub-products, each of which re-enters Mul and therefore
// lands back on the transform once small enough.
func mulKaratsuba(x, y limb.Nat) limb.Nat {
	m := len(x)
	if len(y) > m {
		m = len(y)
	}
	m /= 2

	x0, x1 := splitAt(x, m)
	y0, y1 := splitAt(y, m)

	z0 := Mul(x0, y0)
	z2 := Mul(x1, y1)

	// z1 = (x0+x1)(y0+y1) − z0 − z2; the minuend is never smaller than
	// the subtrahends, so magnitude subtraction is safe.
	z1 := Mul(x0.Add(x1), y0.Add(y1))
	z1 = z1.Sub(z0).Sub(z2)

	acc := shiftLimbs(z2, 2*m).Add(shiftLimbs(z1, m))
	return acc.Add(z0)
}

// splitAt returns the low m limbs and the remaining high limbs of x as
// canonical magnitudes.
func splitAt(x limb.Nat, m int) (lo, hi limb.Nat) {
	if len(x) <= m {
		return x.Trim(), limb.Nat{0}
	}
	return x[:m].Trim(), x[m:].Trim()
}

// shiftLimbs returns x·Base^n as a new magnitude.
func shiftLimbs(x limb.Nat, n int) limb.Nat {
	if x.IsZero() {
		return limb.Nat{0}
	}
	z := make(limb.Nat, len(x)+n)
	copy(z[n:], x)
	return z
}
