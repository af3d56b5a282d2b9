package bignum

import (
	"github.com/agbru/bigcalc/internal/bigfft"
	"github.com/agbru/bigcalc/internal/limb"
)

// An Int is an arbitrary-precision signed integer in sign/magnitude form.
// The zero value represents 0 and is ready to use.
type Int struct {
	sign Sign
	abs  limb.Nat
}

var intOne = NewInt(1)

// NewInt allocates and returns a new Int set to v.
func NewInt(v int64) *Int {
	return new(Int).SetInt64(v)
}

// SetInt64 sets z to v and returns z.
func (z *Int) SetInt64(v int64) *Int {
	u := uint64(v)
	z.sign = Positive
	if v < 0 {
		z.sign = Negative
		u = -u
	}
	z.abs = limb.FromUint64(u)
	return z.norm()
}

// Set sets z to x and returns z.
func (z *Int) Set(x *Int) *Int {
	if z != x {
		z.sign = x.sign
		z.abs = x.mag().Clone()
	}
	return z.norm()
}

// norm restores canonical form: a trimmed magnitude, and a Positive sign
// unless the value is strictly negative. Every mutation funnels through
// it, which is what keeps zero from ever carrying a Negative sign.
func (z *Int) norm() *Int {
	z.abs = z.abs.Trim()
	if z.sign != Negative || z.abs.IsZero() {
		z.sign = Positive
	}
	return z
}

// mag returns x's magnitude, mapping the zero value's nil slice to the
// canonical zero. Callers must not mutate the result.
func (x *Int) mag() limb.Nat {
	if len(x.abs) == 0 {
		return limb.Nat{0}
	}
	return x.abs
}

// negative reports whether x is strictly negative.
func (x *Int) negative() bool {
	return x.sign == Negative && !x.abs.IsZero()
}

// Sign returns the sign of x. Zero reports Positive.
func (x *Int) Sign() Sign {
	return signOf(x.negative())
}

// IsZero reports whether x is 0.
func (x *Int) IsZero() bool {
	return x.abs.IsZero()
}

// Add sets z = x + y and returns z. Matching signs add magnitudes under
// the common sign; differing signs subtract the smaller magnitude from
// the larger, and the result takes the larger operand's sign.
func (z *Int) Add(x, y *Int) *Int {
	xn, yn := x.negative(), y.negative()
	xm, ym := x.mag(), y.mag()
	if xn == yn {
		z.abs = xm.Add(ym)
		z.sign = signOf(xn)
		return z.norm()
	}
	switch xm.Cmp(ym) {
	case 1:
		z.abs = xm.Sub(ym)
		z.sign = signOf(xn)
	case -1:
		z.abs = ym.Sub(xm)
		z.sign = signOf(yn)
	default:
		z.abs = limb.Nat{0}
		z.sign = Positive
	}
	return z.norm()
}

// Sub sets z = x − y and returns z, by negating the right operand and
// delegating to Add.
func (z *Int) Sub(x, y *Int) *Int {
	neg := Int{sign: y.Sign().Neg(), abs: y.mag()}
	return z.Add(x, &neg)
}

// Mul sets z = x × y and returns z. The magnitude product goes through
// the tiered engine of internal/bigfft; the sign is the product of the
// operand signs, with zero forced Positive.
func (z *Int) Mul(x, y *Int) *Int {
	s := x.Sign().Mul(y.Sign())
	z.abs = bigfft.Mul(x.mag(), y.mag())
	z.sign = s
	return z.norm()
}

// Neg sets z = −x and returns z. Negating zero leaves it Positive.
func (z *Int) Neg(x *Int) *Int {
	z.Set(x)
	z.sign = z.sign.Neg()
	return z.norm()
}

// Abs sets z = |x| and returns z.
func (z *Int) Abs(x *Int) *Int {
	z.Set(x)
	z.sign = Positive
	return z
}

// Inc increments z in place by one and returns z.
func (z *Int) Inc() *Int {
	return z.Add(z, intOne)
}

// Dec decrements z in place by one and returns z.
func (z *Int) Dec() *Int {
	return z.Sub(z, intOne)
}

// Cmp compares x and y and returns -1, 0 or +1. Sign orders first
// (Negative < Positive); equal signs fall back to magnitude order, which
// inverts when both operands are negative.
func (x *Int) Cmp(y *Int) int {
	xn, yn := x.negative(), y.negative()
	switch {
	case xn && !yn:
		return -1
	case !xn && yn:
		return 1
	}
	c := x.mag().Cmp(y.mag())
	if xn {
		return -c
	}
	return c
}

// CmpAbs compares the magnitudes |x| and |y| and returns -1, 0 or +1.
func (x *Int) CmpAbs(y *Int) int {
	return x.mag().Cmp(y.mag())
}
