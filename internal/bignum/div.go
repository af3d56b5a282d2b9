package bignum

import (
	"strings"

	"github.com/agbru/bigcalc/internal/bigfft"
	"github.com/agbru/bigcalc/internal/limb"
)

// quoAbs computes ⌊x/y⌋ for canonical magnitudes with y non-zero, by
// schoolbook long division at decimal-digit granularity. y is rendered as
// a decimal string and right-padded with (limbs(x)−limbs(y)+1)×Width
// zeros, which aligns its most significant digit with x's; each position
// then trial-subtracts the shifted divisor at most nine times before
// Div10 realigns it one digit right. The accumulated quotient string is
// reparsed at the end, which also strips the leading zero artifacts.
func quoAbs(x, y limb.Nat) limb.Nat {
	if len(y) > len(x) {
		return limb.Nat{0}
	}
	pads := (len(x) - len(y) + 1) * limb.Width
	shifted := limb.FromDecimal(y.String() + strings.Repeat("0", pads))
	rem := x.Clone()

	var q strings.Builder
	q.Grow(pads + 1)
	for i := 0; i <= pads; i++ {
		digit := byte('0')
		for shifted.Cmp(rem) <= 0 {
			rem = rem.Sub(shifted)
			digit++
		}
		q.WriteByte(digit)
		shifted = shifted.Div10()
	}
	return limb.FromDecimal(q.String())
}

// remAbs returns x mod y for magnitudes with y non-zero. The remainder is
// derived from the quotient as x − ⌊x/y⌋·y rather than read out of the
// division loop.
func remAbs(x, y limb.Nat) limb.Nat {
	return x.Sub(bigfft.Mul(quoAbs(x, y), y))
}

// Quo sets z = x/y, truncating toward zero, and returns z. A zero
// divisor returns a *DomainError before the digit loop and leaves z
// unchanged.
func (z *Int) Quo(x, y *Int) (*Int, error) {
	if y.IsZero() {
		return nil, &DomainError{Op: "Quo"}
	}
	s := x.Sign().Mul(y.Sign())
	z.abs = quoAbs(x.mag(), y.mag())
	z.sign = s
	return z.norm(), nil
}

// Rem sets z = x%y and returns z. The result follows the C truncating
// convention: it has the sign of x (or is zero) and satisfies
// x = (x/y)·y + z. A zero divisor returns a *DomainError.
func (z *Int) Rem(x, y *Int) (*Int, error) {
	var q Int
	_, _, err := q.QuoRem(x, y, z)
	return z, err
}

// QuoRem sets z = x/y and r = x%y and returns the pair. z and r must not
// alias each other. The quotient truncates toward zero and the remainder
// is derived from it as r = x − z·y, so x = z·y + r always holds. A zero
// divisor returns a *DomainError and leaves both receivers unchanged.
func (z *Int) QuoRem(x, y, r *Int) (*Int, *Int, error) {
	if y.IsZero() {
		return nil, nil, &DomainError{Op: "QuoRem"}
	}
	// Copy the operand values first; z and r may alias x or y.
	xv := new(Int).Set(x)
	yv := new(Int).Set(y)

	s := x.Sign().Mul(y.Sign())
	z.abs = quoAbs(xv.mag(), yv.mag())
	z.sign = s
	z.norm()

	r.Mul(z, yv)
	r.Sub(xv, r)
	return z, r, nil
}

// Gcd sets z to the greatest common divisor of a and b and returns z,
// running the iterative Euclidean algorithm on the magnitudes. The result
// is never negative; Gcd(0, 0) is 0.
func (z *Int) Gcd(a, b *Int) *Int {
	x := a.mag().Clone()
	y := b.mag().Clone()
	for !y.IsZero() {
		x, y = y, remAbs(x, y)
	}
	z.abs = x
	z.sign = Positive
	return z.norm()
}
