// Package limb implements the radix-10^4 digit store underlying bignum.
//
// A magnitude is a Nat: a slice of limbs, least-significant limb first,
// where every limb holds Width decimal digits (0 <= limb < Base). The
// canonical form has no most-significant zero limbs, except for the value
// zero which is exactly Nat{0}. All functions in this package assume and
// preserve canonical form unless stated otherwise.
//
// The radix is a performance knob, not a semantic one. 10^4 is chosen so
// that a full convolution coefficient (at most n·(Base−1)² for transform
// length n) stays exactly representable in a float64 for every transform
// size the multiplication engine is allowed to use.
package limb

import (
	"strconv"
	"strings"
)

// Limb is a single radix-Base digit of a magnitude.
type Limb uint32

const (
	// Base is the radix of the digit store.
	Base = 10_000
	// Width is the number of decimal digits per limb.
	Width = 4
)

// Nat is an unsigned magnitude, least-significant limb first.
type Nat []Limb

// zeroPad provides leading zeros for interior limbs during formatting.
const zeroPad = "0000"

// Trim strips most-significant zero limbs, reducing to the canonical form.
// The canonical zero is Nat{0}.
func (x Nat) Trim() Nat {
	n := len(x)
	for n > 1 && x[n-1] == 0 {
		n--
	}
	if n == 0 {
		return Nat{0}
	}
	return x[:n]
}

// IsZero reports whether x is the canonical zero.
func (x Nat) IsZero() bool {
	return len(x) == 0 || (len(x) == 1 && x[0] == 0)
}

// Clone returns an independent copy of x.
func (x Nat) Clone() Nat {
	c := make(Nat, len(x))
	copy(c, x)
	return c
}

// Cmp compares two canonical magnitudes.
// A shorter sequence is smaller; equal lengths compare from the
// most-significant limb down. Returns -1, 0 or +1.
func (x Nat) Cmp(y Nat) int {
	if len(x) != len(y) {
		if len(x) < len(y) {
			return -1
		}
		return 1
	}
	for i := len(x) - 1; i >= 0; i-- {
		if x[i] != y[i] {
			if x[i] < y[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Add returns x + y as a new magnitude.
func (x Nat) Add(y Nat) Nat {
	if len(x) < len(y) {
		x, y = y, x
	}
	z := make(Nat, len(x)+1)
	var carry uint32
	for i := range x {
		s := uint32(x[i]) + carry
		if i < len(y) {
			s += uint32(y[i])
		}
		z[i] = Limb(s % Base)
		carry = s / Base
	}
	z[len(x)] = Limb(carry)
	return z.Trim()
}

// Sub returns x − y as a new magnitude. The caller must guarantee x >= y;
// the borrow loop has no other termination contract.
func (x Nat) Sub(y Nat) Nat {
	z := make(Nat, len(x))
	var borrow int32
	for i := range x {
		d := int32(x[i]) - borrow
		if i < len(y) {
			d -= int32(y[i])
		}
		if d < 0 {
			d += Base
			borrow = 1
		} else {
			borrow = 0
		}
		z[i] = Limb(d)
	}
	return z.Trim()
}

// Div10 divides x by ten in place, truncating, and returns the trimmed
// result. The carry runs from the most-significant limb down; the final
// sub-ten remainder is discarded.
func (x Nat) Div10() Nat {
	var rem uint32
	for i := len(x) - 1; i >= 0; i-- {
		cur := rem*Base + uint32(x[i])
		x[i] = Limb(cur / 10)
		rem = cur % 10
	}
	return x.Trim()
}

// String renders the canonical decimal form, no sign, no leading zeros
// beyond a lone "0".
func (x Nat) String() string {
	if len(x) == 0 {
		return "0"
	}
	var b strings.Builder
	b.Grow(len(x) * Width)
	b.WriteString(strconv.FormatUint(uint64(x[len(x)-1]), 10))
	for i := len(x) - 2; i >= 0; i-- {
		s := strconv.FormatUint(uint64(x[i]), 10)
		b.WriteString(zeroPad[:Width-len(s)])
		b.WriteString(s)
	}
	return b.String()
}

// DecimalLen returns the number of significant decimal digits of x.
// The canonical zero has length 1.
func (x Nat) DecimalLen() int {
	if len(x) == 0 {
		return 1
	}
	top := uint32(x[len(x)-1])
	d := 1
	for top >= 10 {
		top /= 10
		d++
	}
	return (len(x)-1)*Width + d
}

// FromDecimal converts a run of ASCII decimal digits into a magnitude by
// chunking Width characters at a time from the least-significant end.
// The input must be non-empty and contain only '0'..'9'; validation is the
// caller's responsibility (bignum performs it before delegating here).
func FromDecimal(s string) Nat {
	n := (len(s) + Width - 1) / Width
	z := make(Nat, 0, n)
	for i := len(s); i > 0; i -= Width {
		lo := i - Width
		if lo < 0 {
			lo = 0
		}
		var v uint32
		for _, c := range []byte(s[lo:i]) {
			v = v*10 + uint32(c-'0')
		}
		z = append(z, Limb(v))
	}
	return z.Trim()
}

// FromUint64 converts a native unsigned integer into a magnitude.
func FromUint64(u uint64) Nat {
	if u == 0 {
		return Nat{0}
	}
	var z Nat
	for u > 0 {
		z = append(z, Limb(u%Base))
		u /= Base
	}
	return z
}
