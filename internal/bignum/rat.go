package bignum

// A Rat is an arbitrary-precision rational number in canonical form: a
// sign, a non-negative numerator and a strictly positive denominator with
// gcd(num, den) = 1. Every operation re-normalizes, so the invariant
// holds after any sequence of calls. The zero value represents 0
// (canonically +0/1) and is ready to use.
type Rat struct {
	sign Sign
	num  Int
	den  Int
}

// NewRat allocates and returns a new Rat set to num/den. A zero den
// returns a *DomainError.
func NewRat(num, den int64) (*Rat, error) {
	return new(Rat).SetFrac(NewInt(num), NewInt(den))
}

// SetFrac sets z = num/den and returns z. The signs of both operands
// fold into the rational's sign. A zero den returns a *DomainError and
// leaves z unchanged.
func (z *Rat) SetFrac(num, den *Int) (*Rat, error) {
	if den.IsZero() {
		return nil, &DomainError{Op: "SetFrac"}
	}
	z.sign = num.Sign().Mul(den.Sign())
	z.num.Abs(num)
	z.den.Abs(den)
	return z.norm(), nil
}

// SetInt64 sets z = v/1 and returns z.
func (z *Rat) SetInt64(v int64) *Rat {
	z.sign = Positive
	z.num.SetInt64(v)
	z.den.SetInt64(1)
	return z.norm()
}

// SetInt sets z = x/1 and returns z.
func (z *Rat) SetInt(x *Int) *Rat {
	z.sign = Positive
	z.num.Set(x)
	z.den.SetInt64(1)
	return z.norm()
}

// Set sets z to x and returns z.
func (z *Rat) Set(x *Rat) *Rat {
	if z != x {
		z.sign = x.Sign()
		z.num.Set(&x.num)
		z.den.Set(x.denVal())
	}
	return z.norm()
}

// norm restores canonical form after a mutation: numerator and
// denominator signs fold into the rational's sign, the fraction is
// reduced by gcd(num, den), and a zero numerator forces Positive over
// denominator 1. The reduction is also what maps 0/d to the canonical
// 0/1, since gcd(0, d) = d.
func (z *Rat) norm() *Rat {
	if z.num.negative() {
		z.sign = z.sign.Neg()
		z.num.Abs(&z.num)
	}
	if z.den.IsZero() {
		z.den.SetInt64(1)
	}
	if z.den.negative() {
		z.sign = z.sign.Neg()
		z.den.Abs(&z.den)
	}
	g := new(Int).Gcd(&z.num, &z.den)
	if g.CmpAbs(intOne) != 0 {
		z.num.abs = quoAbs(z.num.mag(), g.mag())
		z.den.abs = quoAbs(z.den.mag(), g.mag())
	}
	if z.sign != Negative || z.num.IsZero() {
		z.sign = Positive
	}
	return z
}

// denVal returns x's denominator, mapping the zero value's unset
// denominator to one. Callers must not mutate the result.
func (x *Rat) denVal() *Int {
	if x.den.IsZero() {
		return intOne
	}
	return &x.den
}

// signedNum returns a fresh copy of x's numerator with x's sign applied.
func (x *Rat) signedNum() *Int {
	n := new(Int).Set(&x.num)
	if x.Sign() == Negative {
		n.Neg(n)
	}
	return n
}

// Add sets z = x + y and returns z. The operands are brought onto the
// common denominator den(x)·den(y), with each sign folded into its
// cross-multiplied numerator first.
func (z *Rat) Add(x, y *Rat) *Rat {
	xd := new(Int).Set(x.denVal())
	yd := new(Int).Set(y.denVal())
	n := new(Int).Mul(x.signedNum(), yd)
	m := new(Int).Mul(y.signedNum(), xd)
	n.Add(n, m)

	z.sign = Positive
	z.num.Set(n)
	z.den.Mul(xd, yd)
	return z.norm()
}

// Sub sets z = x − y and returns z.
func (z *Rat) Sub(x, y *Rat) *Rat {
	var n Rat
	n.Neg(y)
	return z.Add(x, &n)
}

// Mul sets z = x × y and returns z.
func (z *Rat) Mul(x, y *Rat) *Rat {
	s := x.Sign().Mul(y.Sign())
	n := new(Int).Mul(&x.num, &y.num)
	d := new(Int).Mul(x.denVal(), y.denVal())

	z.sign = s
	z.num.Set(n)
	z.den.Set(d)
	return z.norm()
}

// Quo sets z = x ÷ y by multiplying with y's reciprocal and returns z.
// A zero y returns a *DomainError and leaves z unchanged.
func (z *Rat) Quo(x, y *Rat) (*Rat, error) {
	if y.IsZero() {
		return nil, &DomainError{Op: "Rat.Quo"}
	}
	inv := &Rat{sign: y.Sign()}
	inv.num.Set(y.denVal())
	inv.den.Set(&y.num)
	return z.Mul(x, inv), nil
}

// Inv sets z = 1/x and returns z. A zero x returns a *DomainError and
// leaves z unchanged.
func (z *Rat) Inv(x *Rat) (*Rat, error) {
	if x.IsZero() {
		return nil, &DomainError{Op: "Rat.Inv"}
	}
	s := x.Sign()
	n := new(Int).Set(x.denVal())
	d := new(Int).Set(&x.num)

	z.sign = s
	z.num.Set(n)
	z.den.Set(d)
	return z.norm(), nil
}

// Neg sets z = −x and returns z. Negating zero leaves it Positive.
func (z *Rat) Neg(x *Rat) *Rat {
	z.Set(x)
	z.sign = z.sign.Neg()
	return z.norm()
}

// Abs sets z = |x| and returns z.
func (z *Rat) Abs(x *Rat) *Rat {
	z.Set(x)
	z.sign = Positive
	return z
}

// Cmp compares x and y and returns -1, 0 or +1. With both denominators
// positive, cross-multiplication preserves the order.
func (x *Rat) Cmp(y *Rat) int {
	a := new(Int).Mul(x.signedNum(), y.denVal())
	b := new(Int).Mul(y.signedNum(), x.denVal())
	return a.Cmp(b)
}

// IsZero reports whether x is 0.
func (x *Rat) IsZero() bool {
	return x.num.IsZero()
}

// Sign returns the sign of x. Zero reports Positive.
func (x *Rat) Sign() Sign {
	if x.sign == Negative && !x.num.IsZero() {
		return Negative
	}
	return Positive
}

// Num returns a copy of x's numerator with x's sign applied.
func (x *Rat) Num() *Int {
	return x.signedNum()
}

// Denom returns a copy of x's denominator; it is always positive.
func (x *Rat) Denom() *Int {
	return new(Int).Set(x.denVal())
}
