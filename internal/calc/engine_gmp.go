//go:build gmp

// This file provides a GMP-backed evaluation engine, conditionally
// compiled with the "gmp" build tag. The build tag architecture ensures
// that:
//   - Projects can build without GMP (the default)
//   - GMP support is opt-in, requiring: go build -tags=gmp
//   - The codebase remains portable across systems without libgmp installed
//
// System requirements for GMP:
//   - Linux: sudo apt-get install libgmp-dev (Debian/Ubuntu)
//   - macOS: brew install gmp
//   - Windows: requires MinGW or WSL with libgmp

package calc

import (
	"context"
	"strconv"

	"github.com/ncw/gmp"

	"github.com/agbru/bigcalc/internal/bignum"
	"github.com/agbru/bigcalc/internal/progress"
)

func init() {
	RegisterBackend("gmp", func() coreEngine { return &GMPBackend{} })
}

// GMPBackend evaluates expressions on libgmp integers via cgo. GMP has no
// rational wrapper in the binding used here, so the backend keeps its own
// numerator/denominator pairs and reduces them after every operation.
type GMPBackend struct{}

// Name returns the name of the backend.
func (g *GMPBackend) Name() string {
	return "GMP (libgmp, cgo)"
}

// EvaluateCore tokenizes and evaluates expr over gmp-backed rationals.
func (g *GMPBackend) EvaluateCore(ctx context.Context, report progress.ProgressCallback, expr string) (Result, error) {
	tokens, err := Tokenize(expr)
	if err != nil {
		return Result{}, err
	}
	return evaluate[*gmpRat](ctx, gmpArith{}, report, tokens)
}

// gmpRat is an exact rational over gmp integers: num carries the sign,
// den is always positive, and gcd(num, den) == 1.
type gmpRat struct {
	num *gmp.Int
	den *gmp.Int
}

// newGmpRat reduces num/den to canonical form. den must be non-zero;
// a negative den moves its sign to num.
func newGmpRat(num, den *gmp.Int) *gmpRat {
	if den.Sign() < 0 {
		num = new(gmp.Int).Neg(num)
		den = new(gmp.Int).Neg(den)
	}
	g := gmpGcd(gmpAbs(num), den)
	if g.Cmp(gmpOne()) != 0 {
		num = new(gmp.Int).Quo(num, g)
		den = new(gmp.Int).Quo(den, g)
	}
	return &gmpRat{num: num, den: den}
}

func gmpOne() *gmp.Int { return gmp.NewInt(1) }

func gmpAbs(x *gmp.Int) *gmp.Int {
	if x.Sign() < 0 {
		return new(gmp.Int).Neg(x)
	}
	return new(gmp.Int).Set(x)
}

// gmpRem computes the truncated remainder a - (a/b)*b. b must be non-zero.
func gmpRem(a, b *gmp.Int) *gmp.Int {
	q := new(gmp.Int).Quo(a, b)
	q.Mul(q, b)
	return new(gmp.Int).Sub(a, q)
}

// gmpGcd runs Euclid's algorithm on non-negative operands.
func gmpGcd(a, b *gmp.Int) *gmp.Int {
	x := new(gmp.Int).Set(a)
	y := new(gmp.Int).Set(b)
	for y.Sign() != 0 {
		x, y = y, gmpRem(x, y)
	}
	return x
}

// gmpArith adapts the gmp rationals to the evaluator's arithmetic
// interface, mirroring the error kinds of the bignum core.
type gmpArith struct{}

func (gmpArith) Parse(tok Token) (*gmpRat, error) {
	num, ok := new(gmp.Int).SetString(tok.Num, 10)
	if !ok {
		return nil, &bignum.ParseError{Input: tok.Text, Reason: "malformed number"}
	}
	den, ok := new(gmp.Int).SetString(tok.Den, 10)
	if !ok {
		return nil, &bignum.ParseError{Input: tok.Text, Reason: "malformed number"}
	}
	return newGmpRat(num, den), nil
}

func (gmpArith) Add(x, y *gmpRat) *gmpRat {
	n := new(gmp.Int).Mul(x.num, y.den)
	m := new(gmp.Int).Mul(y.num, x.den)
	n.Add(n, m)
	return newGmpRat(n, new(gmp.Int).Mul(x.den, y.den))
}

func (gmpArith) Sub(x, y *gmpRat) *gmpRat {
	n := new(gmp.Int).Mul(x.num, y.den)
	m := new(gmp.Int).Mul(y.num, x.den)
	n.Sub(n, m)
	return newGmpRat(n, new(gmp.Int).Mul(x.den, y.den))
}

func (gmpArith) Mul(x, y *gmpRat) *gmpRat {
	return newGmpRat(new(gmp.Int).Mul(x.num, y.num), new(gmp.Int).Mul(x.den, y.den))
}

func (gmpArith) Neg(x *gmpRat) *gmpRat {
	return &gmpRat{num: new(gmp.Int).Neg(x.num), den: new(gmp.Int).Set(x.den)}
}

func (gmpArith) Abs(x *gmpRat) *gmpRat {
	return &gmpRat{num: gmpAbs(x.num), den: new(gmp.Int).Set(x.den)}
}

func (gmpArith) Quo(x, y *gmpRat) (*gmpRat, error) {
	if y.num.Sign() == 0 {
		return nil, &bignum.DomainError{Op: "Rat.Quo"}
	}
	return newGmpRat(new(gmp.Int).Mul(x.num, y.den), new(gmp.Int).Mul(x.den, y.num)), nil
}

func (gmpArith) Inv(x *gmpRat) (*gmpRat, error) {
	if x.num.Sign() == 0 {
		return nil, &bignum.DomainError{Op: "Rat.Inv"}
	}
	return newGmpRat(new(gmp.Int).Set(x.den), new(gmp.Int).Set(x.num)), nil
}

func (a gmpArith) Pow(x *gmpRat, k int64) (*gmpRat, error) {
	if k < 0 {
		inv, err := a.Inv(x)
		if err != nil {
			return nil, err
		}
		return a.Pow(inv, -k)
	}
	return &gmpRat{num: gmpPow(x.num, uint64(k)), den: gmpPow(x.den, uint64(k))}, nil
}

func (gmpArith) Mod(x, y *gmpRat) (*gmpRat, error) {
	if y.num.Sign() == 0 {
		return nil, &bignum.DomainError{Op: "Int.Rem"}
	}
	return &gmpRat{num: gmpRem(x.num, y.num), den: gmpOne()}, nil
}

func (gmpArith) Gcd(x, y *gmpRat) *gmpRat {
	return &gmpRat{num: gmpGcd(gmpAbs(x.num), gmpAbs(y.num)), den: gmpOne()}
}

func (gmpArith) IsInt(x *gmpRat) bool {
	return x.den.Cmp(gmpOne()) == 0
}

func (a gmpArith) Int64(x *gmpRat) (int64, bool) {
	if !a.IsInt(x) {
		return 0, false
	}
	v, err := strconv.ParseInt(x.num.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (gmpArith) Canonical(x *gmpRat) Result {
	return Result{Num: x.num.String(), Den: x.den.String()}
}

// gmpPow computes base^k by binary exponentiation. Powers of coprime
// numerator and denominator stay coprime, so no reduction is needed.
func gmpPow(base *gmp.Int, k uint64) *gmp.Int {
	r := gmp.NewInt(1)
	b := new(gmp.Int).Set(base)
	for ; k > 0; k >>= 1 {
		if k&1 == 1 {
			r.Mul(r, b)
		}
		if k > 1 {
			b.Mul(b, b)
		}
	}
	return r
}
