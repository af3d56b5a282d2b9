package calc

import (
	"context"
	"math/big"

	"github.com/agbru/bigcalc/internal/bignum"
	"github.com/agbru/bigcalc/internal/progress"
)

// StdlibBackend evaluates expressions on math/big. It shares no code with
// the bignum core, which makes it the reference oracle for cross-engine
// checks.
type StdlibBackend struct{}

// Name returns the name of the backend.
func (s *StdlibBackend) Name() string {
	return "StdLib (math/big)"
}

// EvaluateCore tokenizes and evaluates expr over math/big rationals.
func (s *StdlibBackend) EvaluateCore(ctx context.Context, report progress.ProgressCallback, expr string) (Result, error) {
	tokens, err := Tokenize(expr)
	if err != nil {
		return Result{}, err
	}
	return evaluate[*big.Rat](ctx, stdArith{}, report, tokens)
}

// stdArith adapts math/big to the evaluator's arithmetic interface.
// Zero divisors are rejected before the math/big calls that would panic
// on them, using the same error kinds as the bignum core so that engines
// fail identically.
type stdArith struct{}

func (stdArith) Parse(tok Token) (*big.Rat, error) {
	r, ok := new(big.Rat).SetString(tok.Num + "/" + tok.Den)
	if !ok {
		return nil, &bignum.ParseError{Input: tok.Text, Reason: "malformed number"}
	}
	return r, nil
}

func (stdArith) Add(x, y *big.Rat) *big.Rat { return new(big.Rat).Add(x, y) }
func (stdArith) Sub(x, y *big.Rat) *big.Rat { return new(big.Rat).Sub(x, y) }
func (stdArith) Mul(x, y *big.Rat) *big.Rat { return new(big.Rat).Mul(x, y) }
func (stdArith) Neg(x *big.Rat) *big.Rat    { return new(big.Rat).Neg(x) }
func (stdArith) Abs(x *big.Rat) *big.Rat    { return new(big.Rat).Abs(x) }

func (stdArith) Quo(x, y *big.Rat) (*big.Rat, error) {
	if y.Sign() == 0 {
		return nil, &bignum.DomainError{Op: "Rat.Quo"}
	}
	return new(big.Rat).Quo(x, y), nil
}

func (stdArith) Inv(x *big.Rat) (*big.Rat, error) {
	if x.Sign() == 0 {
		return nil, &bignum.DomainError{Op: "Rat.Inv"}
	}
	return new(big.Rat).Inv(x), nil
}

func (a stdArith) Pow(x *big.Rat, k int64) (*big.Rat, error) {
	if k < 0 {
		inv, err := a.Inv(x)
		if err != nil {
			return nil, err
		}
		return a.Pow(inv, -k)
	}
	e := big.NewInt(k)
	num := new(big.Int).Exp(x.Num(), e, nil)
	den := new(big.Int).Exp(x.Denom(), e, nil)
	return new(big.Rat).SetFrac(num, den), nil
}

func (stdArith) Mod(x, y *big.Rat) (*big.Rat, error) {
	if y.Sign() == 0 {
		return nil, &bignum.DomainError{Op: "Int.Rem"}
	}
	r := new(big.Int).Rem(x.Num(), y.Num())
	return new(big.Rat).SetInt(r), nil
}

func (stdArith) Gcd(x, y *big.Rat) *big.Rat {
	a := new(big.Int).Abs(x.Num())
	b := new(big.Int).Abs(y.Num())
	var g *big.Int
	switch {
	case a.Sign() == 0:
		g = b
	case b.Sign() == 0:
		g = a
	default:
		g = new(big.Int).GCD(nil, nil, a, b)
	}
	return new(big.Rat).SetInt(g)
}

func (stdArith) IsInt(x *big.Rat) bool { return x.IsInt() }

func (a stdArith) Int64(x *big.Rat) (int64, bool) {
	if !x.IsInt() || !x.Num().IsInt64() {
		return 0, false
	}
	return x.Num().Int64(), true
}

func (stdArith) Canonical(x *big.Rat) Result {
	return Result{Num: x.Num().String(), Den: x.Denom().String()}
}
