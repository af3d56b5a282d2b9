package calc

import (
	"context"
	"strconv"

	"github.com/agbru/bigcalc/internal/bignum"
	"github.com/agbru/bigcalc/internal/progress"
)

// BignumBackend evaluates expressions on this repository's numeric core:
// sign/magnitude integers over radix-10^4 limbs with FFT multiplication,
// and gcd-reduced rationals on top of them.
type BignumBackend struct{}

// Name returns the name of the backend.
func (b *BignumBackend) Name() string {
	return "BigNum (radix-10^4, FFT)"
}

// EvaluateCore tokenizes and evaluates expr over bignum rationals.
func (b *BignumBackend) EvaluateCore(ctx context.Context, report progress.ProgressCallback, expr string) (Result, error) {
	tokens, err := Tokenize(expr)
	if err != nil {
		return Result{}, err
	}
	return evaluate[*bignum.Rat](ctx, bigArith{}, report, tokens)
}

// bigArith adapts the bignum core to the evaluator's arithmetic
// interface. Every operation allocates a fresh result, leaving its
// operands untouched.
type bigArith struct{}

func (bigArith) Parse(tok Token) (*bignum.Rat, error) {
	num, err := new(bignum.Int).SetString(tok.Num)
	if err != nil {
		return nil, err
	}
	den, err := new(bignum.Int).SetString(tok.Den)
	if err != nil {
		return nil, err
	}
	return new(bignum.Rat).SetFrac(num, den)
}

func (bigArith) Add(x, y *bignum.Rat) *bignum.Rat { return new(bignum.Rat).Add(x, y) }
func (bigArith) Sub(x, y *bignum.Rat) *bignum.Rat { return new(bignum.Rat).Sub(x, y) }
func (bigArith) Mul(x, y *bignum.Rat) *bignum.Rat { return new(bignum.Rat).Mul(x, y) }
func (bigArith) Neg(x *bignum.Rat) *bignum.Rat    { return new(bignum.Rat).Neg(x) }
func (bigArith) Abs(x *bignum.Rat) *bignum.Rat    { return new(bignum.Rat).Abs(x) }

func (bigArith) Quo(x, y *bignum.Rat) (*bignum.Rat, error) {
	return new(bignum.Rat).Quo(x, y)
}

func (bigArith) Inv(x *bignum.Rat) (*bignum.Rat, error) {
	return new(bignum.Rat).Inv(x)
}

// Pow raises x to the k-th power. The evaluator bounds |k| well below
// the int64 limit, so negating k cannot overflow.
func (a bigArith) Pow(x *bignum.Rat, k int64) (*bignum.Rat, error) {
	if k < 0 {
		inv, err := new(bignum.Rat).Inv(x)
		if err != nil {
			return nil, err
		}
		return a.Pow(inv, -k)
	}
	num := ipow(x.Num(), uint64(k))
	den := ipow(x.Denom(), uint64(k))
	return new(bignum.Rat).SetFrac(num, den)
}

func (bigArith) Mod(x, y *bignum.Rat) (*bignum.Rat, error) {
	r, err := new(bignum.Int).Rem(x.Num(), y.Num())
	if err != nil {
		return nil, err
	}
	return new(bignum.Rat).SetInt(r), nil
}

func (bigArith) Gcd(x, y *bignum.Rat) *bignum.Rat {
	g := new(bignum.Int).Gcd(x.Num(), y.Num())
	return new(bignum.Rat).SetInt(g)
}

func (bigArith) IsInt(x *bignum.Rat) bool {
	return x.Denom().Cmp(bignum.NewInt(1)) == 0
}

func (a bigArith) Int64(x *bignum.Rat) (int64, bool) {
	if !a.IsInt(x) {
		return 0, false
	}
	v, err := strconv.ParseInt(x.Num().String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (bigArith) Canonical(x *bignum.Rat) Result {
	return Result{Num: x.Num().String(), Den: x.Denom().String()}
}

// ipow computes base^k by binary exponentiation.
func ipow(base *bignum.Int, k uint64) *bignum.Int {
	r := bignum.NewInt(1)
	b := new(bignum.Int).Set(base)
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
