package calc

import (
	"strings"

	"github.com/agbru/bigcalc/internal/bignum"
)

// Result is the canonical outcome of an evaluation: a fraction in lowest
// terms with a positive denominator. Num carries the sign; integers have
// Den == "1". Two Results from any two engines compare equal exactly when
// the values are equal. The zero Result is not a number; it is only
// returned alongside a non-nil error.
type Result struct {
	Num string
	Den string
}

// IsInteger reports whether the value has denominator one.
func (r Result) IsInteger() bool { return r.Den == "1" }

// String renders "n" for integers and "n/d" otherwise.
func (r Result) String() string {
	if r.IsInteger() {
		return r.Num
	}
	return r.Num + "/" + r.Den
}

// Decimal renders the value with prec digits after the decimal point,
// truncated toward zero.
func (r Result) Decimal(prec uint) (string, error) {
	rat, err := new(bignum.Rat).SetString(r.String())
	if err != nil {
		return "", err
	}
	return rat.Decimal(prec), nil
}

// DigitCount returns the number of decimal digits in the canonical
// rendering, ignoring the sign and the fraction bar. It is the size
// measure used by the throughput indicators.
func (r Result) DigitCount() int {
	n := len(strings.TrimPrefix(r.Num, "-"))
	if !r.IsInteger() {
		n += len(r.Den)
	}
	return n
}
