package bignum

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// String renders x as "num/den" in lowest terms, the denominator always
// present: "1/2", "-7/2", "0/1".
func (x *Rat) String() string {
	return x.Sign().String() + x.num.mag().String() + "/" + x.denVal().mag().String()
}

// SetString sets z from a literal of the form "n", "-n" or "n/d" and
// returns z. The denominator, when present, is unsigned. Malformed text
// returns a *ParseError; a zero denominator returns a *DomainError. In
// both cases z is left unchanged.
func (z *Rat) SetString(s string) (*Rat, error) {
	numStr, denStr, slash := strings.Cut(s, "/")
	var num Int
	if _, err := num.SetString(numStr); err != nil {
		return nil, err
	}
	den := NewInt(1)
	if slash {
		if strings.HasPrefix(denStr, "-") {
			return nil, &ParseError{Input: s, Reason: "signed denominator"}
		}
		if _, err := den.SetString(denStr); err != nil {
			return nil, err
		}
	}
	return z.SetFrac(&num, den)
}

// Decimal renders x as a decimal literal with exactly prec digits after
// the point, truncated toward zero; prec 0 gives the integer part alone.
// The numerator is scaled by 10^prec (the power built as the literal "1"
// followed by prec zeros), integer-divided by the denominator, and the
// point spliced in at len−prec with zero fill on the left. The sign is
// prefixed only when a significant digit survives the truncation, so
// -1/3 at prec 0 is "0", not "-0".
func (x *Rat) Decimal(prec uint) string {
	scale, _ := new(Int).SetString("1" + strings.Repeat("0", int(prec)))
	scaled := new(Int).Mul(&x.num, scale)
	q, _ := new(Int).Quo(scaled, x.denVal()) // denominator is positive

	digits := q.mag().String()
	if n := int(prec) + 1; len(digits) < n {
		digits = strings.Repeat("0", n-len(digits)) + digits
	}
	cut := len(digits) - int(prec)
	out := digits[:cut]
	if prec > 0 {
		out += "." + digits[cut:]
	}
	if x.Sign() == Negative && !q.IsZero() {
		out = "-" + out
	}
	return out
}

// Float64 returns the nearest float64 approximation of x, dividing
// 30-significant-digit renderings of numerator and denominator and
// rescaling by the exponent difference. Approximate by construction.
func (x *Rat) Float64() float64 {
	nd, ne := x.num.floatParts()
	dd, de := x.denVal().floatParts()
	nf, _ := strconv.ParseFloat(nd, 64)
	df, _ := strconv.ParseFloat(dd, 64)
	f := nf / df * math.Pow10(ne-de)
	if x.Sign() == Negative {
		f = -f
	}
	return f
}

// Format implements fmt.Formatter for the verbs s and v, writing the
// canonical "num/den" form.
func (x *Rat) Format(f fmt.State, verb rune) {
	switch verb {
	case 's', 'v':
		writePadded(f, x.String())
	default:
		fmt.Fprintf(f, "%%!%c(bignum.Rat=%s)", verb, x.String())
	}
}

// Scan implements fmt.Scanner for the verbs s and v. It reads one
// whitespace-delimited token and parses it with SetString.
func (z *Rat) Scan(s fmt.ScanState, verb rune) error {
	if verb != 's' && verb != 'v' {
		return fmt.Errorf("bignum: Rat.Scan: unsupported verb %q", verb)
	}
	tok, err := s.Token(true, func(r rune) bool {
		return r == '-' || r == '/' || ('0' <= r && r <= '9')
	})
	if err != nil {
		return err
	}
	_, err = z.SetString(string(tok))
	return err
}
