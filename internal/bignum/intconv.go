package bignum

import (
	"fmt"
	"io"
	"strconv"

	"github.com/agbru/bigcalc/internal/limb"
)

// SetString sets z to the value of the decimal literal s and returns z.
// The grammar is an optional leading minus followed by one or more
// decimal digits; anything else (empty input, a lone sign, stray
// characters) returns a *ParseError and leaves z unchanged. Redundant
// leading zeros are accepted and normalized away, including "-0".
func (z *Int) SetString(s string) (*Int, error) {
	if s == "" {
		return nil, &ParseError{Input: s, Reason: "empty string"}
	}
	digits := s
	neg := false
	if s[0] == '-' {
		neg = true
		digits = s[1:]
		if digits == "" {
			return nil, &ParseError{Input: s, Reason: "lone sign"}
		}
	}
	for i := 0; i < len(digits); i++ {
		if c := digits[i]; c < '0' || c > '9' {
			return nil, &ParseError{Input: s, Reason: fmt.Sprintf("invalid character %q", c)}
		}
	}
	z.abs = limb.FromDecimal(digits)
	z.sign = signOf(neg)
	return z.norm(), nil
}

// String renders x in canonical decimal form: an optional leading minus,
// then digits with no leading zeros beyond a lone "0".
func (x *Int) String() string {
	return x.Sign().String() + x.mag().String()
}

// Format implements fmt.Formatter for the verbs d, s and v, honoring
// width and the '-' flag for padding.
func (x *Int) Format(f fmt.State, verb rune) {
	switch verb {
	case 'd', 's', 'v':
		writePadded(f, x.String())
	default:
		fmt.Fprintf(f, "%%!%c(bignum.Int=%s)", verb, x.String())
	}
}

// Scan implements fmt.Scanner for the verbs d, s and v. It reads one
// whitespace-delimited token and parses it with SetString.
func (z *Int) Scan(s fmt.ScanState, verb rune) error {
	if verb != 'd' && verb != 's' && verb != 'v' {
		return fmt.Errorf("bignum: Int.Scan: unsupported verb %q", verb)
	}
	tok, err := s.Token(true, func(r rune) bool {
		return r == '-' || ('0' <= r && r <= '9')
	})
	if err != nil {
		return err
	}
	_, err = z.SetString(string(tok))
	return err
}

// Float64 returns the nearest float64 approximation of x. The conversion
// renders at most 30 significant digits plus a decimal exponent and
// parses that, so callers needing precision beyond the float64 mantissa
// must not rely on it. Magnitudes beyond the float64 range yield ±Inf.
func (x *Int) Float64() float64 {
	digits, exp := x.floatParts()
	f, _ := strconv.ParseFloat(digits+"e"+strconv.Itoa(exp), 64)
	if x.negative() {
		f = -f
	}
	return f
}

// floatParts returns x's magnitude as a string of at most 30 significant
// digits and a decimal exponent, magnitude ≈ digits×10^exp.
func (x *Int) floatParts() (string, int) {
	const maxDigits = 30
	s := x.mag().String()
	exp := 0
	if len(s) > maxDigits {
		exp = len(s) - maxDigits
		s = s[:maxDigits]
	}
	return s, exp
}

// writePadded writes s honoring the state's width and '-' flag.
func writePadded(f fmt.State, s string) {
	w, ok := f.Width()
	if !ok || w <= len(s) {
		io.WriteString(f, s)
		return
	}
	pad := make([]byte, w-len(s))
	for i := range pad {
		pad[i] = ' '
	}
	if f.Flag('-') {
		io.WriteString(f, s)
		f.Write(pad)
	} else {
		f.Write(pad)
		io.WriteString(f, s)
	}
}
