package calc

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestCrossBackendAgreement_PropertyBased verifies that every backend
// produces the identical canonical result for the same random binary
// expression. The stdlib backend, a thin veneer over math/big, serves
// as the reference implementation.
func TestCrossBackendAgreement_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	words := []string{"+", "-", "*", "/", "%", "gcd"}
	reference := &StdlibBackend{}

	for _, backend := range allBackends() {
		properties.Property(backend.Name()+" agrees with the reference backend", prop.ForAll(
			func(a, b int64, opIndex int) bool {
				word := words[opIndex%len(words)]
				if b == 0 && (word == "/" || word == "%") {
					b = 1
				}
				expr := fmt.Sprintf("%d %d %s", a, b, word)

				want, err := evalWith(reference, expr)
				if err != nil {
					t.Logf("reference failed on %q: %v", expr, err)
					return false
				}
				got, err := evalWith(backend, expr)
				if err != nil {
					t.Logf("%s failed on %q: %v", backend.Name(), expr, err)
					return false
				}
				return got == want
			},
			gen.Int64Range(-1_000_000, 1_000_000),
			gen.Int64Range(-1_000_000, 1_000_000),
			gen.IntRange(0, 5),
		))
	}

	properties.TestingRun(t)
}

// TestDistributivity_PropertyBased verifies a*(b+c) = a*b + a*c over
// random rational operands, exercising reduction to canonical form on
// two different evaluation orders of the same value.
func TestDistributivity_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	for _, backend := range allBackends() {
		properties.Property(backend.Name()+" satisfies a*(b+c) = a*b + a*c", prop.ForAll(
			func(an, bn, cn int64, ad, bd, cd uint8) bool {
				a := fracLit(an, ad)
				b := fracLit(bn, bd)
				c := fracLit(cn, cd)

				factored := fmt.Sprintf("%s %s %s + *", a, b, c)
				expanded := fmt.Sprintf("%s %s * %s %s * +", a, b, a, c)

				lhs, err := evalWith(backend, factored)
				if err != nil {
					return false
				}
				rhs, err := evalWith(backend, expanded)
				if err != nil {
					return false
				}
				return lhs == rhs
			},
			gen.Int64Range(-10_000, 10_000),
			gen.Int64Range(-10_000, 10_000),
			gen.Int64Range(-10_000, 10_000),
			gen.UInt8(),
			gen.UInt8(),
			gen.UInt8(),
		))
	}

	properties.TestingRun(t)
}

// TestAddSubRoundTrip_PropertyBased verifies (a+b)-b = a in canonical
// form for random rationals.
func TestAddSubRoundTrip_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	for _, backend := range allBackends() {
		properties.Property(backend.Name()+" satisfies (a+b)-b = a", prop.ForAll(
			func(an, bn int64, ad, bd uint8) bool {
				a := fracLit(an, ad)
				b := fracLit(bn, bd)

				want, err := evalWith(backend, a)
				if err != nil {
					return false
				}
				got, err := evalWith(backend, fmt.Sprintf("%s %s + %s -", a, b, b))
				if err != nil {
					return false
				}
				return got == want
			},
			gen.Int64Range(-10_000, 10_000),
			gen.Int64Range(-10_000, 10_000),
			gen.UInt8(),
			gen.UInt8(),
		))
	}

	properties.TestingRun(t)
}

// TestGCDOracle_PropertyBased cross-checks the gcd word against an
// independent iterative oracle.
func TestGCDOracle_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	for _, backend := range allBackends() {
		properties.Property(backend.Name()+" gcd matches the iterative oracle", prop.ForAll(
			func(a, b int64) bool {
				got, err := evalWith(backend, fmt.Sprintf("%d %d gcd", a, b))
				if err != nil {
					return false
				}
				want := Result{Num: fmt.Sprintf("%d", gcdInt64(a, b)), Den: "1"}
				return got == want
			},
			gen.Int64Range(-1_000_000, 1_000_000),
			gen.Int64Range(-1_000_000, 1_000_000),
		))
	}

	properties.TestingRun(t)
}

// fracLit renders num/den as an expression literal. A zero denominator
// byte maps to 1 so the literal is always valid.
func fracLit(num int64, den uint8) string {
	d := int64(den)
	if d == 0 {
		d = 1
	}
	return fmt.Sprintf("%d/%d", num, d)
}

// gcdInt64 computes the non-negative greatest common divisor of a and b.
func gcdInt64(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
