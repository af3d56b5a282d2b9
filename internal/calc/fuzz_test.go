package calc

import (
	"context"
	"strings"
	"testing"
)

// FuzzEvaluateOracle verifies that the bignum backend and the math/big
// backend agree on every expression the fuzzer can produce: same
// canonical result on success, same error class on failure.
func FuzzEvaluateOracle(f *testing.F) {
	// Seed corpus with known interesting expressions
	f.Add("3 4 +")
	f.Add("3 4 + 2 *")
	f.Add("1 3 / 1 6 / +")
	f.Add("2 -3 ^")
	f.Add("10 4 %")
	f.Add("-7 2 %")
	f.Add("48 18 gcd")
	f.Add("0.1 0.2 +")
	f.Add("-22/7 abs inv")
	f.Add("2 dup * dup *")
	f.Add("1 0 /")
	f.Add("0 inv")
	f.Add("1 +")
	f.Add("1 2")
	f.Add("")

	f.Fuzz(func(t *testing.T, expr string) {
		// Limit input size for quick iterations
		if len(expr) > 128 {
			return
		}
		tokens, err := Tokenize(expr)
		if err != nil {
			// Both backends share the tokenizer, so a malformed
			// expression cannot diverge.
			return
		}
		if len(tokens) > 16 {
			return
		}
		// Cap operand size so a synthesized power tower cannot stall
		// the fuzzer on a single input.
		for _, tok := range tokens {
			if tok.IsNumber() && (len(tok.Num) > 4 || len(tok.Den) > 4) {
				return
			}
		}

		ctx := context.Background()
		refResult, refErr := (&StdlibBackend{}).EvaluateCore(ctx, func(float64) {}, expr)
		gotResult, gotErr := (&BignumBackend{}).EvaluateCore(ctx, func(float64) {}, expr)

		if (refErr == nil) != (gotErr == nil) {
			t.Fatalf("divergent outcome for %q:\n  stdlib: %v %v\n  bignum: %v %v",
				expr, refResult, refErr, gotResult, gotErr)
		}
		if refErr != nil {
			if errorKind(gotErr) != errorKind(refErr) {
				t.Errorf("divergent error class for %q:\n  stdlib: %q (%v)\n  bignum: %q (%v)",
					expr, errorKind(refErr), refErr, errorKind(gotErr), gotErr)
			}
			return
		}
		if gotResult != refResult {
			t.Errorf("divergent result for %q:\n  stdlib: %s\n  bignum: %s",
				expr, refResult, gotResult)
		}
	})
}

// FuzzTokenize verifies the tokenizer never panics and that accepted
// token streams survive a render/re-scan round trip.
func FuzzTokenize(f *testing.F) {
	f.Add("3 4 +")
	f.Add("-22/7 1.25 *")
	f.Add("  dup\tswap\ndrop ")
	f.Add(".5 2. 007")
	f.Add("bogus")
	f.Add("1/0")
	f.Add("--1 ++2 1..2")

	f.Fuzz(func(t *testing.T, expr string) {
		if len(expr) > 256 {
			return
		}
		tokens, err := Tokenize(expr)
		if err != nil {
			return
		}

		for _, tok := range tokens {
			if tok.IsNumber() {
				if tok.Num == "" || tok.Den == "" {
					t.Fatalf("token %q normalized to %q/%q", tok.Text, tok.Num, tok.Den)
				}
				if allZeros(tok.Den) {
					t.Fatalf("token %q accepted with zero denominator", tok.Text)
				}
			}
		}

		// Rendering the accepted tokens and scanning again must yield
		// the same stream.
		parts := make([]string, len(tokens))
		for i, tok := range tokens {
			parts[i] = tok.Text
		}
		again, err := Tokenize(strings.Join(parts, " "))
		if err != nil {
			t.Fatalf("re-tokenizing accepted input failed: %v", err)
		}
		if len(again) != len(tokens) {
			t.Fatalf("round trip changed token count: %d != %d", len(again), len(tokens))
		}
		for i := range tokens {
			if again[i] != tokens[i] {
				t.Fatalf("round trip changed token %d: %+v != %+v", i, again[i], tokens[i])
			}
		}
	})
}
