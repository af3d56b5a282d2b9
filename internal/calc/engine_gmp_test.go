//go:build gmp

package calc

import (
	"testing"
)

// TestGMPBackendAgreesWithReference runs the gmp backend against the
// math/big reference on a spread of expressions covering every word and
// error class.
func TestGMPBackendAgreesWithReference(t *testing.T) {
	exprs := []string{
		"42",
		"-17",
		"-6/4",
		"2.50",
		"3 4 + 2 *",
		"1 3 / 1 6 / +",
		"2 -3 ^",
		"-2 3 ^",
		"10 4 %",
		"-7 2 %",
		"7 -2 %",
		"48 18 gcd",
		"0 0 gcd",
		"0.1 0.2 +",
		"1/3 3 *",
		"2 dup *",
		"2 3 swap -",
		"5 7 drop",
		"5 neg",
		"-3/4 abs",
		"4 inv",
		"1 0 /",
		"0 inv",
		"5 0 %",
		"1 +",
		"2 1/2 ^",
	}

	gmp := &GMPBackend{}
	ref := &StdlibBackend{}

	for _, expr := range exprs {
		t.Run(expr, func(t *testing.T) {
			want, wantErr := evalWith(ref, expr)
			got, gotErr := evalWith(gmp, expr)

			if (wantErr == nil) != (gotErr == nil) {
				t.Fatalf("divergent outcome for %q:\n  stdlib: %v %v\n  gmp:    %v %v",
					expr, want, wantErr, got, gotErr)
			}
			if wantErr != nil {
				if errorKind(gotErr) != errorKind(wantErr) {
					t.Errorf("divergent error class for %q: stdlib %q, gmp %q",
						expr, errorKind(wantErr), errorKind(gotErr))
				}
				return
			}
			if got != want {
				t.Errorf("divergent result for %q: stdlib %s, gmp %s", expr, want, got)
			}
		})
	}
}

// TestGMPRegistered verifies the build-tagged backend registered itself
// with the factory.
func TestGMPRegistered(t *testing.T) {
	if !contains(NewDefaultFactory().List(), "gmp") {
		t.Error("gmp backend missing from the factory registry")
	}
}
