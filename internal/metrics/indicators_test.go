package metrics

import (
	"testing"
	"time"

	"github.com/agbru/bigcalc/internal/calc"
)

func TestCompute(t *testing.T) {
	t.Parallel()

	result := calc.Result{Num: "-1024", Den: "1"}
	ind := Compute(result, 5, 2*time.Second)

	if ind.ResultDigits != 4 {
		t.Errorf("ResultDigits = %d, want 4", ind.ResultDigits)
	}
	if !ind.IsInteger {
		t.Error("IsInteger = false for an integer result")
	}
	if ind.Tokens != 5 {
		t.Errorf("Tokens = %d, want 5", ind.Tokens)
	}
	if ind.DigitsPerSecond != 2 {
		t.Errorf("DigitsPerSecond = %f, want 2", ind.DigitsPerSecond)
	}
	if ind.TokensPerSecond != 2.5 {
		t.Errorf("TokensPerSecond = %f, want 2.5", ind.TokensPerSecond)
	}
}

func TestCompute_Fraction(t *testing.T) {
	t.Parallel()

	ind := Compute(calc.Result{Num: "1", Den: "2"}, 3, time.Second)
	if ind.IsInteger {
		t.Error("IsInteger = true for 1/2")
	}
	if ind.ResultDigits != 2 {
		t.Errorf("ResultDigits = %d, want 2", ind.ResultDigits)
	}
}

func TestCompute_ZeroDuration(t *testing.T) {
	t.Parallel()

	ind := Compute(calc.Result{Num: "7", Den: "1"}, 1, 0)
	if ind.DigitsPerSecond != 0 || ind.TokensPerSecond != 0 {
		t.Errorf("rates with zero duration = %f, %f, want 0, 0", ind.DigitsPerSecond, ind.TokensPerSecond)
	}
}

func TestComputeLive(t *testing.T) {
	t.Parallel()

	ind := ComputeLive(10, 0.5, time.Second)
	if ind.Tokens != 10 {
		t.Errorf("Tokens = %d, want 10", ind.Tokens)
	}
	if ind.TokensPerSecond != 5 {
		t.Errorf("TokensPerSecond = %f, want 5", ind.TokensPerSecond)
	}
	if ind.ResultDigits != 0 {
		t.Errorf("ResultDigits = %d, want 0 mid-run", ind.ResultDigits)
	}
}

func TestComputeLive_ClampsProgress(t *testing.T) {
	t.Parallel()

	if ind := ComputeLive(10, 1.5, time.Second); ind.TokensPerSecond != 10 {
		t.Errorf("TokensPerSecond with progress > 1 = %f, want 10", ind.TokensPerSecond)
	}
	if ind := ComputeLive(10, -0.5, time.Second); ind.TokensPerSecond != 0 {
		t.Errorf("TokensPerSecond with negative progress = %f, want 0", ind.TokensPerSecond)
	}
}

func TestFormatRates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v    float64
		want string
	}{
		{12, "12.0 digits/s"},
		{1_500, "1.5K digits/s"},
		{2_500_000, "2.5M digits/s"},
		{3_000_000_000, "3.0G digits/s"},
	}
	for _, tt := range tests {
		if got := FormatDigitsPerSecond(tt.v); got != tt.want {
			t.Errorf("FormatDigitsPerSecond(%f) = %q, want %q", tt.v, got, tt.want)
		}
	}

	if got := FormatTokensPerSecond(1_500); got != "1.5K tok/s" {
		t.Errorf("FormatTokensPerSecond(1500) = %q, want %q", got, "1.5K tok/s")
	}
}
