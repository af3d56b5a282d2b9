package metrics

import (
	"fmt"
	"time"

	"github.com/agbru/bigcalc/internal/calc"
)

// Indicators holds derived performance figures for one evaluation.
type Indicators struct {
	// ResultDigits is the decimal digit count of the canonical result.
	ResultDigits int
	// DigitsPerSecond is ResultDigits divided by the evaluation time.
	DigitsPerSecond float64
	// Tokens is the number of tokens in the evaluated expression.
	Tokens int
	// TokensPerSecond is the token consumption rate.
	TokensPerSecond float64
	// IsInteger reports whether the result has denominator one.
	IsInteger bool
}

// Compute derives post-evaluation indicators from a finished run.
//
// Parameters:
//   - result: The canonical evaluation result.
//   - tokens: The token count of the evaluated expression.
//   - duration: How long the evaluation took.
//
// Returns:
//   - *Indicators: The derived figures. Rates are zero when duration is zero.
func Compute(result calc.Result, tokens int, duration time.Duration) *Indicators {
	ind := &Indicators{
		ResultDigits: result.DigitCount(),
		Tokens:       tokens,
		IsInteger:    result.IsInteger(),
	}
	if secs := duration.Seconds(); secs > 0 {
		ind.DigitsPerSecond = float64(ind.ResultDigits) / secs
		ind.TokensPerSecond = float64(tokens) / secs
	}
	return ind
}

// ComputeLive estimates in-flight indicators from aggregated progress.
// The result size is unknown until the run finishes, so only the token
// rate is populated.
//
// Parameters:
//   - tokens: The token count of the expression being evaluated.
//   - avgProgress: The mean progress across engines, in [0, 1].
//   - elapsed: Time since the evaluation started.
//
// Returns:
//   - *Indicators: The live estimate.
func ComputeLive(tokens int, avgProgress float64, elapsed time.Duration) *Indicators {
	if avgProgress < 0 {
		avgProgress = 0
	} else if avgProgress > 1 {
		avgProgress = 1
	}
	ind := &Indicators{Tokens: tokens}
	if secs := elapsed.Seconds(); secs > 0 {
		ind.TokensPerSecond = avgProgress * float64(tokens) / secs
	}
	return ind
}

// FormatDigitsPerSecond renders a digit rate with a metric suffix.
func FormatDigitsPerSecond(v float64) string {
	return formatRate(v, "digits/s")
}

// FormatTokensPerSecond renders a token rate with a metric suffix.
func FormatTokensPerSecond(v float64) string {
	return formatRate(v, "tok/s")
}

func formatRate(v float64, unit string) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.1fG %s", v/1e9, unit)
	case v >= 1e6:
		return fmt.Sprintf("%.1fM %s", v/1e6, unit)
	case v >= 1e3:
		return fmt.Sprintf("%.1fK %s", v/1e3, unit)
	default:
		return fmt.Sprintf("%.1f %s", v, unit)
	}
}
