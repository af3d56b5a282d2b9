package calibration

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/agbru/bigcalc/internal/bigfft"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/limb"
	"github.com/agbru/bigcalc/internal/ui"
)

// maxProfileAge bounds how long a stored profile is trusted before the
// machine is remeasured.
const maxProfileAge = 30 * 24 * time.Hour

// calibrationResult records the timing comparison at one operand size.
type calibrationResult struct {
	Size       int // operand length in limbs
	Schoolbook time.Duration
	FFT        time.Duration
	Err        error
}

// measureSize times both multiplication paths on worst-case operands of
// the given size, forcing each path through the public threshold. The
// previous threshold is restored before returning.
func measureSize(ctx context.Context, size int) calibrationResult {
	if err := ctx.Err(); err != nil {
		return calibrationResult{Size: size, Err: err}
	}

	// All-nines operands maximize carry traffic in both paths.
	operand := limb.FromDecimal(strings.Repeat("9", size*limb.Width))

	prev := bigfft.SetThreshold(size + 1) // operands of this size stay schoolbook
	school := timeMul(operand)
	bigfft.SetThreshold(1) // operands of this size take the transform
	fft := timeMul(operand)
	bigfft.SetThreshold(prev)

	return calibrationResult{Size: size, Schoolbook: school, FFT: fft}
}

// timeMul measures the per-product cost of squaring the operand, repeating
// until enough time has accumulated for a stable average.
func timeMul(operand limb.Nat) time.Duration {
	const (
		minSamples = 3
		maxSamples = 64
		minElapsed = 2 * time.Millisecond
	)

	// One warm-up product primes the scratch pools.
	_ = bigfft.Mul(operand, operand)

	start := time.Now()
	samples := 0
	for samples < maxSamples && (samples < minSamples || time.Since(start) < minElapsed) {
		_ = bigfft.Mul(operand, operand)
		samples++
	}
	return time.Since(start) / time.Duration(samples)
}

// chooseCrossover returns the smallest size of the contiguous top of the
// ladder where the transform beat schoolbook. A single fluke win below a
// schoolbook-dominated region does not count. Returns 0 when the transform
// never established a winning suffix.
func chooseCrossover(results []calibrationResult) int {
	crossover := 0
	for i := len(results) - 1; i >= 0; i-- {
		r := results[i]
		if r.Err != nil || r.FFT >= r.Schoolbook {
			break
		}
		crossover = r.Size
	}
	return crossover
}

// RunCalibration measures the schoolbook/FFT crossover over the full
// ladder, reports the results, applies the winner to the multiplication
// kernel and persists it as a profile.
//
// Parameters:
//   - ctx: Cancellation for the measurement loop.
//   - out: The writer for the report.
//   - profilePath: The profile destination; empty selects the default path.
//   - colors: Colors for error reporting.
//
// Returns:
//   - int: The process exit code.
func RunCalibration(ctx context.Context, out io.Writer, profilePath string, colors apperrors.ColorProvider) int {
	start := time.Now()
	if profilePath == "" {
		profilePath = GetDefaultProfilePath()
	}

	sizes := GenerateFFTSizes()
	fmt.Fprintf(out, "%sCalibrating FFT multiplication crossover%s (%d operand sizes)\n",
		ui.ColorBold(), ui.ColorReset(), len(sizes))

	results := make([]calibrationResult, 0, len(sizes))
	for _, size := range sizes {
		res := measureSize(ctx, size)
		if res.Err != nil {
			return apperrors.HandleEvaluationError(res.Err, time.Since(start), out, colors)
		}
		results = append(results, res)
		fmt.Fprintf(out, "  %4d limbs measured\r", size)
	}
	fmt.Fprintf(out, "\n")

	best := chooseCrossover(results)
	estimated := best == 0
	if estimated {
		best = EstimateOptimalFFTThreshold()
	}

	printCalibrationResults(out, results, best)
	bigfft.SetThreshold(best)

	if estimated {
		fmt.Fprintf(out, "\n%sNote%s: the transform never won inside the ladder; applying the hardware estimate of %d limbs.\n",
			ui.ColorYellow(), ui.ColorReset(), best)
	}

	profile := NewProfile()
	profile.OptimalFFTThreshold = best
	profile.CalibrationDigits = sizes[len(sizes)-1] * limb.Width
	profile.CalibrationTime = time.Since(start).Round(time.Millisecond).String()
	if err := profile.SaveProfile(profilePath); err != nil {
		fmt.Fprintf(out, "%sWarning%s: calibration profile not saved: %v\n",
			ui.ColorYellow(), ui.ColorReset(), err)
	} else {
		fmt.Fprintf(out, "\nProfile saved to %s\n", profilePath)
	}
	return apperrors.ExitSuccess
}

// AutoCalibrate runs the quick ladder at startup and applies the winner
// without the full report. It returns the updated configuration and whether
// a usable crossover was measured; cancellation or an inconclusive ladder
// leaves the configuration untouched.
func AutoCalibrate(ctx context.Context, cfg config.AppConfig, out io.Writer) (config.AppConfig, bool) {
	start := time.Now()
	sizes := GenerateQuickFFTSizes()

	results := make([]calibrationResult, 0, len(sizes))
	for _, size := range sizes {
		res := measureSize(ctx, size)
		if res.Err != nil {
			return cfg, false
		}
		results = append(results, res)
	}

	best := chooseCrossover(results)
	if best == 0 {
		return cfg, false
	}

	cfg.FFTThreshold = best
	if !cfg.Quiet {
		printCalibrationOutput(cfg, out)
	}

	profile := NewProfile()
	profile.OptimalFFTThreshold = best
	profile.CalibrationDigits = sizes[len(sizes)-1] * limb.Width
	profile.CalibrationTime = time.Since(start).Round(time.Millisecond).String()
	path := cfg.CalibrationProfile
	if path == "" {
		path = GetDefaultProfilePath()
	}
	// Best effort; a read-only home directory just means recalibrating next run.
	_ = profile.SaveProfile(path)

	return cfg, true
}

// LoadCachedCalibration applies a stored profile to the configuration when
// the profile matches this machine, is fresh, and the threshold was not set
// explicitly. The boolean reports whether the profile was applied.
func LoadCachedCalibration(cfg config.AppConfig, path string) (config.AppConfig, bool) {
	if cfg.FFTThreshold != 0 {
		return cfg, false
	}
	if path == "" {
		path = GetDefaultProfilePath()
	}
	p, err := loadProfile(path)
	if err != nil || !p.IsValid() || p.IsStale(maxProfileAge) || p.OptimalFFTThreshold <= 0 {
		return cfg, false
	}
	cfg.FFTThreshold = p.OptimalFFTThreshold
	return cfg, true
}
