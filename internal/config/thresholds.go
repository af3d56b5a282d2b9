package config

import (
	"runtime"

	"github.com/agbru/bigcalc/internal/bigfft"
)

// Threshold resolution chain (highest priority first):
//   1. CLI flag (--fft-threshold)
//   2. Environment variable (BIGCALC_FFT_THRESHOLD)
//   3. Cached calibration profile (~/.config/bigcalc/calibration.json)
//   4. Adaptive hardware estimation (this file)
//   5. Static default in bigfft (DefaultThreshold)

// ApplyAdaptiveThresholds adjusts the configuration thresholds based on
// hardware characteristics (CPU cores, word size) when default values are
// detected. This provides a reasonable crossover without requiring explicit
// calibration.
//
// The function only modifies thresholds that are set to their zero default,
// preserving any user-specified overrides via command-line flags.
func ApplyAdaptiveThresholds(cfg AppConfig) AppConfig {
	if cfg.FFTThreshold == 0 {
		cfg.FFTThreshold = EstimateOptimalFFTThreshold()
	}
	return cfg
}

// EstimateOptimalFFTThreshold provides a heuristic estimate of the optimal
// schoolbook/FFT crossover, in limbs, without running benchmarks.
// This can be used as a fallback or starting point.
//
// The transform stages run on the worker pool, so the crossover drops as
// cores are added; on a single core the transform bookkeeping only pays off
// for larger operands.
func EstimateOptimalFFTThreshold() int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU == 1:
		return bigfft.DefaultThreshold + bigfft.DefaultThreshold/2
	case numCPU <= 4:
		return bigfft.DefaultThreshold
	case numCPU <= 16:
		return bigfft.DefaultThreshold * 3 / 4
	default:
		return bigfft.DefaultThreshold / 2
	}
}
