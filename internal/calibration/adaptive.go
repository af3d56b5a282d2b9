// This file generates measurement ladders based on hardware characteristics.

package calibration

import (
	"runtime"

	"github.com/agbru/bigcalc/internal/config"
)

// ─────────────────────────────────────────────────────────────────────────────
// FFT Crossover Ladder Generation
// ─────────────────────────────────────────────────────────────────────────────

// GenerateFFTSizes generates the ascending ladder of operand sizes, in
// limbs, at which schoolbook and transform multiplication are compared.
// The crossover is the smallest size where the transform wins.
//
// The rationale:
// - Single-core: the transform stages cannot fan out, so the crossover sits
//   higher and small sizes are not worth measuring
// - 2-4 cores: bracket the static default from both sides
// - 8+ cores: extend the ladder downward, parallel butterflies pay off on
//   smaller operands
func GenerateFFTSizes() []int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU == 1:
		return []int{32, 48, 64, 96, 128, 192}

	case numCPU <= 4:
		return []int{16, 24, 32, 48, 64, 96, 128}

	case numCPU <= 8:
		return []int{8, 16, 24, 32, 48, 64, 96, 128}

	case numCPU <= 16:
		return []int{8, 12, 16, 24, 32, 48, 64, 96, 128}

	default:
		return []int{4, 8, 12, 16, 24, 32, 48, 64, 96, 128}
	}
}

// GenerateQuickFFTSizes generates a smaller ladder for quick
// auto-calibration at startup.
func GenerateQuickFFTSizes() []int {
	if runtime.NumCPU() == 1 {
		return []int{32, 64, 128}
	}
	return []int{16, 32, 64, 128}
}

// ─────────────────────────────────────────────────────────────────────────────
// Threshold Estimation (without benchmarking)
// The canonical implementation lives in config; re-exported here so callers
// that only know the calibration package find it.
// ─────────────────────────────────────────────────────────────────────────────

// EstimateOptimalFFTThreshold delegates to config.EstimateOptimalFFTThreshold.
func EstimateOptimalFFTThreshold() int { return config.EstimateOptimalFFTThreshold() }
