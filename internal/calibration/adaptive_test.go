package calibration

import (
	"runtime"
	"sort"
	"testing"
)

func TestGenerateFFTSizes(t *testing.T) {
	t.Parallel()
	sizes := GenerateFFTSizes()

	// Should have enough points to bracket a crossover
	if len(sizes) < 4 {
		t.Errorf("Expected at least 4 ladder sizes, got %d", len(sizes))
	}

	// Sizes must be positive and strictly ascending
	if !sort.IntsAreSorted(sizes) {
		t.Errorf("Ladder is not ascending: %v", sizes)
	}
	for i, s := range sizes {
		if s <= 0 {
			t.Errorf("Size at index %d is not positive: %d", i, s)
		}
		if i > 0 && sizes[i-1] == s {
			t.Errorf("Duplicate ladder size %d", s)
		}
	}

	// The static default must sit inside the ladder so the measurement can
	// confirm or move it in either direction.
	if sizes[0] > 64 || sizes[len(sizes)-1] < 64 {
		t.Errorf("Ladder %v does not bracket the static default", sizes)
	}

	numCPU := runtime.NumCPU()
	t.Logf("Generated %d ladder sizes for %d CPUs: %v", len(sizes), numCPU, sizes)
}

func TestGenerateQuickFFTSizes(t *testing.T) {
	t.Parallel()
	quick := GenerateQuickFFTSizes()

	// Should be shorter than the full ladder
	full := GenerateFFTSizes()
	if len(quick) > len(full) {
		t.Error("Quick ladder should not be longer than the full ladder")
	}

	if len(quick) < 2 {
		t.Error("Expected multiple quick ladder sizes")
	}

	if !sort.IntsAreSorted(quick) {
		t.Errorf("Quick ladder is not ascending: %v", quick)
	}

	t.Logf("Generated %d quick ladder sizes: %v", len(quick), quick)
}

func TestEstimateOptimalFFTThreshold(t *testing.T) {
	t.Parallel()
	threshold := EstimateOptimalFFTThreshold()

	// Should be positive
	if threshold <= 0 {
		t.Errorf("Estimated FFT threshold should be positive: %d", threshold)
	}

	// Should be in reasonable range
	if threshold > 4096 {
		t.Errorf("Estimated FFT threshold seems too high: %d", threshold)
	}

	t.Logf("Estimated FFT threshold: %d limbs", threshold)
}

// Benchmark ladder generation
func BenchmarkGenerateFFTSizes(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = GenerateFFTSizes()
	}
}
