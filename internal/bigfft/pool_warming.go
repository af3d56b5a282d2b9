// Pool pre-warming for adaptive buffer pre-allocation based on operand size.

package bigfft

import "sync/atomic"

// PreWarmPools pre-allocates transform buffers sized for products of
// operands up to maxLimbs limbs each. Warming ahead of a large evaluation
// removes the first-use allocation spike from the measured path.
//
// The number of buffers per class scales with the expected operand size:
// two for anything below 16K limbs, four up to 128K, six beyond that
// (two transforms plus scratch per concurrent multiplication).
func PreWarmPools(maxLimbs int) {
	if maxLimbs < 1 {
		return
	}
	n := fftLen(maxLimbs, maxLimbs)
	if n > maxFFTLen {
		n = maxFFTLen
	}

	numBuffers := 2
	switch {
	case maxLimbs >= 128*1024:
		numBuffers = 6
	case maxLimbs >= 16*1024:
		numBuffers = 4
	}

	idx := complexPoolIndex(n)
	if idx < 0 {
		return
	}
	for i := 0; i < numBuffers; i++ {
		complexPools[idx].Put(make([]complex128, complexSizes[idx]))
	}
	// The twiddle table is deterministic per length; building it here
	// keeps it off the first multiplication too.
	rootsFor(n)
}

// poolsWarmed guards one-time warming.
var poolsWarmed atomic.Bool

// EnsurePoolsWarmed warms the pools exactly once, no matter how many
// goroutines race the call.
func EnsurePoolsWarmed(maxLimbs int) {
	if poolsWarmed.CompareAndSwap(false, true) {
		PreWarmPools(maxLimbs)
	}
}
