// This file provides memory pooling for transform scratch buffers.

package bigfft

import (
	"math/bits"
	"sync"
)

// ─────────────────────────────────────────────────────────────────────────────
// Complex Scratch Pools
// ─────────────────────────────────────────────────────────────────────────────

// complexPools pools []complex128 transform buffers by size class.
// Size classes are powers of 4 from 64 up to maxFFTLen, matching the
// power-of-two transform lengths with at most 4× slack.
var complexPools = [...]sync.Pool{
	{New: func() any { return make([]complex128, 64) }},
	{New: func() any { return make([]complex128, 256) }},
	{New: func() any { return make([]complex128, 1024) }},
	{New: func() any { return make([]complex128, 4096) }},
	{New: func() any { return make([]complex128, 16384) }},
	{New: func() any { return make([]complex128, 65536) }},
	{New: func() any { return make([]complex128, 262144) }},
	{New: func() any { return make([]complex128, 1048576) }}, // 1M = maxFFTLen, 16MB
}

// complexSizes defines the size classes for complexPools.
var complexSizes = [...]int{64, 256, 1024, 4096, 16384, 65536, 262144, 1048576}

// complexPoolIndex returns the pool index for a given size, or -1 when the
// size exceeds the largest class.
//
// The classes are powers of 4 starting at 4^3 = 64, so the index follows
// directly from the bit length: class i holds size 4^(i+3).
func complexPoolIndex(size int) int {
	if size <= 0 {
		return 0
	}
	if size > complexSizes[len(complexSizes)-1] {
		return -1
	}
	idx := (bits.Len(uint(size-1)) - 5) / 2
	if idx < 0 {
		idx = 0
	}
	return idx
}

// acquireComplex gets a zeroed transform buffer of exactly the given
// length. Release with releaseComplex, preferably via defer:
//
//	buf := acquireComplex(n)
//	defer releaseComplex(buf)
func acquireComplex(size int) []complex128 {
	idx := complexPoolIndex(size)
	if idx < 0 {
		return make([]complex128, size)
	}
	buf := complexPools[idx].Get().([]complex128)
	clear(buf)
	return buf[:size]
}

// releaseComplex returns a buffer to its pool. Buffers whose capacity does
// not match a size class were directly allocated and are left to the GC.
// Safe to call with nil.
func releaseComplex(buf []complex128) {
	if buf == nil {
		return
	}
	c := cap(buf)
	idx := complexPoolIndex(c)
	if idx >= 0 && complexSizes[idx] == c {
		complexPools[idx].Put(buf[:c])
	}
}
