package bigfft

import "testing"

func TestComplexPoolIndex(t *testing.T) {
	t.Parallel()
	tests := []struct {
		size, want int
	}{
		{0, 0},
		{1, 0},
		{64, 0},
		{65, 1},
		{256, 1},
		{257, 2},
		{1024, 2},
		{4096, 3},
		{16384, 4},
		{65536, 5},
		{262144, 6},
		{1048576, 7},
		{1048577, -1},
	}
	for _, tt := range tests {
		if got := complexPoolIndex(tt.size); got != tt.want {
			t.Errorf("complexPoolIndex(%d) = %d, want %d", tt.size, got, tt.want)
		}
	}
}

func TestAcquireReleaseComplex(t *testing.T) {
	t.Parallel()
	buf := acquireComplex(100)
	if len(buf) != 100 {
		t.Fatalf("len = %d, want 100", len(buf))
	}
	if cap(buf) != 256 {
		t.Fatalf("cap = %d, want size class 256", cap(buf))
	}
	for i := range buf {
		if buf[i] != 0 {
			t.Fatalf("buffer not zeroed at %d", i)
		}
	}
	buf[0] = complex(1, 1)
	releaseComplex(buf)

	// A fresh acquire must come back zeroed even if the pool returned the
	// same dirty buffer.
	buf2 := acquireComplex(100)
	defer releaseComplex(buf2)
	if buf2[0] != 0 {
		t.Error("recycled buffer was not cleared")
	}
}

func TestAcquireComplexOversize(t *testing.T) {
	t.Parallel()
	size := complexSizes[len(complexSizes)-1] + 1
	buf := acquireComplex(size)
	if len(buf) != size {
		t.Fatalf("len = %d, want %d", len(buf), size)
	}
	releaseComplex(buf) // no-op for direct allocations
	releaseComplex(nil)
}

func TestPreWarmPools(t *testing.T) {
	// Warming mutates shared pools; keep it off the parallel schedule.
	PreWarmPools(1 << 10)
	EnsurePoolsWarmed(1 << 10)
	EnsurePoolsWarmed(1 << 10) // second call is a no-op

	buf := acquireComplex(2048)
	defer releaseComplex(buf)
	if len(buf) != 2048 {
		t.Fatalf("len = %d, want 2048", len(buf))
	}
}
