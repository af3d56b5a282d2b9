package metrics

import "runtime"

// MemorySnapshot is one point-in-time reading of the Go heap, taken while
// an evaluation runs.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes held by live objects
	HeapSys      uint64 // heap bytes obtained from the OS
	Sys          uint64 // total bytes obtained from the OS
	NumGC        uint32 // completed GC cycles
	PauseTotalNs uint64 // cumulative stop-the-world pause time
	HeapObjects  uint64 // live object count
}

// MemoryCollector samples runtime memory statistics for the dashboard.
type MemoryCollector struct{}

// NewMemoryCollector returns a collector ready to sample.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads the current memory statistics. ReadMemStats stops the
// world briefly, so callers sample on a coarse tick rather than per event.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		HeapObjects:  m.HeapObjects,
	}
}
