// Package sysmon provides system-wide CPU and memory usage sampling.
package sysmon

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU usage is the delta since the previous call, so the first call
// reports zero. Returns zero values on error or unsupported platforms.
func Sample() Stats {
	return sample()
}
