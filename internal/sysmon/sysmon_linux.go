//go:build linux

package sysmon

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sys/unix"
)

// cpuState carries the previous /proc/stat reading between samples so
// usage can be computed as a delta.
var cpuState struct {
	mu        sync.Mutex
	total     uint64
	idle      uint64
	populated bool
}

func sample() Stats {
	var s Stats
	s.CPUPercent = cpuPercent()
	s.MemPercent = memPercent()
	return s
}

// cpuPercent derives busy time from the aggregate cpu line of /proc/stat
// relative to the previous call.
func cpuPercent() float64 {
	total, idle, err := readCPUStat()
	if err != nil {
		return 0
	}

	cpuState.mu.Lock()
	defer cpuState.mu.Unlock()

	prevTotal, prevIdle, populated := cpuState.total, cpuState.idle, cpuState.populated
	cpuState.total, cpuState.idle, cpuState.populated = total, idle, true

	if !populated || total <= prevTotal {
		return 0
	}
	dTotal := total - prevTotal
	dIdle := idle - prevIdle
	if dIdle > dTotal {
		return 0
	}
	return 100 * float64(dTotal-dIdle) / float64(dTotal)
}

// readCPUStat parses the first line of /proc/stat. Idle time includes
// iowait, matching the usual "busy" definition.
func readCPUStat() (total, idle uint64, err error) {
	data, err := os.ReadFile("/proc/stat")
	if err != nil {
		return 0, 0, err
	}
	line, _, _ := strings.Cut(string(data), "\n")
	fields := strings.Fields(line)
	if len(fields) < 5 || fields[0] != "cpu" {
		return 0, 0, os.ErrInvalid
	}
	for i, f := range fields[1:] {
		v, perr := strconv.ParseUint(f, 10, 64)
		if perr != nil {
			return 0, 0, perr
		}
		total += v
		if i == 3 || i == 4 { // idle, iowait
			idle += v
		}
	}
	return total, idle, nil
}

// memPercent reads memory occupancy via sysinfo. Buffer pages count as
// free since the kernel reclaims them under pressure.
func memPercent() float64 {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0
	}
	unit := uint64(info.Unit)
	totalBytes := uint64(info.Totalram) * unit
	if totalBytes == 0 {
		return 0
	}
	freeBytes := (uint64(info.Freeram) + uint64(info.Bufferram)) * unit
	if freeBytes > totalBytes {
		return 0
	}
	return 100 * float64(totalBytes-freeBytes) / float64(totalBytes)
}
