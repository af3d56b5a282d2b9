package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// maxETA caps the estimate so a stalled engine never reports an absurd
// remaining time.
const maxETA = 24 * time.Hour

// ProgressState tracks the progress of each evaluation engine running in
// parallel. All methods are safe for concurrent use.
type ProgressState struct {
	mu         sync.Mutex
	numEngines int
	progresses []float64
}

// NewProgressState creates a ProgressState for the given number of engines.
//
// Parameters:
//   - numEngines: The number of engines whose progress will be tracked.
//
// Returns:
//   - *ProgressState: A state with all progress values initialized to zero.
func NewProgressState(numEngines int) *ProgressState {
	return &ProgressState{
		numEngines: numEngines,
		progresses: make([]float64, numEngines),
	}
}

// Update records the progress of a single engine. Values are clamped to
// [0, 1] and out-of-range indexes are ignored.
func (ps *ProgressState) Update(index int, value float64) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if index < 0 || index >= len(ps.progresses) {
		return
	}
	if value < 0 {
		value = 0
	} else if value > 1 {
		value = 1
	}
	ps.progresses[index] = value
}

// CalculateAverage returns the mean progress across all engines, or 0 when
// no engines are tracked.
func (ps *ProgressState) CalculateAverage() float64 {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.numEngines == 0 {
		return 0
	}
	var total float64
	for _, p := range ps.progresses {
		total += p
	}
	return total / float64(ps.numEngines)
}

// ProgressWithETA extends ProgressState with rate tracking so that elapsed
// time can be extrapolated into an estimated time to completion.
type ProgressWithETA struct {
	*ProgressState
	progressRate float64 // average progress per second
	startTime    time.Time
}

// NewProgressWithETA creates a progress tracker with ETA estimation for the
// given number of engines.
//
// Parameters:
//   - numEngines: The number of engines whose progress will be tracked.
//
// Returns:
//   - *ProgressWithETA: A tracker whose clock starts immediately.
func NewProgressWithETA(numEngines int) *ProgressWithETA {
	return &ProgressWithETA{
		ProgressState: NewProgressState(numEngines),
		startTime:     time.Now(),
	}
}

// UpdateWithETA records one engine's progress and returns the new average
// together with the current ETA estimate.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.Update(index, value)
	avg := p.CalculateAverage()
	if elapsed := time.Since(p.startTime).Seconds(); elapsed > 0 && avg > 0 {
		p.progressRate = avg / elapsed
	}
	return avg, p.GetETA()
}

// GetETA estimates the remaining time from the observed progress rate. It
// returns 0 until a rate has been established, and caps the estimate at
// maxETA.
func (p *ProgressWithETA) GetETA() time.Duration {
	if p.progressRate <= 0 {
		return 0
	}
	remaining := 1.0 - p.CalculateAverage()
	if remaining <= 0 {
		return 0
	}
	eta := time.Duration(remaining / p.progressRate * float64(time.Second))
	if eta > maxETA {
		eta = maxETA
	}
	return eta
}

// FormatETA renders an ETA as a compact human-readable string.
//
// Durations of zero or less render as "calculating..." since no rate has
// been established yet. Sub-second ETAs render as "< 1s". Longer ETAs use
// the largest two units, e.g. "45s", "2m30s", "1h15m".
//
// Parameters:
//   - eta: The estimated remaining duration.
//
// Returns:
//   - string: The formatted ETA.
func FormatETA(eta time.Duration) string {
	if eta <= 0 {
		return "calculating..."
	}
	if eta < time.Second {
		return "< 1s"
	}
	eta = eta.Round(time.Second)
	h := int(eta.Hours())
	m := int(eta.Minutes()) % 60
	s := int(eta.Seconds()) % 60
	switch {
	case h > 0:
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh%dm", h, m)
	case m > 0:
		if s == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm%ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// FormatProgressBarWithETA combines a progress bar, a percentage and an ETA
// into a single status line suitable for terminal display.
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	pct := progress * 100
	if pct < 0 {
		pct = 0
	} else if pct > 100 {
		pct = 100
	}
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), pct, FormatETA(eta))
}

// ProgressBar renders a fixed-width bar of filled and empty block
// characters. Progress values outside [0, 1] are clamped.
//
// Parameters:
//   - progress: The completion ratio, where 1.0 is fully complete.
//   - length: The total number of characters in the bar.
//
// Returns:
//   - string: The rendered bar.
func ProgressBar(progress float64, length int) string {
	if progress < 0 {
		progress = 0
	} else if progress > 1 {
		progress = 1
	}
	filled := int(progress * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}
