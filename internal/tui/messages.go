package tui

import (
	"time"

	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/orchestration"
)

// ProgressMsg carries one aggregated progress update from the bridge.
type ProgressMsg struct {
	EngineIndex     int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// ProgressDoneMsg signals that the progress channel has been drained.
type ProgressDoneMsg struct{}

// ComparisonResultsMsg delivers the per-engine outcome of a comparison run.
type ComparisonResultsMsg struct {
	Results []orchestration.EvaluationResult
}

// FinalResultMsg delivers the consistent final result for display.
type FinalResultMsg struct {
	Result    orchestration.EvaluationResult
	Expr      string
	Precision uint
	Verbose   bool
	Details   bool
}

// IndicatorsMsg delivers asynchronously computed performance indicators.
type IndicatorsMsg struct {
	Indicators *metrics.Indicators
}

// ErrorMsg reports a failed evaluation run.
type ErrorMsg struct {
	Err      error
	Duration time.Duration
}

// TickMsg drives the periodic refresh of the runtime panels.
type TickMsg time.Time

// MemStatsMsg carries a runtime memory sample.
type MemStatsMsg struct {
	Alloc        uint64
	HeapSys      uint64
	NumGC        uint32
	PauseTotalNs uint64
	NumGoroutine int
}

// SysStatsMsg carries a system-wide CPU and memory sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// EvaluationCompleteMsg signals that the orchestration has finished.
// Generation guards against stale messages after a restart.
type EvaluationCompleteMsg struct {
	ExitCode   int
	Generation uint64
}

// ContextCancelledMsg signals that the session context was cancelled.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
