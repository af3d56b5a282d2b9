package tui

import (
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/progress"
)

// programRef shares the tea.Program handle with the bridge goroutines.
// bubbletea copies the model on every Update, so the handle must live
// behind a pointer that survives those copies.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram stores the program handle.
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send forwards a message to the program. Calls before SetProgram are
// dropped.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter adapts the orchestration progress stream to
// bubbletea messages.
type TUIProgressReporter struct {
	ref *programRef
}

var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress aggregates raw engine updates and forwards each one as
// a ProgressMsg, closing with a ProgressDoneMsg when the stream ends.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, updates <-chan progress.ProgressUpdate, numEngines int, _ io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(numEngines)
	if agg == nil {
		orchestration.DrainChannel(updates)
		return
	}

	for update := range updates {
		ap := agg.Update(update)
		t.ref.Send(ProgressMsg{
			EngineIndex:     ap.EngineIndex,
			Value:           ap.Value,
			AverageProgress: ap.AverageProgress,
			ETA:             ap.ETA,
		})
	}
	t.ref.Send(ProgressDoneMsg{})
}

// TUIResultPresenter adapts the orchestration presentation callbacks to
// bubbletea messages; nothing is written to the terminal directly.
type TUIResultPresenter struct {
	ref *programRef
}

var (
	_ orchestration.ResultPresenter   = (*TUIResultPresenter)(nil)
	_ orchestration.DurationFormatter = (*TUIResultPresenter)(nil)
	_ orchestration.ErrorHandler      = (*TUIResultPresenter)(nil)
)

// PresentComparisonTable forwards the cross-engine results.
func (t *TUIResultPresenter) PresentComparisonTable(results []orchestration.EvaluationResult, _ io.Writer) {
	t.ref.Send(ComparisonResultsMsg{Results: results})
}

// PresentResult forwards the final result.
func (t *TUIResultPresenter) PresentResult(result orchestration.EvaluationResult, expr string, precision uint, verbose, details bool, _ io.Writer) {
	t.ref.Send(FinalResultMsg{
		Result:    result,
		Expr:      expr,
		Precision: precision,
		Verbose:   verbose,
		Details:   details,
	})
}

// FormatDuration renders durations the same way the CLI does.
func (t *TUIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError forwards the error to the dashboard and classifies it
// into an exit code.
func (t *TUIResultPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	t.ref.Send(ErrorMsg{Err: err, Duration: duration})
	return apperrors.HandleEvaluationError(err, duration, io.Discard, nil)
}
