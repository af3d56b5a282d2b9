package calc

import (
	"context"

	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/progress"
)

//go:generate mockgen -destination=mocks/mock_engine.go -package=mocks github.com/agbru/bigcalc/internal/calc Engine

// Engine evaluates one postfix expression and reports fractional progress
// as tokens are consumed. Implementations are stateless and safe for
// concurrent use; index tags the engine's progress updates when several
// engines run side by side.
type Engine interface {
	// Name returns the human-readable engine name.
	Name() string
	// Evaluate runs expr to a canonical Result. Progress updates tagged
	// with index are sent on progressChan when it is non-nil.
	Evaluate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, index int, expr string) (Result, error)
}

// coreEngine is the strategy side of an Engine: tokenization, stack
// discipline and progress cadence are shared, only the arithmetic
// backend differs.
type coreEngine interface {
	Name() string
	EvaluateCore(ctx context.Context, report progress.ProgressCallback, expr string) (Result, error)
}

// RPNEngine adapts a core backend to the Engine interface, wiring the
// progress observer plumbing around the evaluation.
type RPNEngine struct {
	core coreEngine
	log  logging.Logger
}

// NewEngine wraps a core evaluation backend in the standard observer
// plumbing.
func NewEngine(core coreEngine) Engine {
	return &RPNEngine{core: core, log: logging.NewNopLogger()}
}

// NewEngineWithLogger is NewEngine with debug progress logging attached.
func NewEngineWithLogger(core coreEngine, log logging.Logger) Engine {
	return &RPNEngine{core: core, log: log}
}

// Name returns the backend's name.
func (e *RPNEngine) Name() string { return e.core.Name() }

// Evaluate builds the default observer set (channel fan-out plus debug
// logging) and delegates to EvaluateWithObservers.
func (e *RPNEngine) Evaluate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, index int, expr string) (Result, error) {
	subject := progress.NewProgressSubject()
	if progressChan != nil {
		subject.Register(progress.NewChannelObserver(progressChan))
	}
	subject.Register(progress.NewLoggingObserver(e.log, e.core.Name()))
	return e.EvaluateWithObservers(ctx, subject, index, expr)
}

// EvaluateWithObservers is Evaluate with a caller-supplied observer set.
// Errors from the core are wrapped with the failing expression.
func (e *RPNEngine) EvaluateWithObservers(ctx context.Context, subject *progress.ProgressSubject, index int, expr string) (Result, error) {
	report := subject.Freeze(index)
	res, err := e.core.EvaluateCore(ctx, report, expr)
	if err != nil {
		return Result{}, apperrors.EvalError{Expr: expr, Cause: err}
	}
	return res, nil
}
