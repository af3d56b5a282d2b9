// Package orchestration coordinates concurrent evaluation of one expression
// across several engines and aggregates results for comparison. It decouples
// business logic from presentation via ProgressReporter and ResultPresenter
// interfaces.
package orchestration
