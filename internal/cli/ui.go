//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
)

// FormatExecutionDuration renders a duration at the scale it lands in:
// microseconds under a millisecond, milliseconds under a second, the
// default rendering beyond that.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return d.String()
	}
}

const (
	// TruncationLimit is the digit count beyond which a result is elided
	// in standard output.
	TruncationLimit = 100
	// DisplayEdges is how many digits survive at each end of an elided
	// number.
	DisplayEdges = 25
	// ProgressRefreshRate is the repaint interval for the progress line.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the bar width in characters.
	ProgressBarWidth = 40
)

// Spinner abstracts the terminal spinner so DisplayProgress can run
// against a test double.
type Spinner interface {
	Start()
	Stop()
	// UpdateSuffix sets the text displayed after the spinner glyph.
	UpdateSuffix(suffix string)
}

// realSpinner adapts briandowns/spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

// newSpinner is a factory var so tests can substitute a recording spinner.
var newSpinner = func(options ...spinner.Option) Spinner {
	// Same interval as ProgressRefreshRate so the glyph and the bar tick together.
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}
