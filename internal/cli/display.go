package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/progress"
	"github.com/agbru/bigcalc/internal/ui"
)

// DisplayProgress renders a spinner with an aggregated progress bar and ETA
// while engines are evaluating. It consumes updates from progressChan until
// the channel is closed and signals wg when the display has shut down.
//
// The suffix is refreshed at ProgressRefreshRate rather than on every update,
// which keeps terminal writes bounded even when engines report progress per
// token.
//
// Parameters:
//   - wg: The wait group signaled when the display loop exits.
//   - progressChan: The channel of per-engine progress updates.
//   - numEngines: The number of engines reporting progress.
//   - out: The writer the spinner draws to.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numEngines int, out io.Writer) {
	defer wg.Done()

	if numEngines <= 0 {
		for range progressChan {
			// Drain so producers are never blocked.
		}
		return
	}

	state := NewProgressWithETA(numEngines)

	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(progressSuffix(state.CalculateAverage(), state.GetETA()))
	s.Start()
	defer s.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.UpdateSuffix(progressSuffix(1.0, 0))
				return
			}
			state.UpdateWithETA(update.EngineIndex, update.Value)
		case <-ticker.C:
			s.UpdateSuffix(progressSuffix(state.CalculateAverage(), state.GetETA()))
		}
	}
}

// progressSuffix builds the spinner suffix from the average progress and ETA.
func progressSuffix(avg float64, eta time.Duration) string {
	return " Evaluating " + FormatProgressBarWithETA(avg, eta, ProgressBarWidth)
}

// DisplayResult writes the final evaluation result to out.
//
// The value is always printed as a canonical fraction. Integer values are
// grouped with thousands separators, and values longer than TruncationLimit
// digits are truncated to their first and last DisplayEdges digits unless
// verbose output was requested. Non-integer results additionally get a
// decimal rendering with the requested number of fractional digits.
//
// Parameters:
//   - result: The evaluated value in canonical form.
//   - expr: The expression that produced the value.
//   - duration: The evaluation duration.
//   - precision: The number of fractional digits for the decimal rendering.
//   - verbose: When true, long values are printed in full.
//   - details: When true, a detailed analysis block precedes the value.
//   - out: The writer for standard output.
func DisplayResult(result calc.Result, expr string, duration time.Duration, precision uint, verbose, details bool, out io.Writer) {
	if details {
		displayDetailedAnalysis(result, duration, out)
	}

	fmt.Fprintf(out, "\n%sCalculated value:%s\n", ui.ColorBold(), ui.ColorReset())

	value := result.String()
	if result.IsInteger() && len(value) <= TruncationLimit {
		value = FormatNumberString(value)
	}
	if !verbose && len(value) > TruncationLimit {
		fmt.Fprintf(out, "  %s = %s%s%s (truncated)\n",
			expr, ui.ColorGreen(), truncateValue(value), ui.ColorReset())
		fmt.Fprintf(out, "  %sTip: use -v to display the full value.%s\n",
			ui.ColorYellow(), ui.ColorReset())
	} else {
		fmt.Fprintf(out, "  %s = %s%s%s\n", expr, ui.ColorGreen(), value, ui.ColorReset())
	}

	if precision > 0 && !result.IsInteger() {
		if dec, err := result.Decimal(precision); err == nil {
			if !verbose && len(dec) > TruncationLimit {
				dec = truncateValue(dec) + " (truncated)"
			}
			fmt.Fprintf(out, "  %s≈ %s%s\n", ui.ColorCyan(), dec, ui.ColorReset())
		}
	}
}

// displayDetailedAnalysis prints timing and size information for a result.
func displayDetailedAnalysis(result calc.Result, duration time.Duration, out io.Writer) {
	fmt.Fprintf(out, "\n%sDetailed result analysis:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "  Calculation time:    %s%s%s\n",
		ui.ColorYellow(), FormatExecutionDuration(duration), ui.ColorReset())
	fmt.Fprintf(out, "  Number of digits:    %s%d%s\n",
		ui.ColorCyan(), result.DigitCount(), ui.ColorReset())
	if result.IsInteger() {
		fmt.Fprintf(out, "  Canonical form:      integer\n")
		return
	}
	fmt.Fprintf(out, "  Numerator digits:    %s%d%s\n",
		ui.ColorCyan(), len(strings.TrimPrefix(result.Num, "-")), ui.ColorReset())
	fmt.Fprintf(out, "  Denominator digits:  %s%d%s\n",
		ui.ColorCyan(), len(result.Den), ui.ColorReset())
	fmt.Fprintf(out, "  Canonical form:      reduced fraction\n")
}

// truncateValue shortens a rendered value to its first and last DisplayEdges
// characters. Values at or below TruncationLimit are returned unchanged.
func truncateValue(s string) string {
	if len(s) <= TruncationLimit {
		return s
	}
	return s[:DisplayEdges] + "..." + s[len(s)-DisplayEdges:]
}
