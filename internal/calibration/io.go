package calibration

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/ui"
)

// printCalibrationResults formats and prints the calibration results table.
func printCalibrationResults(out io.Writer, results []calibrationResult, bestThreshold int) {
	fmt.Fprintf(out, "\n--- Calibration Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %sOperand Size%s │ %sSchoolbook%s \t %sFFT%s\n",
		ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset())
	fmt.Fprintf(tw, "  %s┼%s\n", strings.Repeat("─", 14), strings.Repeat("─", 25))
	for _, res := range results {
		sizeLabel := fmt.Sprintf("%d limbs", res.Size)
		schoolStr := fmt.Sprintf("%sN/A%s", ui.ColorRed(), ui.ColorReset())
		fftStr := schoolStr
		if res.Err == nil {
			schoolStr = durationCell(res.Schoolbook)
			fftStr = durationCell(res.FFT)
		}
		highlight := ""
		if res.Size == bestThreshold && res.Err == nil {
			highlight = fmt.Sprintf(" %s(Crossover)%s", ui.ColorGreen(), ui.ColorReset())
		}
		fmt.Fprintf(tw, "  %s%-12s%s │ %s%s%s \t %s%s%s%s\n",
			ui.ColorCyan(), sizeLabel, ui.ColorReset(),
			ui.ColorYellow(), schoolStr, ui.ColorReset(),
			ui.ColorYellow(), fftStr, ui.ColorReset(), highlight)
	}
	tw.Flush()
}

// durationCell renders a measured duration, flagging measurements too fast
// for the clock.
func durationCell(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

// printCalibrationOutput prints the one-line auto-calibration summary.
//
// Parameters:
//   - cfg: The updated configuration with calibration results.
//   - out: The writer for output.
func printCalibrationOutput(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "%sAuto-calibration%s: FFT crossover at %s%d%s limbs\n",
		ui.ColorGreen(), ui.ColorReset(),
		ui.ColorYellow(), cfg.FFTThreshold, ui.ColorReset())
}
