package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/ui"
)

// PrintExecutionConfig displays the current execution configuration to the user.
// It shows the expression to evaluate, timeout, environment details, and
// optimization thresholds.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Evaluating %s%q%s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), cfg.Expr, ui.ColorReset(), ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	fftDesc := fmt.Sprintf("%s%d%s limbs", ui.ColorCyan(), cfg.FFTThreshold, ui.ColorReset())
	if cfg.FFTThreshold == 0 {
		fftDesc = ui.ColorCyan() + "adaptive" + ui.ColorReset()
	}
	fmt.Fprintf(out, "Optimization thresholds: FFT=%s. Decimal precision: %s%d%s digits.\n",
		fftDesc, ui.ColorCyan(), cfg.Precision, ui.ColorReset())
}

// PrintExecutionMode displays the execution mode (single engine vs comparison).
//
// Parameters:
//   - engines: The slice of engines that will be executed.
//   - out: The writer for standard output.
func PrintExecutionMode(engines []calc.Engine, out io.Writer) {
	var modeDesc string
	if len(engines) > 1 {
		modeDesc = "Parallel comparison of all engines"
	} else {
		modeDesc = fmt.Sprintf("Single evaluation with the %s%s%s engine",
			ui.ColorGreen(), engines[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
