// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatQuietResult], [FormatExecutionDuration].
//
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.
//     Examples: [WriteResultToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet mode suppresses verbose output.
	Quiet bool
	// Verbose shows the full result value.
	Verbose bool
	// Precision is the number of fractional digits in the decimal rendering.
	Precision uint
}

// WriteResultToFile writes an evaluation result to a file.
//
// The file carries a commented header with the evaluation parameters followed
// by the full canonical value and, for non-integer results, the decimal
// rendering.
//
// Parameters:
//   - result: The evaluated value in canonical form.
//   - expr: The evaluated expression.
//   - duration: The evaluation duration.
//   - engine: The engine name used.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(result calc.Result, expr string, duration time.Duration, engine string, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	// Write header
	fmt.Fprintf(file, "# RPN Evaluation Result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Engine: %s\n", engine)
	fmt.Fprintf(file, "# Duration: %s\n", duration)
	fmt.Fprintf(file, "# Expression: %s\n", expr)
	fmt.Fprintf(file, "# Digits: %d\n", result.DigitCount())
	fmt.Fprintf(file, "\n")

	// Write result
	fmt.Fprintf(file, "%s =\n%s\n", expr, result.String())
	if config.Precision > 0 && !result.IsInteger() {
		if dec, decErr := result.Decimal(config.Precision); decErr == nil {
			fmt.Fprintf(file, "\n# Decimal (%d digits):\n%s\n", config.Precision, dec)
		}
	}

	return nil
}

// FormatQuietResult formats a result for quiet mode output.
// Returns a single-line canonical value suitable for scripting.
//
// Parameters:
//   - result: The evaluated value.
//   - duration: The evaluation duration.
//
// Returns:
//   - string: The formatted result string.
func FormatQuietResult(result calc.Result, duration time.Duration) string {
	return result.String()
}

// DisplayQuietResult outputs a result in quiet mode (minimal output).
//
// Parameters:
//   - out: The output writer.
//   - result: The evaluated value.
//   - duration: The evaluation duration.
func DisplayQuietResult(out io.Writer, result calc.Result, duration time.Duration) {
	fmt.Fprintln(out, FormatQuietResult(result, duration))
}

// DisplayResultWithConfig displays a result with the given output configuration.
// This is a unified function that handles all output modes.
//
// Parameters:
//   - out: The output writer.
//   - result: The evaluated value.
//   - expr: The evaluated expression.
//   - duration: The evaluation duration.
//   - engine: The engine name.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if file output fails.
func DisplayResultWithConfig(out io.Writer, result calc.Result, expr string, duration time.Duration, engine string, config OutputConfig) error {
	// Handle quiet mode
	if config.Quiet {
		DisplayQuietResult(out, result, duration)
	} else {
		// Use standard display
		DisplayResult(result, expr, duration, config.Precision, config.Verbose, true, out)
	}

	// Save to file if requested
	if config.OutputFile != "" {
		if err := WriteResultToFile(result, expr, duration, engine, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
		}
	}

	return nil
}
