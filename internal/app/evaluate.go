package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/cli"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/parallel"
	"github.com/agbru/bigcalc/internal/ui"
)

// runEvaluate dispatches the non-server evaluation modes: script file,
// one-shot expression, or interactive REPL.
func (a *Application) runEvaluate(ctx context.Context, out io.Writer) int {
	if a.Config.ScriptFile != "" {
		return a.runScript(ctx, out)
	}
	if a.Config.Expr == "" {
		return a.runREPL(out)
	}
	return a.runExpression(ctx, out)
}

// runExpression orchestrates a one-shot evaluation with cross-engine
// comparison.
func (a *Application) runExpression(ctx context.Context, out io.Writer) int {
	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	// Get engines to run
	enginesToRun := orchestration.GetEnginesToRun(a.Config.Engine, a.Factory)

	// Skip verbose output in quiet mode
	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(enginesToRun, out)
	}

	// Choose progress reporter based on quiet mode
	var progressReporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	} else {
		progressReporter = cli.CLIProgressReporter{}
	}

	// Execute evaluations
	results := orchestration.ExecuteEvaluations(ctx, enginesToRun, a.Config.Expr, progressReporter, progressOut)

	// Build output config for the CLI options
	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		Precision:  a.Config.Precision,
	}

	return a.analyzeResultsWithOutput(results, outputCfg, out)
}

// runScript evaluates a file of expressions, one per line. Lines are spread
// across the worker pool; rendering stays in file order.
func (a *Application) runScript(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	lines, err := readScript(a.Config.ScriptFile)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error reading script: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	if len(lines) == 0 {
		return apperrors.ExitSuccess
	}

	enginesToRun := orchestration.GetEnginesToRun(a.Config.Engine, a.Factory)

	type lineResult struct {
		result   calc.Result
		duration time.Duration
		err      error
	}
	results := make([]lineResult, len(lines))

	// Workers write disjoint slots; the aggregate error is redundant with
	// the per-line ones collected below.
	_ = parallel.ForEachN(len(lines), func(i int) error {
		res, dur, evalErr := evaluateAcrossEngines(ctx, enginesToRun, lines[i])
		results[i] = lineResult{result: res, duration: dur, err: evalErr}
		return evalErr
	})

	exitCode := apperrors.ExitSuccess
	for i, lr := range results {
		if lr.err != nil {
			fmt.Fprintf(out, "%s%s%s: %v\n", ui.ColorRed(), lines[i], ui.ColorReset(), lr.err)
			if code := apperrors.HandleEvaluationError(lr.err, lr.duration, io.Discard, nil); exitCode == apperrors.ExitSuccess {
				exitCode = code
			}
			continue
		}
		switch {
		case a.Config.Quiet:
			fmt.Fprintln(out, lr.result.String())
		case a.Config.Verbose:
			fmt.Fprintf(out, "%s = %s  [%s]\n", lines[i], lr.result.String(), format.FormatExecutionDuration(lr.duration))
		default:
			fmt.Fprintf(out, "%s = %s\n", lines[i], lr.result.String())
		}
	}
	return exitCode
}

// evaluateAcrossEngines runs expr through every selected engine and
// cross-checks the canonical results, mirroring the comparison the
// orchestrator performs for one-shot mode.
func evaluateAcrossEngines(ctx context.Context, engines []calc.Engine, expr string) (calc.Result, time.Duration, error) {
	start := time.Now()
	var reference calc.Result
	for i, engine := range engines {
		res, err := engine.Evaluate(ctx, nil, i, expr)
		if err != nil {
			return calc.Result{}, time.Since(start), err
		}
		if i == 0 {
			reference = res
			continue
		}
		if res != reference {
			return calc.Result{}, time.Since(start), apperrors.MismatchError{
				Reference: engines[0].Name(),
				Engine:    engine.Name(),
				Got:       res.String(),
				Want:      reference.String(),
			}
		}
	}
	return reference, time.Since(start), nil
}

// readScript loads expressions from path, skipping blank lines and
// #-comments.
func readScript(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

// runREPL starts the interactive session. The REPL does its own engine
// switching, so it receives the full registry rather than a selection.
func (a *Application) runREPL(out io.Writer) int {
	registry := make(map[string]calc.Engine)
	for _, key := range a.Factory.List() {
		engine, err := a.Factory.Get(key)
		if err != nil {
			continue
		}
		registry[key] = engine
	}

	repl := cli.NewREPL(registry, cli.REPLConfig{
		Engine:    a.Config.Engine,
		Precision: a.Config.Precision,
		Timeout:   a.Config.Timeout,
	})
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

func (a *Application) analyzeResultsWithOutput(results []orchestration.EvaluationResult, outputCfg cli.OutputConfig, out io.Writer) int {
	bestResult := findBestResult(results)

	// Handle quiet mode for single result
	if outputCfg.Quiet && bestResult != nil {
		// Quiet skips the comparison table, not the comparison itself.
		if mismatch := firstMismatch(results); mismatch != nil {
			return apperrors.HandleEvaluationError(mismatch, bestResult.Duration, a.ErrWriter, cli.CLIColorProvider{})
		}

		cli.DisplayQuietResult(out, bestResult.Result, bestResult.Duration)

		// Save to file if requested
		if err := a.saveResultIfNeeded(bestResult, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}

		return apperrors.ExitSuccess
	}

	// Use standard analysis for non-quiet mode
	presOpts := orchestration.PresentationOptions{
		Expr:      a.Config.Expr,
		Precision: a.Config.Precision,
		Verbose:   a.Config.Verbose,
		Details:   a.Config.Details,
	}
	exitCode := orchestration.AnalyzeComparisonResults(results, presOpts, cli.CLIResultPresenter{}, cli.CLIResultPresenter{}, out)

	// Handle file output for non-quiet mode
	if bestResult != nil && exitCode == apperrors.ExitSuccess {
		// Save to file if requested
		if err := a.saveResultIfNeeded(bestResult, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}
		if outputCfg.OutputFile != "" {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), outputCfg.OutputFile, ui.ColorReset())
		}
	}

	return exitCode
}

func findBestResult(results []orchestration.EvaluationResult) *orchestration.EvaluationResult {
	var bestResult *orchestration.EvaluationResult
	for i := range results {
		if results[i].Err == nil {
			if bestResult == nil || results[i].Duration < bestResult.Duration {
				bestResult = &results[i]
			}
		}
	}
	return bestResult
}

// firstMismatch reports the first disagreement between successful engines.
func firstMismatch(results []orchestration.EvaluationResult) error {
	var ref *orchestration.EvaluationResult
	for i := range results {
		if results[i].Err != nil {
			continue
		}
		if ref == nil {
			ref = &results[i]
			continue
		}
		if results[i].Result != ref.Result {
			return apperrors.MismatchError{
				Reference: ref.Name,
				Engine:    results[i].Name,
				Got:       results[i].Result.String(),
				Want:      ref.Result.String(),
			}
		}
	}
	return nil
}

func (a *Application) saveResultIfNeeded(res *orchestration.EvaluationResult, cfg cli.OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}
	if err := cli.WriteResultToFile(res.Result, a.Config.Expr, res.Duration, res.Name, cfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return err
	}
	return nil
}
