package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// EnvPrefix is prepended to every environment variable consulted by
// applyEnvOverrides.
const EnvPrefix = "BIGCALC_"

// Default values and limits for the configuration.
const (
	// DefaultPrecision is the number of fractional digits rendered when an
	// exact result is displayed in decimal form.
	DefaultPrecision = 50

	// MaxPrecision bounds -prec; rendering is linear in the precision, so
	// an unbounded value would let a typo allocate gigabytes.
	MaxPrecision = 100000

	// DefaultTimeout bounds a single evaluation run.
	DefaultTimeout = 5 * time.Minute

	// DefaultEngine runs every available engine and cross-checks them.
	DefaultEngine = "all"

	// DefaultAddr is the listen address for server mode.
	DefaultAddr = ":8080"
)

// AppConfig holds the complete runtime configuration, resolved from CLI
// flags, environment variables and defaults (in that priority order).
type AppConfig struct {
	// Expr is the RPN expression to evaluate (-e). Empty selects REPL or
	// script mode.
	Expr string

	// ScriptFile is an optional positional argument naming a file with one
	// expression per line.
	ScriptFile string

	// Precision is the number of fractional digits in decimal output.
	Precision uint

	// Timeout bounds the whole evaluation run.
	Timeout time.Duration

	// Engine selects a single evaluation engine by name, or "all" to run
	// every engine concurrently and compare results.
	Engine string

	// FFTThreshold overrides the schoolbook/FFT multiplication crossover,
	// in limbs. Zero selects the adaptive estimate or a calibration
	// profile.
	FFTThreshold int

	// Output verbosity and destination.
	Verbose    bool
	Details    bool
	Quiet      bool
	OutputFile string
	NoColor    bool

	// Server mode.
	Serve bool
	Addr  string

	// TUI mode.
	TUI bool

	// Calibration.
	Calibrate          bool
	AutoCalibrate      bool
	CalibrationProfile string

	// Completion holds the shell name when generating completion scripts.
	Completion string

	// ShowVersion prints the version and exits.
	ShowVersion bool
}

// ParseConfig parses command-line arguments into an AppConfig, applies
// environment variable overrides for flags left unset, and validates the
// result.
//
// Parameters:
//   - programName: The name used in usage output.
//   - args: The command-line arguments, without the program name.
//   - errWriter: The writer for usage and parse error output.
//   - availableEngines: The engine names accepted by -engine.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: flag.ErrHelp when help was requested, or a ConfigError.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableEngines []string) (AppConfig, error) {
	cfg := AppConfig{
		Precision: DefaultPrecision,
		Timeout:   DefaultTimeout,
		Engine:    DefaultEngine,
		Addr:      DefaultAddr,
	}

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	registerFlags(fs, &cfg)
	fs.Usage = func() { printUsage(errWriter, programName, fs, availableEngines) }

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	switch fs.NArg() {
	case 0:
	case 1:
		cfg.ScriptFile = fs.Arg(0)
	default:
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments after %q", fs.Arg(0))
	}

	applyEnvOverrides(&cfg, fs)

	if err := validate(cfg, availableEngines); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// registerFlags declares every flag on fs, binding the aliased short and
// long forms to the same field.
func registerFlags(fs *flag.FlagSet, cfg *AppConfig) {
	fs.StringVar(&cfg.Expr, "e", cfg.Expr, "RPN expression to evaluate")
	fs.StringVar(&cfg.Expr, "expr", cfg.Expr, "RPN expression to evaluate")
	fs.UintVar(&cfg.Precision, "prec", cfg.Precision, "fractional digits in decimal output")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "maximum duration for the evaluation run")
	fs.StringVar(&cfg.Engine, "engine", cfg.Engine, `evaluation engine name, or "all" to cross-check`)
	fs.IntVar(&cfg.FFTThreshold, "fft-threshold", cfg.FFTThreshold, "schoolbook/FFT crossover in limbs (0 = auto)")

	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose output")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "verbose output")
	fs.BoolVar(&cfg.Details, "d", cfg.Details, "per-engine detail output")
	fs.BoolVar(&cfg.Details, "details", cfg.Details, "per-engine detail output")
	fs.BoolVar(&cfg.Quiet, "q", cfg.Quiet, "print only the result")
	fs.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "print only the result")
	fs.StringVar(&cfg.OutputFile, "o", cfg.OutputFile, "write the full result to a file")
	fs.StringVar(&cfg.OutputFile, "output", cfg.OutputFile, "write the full result to a file")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable ANSI colors")

	fs.BoolVar(&cfg.Serve, "serve", cfg.Serve, "run the HTTP evaluation service")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address for -serve")
	fs.BoolVar(&cfg.TUI, "tui", cfg.TUI, "run the interactive dashboard")

	fs.BoolVar(&cfg.Calibrate, "calibrate", cfg.Calibrate, "measure the FFT crossover and write a profile")
	fs.BoolVar(&cfg.AutoCalibrate, "auto-calibrate", cfg.AutoCalibrate, "run a quick calibration before evaluating")
	fs.StringVar(&cfg.CalibrationProfile, "calibration-profile", cfg.CalibrationProfile, "path of the calibration profile")

	fs.StringVar(&cfg.Completion, "completion", cfg.Completion, "generate a completion script (bash|zsh|fish|powershell)")
	fs.BoolVar(&cfg.ShowVersion, "V", cfg.ShowVersion, "print version and exit")
	fs.BoolVar(&cfg.ShowVersion, "version", cfg.ShowVersion, "print version and exit")
}

// validate rejects configurations the application cannot act on.
func validate(cfg AppConfig, availableEngines []string) error {
	if cfg.Precision > MaxPrecision {
		return apperrors.NewConfigError("precision %d exceeds the maximum of %d", cfg.Precision, MaxPrecision)
	}
	if cfg.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", cfg.Timeout)
	}
	if cfg.FFTThreshold < 0 {
		return apperrors.NewConfigError("fft-threshold must not be negative, got %d", cfg.FFTThreshold)
	}
	if cfg.Engine != DefaultEngine && !engineKnown(cfg.Engine, availableEngines) {
		return apperrors.NewConfigError("unknown engine %q (available: %s, all)", cfg.Engine, joinNames(availableEngines))
	}
	if cfg.Serve && cfg.Addr == "" {
		return apperrors.NewConfigError("-serve requires a listen address")
	}
	if cfg.Expr != "" && cfg.ScriptFile != "" {
		return apperrors.NewConfigError("-e and a script file are mutually exclusive")
	}
	return nil
}

func engineKnown(name string, available []string) bool {
	for _, a := range available {
		if a == name {
			return true
		}
	}
	return false
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}

// printUsage writes grouped usage text for the flag set.
func printUsage(w io.Writer, programName string, fs *flag.FlagSet, availableEngines []string) {
	fmt.Fprintf(w, "Usage: %s [flags] [script-file]\n\n", programName)
	fmt.Fprintf(w, "Exact big-integer and rational RPN calculator.\n\n")
	fmt.Fprintf(w, "Evaluation:\n")
	fmt.Fprintf(w, "  -e, -expr string      RPN expression to evaluate\n")
	fmt.Fprintf(w, "  -prec uint            fractional digits in decimal output (default %d)\n", DefaultPrecision)
	fmt.Fprintf(w, "  -engine string        engine name (%s) or \"all\" (default)\n", joinNames(availableEngines))
	fmt.Fprintf(w, "  -timeout duration     evaluation time limit (default %s)\n\n", DefaultTimeout)
	fmt.Fprintf(w, "Output:\n")
	fmt.Fprintf(w, "  -v, -verbose          verbose output\n")
	fmt.Fprintf(w, "  -d, -details          per-engine detail output\n")
	fmt.Fprintf(w, "  -q, -quiet            print only the result\n")
	fmt.Fprintf(w, "  -o, -output string    write the full result to a file\n")
	fmt.Fprintf(w, "  -no-color             disable ANSI colors\n\n")
	fmt.Fprintf(w, "Modes:\n")
	fmt.Fprintf(w, "  -serve                HTTP evaluation service\n")
	fmt.Fprintf(w, "  -addr string          listen address for -serve (default %q)\n", DefaultAddr)
	fmt.Fprintf(w, "  -tui                  interactive dashboard\n")
	fmt.Fprintf(w, "  -calibrate            measure the FFT crossover and write a profile\n")
	fmt.Fprintf(w, "  -auto-calibrate       quick calibration before evaluating\n")
	fmt.Fprintf(w, "  -completion string    completion script (bash|zsh|fish|powershell)\n")
	fmt.Fprintf(w, "  -V, -version          print version and exit\n\n")
	fmt.Fprintf(w, "Tuning:\n")
	fmt.Fprintf(w, "  -fft-threshold int    schoolbook/FFT crossover in limbs (0 = auto)\n")
	fmt.Fprintf(w, "  -calibration-profile  path of the calibration profile\n\n")
	fmt.Fprintf(w, "Environment variables with the %s prefix override unset flags,\n", EnvPrefix)
	fmt.Fprintf(w, "e.g. %sPREC=80 or %sENGINE=bignum.\n\n", EnvPrefix, EnvPrefix)
	fmt.Fprintf(w, "Examples:\n")
	fmt.Fprintf(w, "  %s -e \"1 3 / 1 6 / +\"\n", programName)
	fmt.Fprintf(w, "  %s -e \"2 128 ^\" -q\n", programName)
	fmt.Fprintf(w, "  %s -prec 100 -e \"22 7 /\"\n", programName)
	fmt.Fprintf(w, "  %s exprs.txt\n", programName)
}
