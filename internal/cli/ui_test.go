package cli

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/progress"
	"github.com/agbru/bigcalc/internal/ui"
)

// MockSpinner for testing
type MockSpinner struct {
	started bool
	stopped bool
	suffix  string
}

func (m *MockSpinner) Start() {
	m.started = true
}

func (m *MockSpinner) Stop() {
	m.stopped = true
}

func (m *MockSpinner) UpdateSuffix(suffix string) {
	m.suffix = suffix
}

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Microsecond, "500µs"},
		{42 * time.Millisecond, "42ms"},
		{3 * time.Second, "3s"},
		{90 * time.Second, "1m30s"},
	}
	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.want {
			t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestDisplayResult(t *testing.T) {
	// Initialize theme
	ui.InitTheme(false)

	huge := calc.Result{Num: "1" + strings.Repeat("0", 200), Den: "1"}

	tests := []struct {
		name        string
		result      calc.Result
		expr        string
		duration    time.Duration
		precision   uint
		verbose     bool
		details     bool
		contains    []string
		notContains []string
	}{
		{
			name:      "Details only",
			result:    calc.Result{Num: "12345", Den: "1"},
			expr:      "12345",
			duration:  time.Millisecond,
			precision: 50,
			details:   true,
			contains:  []string{"Detailed result analysis", "Calculation time", "Number of digits", "integer"},
		},
		{
			name:      "Integer with separators",
			result:    calc.Result{Num: "12345", Den: "1"},
			expr:      "12000 345 +",
			duration:  time.Millisecond,
			precision: 50,
			contains:  []string{"Calculated value", "12000 345 + = ", "12,345"},
		},
		{
			name:      "Fraction with decimal rendering",
			result:    calc.Result{Num: "1", Den: "3"},
			expr:      "1 3 /",
			duration:  time.Millisecond,
			precision: 6,
			contains:  []string{"1/3", "≈ 0.333333"},
		},
		{
			name:        "Fraction details",
			result:      calc.Result{Num: "-22", Den: "7"},
			expr:        "-22 7 /",
			duration:    time.Millisecond,
			precision:   0,
			details:     true,
			contains:    []string{"Numerator digits", "Denominator digits", "reduced fraction"},
			notContains: []string{"≈"},
		},
		{
			name:      "Truncated output",
			result:    huge,
			expr:      "10 200 ^",
			duration:  time.Millisecond,
			precision: 50,
			contains:  []string{"(truncated)", "Tip: use", "..."},
		},
		{
			name:        "Verbose output",
			result:      huge,
			expr:        "10 200 ^",
			duration:    time.Millisecond,
			precision:   50,
			verbose:     true,
			contains:    []string{strings.Repeat("0", 200)},
			notContains: []string{"(truncated)", "Tip: use"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			DisplayResult(tt.result, tt.expr, tt.duration, tt.precision, tt.verbose, tt.details, &buf)
			output := buf.String()
			for _, s := range tt.contains {
				if !strings.Contains(output, s) {
					t.Errorf("Expected output to contain %q, but got:\n%s", s, output)
				}
			}
			for _, s := range tt.notContains {
				if strings.Contains(output, s) {
					t.Errorf("Expected output to not contain %q, but got:\n%s", s, output)
				}
			}
		})
	}
}

func TestTruncateValue(t *testing.T) {
	t.Parallel()
	short := "12345"
	if got := truncateValue(short); got != short {
		t.Errorf("truncateValue(%q) = %q, want unchanged", short, got)
	}

	long := strings.Repeat("9", 150)
	got := truncateValue(long)
	want := strings.Repeat("9", DisplayEdges) + "..." + strings.Repeat("9", DisplayEdges)
	if got != want {
		t.Errorf("truncateValue of 150 digits = %q, want %q", got, want)
	}
}

func TestRealSpinner(t *testing.T) {
	t.Parallel()
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond)
	rs := &realSpinner{s}

	// Just verify these methods don't panic
	rs.Start()
	rs.UpdateSuffix(" test")
	rs.Stop()
}

func TestColors(t *testing.T) {
	// Initialize with false (colors enabled if terminal supports)
	ui.InitTheme(false)

	// Just call them to ensure coverage - use ui package directly
	_ = ui.ColorReset()
	_ = ui.ColorRed()
	_ = ui.ColorGreen()
	_ = ui.ColorYellow()
	_ = ui.ColorBlue()
	_ = ui.ColorMagenta()
	_ = ui.ColorCyan()
	_ = ui.ColorBold()
	_ = ui.ColorUnderline()
}

func TestDisplayProgress(t *testing.T) {
	originalNewSpinner := newSpinner
	defer func() { newSpinner = originalNewSpinner }()

	mockS := &MockSpinner{}
	newSpinner = func(options ...spinner.Option) Spinner {
		return mockS
	}

	var wg sync.WaitGroup
	wg.Add(1)

	progressChan := make(chan progress.ProgressUpdate)
	out := io.Discard // Discard output

	go func() {
		// Send some updates
		progressChan <- progress.ProgressUpdate{EngineIndex: 0, Value: 0.5}
		time.Sleep(10 * time.Millisecond)
		close(progressChan)
	}()

	DisplayProgress(&wg, progressChan, 1, out)
	wg.Wait()

	if !mockS.started {
		t.Error("Spinner should have started")
	}
	if !mockS.stopped {
		t.Error("Spinner should have stopped")
	}
}

func TestDisplayProgress_ZeroEngines(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan progress.ProgressUpdate)
	close(progressChan)

	DisplayProgress(&wg, progressChan, 0, io.Discard)
	wg.Wait()
	// Should return immediately, coverage check
}
