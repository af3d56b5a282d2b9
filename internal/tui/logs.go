package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/orchestration"
)

// logValueLimit caps rendered values in the log panel. The viewport does
// not wrap, so a million-digit result would otherwise live on one
// unreadable line.
const logValueLimit = 96

// LogsModel is the scrollable event log on the left of the dashboard.
// It records the run configuration, per-engine progress milestones, the
// comparison outcome and the final result.
type LogsModel struct {
	engineNames []string
	entries     []string
	lastStep    []int // last logged 10% milestone per engine
	viewport    viewport.Model
	follow      bool // stick to the newest entry until the user scrolls up
	width       int
	height      int
}

// NewLogsModel creates a log panel for the given engines.
func NewLogsModel(engineNames []string) LogsModel {
	steps := make([]int, len(engineNames))
	for i := range steps {
		steps[i] = -1
	}
	return LogsModel{
		engineNames: engineNames,
		lastStep:    steps,
		viewport:    viewport.New(0, 0),
		follow:      true,
	}
}

// AddExecutionConfig logs the run parameters at the top of the panel.
func (l *LogsModel) AddExecutionConfig(cfg config.AppConfig) {
	l.add(l.stamp() + "Expression: " + logProgressStyle.Render(cfg.Expr))
	l.add(l.stamp() + "Engines:    " + logEngineStyle.Render(strings.Join(l.engineNames, ", ")))
	l.add(l.stamp() + logTimeStyle.Render(fmt.Sprintf("precision %d digits, timeout %s", cfg.Precision, cfg.Timeout)))
	l.add("")
}

// AddProgressEntry logs an engine's progress when it crosses the next
// 10% milestone. Engines report per token, so logging every update
// would flood the panel.
func (l *LogsModel) AddProgressEntry(msg ProgressMsg) {
	idx := msg.EngineIndex
	if idx < 0 || idx >= len(l.lastStep) {
		return
	}
	step := int(msg.Value * 10)
	if step <= l.lastStep[idx] {
		return
	}
	l.lastStep[idx] = step

	l.add(l.stamp() +
		logEngineStyle.Render(fmt.Sprintf("%-24s", l.engineNames[idx])) +
		logProgressStyle.Render(fmt.Sprintf("%4.0f%%", msg.Value*100)) +
		logTimeStyle.Render("  ETA "+format.FormatETA(msg.ETA)))
}

// AddResults logs the per-engine comparison outcome.
func (l *LogsModel) AddResults(results []orchestration.EvaluationResult) {
	l.add("")
	l.add(l.stamp() + "Comparison summary:")
	for _, res := range results {
		d := format.FormatExecutionDuration(res.Duration)
		if res.Err != nil {
			l.add("  " + logErrorStyle.Render("✗ "+res.Name) + logTimeStyle.Render("  "+d+"  "+res.Err.Error()))
			continue
		}
		l.add("  " + logSuccessStyle.Render("✓ "+res.Name) + logTimeStyle.Render("  "+d))
	}
}

// AddFinalResult logs the consistent final value, its decimal rendering
// when one applies, and the size/timing summary.
func (l *LogsModel) AddFinalResult(msg FinalResultMsg) {
	res := msg.Result.Result

	l.add("")
	l.add(l.stamp() + msg.Expr + " = " + logSuccessStyle.Render(clipValue(res.String())))
	if msg.Precision > 0 && !res.IsInteger() {
		if dec, err := res.Decimal(msg.Precision); err == nil {
			l.add(l.stamp() + "≈ " + logSuccessStyle.Render(clipValue(dec)))
		}
	}
	l.add(l.stamp() + logTimeStyle.Render(fmt.Sprintf("%d digits in %s",
		res.DigitCount(), format.FormatExecutionDuration(msg.Result.Duration))))
}

// AddError logs a failed run.
func (l *LogsModel) AddError(msg ErrorMsg) {
	text := "evaluation failed"
	if msg.Err != nil {
		text = msg.Err.Error()
	}
	l.add("")
	l.add(l.stamp() + logErrorStyle.Render("Error: "+text))
	l.add(l.stamp() + logTimeStyle.Render("after "+format.FormatExecutionDuration(msg.Duration)))
}

// Reset clears the panel for a restarted run.
func (l *LogsModel) Reset() {
	l.entries = nil
	for i := range l.lastStep {
		l.lastStep[i] = -1
	}
	l.follow = true
	l.refresh()
}

// SetSize updates dimensions.
func (l *LogsModel) SetSize(w, h int) {
	l.width = w
	l.height = h
	l.viewport.Width = max(w-2, 0)
	l.viewport.Height = max(h-2, 0)
	l.refresh()
}

// Update forwards scroll keys to the viewport. Scrolling away from the
// bottom suspends follow mode; scrolling back re-enables it.
func (l *LogsModel) Update(msg tea.KeyMsg) {
	l.viewport, _ = l.viewport.Update(msg)
	l.follow = l.viewport.AtBottom()
}

// renderToHeight renders the panel at exactly h rows so the left column
// lines up with the actual height of the right column.
func (l *LogsModel) renderToHeight(h int) string {
	if h != l.height {
		l.SetSize(l.width, h)
	}
	return panelStyle.
		Width(max(l.width-2, 0)).
		Height(max(h-2, 0)).
		Render(l.viewport.View())
}

func (l *LogsModel) add(entry string) {
	l.entries = append(l.entries, entry)
	l.refresh()
}

func (l *LogsModel) refresh() {
	l.viewport.SetContent(strings.Join(l.entries, "\n"))
	if l.follow {
		l.viewport.GotoBottom()
	}
}

func (l *LogsModel) stamp() string {
	return logTimeStyle.Render(time.Now().Format("15:04:05")) + " "
}

// clipValue shortens a rendered value to its first and last digits.
// Values are ASCII, so byte slicing is safe.
func clipValue(s string) string {
	if len(s) <= logValueLimit {
		return s
	}
	edge := (logValueLimit - 3) / 2
	return s[:edge] + "..." + s[len(s)-edge:]
}
