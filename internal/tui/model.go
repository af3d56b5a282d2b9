package tui

import (
	"context"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/sysmon"
)

// Dashboard layout.
const (
	headerHeight  = 1
	footerHeight  = 1
	minBodyHeight = 4
	// LogsPanelWidthPercent is the share of the terminal width given to
	// the log panel; the metrics and chart column takes the rest.
	LogsPanelWidthPercent = 60
	// MetricsPanelHeight is the compact metrics panel height. The chart
	// panel absorbs whatever body height remains.
	MetricsPanelHeight = 7
)

// refreshInterval paces the tick driving the memory and system samplers.
const refreshInterval = 500 * time.Millisecond

// ExecutionState carries the lifecycle of one evaluation run. The
// generation counter guards against messages from a cancelled run
// arriving after a restart.
type ExecutionState struct {
	ctx        context.Context
	cancel     context.CancelFunc
	engines    []calc.Engine
	generation uint64
	done       bool
	exitCode   int
}

// LayoutManager derives per-panel sizes from the terminal dimensions.
type LayoutManager struct {
	width  int
	height int
}

func (l LayoutManager) bodyHeight() int {
	if h := l.height - headerHeight - footerHeight; h >= minBodyHeight {
		return h
	}
	return minBodyHeight
}

func (l LayoutManager) logsWidth() int {
	return l.width * LogsPanelWidthPercent / 100
}

func (l LayoutManager) rightWidth() int {
	return l.width - l.logsWidth()
}

func (l LayoutManager) metricsHeight() int {
	if body := l.bodyHeight(); MetricsPanelHeight > body/2 {
		return body / 2
	}
	return MetricsPanelHeight
}

func (l LayoutManager) chartHeight() int {
	return l.bodyHeight() - l.metricsHeight()
}

// Model is the root bubbletea model wiring the five dashboard panels to
// the evaluation lifecycle.
type Model struct {
	header  HeaderModel
	logs    LogsModel
	metrics MetricsModel
	chart   ChartModel
	footer  FooterModel

	keymap KeyMap

	ExecutionState
	LayoutManager

	parentCtx context.Context
	config    config.AppConfig
	tokens    int
	ref       *programRef
	paused    bool
}

// NewModel creates the dashboard model for one evaluation run.
func NewModel(parentCtx context.Context, engines []calc.Engine, cfg config.AppConfig, version string) Model {
	names := make([]string, len(engines))
	for i, e := range engines {
		names[i] = e.Name()
	}

	logs := NewLogsModel(names)
	logs.AddExecutionConfig(cfg)

	ctx, cancel := context.WithCancel(parentCtx)
	return Model{
		header:  NewHeaderModel(version),
		logs:    logs,
		metrics: NewMetricsModel(),
		chart:   NewChartModel(),
		footer:  NewFooterModel(),
		keymap:  DefaultKeyMap(),
		ExecutionState: ExecutionState{
			ctx:      ctx,
			cancel:   cancel,
			engines:  engines,
			exitCode: apperrors.ExitSuccess,
		},
		parentCtx: parentCtx,
		config:    cfg,
		tokens:    len(strings.Fields(cfg.Expr)),
		ref:       &programRef{},
	}
}

// launchCmds starts the evaluation and the watchers that feed the
// dashboard, tagged with the current generation.
func (m Model) launchCmds() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		evaluateCmd(m.ref, m.ctx, m.engines, m.config, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return m.launchCmds()
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case ProgressMsg:
		if m.paused {
			return m, nil
		}
		m.logs.AddProgressEntry(msg)
		m.chart.AddDataPoint(msg.Value, msg.AverageProgress, msg.ETA)
		m.metrics.UpdateProgress(msg.AverageProgress)
		elapsed := time.Since(m.header.startTime)
		m.metrics.UpdateIndicators(metrics.ComputeLive(m.tokens, msg.AverageProgress, elapsed))
		return m, nil

	case ProgressDoneMsg:
		return m, nil

	case ComparisonResultsMsg:
		m.logs.AddResults(msg.Results)
		return m, nil

	case FinalResultMsg:
		m.logs.AddFinalResult(msg)
		if msg.Result.Err == nil {
			// Digit counting on a huge result is not free; keep it off
			// the update loop.
			return m, computeIndicatorsCmd(msg)
		}
		return m, nil

	case IndicatorsMsg:
		m.metrics.UpdateIndicators(msg.Indicators)
		return m, nil

	case ErrorMsg:
		m.logs.AddError(msg)
		m.footer.SetError(true)
		return m.finish(), nil

	case TickMsg:
		switch {
		case m.done:
			return m, nil
		case m.paused:
			return m, tickCmd()
		default:
			return m, tea.Batch(sampleMemStatsCmd(), sampleSysStatsCmd(), tickCmd())
		}

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.chart.UpdateSysStats(msg.CPUPercent, msg.MemPercent)
		return m, nil

	case EvaluationCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from a cancelled run
		}
		m.exitCode = msg.ExitCode
		m.chart.SetDone(time.Since(m.header.startTime))
		return m.finish(), nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		return m.finish(), tea.Quit
	}

	return m, nil
}

// finish marks the run done and freezes the header timer.
func (m Model) finish() Model {
	m.done = true
	m.header.SetDone()
	m.footer.SetDone(true)
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		m.footer.SetPaused(m.paused)
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		return m.restart()

	case key.Matches(msg, m.keymap.Up), key.Matches(msg, m.keymap.Down),
		key.Matches(msg, m.keymap.PageUp), key.Matches(msg, m.keymap.PageDown):
		m.logs.Update(msg)
		return m, nil
	}

	return m, nil
}

// restart cancels the current run and begins a fresh one under a new
// generation, resetting every panel.
func (m Model) restart() (tea.Model, tea.Cmd) {
	if m.cancel != nil {
		m.cancel()
	}
	m.generation++
	m.ctx, m.cancel = context.WithCancel(m.parentCtx)

	m.header.Reset()
	m.logs.Reset()
	m.logs.AddExecutionConfig(m.config)
	m.chart.Reset()
	m.metrics = NewMetricsModel()
	m.metrics.SetSize(m.rightWidth(), m.metricsHeight())
	m.footer.SetDone(false)
	m.footer.SetError(false)
	m.footer.SetPaused(false)
	m.done = false
	m.paused = false
	m.exitCode = apperrors.ExitSuccess

	return m, m.launchCmds()
}

// View renders the dashboard: header, log panel beside the metrics and
// chart column, footer.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	right := lipgloss.JoinVertical(lipgloss.Left, m.metrics.View(), m.chart.View())
	logs := m.logs.renderToHeight(lipgloss.Height(right))
	body := lipgloss.JoinHorizontal(lipgloss.Top, logs, right)

	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footer.View())
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.logs.SetSize(m.logsWidth(), m.bodyHeight())
	m.metrics.SetSize(m.rightWidth(), m.metricsHeight())
	m.chart.SetSize(m.rightWidth(), m.chartHeight())
}

// Run drives the dashboard over the given engines and returns the
// process exit code once the user quits or the run completes.
func Run(ctx context.Context, engines []calc.Engine, cfg config.AppConfig, version string) int {
	// Styles derive from the active color theme; rebuild them in case
	// the theme changed after package init.
	initTUIStyles()

	model := NewModel(ctx, engines, cfg, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Bridge goroutines need the program handle before the first Send.
	model.ref.SetProgram(p)

	final, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}
	if m, ok := final.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// evaluateCmd runs the full evaluation pipeline off the UI loop.
// Progress and results stream back through the bridge; the exit code
// arrives as an EvaluationCompleteMsg.
func evaluateCmd(ref *programRef, ctx context.Context, engines []calc.Engine, cfg config.AppConfig, gen uint64) tea.Cmd {
	return func() tea.Msg {
		reporter := &TUIProgressReporter{ref: ref}
		presenter := &TUIResultPresenter{ref: ref}

		results := orchestration.ExecuteEvaluations(ctx, engines, cfg.Expr, reporter, io.Discard)
		exitCode := orchestration.AnalyzeComparisonResults(results, orchestration.PresentationOptions{
			Expr:      cfg.Expr,
			Precision: cfg.Precision,
			Verbose:   cfg.Verbose,
			Details:   cfg.Details,
		}, presenter, presenter, io.Discard)

		return EvaluationCompleteMsg{ExitCode: exitCode, Generation: gen}
	}
}

// tickCmd schedules the next dashboard refresh.
func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleMemStatsCmd samples the Go heap for the metrics panel.
func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		snap := metrics.NewMemoryCollector().Snapshot()
		return MemStatsMsg{
			Alloc:        snap.HeapAlloc,
			HeapSys:      snap.HeapSys,
			NumGC:        snap.NumGC,
			PauseTotalNs: snap.PauseTotalNs,
			NumGoroutine: runtime.NumGoroutine(),
		}
	}
}

// sampleSysStatsCmd samples system-wide CPU and memory for the chart
// sparklines.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent}
	}
}

// computeIndicatorsCmd derives the final indicators off the UI loop;
// counting the digits of a very large result can take a while.
func computeIndicatorsCmd(msg FinalResultMsg) tea.Cmd {
	return func() tea.Msg {
		tokens := len(strings.Fields(msg.Expr))
		return IndicatorsMsg{Indicators: metrics.Compute(msg.Result.Result, tokens, msg.Result.Duration)}
	}
}

// watchContextCmd delivers a message when the run context ends, so an
// outside cancellation also quits the dashboard.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
