package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/metrics"
)

// speedSmoothing is the EMA weight of the previous speed estimate when a
// new instantaneous reading arrives.
const speedSmoothing = 0.7

// minSampleInterval drops progress samples arriving faster than the
// display refreshes, which would make the rate estimate jitter.
const minSampleInterval = 50 * time.Millisecond

// MetricsModel is the dashboard panel showing runtime statistics next to
// the live evaluation indicators.
type MetricsModel struct {
	alloc        uint64
	heapSys      uint64
	numGC        uint32
	pauseTotalNs uint64
	numGoroutine int

	speed        float64 // progress per second, smoothed
	lastProgress float64
	lastUpdate   time.Time

	indicators *metrics.Indicators

	width  int
	height int
}

// NewMetricsModel creates a new metrics panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{lastUpdate: time.Now()}
}

// SetSize updates dimensions.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// UpdateMemStats records one memory sampler reading.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.alloc = msg.Alloc
	m.heapSys = msg.HeapSys
	m.numGC = msg.NumGC
	m.pauseTotalNs = msg.PauseTotalNs
	m.numGoroutine = msg.NumGoroutine
}

// UpdateProgress feeds one progress reading into the smoothed speed
// estimate. Samples arriving within minSampleInterval of the previous
// one are dropped, and samples that do not move forward leave the
// estimate alone.
func (m *MetricsModel) UpdateProgress(progress float64) {
	now := time.Now()
	dt := now.Sub(m.lastUpdate).Seconds()
	if dt <= minSampleInterval.Seconds() {
		return
	}
	if dp := progress - m.lastProgress; dp > 0 {
		instant := dp / dt
		if m.speed > 0 {
			m.speed = speedSmoothing*m.speed + (1-speedSmoothing)*instant
		} else {
			m.speed = instant
		}
	}
	m.lastProgress = progress
	m.lastUpdate = now
}

// UpdateIndicators stores the evaluation indicators. During a run these
// are live estimates; the final figures replace them on completion.
func (m *MetricsModel) UpdateIndicators(ind *metrics.Indicators) {
	m.indicators = ind
}

// View renders the metrics panel.
func (m MetricsModel) View() string {
	rows := []string{m.topLine()}

	colWidth := (m.width - 6) / 2
	left := []string{
		metricCell("Speed:", format.FormatETA(time.Duration(float64(time.Second)/max(m.speed, 0.001)))+"/eval", colWidth),
	}
	right := []string{
		metricCell("Goroutines:", fmt.Sprintf("%d", m.numGoroutine), colWidth),
	}

	if ind := m.indicators; ind != nil {
		form := "fraction"
		if ind.IsInteger {
			form = "integer"
		}
		left = append(left,
			metricCell("Digits/s:", metrics.FormatDigitsPerSecond(ind.DigitsPerSecond), colWidth),
			metricCell("Tokens:", fmt.Sprintf("%d (%.1f/s)", ind.Tokens, ind.TokensPerSecond), colWidth),
		)
		right = append(right,
			metricCell("Digits:", fmt.Sprintf("%d", ind.ResultDigits), colWidth),
			metricCell("Form:", form, colWidth),
		)
	}

	for i := range left {
		rows = append(rows, left[i]+right[i])
	}

	return panelStyle.
		Width(m.width - 2).
		Height(m.height - 2).
		Render(strings.Join(rows, "\n"))
}

// topLine renders the heap and GC summary as one compact line.
func (m MetricsModel) topLine() string {
	heap := metricValueStyle.Render(format.FormatBytes(m.alloc) + " / " + format.FormatBytes(m.heapSys))
	gc := metricValueStyle.Render(fmt.Sprintf("%d (%.1fms)", m.numGC, float64(m.pauseTotalNs)/1e6))
	return "  " + metricLabelStyle.Render("Heap:") + " " + heap +
		metricLabelStyle.Render(" | ") +
		metricLabelStyle.Render("GC:") + " " + gc
}

// metricCell renders one "label value" cell padded to the column width.
// Padding uses the ANSI-aware width so styled cells align.
func metricCell(label, value string, colWidth int) string {
	cell := " " + metricLabelStyle.Render(fmt.Sprintf("%-12s", label)) + " " + metricValueStyle.Render(value)
	if visible := lipgloss.Width(cell); visible < colWidth {
		cell += strings.Repeat(" ", colWidth-visible)
	}
	return cell
}
