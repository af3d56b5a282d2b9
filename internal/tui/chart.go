package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/bigcalc/internal/format"
)

// Chart panel geometry.
const (
	// sparklineWidth is the column budget reserved next to each sparkline
	// for its label, the current value and panel padding.
	sparklineWidth = 17
	// sparklineMinHeight is the panel height below which the CPU and MEM
	// sparklines are dropped to leave room for the progress display.
	sparklineMinHeight = 10
	// minBarWidth is the narrowest progress bar worth drawing.
	minBarWidth = 5
	// defaultHistorySize holds samples arriving before the first
	// WindowSizeMsg resizes the buffers.
	defaultHistorySize = 64
)

// ChartModel displays the aggregated progress bar, its history as a
// braille chart, and system resource sparklines.
type ChartModel struct {
	averageProgress float64
	eta             time.Duration
	done            bool
	total           time.Duration

	progressHistory *RingBuffer
	cpuHistory      *RingBuffer
	memHistory      *RingBuffer

	width  int
	height int
}

// NewChartModel creates a new chart panel.
func NewChartModel() ChartModel {
	return ChartModel{
		progressHistory: NewRingBuffer(defaultHistorySize),
		cpuHistory:      NewRingBuffer(defaultHistorySize),
		memHistory:      NewRingBuffer(defaultHistorySize),
	}
}

// SetSize updates dimensions and resizes the history buffers so the
// sparklines and the braille chart fill the available width.
func (c *ChartModel) SetSize(w, h int) {
	c.width = w
	c.height = h
	c.cpuHistory.Resize(w - sparklineWidth)
	c.memHistory.Resize(w - sparklineWidth)
	// Braille cells pack two samples per character column.
	c.progressHistory.Resize((w - 6) * 2)
}

// AddDataPoint records one aggregated progress update. The raw update
// value feeds the history chart while the average drives the bar.
func (c *ChartModel) AddDataPoint(value, avgProgress float64, eta time.Duration) {
	c.averageProgress = avgProgress
	c.eta = eta
	c.progressHistory.Push(value * 100)
}

// UpdateSysStats records one system-wide CPU and memory sample.
func (c *ChartModel) UpdateSysStats(cpu, mem float64) {
	c.cpuHistory.Push(cpu)
	c.memHistory.Push(mem)
}

// SetDone freezes the panel, replacing the ETA with the total duration.
func (c *ChartModel) SetDone(total time.Duration) {
	c.done = true
	c.total = total
}

// Reset clears all recorded data.
func (c *ChartModel) Reset() {
	c.averageProgress = 0
	c.eta = 0
	c.done = false
	c.total = 0
	c.progressHistory.Reset()
	c.cpuHistory.Reset()
	c.memHistory.Reset()
}

// renderProgressBar renders the aggregated progress as a block bar with
// a trailing percentage, or "" when the panel is too narrow for one.
func (c ChartModel) renderProgressBar() string {
	barWidth := c.width - 12
	if barWidth < minBarWidth {
		return ""
	}
	filled := int(c.averageProgress * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	bar := chartBarStyle.Render(strings.Repeat("█", filled)) +
		chartEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
	return fmt.Sprintf("%s %5.1f%%", bar, c.averageProgress*100)
}

// View renders the chart panel.
func (c ChartModel) View() string {
	rows := []string{" " + titleStyle.Render("Progress Chart")}

	if bar := c.renderProgressBar(); bar != "" {
		rows = append(rows, " "+bar)
	}
	if c.done {
		rows = append(rows, " "+metricLabelStyle.Render("Total:")+" "+
			metricValueStyle.Render(format.FormatExecutionDuration(c.total)))
	} else {
		rows = append(rows, " "+metricLabelStyle.Render("ETA:")+" "+
			metricValueStyle.Render(format.FormatETA(c.eta)))
	}

	showSparklines := c.height >= sparklineMinHeight && c.width > sparklineWidth
	sparkRows := 0
	if showSparklines {
		sparkRows = 2
	}

	inner := c.height - 2
	if inner < 0 {
		inner = 0
	}
	if n := inner - len(rows) - sparkRows; n > 0 && c.width > 6 {
		for _, line := range RenderBrailleChart(c.progressHistory.Slice(), c.width-6, n) {
			rows = append(rows, " "+chartBarStyle.Render(line))
		}
	}

	if showSparklines {
		rows = append(rows,
			fmt.Sprintf(" %s %s %5.1f%%",
				cpuSparklineStyle.Render("CPU"),
				cpuSparklineStyle.Render(RenderSparkline(c.cpuHistory.Slice())),
				c.cpuHistory.Last()),
			fmt.Sprintf(" %s %s %5.1f%%",
				memSparklineStyle.Render("MEM"),
				memSparklineStyle.Render(RenderSparkline(c.memHistory.Slice())),
				c.memHistory.Last()),
		)
	}

	return panelStyle.
		Width(c.width - 2).
		Height(c.height - 2).
		Render(strings.Join(rows, "\n"))
}
