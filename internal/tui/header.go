package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigcalc/internal/format"
)

// HeaderModel renders the dashboard title bar with the running elapsed
// time. SetDone pins the timer so the final reading survives redraws.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	width     int
}

// NewHeaderModel creates a header stamped with the build version.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{startTime: time.Now(), version: version}
}

// SetDone freezes the elapsed timer.
func (h *HeaderModel) SetDone() {
	h.endTime = time.Now()
}

// Reset restarts the elapsed timer.
func (h *HeaderModel) Reset() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// elapsed returns the live duration, or the frozen one after SetDone.
func (h HeaderModel) elapsed() time.Duration {
	if h.endTime.IsZero() {
		return time.Since(h.startTime)
	}
	return h.endTime.Sub(h.startTime)
}

// View renders the header row padded to the full width.
func (h HeaderModel) View() string {
	title := "BigCalc Monitor"
	if h.version != "" && h.version != "dev" {
		title += " " + h.version
	}

	left := titleStyle.Render(title) +
		versionStyle.Render(" | ") +
		elapsedStyle.Render("Elapsed: "+format.FormatExecutionDuration(h.elapsed()))

	inner := h.width - 2
	if inner < 0 {
		inner = 0
	}
	return headerStyle.Width(h.width).Render(left + spaces(inner-lipgloss.Width(left)))
}

// spaces returns n space characters, or "" for n <= 0.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
