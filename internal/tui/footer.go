package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// FooterModel renders the bottom bar: run status and key help.
type FooterModel struct {
	help   help.Model
	keymap KeyMap
	width  int
	paused bool
	done   bool
	failed bool
}

// NewFooterModel creates a new footer.
func NewFooterModel() FooterModel {
	h := help.New()
	h.Styles.ShortKey = footerKeyStyle
	h.Styles.ShortDesc = footerDescStyle
	h.Styles.ShortSeparator = footerDescStyle
	return FooterModel{
		help:   h,
		keymap: DefaultKeyMap(),
	}
}

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) {
	f.width = w
	f.help.Width = w
}

// SetPaused toggles the paused status indicator.
func (f *FooterModel) SetPaused(paused bool) {
	f.paused = paused
}

// SetDone toggles the done status indicator.
func (f *FooterModel) SetDone(done bool) {
	f.done = done
}

// SetError marks the run as failed.
func (f *FooterModel) SetError(failed bool) {
	f.failed = failed
}

// View renders the footer.
func (f FooterModel) View() string {
	var status string
	switch {
	case f.failed:
		status = statusErrorStyle.Render("✗ ERROR")
	case f.done:
		status = statusDoneStyle.Render("✓ DONE")
	case f.paused:
		status = statusPausedStyle.Render("⏸ PAUSED")
	default:
		status = statusRunningStyle.Render("● RUNNING")
	}

	row := " " + status + "   " + f.help.View(f.keymap)

	gap := f.width - lipgloss.Width(row)
	if gap < 0 {
		gap = 0
	}
	return row + spaces(gap)
}
