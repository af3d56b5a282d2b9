package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is one named set of ANSI escape codes. Call sites resolve fields
// through the Color* accessors; an all-empty theme renders plain text.
type Theme struct {
	Name      string
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Info      string
	Bold      string
	Underline string
	Reset     string
}

// fg builds a 256-color foreground escape code.
func fg(code string) string { return "\033[38;5;" + code + "m" }

var (
	// DarkTheme suits dark terminal backgrounds and is the default.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   fg("39"),  // bright blue
		Secondary: fg("245"), // grey
		Success:   fg("82"),  // bright green
		Warning:   fg("220"), // yellow
		Error:     fg("196"), // red
		Info:      fg("141"), // purple
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// LightTheme darkens every color for light backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   fg("27"),  // dark blue
		Secondary: fg("240"), // dark grey
		Success:   fg("28"),  // dark green
		Warning:   fg("130"), // orange
		Error:     fg("124"), // dark red
		Info:      fg("54"),  // dark purple
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// OrangeTheme matches the dashboard's warm btop-style palette.
	OrangeTheme = Theme{
		Name:      "orange",
		Primary:   fg("208"), // orange
		Secondary: fg("245"), // grey
		Success:   fg("82"),  // bright green
		Warning:   fg("214"), // light orange
		Error:     fg("196"), // red
		Info:      fg("69"),  // blue
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme renders everything plain, for NO_COLOR and --no-color.
	NoColorTheme = Theme{Name: "none"}
)

// themes is the name registry SetTheme resolves against.
var themes = map[string]Theme{
	"dark":   DarkTheme,
	"light":  LightTheme,
	"orange": OrangeTheme,
	"none":   NoColorTheme,
}

var (
	themeMutex   sync.RWMutex
	currentTheme = DarkTheme
)

// TUITheme carries the lipgloss colors the dashboard styles draw from.
type TUITheme struct {
	Bg      lipgloss.TerminalColor
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
	Info    lipgloss.TerminalColor
}

var (
	// DarkTUITheme is the orange-dominant dashboard palette.
	DarkTUITheme = TUITheme{
		Bg:      lipgloss.Color("#000000"),
		Text:    lipgloss.Color("#E0E0E0"),
		Border:  lipgloss.Color("#FF6600"),
		Accent:  lipgloss.Color("#FF8C00"),
		Success: lipgloss.Color("#9ece6a"),
		Warning: lipgloss.Color("#FFB347"),
		Error:   lipgloss.Color("#FF4444"),
		Dim:     lipgloss.Color("#666666"),
		Info:    lipgloss.Color("#4488FF"),
	}

	// NoColorTUITheme leaves rendering to the terminal's defaults.
	NoColorTUITheme = TUITheme{
		Bg:      lipgloss.NoColor{},
		Text:    lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
		Info:    lipgloss.NoColor{},
	}
)

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// GetCurrentTUITheme returns the dashboard palette matching the active
// theme: plain when colors are off, the dark palette otherwise.
func GetCurrentTUITheme() TUITheme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	if currentTheme.Name == "none" {
		return NoColorTUITheme
	}
	return DarkTUITheme
}

// SetTheme activates the named theme. Unknown names fall back to dark.
func SetTheme(name string) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	t, ok := themes[name]
	if !ok {
		t = DarkTheme
	}
	currentTheme = t
}

// InitTheme picks the startup theme. The flag wins; otherwise any NO_COLOR
// value disables colors per no-color.org; otherwise dark.
func InitTheme(noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	if noColor {
		currentTheme = NoColorTheme
		return
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		currentTheme = NoColorTheme
		return
	}
	currentTheme = DarkTheme
}
