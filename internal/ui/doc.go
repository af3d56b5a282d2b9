// Package ui holds the color themes every presentation surface shares.
// The CLI, the REPL, the calibration report and the TUI all take their
// ANSI codes from the active theme, so engine output and error text stay
// consistently styled and NO_COLOR handling lives in one place.
package ui
