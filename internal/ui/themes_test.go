package ui

import (
	"strings"
	"testing"
)

func restoreTheme(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { SetTheme("dark") })
}

func TestSetTheme(t *testing.T) {
	restoreTheme(t)

	tests := []struct {
		name     string
		wantName string
	}{
		{"dark", "dark"},
		{"light", "light"},
		{"orange", "orange"},
		{"none", "none"},
		{"no-such-theme", "dark"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetTheme(tt.name)
			if got := GetCurrentTheme().Name; got != tt.wantName {
				t.Errorf("SetTheme(%q) activated %q, want %q", tt.name, got, tt.wantName)
			}
		})
	}
}

func TestInitTheme_FlagWins(t *testing.T) {
	restoreTheme(t)

	InitTheme(true)
	theme := GetCurrentTheme()
	if theme.Name != "none" {
		t.Fatalf("theme = %q, want none", theme.Name)
	}
	if ColorRed() != "" || ColorReset() != "" {
		t.Error("no-color theme still emits escape codes")
	}
}

func TestInitTheme_NoColorEnv(t *testing.T) {
	restoreTheme(t)

	t.Setenv("NO_COLOR", "1")
	InitTheme(false)
	if got := GetCurrentTheme().Name; got != "none" {
		t.Errorf("theme = %q, want none when NO_COLOR is set", got)
	}
}

func TestDarkThemeEscapes(t *testing.T) {
	restoreTheme(t)

	SetTheme("dark")
	theme := GetCurrentTheme()
	if !strings.HasPrefix(theme.Error, "\033[") {
		t.Errorf("dark theme error color is not an escape code: %q", theme.Error)
	}
	if theme.Reset != "\033[0m" {
		t.Errorf("reset = %q, want \\033[0m", theme.Reset)
	}
}

func TestColorAccessorsFollowActiveTheme(t *testing.T) {
	restoreTheme(t)

	SetTheme("dark")
	if got := ColorYellow(); got != DarkTheme.Warning {
		t.Errorf("ColorYellow() = %q, want dark warning %q", got, DarkTheme.Warning)
	}

	SetTheme("light")
	if got := ColorYellow(); got != LightTheme.Warning {
		t.Errorf("ColorYellow() = %q, want light warning %q", got, LightTheme.Warning)
	}
}

func TestGetCurrentTUITheme(t *testing.T) {
	restoreTheme(t)

	SetTheme("none")
	if got := GetCurrentTUITheme(); got != NoColorTUITheme {
		t.Error("no-color theme did not select the plain TUI palette")
	}

	SetTheme("orange")
	if got := GetCurrentTUITheme(); got != DarkTUITheme {
		t.Error("colored theme did not select the dark TUI palette")
	}
}
