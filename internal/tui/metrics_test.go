package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigcalc/internal/metrics"
)

func TestMetricsModel_UpdateMemStats(t *testing.T) {
	m := NewMetricsModel()

	m.UpdateMemStats(MemStatsMsg{
		Alloc:        50 << 20,
		HeapSys:      80 << 20,
		NumGC:        10,
		PauseTotalNs: 1_500_000,
		NumGoroutine: 8,
	})

	if m.alloc != 50<<20 || m.heapSys != 80<<20 {
		t.Errorf("heap fields = %d / %d, want %d / %d", m.alloc, m.heapSys, 50<<20, 80<<20)
	}
	if m.numGC != 10 || m.pauseTotalNs != 1_500_000 {
		t.Errorf("gc fields = %d / %d, want 10 / 1500000", m.numGC, m.pauseTotalNs)
	}
	if m.numGoroutine != 8 {
		t.Errorf("numGoroutine = %d, want 8", m.numGoroutine)
	}
}

func TestMetricsModel_UpdateProgress(t *testing.T) {
	t.Run("establishes a rate", func(t *testing.T) {
		m := NewMetricsModel()
		m.lastUpdate = time.Now().Add(-time.Second)

		m.UpdateProgress(0.5)

		if m.speed <= 0 {
			t.Error("no speed estimate after a forward sample")
		}
		if m.lastProgress != 0.5 {
			t.Errorf("lastProgress = %f, want 0.5", m.lastProgress)
		}
	})

	t.Run("smooths successive rates", func(t *testing.T) {
		m := NewMetricsModel()
		m.lastUpdate = time.Now().Add(-time.Second)
		m.UpdateProgress(0.3)
		first := m.speed

		m.lastUpdate = time.Now().Add(-500 * time.Millisecond)
		m.UpdateProgress(0.8)

		if m.speed <= 0 || m.speed == first {
			t.Errorf("speed = %f after a sample at a new rate, want a blended value above zero", m.speed)
		}
	})

	t.Run("drops samples arriving too fast", func(t *testing.T) {
		m := NewMetricsModel()
		m.UpdateProgress(0.5)

		if m.speed != 0 {
			t.Errorf("speed = %f from a sub-interval sample, want 0", m.speed)
		}
	})

	t.Run("ignores backward samples", func(t *testing.T) {
		m := NewMetricsModel()
		m.lastUpdate = time.Now().Add(-time.Second)
		m.lastProgress = 0.5

		m.UpdateProgress(0.5)

		if m.speed != 0 {
			t.Errorf("speed = %f without forward progress, want 0", m.speed)
		}
	})

	t.Run("survives a rapid sample burst", func(t *testing.T) {
		m := NewMetricsModel()
		for i := 1; i <= 200; i++ {
			m.lastUpdate = time.Now().Add(-100 * time.Millisecond)
			m.UpdateProgress(float64(i) / 200)
		}

		if m.speed <= 0 {
			t.Error("no speed estimate after a burst of samples")
		}
		if m.lastProgress != 1.0 {
			t.Errorf("lastProgress = %f, want 1.0", m.lastProgress)
		}
	})
}

func TestMetricsModel_SetSize(t *testing.T) {
	m := NewMetricsModel()
	m.SetSize(50, 20)

	if m.width != 50 || m.height != 20 {
		t.Errorf("size = %dx%d, want 50x20", m.width, m.height)
	}
}

func TestMetricsModel_View(t *testing.T) {
	m := NewMetricsModel()
	m.SetSize(80, 15)
	m.UpdateMemStats(MemStatsMsg{
		Alloc:        50 << 20,
		HeapSys:      80 << 20,
		NumGC:        10,
		PauseTotalNs: 1_500_000,
		NumGoroutine: 8,
	})

	view := m.View()
	for _, sub := range []string{"Heap:", "50.0 MiB / 80.0 MiB", "GC:", "10 (1.5ms)", "Speed:", "Goroutines:"} {
		if !strings.Contains(view, sub) {
			t.Errorf("view missing %q", sub)
		}
	}
}

func TestMetricsModel_View_WithIndicators(t *testing.T) {
	m := NewMetricsModel()
	m.SetSize(80, 15)

	m.UpdateIndicators(&metrics.Indicators{
		ResultDigits:    42,
		DigitsPerSecond: 1234,
		Tokens:          7,
		TokensPerSecond: 3.5,
		IsInteger:       true,
	})

	view := m.View()
	for _, sub := range []string{"Digits/s:", "Tokens:", "7 (3.5/s)", "Digits:", "42", "Form:", "integer"} {
		if !strings.Contains(view, sub) {
			t.Errorf("view missing %q", sub)
		}
	}
}

func TestMetricsModel_View_FractionForm(t *testing.T) {
	m := NewMetricsModel()
	m.SetSize(80, 15)
	m.UpdateIndicators(&metrics.Indicators{ResultDigits: 3, IsInteger: false})

	if view := m.View(); !strings.Contains(view, "fraction") {
		t.Error("view does not report the fraction form")
	}
}

func TestMetricCell(t *testing.T) {
	cell := metricCell("Heap:", "1.0 GiB", 30)

	if !strings.Contains(cell, "Heap:") || !strings.Contains(cell, "1.0 GiB") {
		t.Errorf("cell %q missing label or value", cell)
	}
	if w := lipgloss.Width(cell); w < 30 {
		t.Errorf("cell width = %d, want at least 30", w)
	}
}
