package calibration

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestNewProfile(t *testing.T) {
	t.Parallel()
	p := NewProfile()

	if p.ProfileVersion != CurrentProfileVersion {
		t.Errorf("ProfileVersion = %d, want %d", p.ProfileVersion, CurrentProfileVersion)
	}
	if p.NumCPU != runtime.NumCPU() || p.GOARCH != runtime.GOARCH || p.GOOS != runtime.GOOS {
		t.Errorf("fingerprint = %d/%s/%s, want %d/%s/%s",
			p.NumCPU, p.GOARCH, p.GOOS, runtime.NumCPU(), runtime.GOARCH, runtime.GOOS)
	}
	if p.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %s, want %s", p.GoVersion, runtime.Version())
	}
	if want := 32 << (^uint(0) >> 63); p.WordSize != want {
		t.Errorf("WordSize = %d, want %d", p.WordSize, want)
	}
	if p.CalibratedAt.IsZero() {
		t.Error("CalibratedAt is zero")
	}
}

func TestProfile_SaveLoadRoundTrip(t *testing.T) {
	t.Parallel()
	// The path includes a directory that does not exist yet; SaveProfile
	// must create it.
	path := filepath.Join(t.TempDir(), "bigcalc", "calibration.json")

	saved := NewProfile()
	saved.OptimalFFTThreshold = 48
	saved.CalibrationDigits = 500_000
	saved.CalibrationTime = "1m30s"

	if err := saved.SaveProfile(path); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	loaded, err := loadProfile(path)
	if err != nil {
		t.Fatalf("loadProfile: %v", err)
	}
	if loaded.OptimalFFTThreshold != 48 {
		t.Errorf("OptimalFFTThreshold = %d, want 48", loaded.OptimalFFTThreshold)
	}
	if loaded.CalibrationDigits != 500_000 {
		t.Errorf("CalibrationDigits = %d, want 500000", loaded.CalibrationDigits)
	}
	if loaded.CalibrationTime != "1m30s" {
		t.Errorf("CalibrationTime = %q, want 1m30s", loaded.CalibrationTime)
	}
	if loaded.NumCPU != saved.NumCPU {
		t.Errorf("NumCPU = %d, want %d", loaded.NumCPU, saved.NumCPU)
	}
}

func TestProfile_IsValid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		mutate func(*CalibrationProfile)
		want   bool
	}{
		{"fresh profile", func(*CalibrationProfile) {}, true},
		{"different CPU count", func(p *CalibrationProfile) { p.NumCPU++ }, false},
		{"different architecture", func(p *CalibrationProfile) { p.GOARCH = "mips64" }, false},
		{"different word size", func(p *CalibrationProfile) { p.WordSize /= 2 }, false},
		{"older schema", func(p *CalibrationProfile) { p.ProfileVersion = CurrentProfileVersion - 1 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProfile()
			tt.mutate(p)
			if got := p.IsValid(); got != tt.want {
				t.Errorf("IsValid = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("nil profile", func(t *testing.T) {
		var p *CalibrationProfile
		if p.IsValid() {
			t.Error("nil profile reported valid")
		}
	})
}

func TestProfile_IsStale(t *testing.T) {
	t.Parallel()
	p := NewProfile()
	if p.IsStale(time.Hour) {
		t.Error("fresh profile reported stale")
	}

	p.CalibratedAt = time.Now().Add(-25 * time.Hour)
	if !p.IsStale(24 * time.Hour) {
		t.Error("day-old profile reported fresh")
	}

	var nilProfile *CalibrationProfile
	if !nilProfile.IsStale(time.Hour) {
		t.Error("nil profile reported fresh")
	}
}

func TestProfile_String(t *testing.T) {
	t.Parallel()
	p := NewProfile()
	p.OptimalFFTThreshold = 48

	s := p.String()
	for _, want := range []string{"48", runtime.GOARCH, strconv.Itoa(runtime.NumCPU())} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}

func TestLoadProfile_Errors(t *testing.T) {
	t.Parallel()
	t.Run("missing file", func(t *testing.T) {
		if _, err := loadProfile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
			t.Error("want error for a missing file")
		}
	})

	t.Run("malformed JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.json")
		if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := loadProfile(path); err == nil {
			t.Error("want error for malformed JSON")
		}
	})
}

func TestLoadOrCreateProfile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "calibration.json")

	p, loaded := LoadOrCreateProfile(path)
	if loaded {
		t.Error("loaded = true before any profile was written")
	}
	if p == nil {
		t.Fatal("no profile returned for a missing file")
	}

	p.OptimalFFTThreshold = 96
	if err := p.SaveProfile(path); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	reloaded, loaded := LoadOrCreateProfile(path)
	if !loaded {
		t.Error("loaded = false for a saved valid profile")
	}
	if reloaded.OptimalFFTThreshold != 96 {
		t.Errorf("OptimalFFTThreshold = %d, want 96", reloaded.OptimalFFTThreshold)
	}
}

func TestLoadOrCreateProfile_RejectsForeignFingerprint(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "calibration.json")

	foreign := NewProfile()
	foreign.NumCPU++
	foreign.OptimalFFTThreshold = 96
	if err := foreign.SaveProfile(path); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	p, loaded := LoadOrCreateProfile(path)
	if loaded {
		t.Error("profile from different hardware was loaded")
	}
	if p.OptimalFFTThreshold == 96 {
		t.Error("foreign threshold survived the reload")
	}
}

func TestGetDefaultProfilePath(t *testing.T) {
	t.Parallel()
	path := GetDefaultProfilePath()
	if path == "" {
		t.Fatal("empty default path")
	}
	if filepath.Base(path) != DefaultProfileFileName {
		t.Errorf("path %q does not end in %q", path, DefaultProfileFileName)
	}
}
