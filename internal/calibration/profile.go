package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// CurrentProfileVersion identifies the profile schema. Profiles written by
// an incompatible version are discarded and recalibrated.
const CurrentProfileVersion = 1

// DefaultProfileFileName is the file name used under the user config
// directory when no explicit profile path is given.
const DefaultProfileFileName = "calibration.json"

// CalibrationProfile persists a measured FFT crossover together with the
// hardware fingerprint it was measured on. A profile is only applied when
// the fingerprint still matches the running machine.
type CalibrationProfile struct {
	ProfileVersion int       `json:"profile_version"`
	NumCPU         int       `json:"num_cpu"`
	GOARCH         string    `json:"goarch"`
	GOOS           string    `json:"goos"`
	GoVersion      string    `json:"go_version"`
	WordSize       int       `json:"word_size"`
	CalibratedAt   time.Time `json:"calibrated_at"`

	// OptimalFFTThreshold is the measured schoolbook/FFT crossover in limbs.
	OptimalFFTThreshold int `json:"optimal_fft_threshold"`

	// CalibrationDigits is the largest operand size, in decimal digits,
	// exercised during the measurement.
	CalibrationDigits int `json:"calibration_digits"`

	// CalibrationTime records how long the measurement took.
	CalibrationTime string `json:"calibration_time"`
}

// NewProfile creates a profile stamped with the current hardware
// fingerprint and time.
func NewProfile() *CalibrationProfile {
	return &CalibrationProfile{
		ProfileVersion: CurrentProfileVersion,
		NumCPU:         runtime.NumCPU(),
		GOARCH:         runtime.GOARCH,
		GOOS:           runtime.GOOS,
		GoVersion:      runtime.Version(),
		WordSize:       32 << (^uint(0) >> 63),
		CalibratedAt:   time.Now(),
	}
}

// GetDefaultProfilePath returns the profile location under the user config
// directory, e.g. ~/.config/bigcalc/calibration.json on Linux. When the
// config directory cannot be determined it falls back to the working
// directory.
func GetDefaultProfilePath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "bigcalc", DefaultProfileFileName)
	}
	return DefaultProfileFileName
}

// IsValid reports whether the profile was produced by this schema version
// on hardware matching the running machine.
func (p *CalibrationProfile) IsValid() bool {
	if p == nil {
		return false
	}
	return p.ProfileVersion == CurrentProfileVersion &&
		p.NumCPU == runtime.NumCPU() &&
		p.GOARCH == runtime.GOARCH &&
		p.GOOS == runtime.GOOS &&
		p.WordSize == 32<<(^uint(0)>>63)
}

// IsStale reports whether the profile is older than maxAge. Nil profiles
// are stale.
func (p *CalibrationProfile) IsStale(maxAge time.Duration) bool {
	if p == nil {
		return true
	}
	return time.Since(p.CalibratedAt) > maxAge
}

// SaveProfile writes the profile as indented JSON, creating parent
// directories as needed.
func (p *CalibrationProfile) SaveProfile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating profile directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}
	return nil
}

// loadProfile reads and decodes a profile file. It does not validate the
// fingerprint; callers decide what to do with mismatching profiles.
func loadProfile(path string) (*CalibrationProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	var p CalibrationProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding profile: %w", err)
	}
	return &p, nil
}

// LoadOrCreateProfile loads a valid profile from path, or creates a fresh
// one when the file is missing, unreadable or was measured on different
// hardware. The boolean reports whether an existing profile was loaded.
func LoadOrCreateProfile(path string) (*CalibrationProfile, bool) {
	p, err := loadProfile(path)
	if err != nil || !p.IsValid() {
		return NewProfile(), false
	}
	return p, true
}

// String renders the profile for log and report output.
func (p *CalibrationProfile) String() string {
	return fmt.Sprintf("calibration profile v%d: FFT threshold %d limbs (%d digits tested in %s) on %s/%s, %d CPUs, %d-bit, %s",
		p.ProfileVersion, p.OptimalFFTThreshold, p.CalibrationDigits, p.CalibrationTime,
		p.GOOS, p.GOARCH, p.NumCPU, p.WordSize, p.GoVersion)
}
