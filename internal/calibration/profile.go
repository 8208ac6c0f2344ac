package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/agbru/einteger"
)

const (
	// CurrentProfileVersion is bumped whenever the profile layout or the
	// meaning of a threshold changes.
	CurrentProfileVersion = 1
	// DefaultProfileFileName is created in the user's home directory.
	DefaultProfileFileName = ".eintcalc_calibration.json"
	// MaxProfileAge is how long a cached profile is trusted.
	MaxProfileAge = 30 * 24 * time.Hour
)

// CalibrationProfile records measured thresholds together with the
// machine they were measured on.
type CalibrationProfile struct {
	ProfileVersion  int                 `json:"profile_version"`
	CalibratedAt    time.Time           `json:"calibrated_at"`
	NumCPU          int                 `json:"num_cpu"`
	GOARCH          string              `json:"goarch"`
	GOOS            string              `json:"goos"`
	GoVersion       string              `json:"go_version"`
	WordSize        int                 `json:"word_size"`
	CPUFeatures     []string            `json:"cpu_features"`
	Thresholds      einteger.Thresholds `json:"thresholds"`
	CalibrationTime string              `json:"calibration_time"`
}

// NewProfile returns a profile describing the current machine with the
// engine's default thresholds.
func NewProfile() *CalibrationProfile {
	return &CalibrationProfile{
		ProfileVersion: CurrentProfileVersion,
		CalibratedAt:   time.Now(),
		NumCPU:         runtime.NumCPU(),
		GOARCH:         runtime.GOARCH,
		GOOS:           runtime.GOOS,
		GoVersion:      runtime.Version(),
		WordSize:       32 << (^uint(0) >> 63),
		CPUFeatures:    CPUFeatures(),
		Thresholds:     einteger.DefaultThresholds(),
	}
}

// IsValid reports whether p was measured on a machine like this one and
// holds usable thresholds.
func (p *CalibrationProfile) IsValid() bool {
	if p == nil {
		return false
	}
	return p.ProfileVersion == CurrentProfileVersion &&
		p.GOARCH == runtime.GOARCH &&
		p.WordSize == 32<<(^uint(0)>>63) &&
		slices.Equal(p.CPUFeatures, CPUFeatures()) &&
		p.Thresholds.Validate() == nil
}

// IsStale reports whether p is older than maxAge.
func (p *CalibrationProfile) IsStale(maxAge time.Duration) bool {
	return p == nil || time.Since(p.CalibratedAt) > maxAge
}

func (p *CalibrationProfile) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Calibration profile v%d (%s)\n", p.ProfileVersion, p.CalibratedAt.Format(time.RFC3339))
	fmt.Fprintf(&sb, "  machine:    %s/%s, %d CPUs, %d-bit, %s\n", p.GOOS, p.GOARCH, p.NumCPU, p.WordSize, p.GoVersion)
	fmt.Fprintf(&sb, "  features:   %s\n", strings.Join(p.CPUFeatures, " "))
	fmt.Fprintf(&sb, "  thresholds: %s\n", p.Thresholds)
	if p.CalibrationTime != "" {
		fmt.Fprintf(&sb, "  measured in %s\n", p.CalibrationTime)
	}
	return sb.String()
}

// SaveProfile writes p as indented JSON, creating parent directories.
func (p *CalibrationProfile) SaveProfile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create profile directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}

func loadProfile(path string) (*CalibrationProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p CalibrationProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", path, err)
	}
	return &p, nil
}

// LoadOrCreateProfile loads the profile at path, or returns a fresh one
// and false when it is missing, unreadable, invalid or stale.
func LoadOrCreateProfile(path string) (*CalibrationProfile, bool) {
	p, err := loadProfile(path)
	if err != nil || !p.IsValid() || p.IsStale(MaxProfileAge) {
		return NewProfile(), false
	}
	return p, true
}

// GetDefaultProfilePath returns the profile path in the home directory,
// or in the working directory when the home directory is unknown.
func GetDefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultProfileFileName
	}
	return filepath.Join(home, DefaultProfileFileName)
}
