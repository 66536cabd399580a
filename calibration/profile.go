package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/sp301415/ringo-modpoly/conv"
)

// CurrentProfileVersion is the version of the profile format.
const CurrentProfileVersion = 1

// DefaultProfileFileName is the default file name of a saved Profile.
const DefaultProfileFileName = "modpoly_calibration.json"

// Profile is a calibration result together with the machine it was measured on.
type Profile struct {
	NumCPU    int    `json:"num_cpu"`
	GOARCH    string `json:"goarch"`
	GOOS      string `json:"goos"`
	GoVersion string `json:"go_version"`

	Threshold    int           `json:"threshold"`
	Measurements []Measurement `json:"measurements"`

	CalibratedAt   time.Time `json:"calibrated_at"`
	ProfileVersion int       `json:"profile_version"`
}

// NewProfile creates a new Profile of r on the current machine.
func NewProfile(r Result) *Profile {
	return &Profile{
		NumCPU:    runtime.NumCPU(),
		GOARCH:    runtime.GOARCH,
		GOOS:      runtime.GOOS,
		GoVersion: runtime.Version(),

		Threshold:    r.Threshold,
		Measurements: r.Measurements,

		CalibratedAt:   time.Now(),
		ProfileVersion: CurrentProfileVersion,
	}
}

// IsValid reports whether p was measured on a machine like this one.
func (p *Profile) IsValid() bool {
	if p == nil {
		return false
	}
	return p.ProfileVersion == CurrentProfileVersion &&
		p.NumCPU == runtime.NumCPU() &&
		p.GOARCH == runtime.GOARCH &&
		p.Threshold >= 0
}

// EngineOptions returns the [conv.Option] applying the threshold of p.
// If p is not valid on this machine, it returns nil.
func (p *Profile) EngineOptions() []conv.Option {
	if !p.IsValid() {
		return nil
	}
	return []conv.Option{conv.WithThreshold(p.Threshold)}
}

// SaveProfile writes p to path as JSON.
func (p *Profile) SaveProfile(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("calibration: marshal profile: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("calibration: write profile: %w", err)
	}
	return nil
}

// LoadProfile reads a Profile saved by [Profile.SaveProfile].
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("calibration: read profile: %w", err)
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("calibration: parse profile: %w", err)
	}
	return &p, nil
}

// LoadEngineOptions loads the profile at path and returns its [Profile.EngineOptions].
// It returns false if the profile is missing, unreadable or not valid on this machine.
func LoadEngineOptions(path string) ([]conv.Option, bool) {
	p, err := LoadProfile(path)
	if err != nil || !p.IsValid() {
		return nil, false
	}
	return p.EngineOptions(), true
}
