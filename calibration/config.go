// Package calibration measures the crossover between direct and FFT convolution
// on the current machine.
package calibration

import (
	"fmt"
	"time"
)

// Config configures a calibration run.
type Config struct {
	// Sizes are the ring moduli to measure.
	Sizes []int
	// Iterations is the number of products timed per size and algorithm.
	Iterations int
	// Timeout bounds the whole run. Zero means no timeout.
	Timeout time.Duration
	// Seed seeds the random operands.
	Seed string
}

// DefaultSizes are the ring moduli measured by default.
// They bracket the default threshold of the convolution engine.
var DefaultSizes = []int{16, 32, 64, 96, 128, 160, 192, 256, 384, 512, 1024}

// DefaultConfig returns the default Config.
func DefaultConfig() Config {
	return Config{
		Sizes:      append([]int(nil), DefaultSizes...),
		Iterations: 5,
		Timeout:    2 * time.Minute,
		Seed:       "modpoly",
	}
}

// ConfigError is returned when a Config is invalid.
type ConfigError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e ConfigError) Error() string {
	return fmt.Sprintf("calibration: invalid %s: %s", e.Field, e.Reason)
}

// Validate checks that c can be run.
func (c Config) Validate() error {
	if len(c.Sizes) == 0 {
		return ConfigError{Field: "sizes", Reason: "empty"}
	}
	for _, n := range c.Sizes {
		if n <= 0 {
			return ConfigError{Field: "sizes", Reason: fmt.Sprintf("size %d not positive", n)}
		}
	}
	if c.Iterations <= 0 {
		return ConfigError{Field: "iterations", Reason: fmt.Sprintf("%d not positive", c.Iterations)}
	}
	if c.Timeout < 0 {
		return ConfigError{Field: "timeout", Reason: "negative"}
	}
	return nil
}
