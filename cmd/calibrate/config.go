package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sp301415/ringo-modpoly/calibration"
)

// EnvPrefix prefixes every environment variable read by the CLI.
const EnvPrefix = "MODPOLY_"

// appConfig is the configuration of the calibrate command.
type appConfig struct {
	calibration.Config

	ProfilePath string
	ChartPath   string
	Verbose     bool
}

// sizesFlag parses a comma separated list of sizes.
type sizesFlag []int

func (s *sizesFlag) String() string {
	parts := make([]string, len(*s))
	for i, n := range *s {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

func (s *sizesFlag) Set(v string) error {
	sizes, err := parseSizes(v)
	if err != nil {
		return err
	}
	*s = sizes
	return nil
}

func parseSizes(v string) ([]int, error) {
	var sizes []int
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid size %q: %w", part, err)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

// parseConfig parses args into an appConfig.
// Flags set on the command line take priority over environment variables,
// which take priority over defaults.
func parseConfig(programName string, args []string, errorWriter io.Writer) (appConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := appConfig{
		Config:      calibration.DefaultConfig(),
		ProfilePath: calibration.DefaultProfileFileName,
	}

	sizes := sizesFlag(config.Sizes)
	fs.Var(&sizes, "sizes", "comma separated ring moduli to measure")
	fs.IntVar(&config.Iterations, "iterations", config.Iterations, "products timed per size and algorithm")
	fs.DurationVar(&config.Timeout, "timeout", config.Timeout, "maximum duration of the calibration")
	fs.StringVar(&config.Seed, "seed", config.Seed, "seed of the random operands")
	fs.StringVar(&config.ProfilePath, "profile", config.ProfilePath, "path of the calibration profile to write (empty to skip)")
	fs.StringVar(&config.ChartPath, "chart", "", "path of the HTML chart to write (empty to skip)")
	fs.BoolVar(&config.Verbose, "v", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		return appConfig{}, err
	}
	config.Sizes = sizes

	if err := applyEnvOverrides(&config, fs); err != nil {
		return appConfig{}, err
	}

	if err := config.Validate(); err != nil {
		return appConfig{}, err
	}
	return config, nil
}

// isFlagSet reports whether the flag name was set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func lookupEnv(key string) (string, bool) {
	val := os.Getenv(EnvPrefix + key)
	return val, val != ""
}

func applyEnvOverrides(config *appConfig, fs *flag.FlagSet) error {
	if val, ok := lookupEnv("SIZES"); ok && !isFlagSet(fs, "sizes") {
		sizes, err := parseSizes(val)
		if err != nil {
			return fmt.Errorf("%sSIZES: %w", EnvPrefix, err)
		}
		config.Sizes = sizes
	}

	if val, ok := lookupEnv("ITERATIONS"); ok && !isFlagSet(fs, "iterations") {
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("%sITERATIONS: %w", EnvPrefix, err)
		}
		config.Iterations = n
	}

	if val, ok := lookupEnv("TIMEOUT"); ok && !isFlagSet(fs, "timeout") {
		d, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("%sTIMEOUT: %w", EnvPrefix, err)
		}
		config.Timeout = d
	}

	if val, ok := lookupEnv("SEED"); ok && !isFlagSet(fs, "seed") {
		config.Seed = val
	}
	if val, ok := lookupEnv("PROFILE"); ok && !isFlagSet(fs, "profile") {
		config.ProfilePath = val
	}
	if val, ok := lookupEnv("CHART"); ok && !isFlagSet(fs, "chart") {
		config.ChartPath = val
	}

	if val, ok := lookupEnv("VERBOSE"); ok && !isFlagSet(fs, "v") {
		switch strings.ToLower(val) {
		case "true", "1", "yes":
			config.Verbose = true
		case "false", "0", "no":
			config.Verbose = false
		}
	}
	return nil
}
