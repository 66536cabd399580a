// Command calibrate measures the crossover between direct and FFT
// ring multiplication and writes a calibration profile.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/briandowns/spinner"
	"github.com/rs/zerolog"
	"github.com/sp301415/ringo-modpoly/calibration"
)

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr))
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	config, err := parseConfig(args[0], args[1:], stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}

	logger := newLogger(stderr, config.Verbose)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	runner, err := calibration.NewRunner(config.Config, logger)
	if err != nil {
		logger.Error().Err(err).Msg("invalid configuration")
		return 2
	}

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(stderr))
	s.Suffix = " measuring"
	if !config.Verbose {
		runner.OnProgress = func(done, total int) {
			s.Suffix = fmt.Sprintf(" measuring %d/%d", done, total)
		}
		s.Start()
	}

	res, err := runner.Run(ctx)
	s.Stop()
	if err != nil {
		logger.Error().Err(err).Msg("calibration failed")
		return 1
	}

	for _, m := range res.Measurements {
		fmt.Fprintf(stdout, "%6d  direct %12v  fft %12v\n", m.Size, m.Direct, m.FFT)
	}
	fmt.Fprintf(stdout, "threshold: %d\n", res.Threshold)

	if config.ProfilePath != "" {
		if err := calibration.NewProfile(res).SaveProfile(config.ProfilePath); err != nil {
			logger.Error().Err(err).Msg("saving profile failed")
			return 1
		}
		logger.Info().Str("path", config.ProfilePath).Msg("profile saved")
	}

	if config.ChartPath != "" {
		if err := writeChart(config.ChartPath, res); err != nil {
			logger.Error().Err(err).Msg("writing chart failed")
			return 1
		}
		logger.Info().Str("path", config.ChartPath).Msg("chart saved")
	}

	return 0
}

func writeChart(path string, res calibration.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := calibration.RenderChart(f, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
