package calibration_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sp301415/ringo-modpoly/calibration"
	"github.com/sp301415/ringo-modpoly/conv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	assert.NoError(t, calibration.DefaultConfig().Validate())

	tests := []struct {
		name   string
		modify func(*calibration.Config)
		field  string
	}{
		{"EmptySizes", func(c *calibration.Config) { c.Sizes = nil }, "sizes"},
		{"ZeroSize", func(c *calibration.Config) { c.Sizes = []int{4, 0} }, "sizes"},
		{"ZeroIterations", func(c *calibration.Config) { c.Iterations = 0 }, "iterations"},
		{"NegativeTimeout", func(c *calibration.Config) { c.Timeout = -time.Second }, "timeout"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := calibration.DefaultConfig()
			tc.modify(&c)

			var errConfig calibration.ConfigError
			require.ErrorAs(t, c.Validate(), &errConfig)
			assert.Equal(t, tc.field, errConfig.Field)

			_, err := calibration.NewRunner(c, zerolog.Nop())
			assert.ErrorAs(t, err, &errConfig)
		})
	}
}

func TestCrossover(t *testing.T) {
	ms := func(pairs ...[3]int) []calibration.Measurement {
		out := make([]calibration.Measurement, len(pairs))
		for i, p := range pairs {
			out[i] = calibration.Measurement{Size: p[0], Direct: time.Duration(p[1]), FFT: time.Duration(p[2])}
		}
		return out
	}

	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, conv.DefaultThreshold, calibration.Crossover(nil))
	})

	t.Run("Middle", func(t *testing.T) {
		assert.Equal(t, 64, calibration.Crossover(ms(
			[3]int{16, 1, 5},
			[3]int{64, 10, 12},
			[3]int{128, 40, 30},
			[3]int{256, 160, 70},
		)))
	})

	t.Run("Noisy", func(t *testing.T) {
		// A late win of direct convolution moves the threshold past it.
		assert.Equal(t, 128, calibration.Crossover(ms(
			[3]int{16, 1, 5},
			[3]int{64, 20, 12},
			[3]int{128, 40, 45},
			[3]int{256, 160, 70},
		)))
	})

	t.Run("Unsorted", func(t *testing.T) {
		assert.Equal(t, 64, calibration.Crossover(ms(
			[3]int{256, 160, 70},
			[3]int{16, 1, 5},
			[3]int{128, 40, 30},
			[3]int{64, 10, 12},
		)))
	})

	t.Run("FFTAlwaysWins", func(t *testing.T) {
		assert.Equal(t, 15, calibration.Crossover(ms([3]int{16, 10, 5}, [3]int{32, 20, 6})))
	})

	t.Run("DirectAlwaysWins", func(t *testing.T) {
		assert.Equal(t, 32, calibration.Crossover(ms([3]int{16, 1, 5}, [3]int{32, 2, 6})))
	})
}

func TestRunner(t *testing.T) {
	config := calibration.Config{
		Sizes:      []int{8, 4, 8, 33},
		Iterations: 2,
		Timeout:    time.Minute,
		Seed:       "test",
	}

	t.Run("Run", func(t *testing.T) {
		r, err := calibration.NewRunner(config, zerolog.Nop())
		require.NoError(t, err)

		var progress []int
		r.OnProgress = func(done, total int) {
			assert.Equal(t, 3, total)
			progress = append(progress, done)
		}

		res, err := r.Run(context.Background())
		require.NoError(t, err)
		require.Len(t, res.Measurements, 3)
		assert.Equal(t, []int{1, 2, 3}, progress)
		assert.Equal(t, 4, res.Measurements[0].Size)
		assert.Equal(t, 33, res.Measurements[2].Size)
		assert.Contains(t, []int{3, 4, 8, 33}, res.Threshold)
		assert.Equal(t, calibration.Crossover(res.Measurements), res.Threshold)
	})

	t.Run("Cancelled", func(t *testing.T) {
		r, err := calibration.NewRunner(config, zerolog.Nop())
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = r.Run(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestProfile(t *testing.T) {
	res := calibration.Result{
		Measurements: []calibration.Measurement{
			{Size: 64, Direct: 10 * time.Microsecond, FFT: 20 * time.Microsecond},
			{Size: 256, Direct: 200 * time.Microsecond, FFT: 50 * time.Microsecond},
		},
		Threshold: 64,
	}

	p := calibration.NewProfile(res)
	assert.True(t, p.IsValid())

	path := filepath.Join(t.TempDir(), calibration.DefaultProfileFileName)
	require.NoError(t, p.SaveProfile(path))

	loaded, err := calibration.LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, p.Threshold, loaded.Threshold)
	assert.Equal(t, p.Measurements, loaded.Measurements)
	assert.True(t, p.CalibratedAt.Equal(loaded.CalibratedAt))
	assert.True(t, loaded.IsValid())

	_, err = calibration.LoadProfile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	var nilProfile *calibration.Profile
	assert.False(t, nilProfile.IsValid())
}

func TestEngineOptions(t *testing.T) {
	res := calibration.Result{Threshold: 17}
	path := filepath.Join(t.TempDir(), calibration.DefaultProfileFileName)
	require.NoError(t, calibration.NewProfile(res).SaveProfile(path))

	t.Run("Saved", func(t *testing.T) {
		opts, ok := calibration.LoadEngineOptions(path)
		require.True(t, ok)

		e := conv.NewEngine(opts...)
		assert.Equal(t, 17, e.Threshold())
		assert.Equal(t, conv.Direct, e.Select(17))
		assert.Equal(t, conv.FFT, e.Select(18))
	})

	t.Run("Missing", func(t *testing.T) {
		opts, ok := calibration.LoadEngineOptions(filepath.Join(t.TempDir(), "missing.json"))
		assert.False(t, ok)
		assert.Equal(t, conv.DefaultThreshold, conv.NewEngine(opts...).Threshold())
	})

	t.Run("Invalid", func(t *testing.T) {
		p := calibration.NewProfile(res)
		p.ProfileVersion = calibration.CurrentProfileVersion + 1
		assert.Nil(t, p.EngineOptions())

		other := filepath.Join(t.TempDir(), "other.json")
		require.NoError(t, p.SaveProfile(other))
		_, ok := calibration.LoadEngineOptions(other)
		assert.False(t, ok)

		var nilProfile *calibration.Profile
		assert.Equal(t, conv.DefaultThreshold, conv.NewEngine(nilProfile.EngineOptions()...).Threshold())
	})
}

func TestRenderChart(t *testing.T) {
	res := calibration.Result{
		Measurements: []calibration.Measurement{
			{Size: 64, Direct: 10 * time.Microsecond, FFT: 20 * time.Microsecond},
			{Size: 256, Direct: 200 * time.Microsecond, FFT: 50 * time.Microsecond},
		},
		Threshold: 64,
	}

	var buf bytes.Buffer
	require.NoError(t, calibration.RenderChart(&buf, res))
	assert.Contains(t, buf.String(), "modpoly calibration")
	assert.Contains(t, buf.String(), "threshold=64")
}
