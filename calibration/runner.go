package calibration

import (
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"github.com/sp301415/ringo-modpoly/conv"
	"github.com/sp301415/ringo-modpoly/csprng"
	"github.com/sp301415/ringo-modpoly/field"
	"github.com/sp301415/ringo-modpoly/polyring"
)

// agreementTolerance bounds the relative difference between
// a measured product and the schoolbook reference.
const agreementTolerance = 1e-6

// Measurement is the mean time of one ring product at a given size.
type Measurement struct {
	Size   int           `json:"size"`
	Direct time.Duration `json:"direct_ns"`
	FFT    time.Duration `json:"fft_ns"`
}

// Result is the outcome of a calibration run.
type Result struct {
	Measurements []Measurement `json:"measurements"`
	Threshold    int           `json:"threshold"`
	Elapsed      time.Duration `json:"elapsed_ns"`
}

// MismatchError is returned when a measured product disagrees
// with the schoolbook reference.
type MismatchError struct {
	Algorithm conv.Algorithm
	Size      int
	Index     int
	Diff      float64
}

// Error implements the error interface.
func (e MismatchError) Error() string {
	return fmt.Sprintf("calibration: %v product differs from reference at size %d, index %d by %g", e.Algorithm, e.Size, e.Index, e.Diff)
}

// Runner runs calibrations.
type Runner struct {
	config Config
	logger zerolog.Logger

	direct *conv.Engine
	fft    *conv.Engine

	// OnProgress, if set, is called after every measured size.
	OnProgress func(done, total int)
}

// NewRunner creates a new Runner.
func NewRunner(config Config, logger zerolog.Logger) (*Runner, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Runner{
		config: config,
		logger: logger,

		direct: conv.NewEngine(conv.WithAlgorithm(conv.Direct), conv.WithLogger(logger)),
		fft:    conv.NewEngine(conv.WithAlgorithm(conv.FFT), conv.WithLogger(logger)),
	}, nil
}

// Run measures every configured size and derives a threshold.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	start := time.Now()

	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}

	sizes := slices.Clone(r.config.Sizes)
	slices.Sort(sizes)
	sizes = slices.Compact(sizes)

	sampler := csprng.NewUniformSamplerWithSeed([]byte(r.config.Seed))
	measurements := make([]Measurement, 0, len(sizes))
	for i, n := range sizes {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("calibration: size %d: %w", n, err)
		}

		m, err := r.measure(ctx, sampler, n)
		if err != nil {
			return Result{}, err
		}
		measurements = append(measurements, m)

		r.logger.Debug().
			Int("size", n).
			Dur("direct", m.Direct).
			Dur("fft", m.FFT).
			Msg("measured")

		if r.OnProgress != nil {
			r.OnProgress(i+1, len(sizes))
		}
	}

	res := Result{
		Measurements: measurements,
		Threshold:    Crossover(measurements),
		Elapsed:      time.Since(start),
	}
	r.logger.Info().
		Int("threshold", res.Threshold).
		Dur("elapsed", res.Elapsed).
		Msg("calibration done")
	return res, nil
}

func (r *Runner) measure(ctx context.Context, sampler *csprng.UniformSampler, n int) (Measurement, error) {
	p := polyring.NewModPoly(polyring.NewPoly(csprng.SampleVector[field.Float64](sampler, n)...), n)
	q := polyring.NewModPoly(polyring.NewPoly(csprng.SampleVector[field.Float64](sampler, n)...), n)

	var pDirect, pFFT polyring.ModPoly[field.Float64]
	var tDirect, tFFT time.Duration
	for it := 0; it < r.config.Iterations; it++ {
		if err := ctx.Err(); err != nil {
			return Measurement{}, fmt.Errorf("calibration: size %d: %w", n, err)
		}

		now := time.Now()
		res, err := p.MulWith(r.direct, q)
		if err != nil {
			return Measurement{}, err
		}
		tDirect += time.Since(now)
		pDirect = res

		now = time.Now()
		res, err = p.MulWith(r.fft, q)
		if err != nil {
			return Measurement{}, err
		}
		tFFT += time.Since(now)
		pFFT = res
	}

	lin, err := conv.Linear(p.Coeffs(), q.Coeffs())
	if err != nil {
		return Measurement{}, err
	}
	ref := polyring.NewModPoly(polyring.NewPoly(lin...), n)
	if err := checkAgreement(conv.Direct, ref, pDirect); err != nil {
		return Measurement{}, err
	}
	if err := checkAgreement(conv.FFT, ref, pFFT); err != nil {
		return Measurement{}, err
	}

	iters := time.Duration(r.config.Iterations)
	return Measurement{
		Size:   n,
		Direct: tDirect / iters,
		FFT:    tFFT / iters,
	}, nil
}

// checkAgreement compares got against the reference product ref.
func checkAgreement(alg conv.Algorithm, ref, got polyring.ModPoly[field.Float64]) error {
	rc, gc := ref.Coeffs(), got.Coeffs()

	scale := 1.0
	for _, c := range rc {
		scale = max(scale, math.Abs(float64(c)))
	}
	for i := range rc {
		diff := math.Abs(float64(rc[i]-gc[i])) / scale
		if diff > agreementTolerance {
			return MismatchError{Algorithm: alg, Size: ref.Modulus(), Index: i, Diff: diff}
		}
	}
	return nil
}

// Crossover returns the threshold for which the FFT is used exactly on the
// measured sizes above it, where it beats direct convolution on every one of them.
// Without measurements, it returns [conv.DefaultThreshold].
func Crossover(measurements []Measurement) int {
	if len(measurements) == 0 {
		return conv.DefaultThreshold
	}

	ms := slices.Clone(measurements)
	slices.SortFunc(ms, func(a, b Measurement) int {
		return a.Size - b.Size
	})

	k := len(ms)
	for k > 0 && ms[k-1].FFT < ms[k-1].Direct {
		k--
	}
	if k == 0 {
		return ms[0].Size - 1
	}
	return ms[k-1].Size
}
