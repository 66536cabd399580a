package conv

import (
	"github.com/rs/zerolog"
	"github.com/sp301415/ringo-modpoly/fft"
	"github.com/sp301415/ringo-modpoly/field"
	"github.com/sp301415/ringo-modpoly/num"
)

// DefaultThreshold is the largest operand length convolved directly
// by the default engine. Above it, the FFT is used.
// It only affects performance: both algorithms give the same ring product.
const DefaultThreshold = 130

// Algorithm is a convolution algorithm.
type Algorithm int

const (
	// Auto selects the algorithm from the operand length.
	Auto Algorithm = iota
	// Direct is the O(n^2) cyclic convolution.
	Direct
	// FFT is the O(n log n) linear convolution through the FFT.
	FFT
)

// String returns the name of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case Auto:
		return "auto"
	case Direct:
		return "direct"
	case FFT:
		return "fft"
	}
	return "unknown"
}

// Engine holds the configuration of convolutions.
// An Engine is safe for concurrent use.
type Engine struct {
	threshold int
	algorithm Algorithm

	plans   *fft.PlanCache
	metrics *Metrics
	logger  zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithThreshold sets the largest operand length convolved directly.
func WithThreshold(n int) Option {
	return func(e *Engine) {
		e.threshold = n
	}
}

// WithAlgorithm forces the algorithm used regardless of the operand length.
// Auto restores the threshold based selection.
func WithAlgorithm(a Algorithm) Option {
	return func(e *Engine) {
		e.algorithm = a
	}
}

// WithMetrics records every convolution in m.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithLogger sets the logger of the Engine.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates a new Engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		threshold: DefaultThreshold,
		algorithm: Auto,

		plans:  fft.NewPlanCache(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = NewEngine()

// Default returns the engine used by [Convolve] and [LinearFFT].
func Default() *Engine {
	return defaultEngine
}

// Threshold returns the largest operand length convolved directly.
func (e *Engine) Threshold() int {
	return e.threshold
}

// Select returns the algorithm used for operands of length n.
func (e *Engine) Select(n int) Algorithm {
	if e.algorithm != Auto {
		return e.algorithm
	}
	if n <= e.threshold {
		return Direct
	}
	return FFT
}

func (e *Engine) observe(a Algorithm, n int) {
	if e.metrics != nil {
		e.metrics.observe(a, n)
	}
	e.logger.Debug().Str("algorithm", a.String()).Int("size", n).Msg("convolve")
}

// Convolve returns the product of a and b modulo x^n - 1 up to reduction,
// using the default engine.
// The result has length n or 2n-1 depending on the algorithm.
func Convolve[T field.Scalar[T]](a, b []T) ([]T, error) {
	return ConvolveWith(defaultEngine, a, b)
}

// ConvolveWith is like [Convolve], but uses the engine e.
func ConvolveWith[T field.Scalar[T]](e *Engine, a, b []T) ([]T, error) {
	if err := checkInput(a, b); err != nil {
		return nil, err
	}

	alg := e.Select(len(a))
	e.observe(alg, len(a))

	if alg == FFT {
		return linearFFT(e, a, b)
	}
	out := make([]T, len(a))
	cyclicAssign(a, b, out)
	return out, nil
}

// LinearFFT returns the linear convolution of a and b, of length 2n-1,
// computed through the FFT with the default engine.
func LinearFFT[T field.Scalar[T]](a, b []T) ([]T, error) {
	return LinearFFTWith(defaultEngine, a, b)
}

// LinearFFTWith is like [LinearFFT], but uses the plans of the engine e.
func LinearFFTWith[T field.Scalar[T]](e *Engine, a, b []T) ([]T, error) {
	if err := checkInput(a, b); err != nil {
		return nil, err
	}
	return linearFFT(e, a, b)
}

func linearFFT[T field.Scalar[T]](e *Engine, a, b []T) ([]T, error) {
	n := len(a)
	plan, err := e.plans.Get(num.NextPowerOfTwo(2 * n))
	if err != nil {
		return nil, err
	}

	fa := make([]complex128, plan.Size())
	fb := make([]complex128, plan.Size())
	for i := 0; i < n; i++ {
		fa[i] = a[i].Complex128()
		fb[i] = b[i].Complex128()
	}

	if err := plan.ForwardAssign(fa, fa); err != nil {
		return nil, err
	}
	if err := plan.ForwardAssign(fb, fb); err != nil {
		return nil, err
	}
	for i := range fa {
		fa[i] *= fb[i]
	}
	if err := plan.InverseAssign(fa, fa); err != nil {
		return nil, err
	}

	var z T
	out := make([]T, 2*n-1)
	for i := range out {
		out[i] = z.FromComplex128(fa[i])
	}
	return out, nil
}
