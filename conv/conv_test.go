package conv_test

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sp301415/ringo-modpoly/conv"
	"github.com/sp301415/ringo-modpoly/field"
	"github.com/sp301415/ringo-modpoly/num"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tuneinsight/lattigo/v6/core/rlwe"
	"github.com/tuneinsight/lattigo/v6/ring"
	"gonum.org/v1/gonum/floats"
)

type C64 = field.Complex[field.Float64]

func randomReals(r *rand.Rand, n int) []field.Float64 {
	v := make([]field.Float64, n)
	for i := range v {
		v[i] = field.Float64(2*r.Float64() - 1)
	}
	return v
}

func randomInts(r *rand.Rand, n int, bound int64) []int64 {
	v := make([]int64, n)
	for i := range v {
		v[i] = r.Int64N(2*bound+1) - bound
	}
	return v
}

// fold reduces a linear product modulo x^n - 1.
func fold[T field.Scalar[T]](v []T, n int) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = field.Zero[T]()
	}
	for i, c := range v {
		out[i%n] = out[i%n].Add(c)
	}
	return out
}

func maxAbs(v []field.Float64) float64 {
	m := 0.0
	for _, x := range v {
		m = max(m, math.Abs(float64(x)))
	}
	return m
}

func assertRelClose(t *testing.T, want, got []field.Float64, rel float64) {
	t.Helper()
	require.Len(t, got, len(want))
	w, g := make([]float64, len(want)), make([]float64, len(got))
	for i := range want {
		w[i], g[i] = float64(want[i]), float64(got[i])
	}
	assert.True(t, floats.EqualApprox(w, g, rel*max(maxAbs(want), 1)), "want %v, got %v", want, got)
}

// linearOracle computes the exact integer linear convolution of a and b
// as a negacyclic product in a ring of degree at least 2n,
// where no wrap-around happens.
func linearOracle(t *testing.T, a, b []int64) []int64 {
	t.Helper()

	n := len(a)
	N := max(num.NextPowerOfTwo(2*n), 16)
	q, _, err := rlwe.GenModuli(num.Log2(N)+1, []int{55}, nil)
	require.NoError(t, err)

	ringQ, err := ring.NewRing(N, q)
	require.NoError(t, err)
	mod := ringQ.SubRings[0].Modulus

	lift := func(v []int64) ring.Poly {
		p := ringQ.NewPoly()
		for i, x := range v {
			if x < 0 {
				p.Coeffs[0][i] = mod - uint64(-x)
			} else {
				p.Coeffs[0][i] = uint64(x)
			}
		}
		return p
	}

	pa, pb := lift(a), lift(b)
	pc := ringQ.NewPoly()
	ringQ.NTT(pa, pa)
	ringQ.NTT(pb, pb)
	ringQ.MForm(pa, pa)
	ringQ.MulCoeffsMontgomery(pa, pb, pc)
	ringQ.INTT(pc, pc)

	out := make([]int64, 2*n-1)
	for i := range out {
		c := pc.Coeffs[0][i]
		if c > mod/2 {
			out[i] = -int64(mod - c)
		} else {
			out[i] = int64(c)
		}
	}
	return out
}

func toReals(v []int64) []field.Float64 {
	out := make([]field.Float64, len(v))
	for i, x := range v {
		out[i] = field.Float64(x)
	}
	return out
}

func TestCyclic(t *testing.T) {
	t.Run("Small", func(t *testing.T) {
		a := []field.Float64{1, 2, 1}
		b := []field.Float64{1, 1, 2}
		c, err := conv.Cyclic(a, b)
		require.NoError(t, err)
		assert.Equal(t, []field.Float64{6, 5, 5}, c)
	})

	t.Run("SingleCoefficient", func(t *testing.T) {
		c, err := conv.Cyclic([]field.Float64{3}, []field.Float64{-2})
		require.NoError(t, err)
		assert.Equal(t, []field.Float64{-6}, c)
	})

	t.Run("Monomial", func(t *testing.T) {
		// x * x^3 = x^4 = 1 mod x^4 - 1.
		a := []field.Float64{0, 1, 0, 0}
		b := []field.Float64{0, 0, 0, 1}
		c, err := conv.Cyclic(a, b)
		require.NoError(t, err)
		assert.Equal(t, []field.Float64{1, 0, 0, 0}, c)
	})

	t.Run("Complex", func(t *testing.T) {
		i := field.I[field.Float64]()
		one := field.One[C64]()
		// (1 + ix)(1 - ix) = 1 + x^2 = 2 mod x^2 - 1.
		a := []C64{one, i}
		b := []C64{one, i.Neg()}
		c, err := conv.Cyclic(a, b)
		require.NoError(t, err)
		assert.Equal(t, []C64{field.NewComplex[field.Float64](2, 0), field.Zero[C64]()}, c)
	})

	t.Run("MatchesFoldedLinear", func(t *testing.T) {
		r := rand.New(rand.NewPCG(1, 2))
		for _, n := range []int{1, 2, 5, 16, 31} {
			a, b := randomReals(r, n), randomReals(r, n)
			c, err := conv.Cyclic(a, b)
			require.NoError(t, err)
			l, err := conv.Linear(a, b)
			require.NoError(t, err)
			assertRelClose(t, fold(l, n), c, 1e-12)
		}
	})

	t.Run("InvalidInput", func(t *testing.T) {
		_, err := conv.Cyclic(make([]field.Float64, 3), make([]field.Float64, 4))
		var errInput conv.InvalidInputError
		require.ErrorAs(t, err, &errInput)
		assert.Equal(t, 3, errInput.LenA)
		assert.Equal(t, 4, errInput.LenB)

		_, err = conv.Cyclic([]field.Float64{}, []field.Float64{})
		assert.ErrorAs(t, err, &errInput)
	})
}

func TestLinearFFT(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))

	t.Run("Length", func(t *testing.T) {
		for _, n := range []int{1, 2, 3, 7, 64, 100} {
			c, err := conv.LinearFFT(randomReals(r, n), randomReals(r, n))
			require.NoError(t, err)
			assert.Len(t, c, 2*n-1)
		}
	})

	t.Run("MatchesSchoolbook", func(t *testing.T) {
		for _, n := range []int{1, 3, 17, 129, 500} {
			a, b := randomReals(r, n), randomReals(r, n)
			want, err := conv.Linear(a, b)
			require.NoError(t, err)
			got, err := conv.LinearFFT(a, b)
			require.NoError(t, err)
			assertRelClose(t, want, got, 1e-5)
		}
	})

	t.Run("ExactIntegers", func(t *testing.T) {
		for _, n := range []int{4, 50, 300, 1024} {
			a, b := randomInts(r, n, 1<<10), randomInts(r, n, 1<<10)
			want := linearOracle(t, a, b)

			got, err := conv.LinearFFT(toReals(a), toReals(b))
			require.NoError(t, err)
			for i := range want {
				assert.Equal(t, float64(want[i]), math.Round(float64(got[i])), "n=%d index %d", n, i)
			}
		}
	})

	t.Run("Complex", func(t *testing.T) {
		i := field.I[field.Float64]()
		// (1 + ix)^2 = 1 + 2ix - x^2.
		a := []C64{field.One[C64](), i}
		got, err := conv.LinearFFT(a, a)
		require.NoError(t, err)
		want := []C64{
			field.NewComplex[field.Float64](1, 0),
			field.NewComplex[field.Float64](0, 2),
			field.NewComplex[field.Float64](-1, 0),
		}
		for k := range want {
			assert.InDelta(t, float64(want[k].Re), float64(got[k].Re), 1e-9)
			assert.InDelta(t, float64(want[k].Im), float64(got[k].Im), 1e-9)
		}
	})

	t.Run("InvalidInput", func(t *testing.T) {
		_, err := conv.LinearFFT(make([]field.Float64, 3), make([]field.Float64, 4))
		var errInput conv.InvalidInputError
		assert.ErrorAs(t, err, &errInput)
	})
}

func TestEngine(t *testing.T) {
	t.Run("Select", func(t *testing.T) {
		e := conv.NewEngine()
		assert.Equal(t, conv.DefaultThreshold, e.Threshold())
		assert.Equal(t, conv.Direct, e.Select(conv.DefaultThreshold))
		assert.Equal(t, conv.FFT, e.Select(conv.DefaultThreshold+1))

		e = conv.NewEngine(conv.WithThreshold(8))
		assert.Equal(t, conv.Direct, e.Select(8))
		assert.Equal(t, conv.FFT, e.Select(9))

		e = conv.NewEngine(conv.WithAlgorithm(conv.FFT))
		assert.Equal(t, conv.FFT, e.Select(1))

		e = conv.NewEngine(conv.WithAlgorithm(conv.Direct))
		assert.Equal(t, conv.Direct, e.Select(1<<20))
	})

	t.Run("ResultShape", func(t *testing.T) {
		a := []field.Float64{1, 2, 1}
		b := []field.Float64{1, 1, 2}

		c, err := conv.ConvolveWith(conv.NewEngine(conv.WithAlgorithm(conv.Direct)), a, b)
		require.NoError(t, err)
		assert.Len(t, c, 3)

		c, err = conv.ConvolveWith(conv.NewEngine(conv.WithAlgorithm(conv.FFT)), a, b)
		require.NoError(t, err)
		assert.Len(t, c, 5)
		assertRelClose(t, []field.Float64{6, 5, 5}, fold(c, 3), 1e-12)
	})

	t.Run("Default", func(t *testing.T) {
		c, err := conv.Convolve([]field.Float64{1, 2, 1}, []field.Float64{1, 1, 2})
		require.NoError(t, err)
		assert.Equal(t, []field.Float64{6, 5, 5}, c)
		assert.Equal(t, conv.DefaultThreshold, conv.Default().Threshold())
	})

	t.Run("Metrics", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		m := conv.NewMetrics(reg)
		e := conv.NewEngine(conv.WithThreshold(4), conv.WithMetrics(m))

		r := rand.New(rand.NewPCG(5, 6))
		for _, n := range []int{2, 4, 5, 8, 16} {
			_, err := conv.ConvolveWith(e, randomReals(r, n), randomReals(r, n))
			require.NoError(t, err)
		}

		assert.Equal(t, 2.0, testutil.ToFloat64(m.Convolutions(conv.Direct)))
		assert.Equal(t, 3.0, testutil.ToFloat64(m.Convolutions(conv.FFT)))
	})

	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "auto", conv.Auto.String())
		assert.Equal(t, "direct", conv.Direct.String())
		assert.Equal(t, "fft", conv.FFT.String())
	})
}

func TestDispatchAgrees(t *testing.T) {
	direct := conv.NewEngine(conv.WithAlgorithm(conv.Direct))
	fast := conv.NewEngine(conv.WithAlgorithm(conv.FFT))

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("direct and fft agree modulo x^n - 1", prop.ForAll(
		func(n int, seed uint64) bool {
			r := rand.New(rand.NewPCG(seed, 0))
			a, b := toReals(randomInts(r, n, 100)), toReals(randomInts(r, n, 100))

			c0, err := conv.ConvolveWith(direct, a, b)
			if err != nil {
				return false
			}
			c1, err := conv.ConvolveWith(fast, a, b)
			if err != nil {
				return false
			}

			folded := fold(c1, n)
			for i := range c0 {
				if c0[i] != field.Float64(math.Round(float64(folded[i]))) {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 300),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}

func BenchmarkConvolve(b *testing.B) {
	r := rand.New(rand.NewPCG(7, 8))
	for _, n := range []int{64, 128, 256, 1024} {
		x, y := randomReals(r, n), randomReals(r, n)
		for _, alg := range []conv.Algorithm{conv.Direct, conv.FFT} {
			e := conv.NewEngine(conv.WithAlgorithm(alg))
			b.Run(fmt.Sprintf("%v/N=%d", alg, n), func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					conv.ConvolveWith(e, x, y)
				}
			})
		}
	}
}
