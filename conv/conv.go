// Package conv implements convolutions of coefficient vectors.
//
// [Cyclic] computes the wrap-around product of two length n vectors directly,
// and [LinearFFT] computes their full length 2n-1 product through the FFT.
// [Convolve] picks the cheaper of the two depending on n.
// Both result shapes reduce to the same ring element modulo x^n - 1.
package conv

import (
	"fmt"

	"github.com/sp301415/ringo-modpoly/field"
)

// InvalidInputError is returned when the operands of a convolution
// have different or zero lengths.
type InvalidInputError struct {
	LenA int
	LenB int
}

// Error implements the error interface.
func (e InvalidInputError) Error() string {
	return fmt.Sprintf("conv: invalid convolution input lengths %d and %d", e.LenA, e.LenB)
}

func checkInput[T any](a, b []T) error {
	if len(a) != len(b) || len(a) == 0 {
		return InvalidInputError{LenA: len(a), LenB: len(b)}
	}
	return nil
}

// Cyclic returns the cyclic convolution of a and b,
// that is, out[i] = sum_j a[j] * b[(i-j) mod n].
func Cyclic[T field.Scalar[T]](a, b []T) ([]T, error) {
	if err := checkInput(a, b); err != nil {
		return nil, err
	}

	n := len(a)
	out := make([]T, n)
	cyclicAssign(a, b, out)
	return out, nil
}

// cyclicAssign assigns the cyclic convolution of a and b to out.
// Every output slot sums exactly n products.
func cyclicAssign[T field.Scalar[T]](a, b, out []T) {
	n := len(a)
	for i := 0; i < n; i++ {
		acc := field.Zero[T]()
		for j := 0; j <= i; j++ {
			acc = acc.Add(a[j].Mul(b[i-j]))
		}
		for j := i + 1; j < n; j++ {
			acc = acc.Add(a[j].Mul(b[n+i-j]))
		}
		out[i] = acc
	}
}

// Linear returns the schoolbook linear convolution of a and b,
// of length 2n-1.
func Linear[T field.Scalar[T]](a, b []T) ([]T, error) {
	if err := checkInput(a, b); err != nil {
		return nil, err
	}

	n := len(a)
	out := make([]T, 2*n-1)
	for i := range out {
		acc := field.Zero[T]()
		for j := max(0, i-n+1); j <= min(i, n-1); j++ {
			acc = acc.Add(a[j].Mul(b[i-j]))
		}
		out[i] = acc
	}
	return out, nil
}
