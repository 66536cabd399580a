// Package fft implements the radix-2 Fast Fourier Transform over complex128.
//
// The forward transform uses the roots of unity e^{+2πik/n},
// and the inverse transform uses their conjugates followed by a 1/n scaling,
// so that Inverse(Forward(a)) = a up to rounding.
package fft

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/sp301415/ringo-modpoly/num"
)

// InvalidSizeError is returned when a transform is requested
// for a length that is zero or not a power of two.
type InvalidSizeError struct {
	Size int
}

// Error implements the error interface.
func (e InvalidSizeError) Error() string {
	return fmt.Sprintf("fft: invalid transform size %d: must be a positive power of two", e.Size)
}

// Plan holds the twiddle factors of transforms of a fixed size.
// A Plan is read-only after creation, so it is safe for concurrent use.
type Plan struct {
	size    int
	logSize int

	tw    []complex128
	twInv []complex128
}

// NewPlan creates a new Plan for transforms of size n.
func NewPlan(n int) (*Plan, error) {
	if !num.IsPowerOfTwo(n) {
		return nil, InvalidSizeError{Size: n}
	}

	tw := make([]complex128, n/2)
	twInv := make([]complex128, n/2)
	if n >= 2 {
		root := cmplx.Rect(1, 2*math.Pi/float64(n))
		tw[0] = 1
		for k := 1; k < n/2; k++ {
			tw[k] = tw[k-1] * root
		}
		for k := range tw {
			twInv[k] = cmplx.Conj(tw[k])
		}
	}

	return &Plan{
		size:    n,
		logSize: num.Log2(n),

		tw:    tw,
		twInv: twInv,
	}, nil
}

// Size returns the transform size of the Plan.
func (p *Plan) Size() int {
	return p.size
}

// Forward returns the forward transform of a.
func (p *Plan) Forward(a []complex128) ([]complex128, error) {
	out := make([]complex128, p.size)
	if err := p.ForwardAssign(a, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ForwardAssign computes the forward transform of a and assigns it to out.
// out may alias a.
func (p *Plan) ForwardAssign(a, out []complex128) error {
	if err := p.checkLen(a, out); err != nil {
		return err
	}
	p.transform(a, out, p.tw)
	return nil
}

// Inverse returns the inverse transform of a.
func (p *Plan) Inverse(a []complex128) ([]complex128, error) {
	out := make([]complex128, p.size)
	if err := p.InverseAssign(a, out); err != nil {
		return nil, err
	}
	return out, nil
}

// InverseAssign computes the inverse transform of a and assigns it to out.
// out may alias a.
func (p *Plan) InverseAssign(a, out []complex128) error {
	if err := p.checkLen(a, out); err != nil {
		return err
	}
	p.transform(a, out, p.twInv)

	scale := complex(1/float64(p.size), 0)
	for i := range out {
		out[i] *= scale
	}
	return nil
}

func (p *Plan) checkLen(a, out []complex128) error {
	if len(a) != p.size {
		return InvalidSizeError{Size: len(a)}
	}
	if len(out) != p.size {
		return InvalidSizeError{Size: len(out)}
	}
	return nil
}

// transform runs the unnormalized transform with twiddle table tw.
func (p *Plan) transform(a, out, tw []complex128) {
	copy(out, a)
	num.BitReverseInPlace(out)

	switch p.size {
	case 1:
		return
	case 2:
		out[0], out[1] = out[0]+out[1], out[0]-out[1]
		return
	}

	// tw[n/4] is the primitive 4th root, i or -i.
	q := tw[p.size>>2]
	for i := 0; i < p.size; i += 4 {
		s01 := out[i] + out[i+1]
		d01 := out[i] - out[i+1]
		s23 := out[i+2] + out[i+3]
		d23 := q * (out[i+2] - out[i+3])

		out[i] = s01 + s23
		out[i+1] = d01 + d23
		out[i+2] = s01 - s23
		out[i+3] = d01 - d23
	}

	stride := p.size >> 3
	for m := 8; m <= p.size; m <<= 1 {
		t := m >> 1
		for j1 := 0; j1 < p.size; j1 += m {
			for j := 0; j < t; j++ {
				u := out[j1+j]
				v := tw[j*stride] * out[j1+j+t]
				out[j1+j] = u + v
				out[j1+j+t] = u - v
			}
		}
		stride >>= 1
	}
}

// Forward returns the forward transform of a.
// The length of a must be a power of two.
func Forward(a []complex128) ([]complex128, error) {
	p, err := NewPlan(len(a))
	if err != nil {
		return nil, err
	}
	return p.Forward(a)
}

// Inverse returns the inverse transform of a.
// The length of a must be a power of two.
func Inverse(a []complex128) ([]complex128, error) {
	p, err := NewPlan(len(a))
	if err != nil {
		return nil, err
	}
	return p.Inverse(a)
}
