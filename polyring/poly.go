// Package polyring implements polynomials and their ring T[x]/(x^n - 1).
package polyring

import (
	"strings"

	"github.com/sp301415/ringo-modpoly/field"
)

// Poly is a dense polynomial.
// Coeffs[i] is the coefficient of degree i.
// A Poly with no coefficients is the zero polynomial.
type Poly[T field.Scalar[T]] struct {
	Coeffs []T
}

// NewPoly creates a new Poly with a copy of coeffs.
func NewPoly[T field.Scalar[T]](coeffs ...T) Poly[T] {
	c := make([]T, len(coeffs))
	copy(c, coeffs)
	return Poly[T]{Coeffs: c}
}

// NewMonomial creates the Poly c * x^deg.
//
// Panics if deg is negative.
func NewMonomial[T field.Scalar[T]](c T, deg int) Poly[T] {
	if deg < 0 {
		panic("negative degree")
	}

	coeffs := make([]T, deg+1)
	for i := 0; i < deg; i++ {
		coeffs[i] = field.Zero[T]()
	}
	coeffs[deg] = c
	return Poly[T]{Coeffs: coeffs}
}

// Len returns the number of coefficients of p.
func (p Poly[T]) Len() int {
	return len(p.Coeffs)
}

// Coeff returns the coefficient of degree i.
// Degrees beyond the end of p are zero.
func (p Poly[T]) Coeff(i int) T {
	if i < 0 || i >= len(p.Coeffs) {
		return field.Zero[T]()
	}
	return p.Coeffs[i]
}

// SetCoeff sets the coefficient of degree i to v,
// growing p with zeros if needed.
//
// Panics if i is negative.
func (p *Poly[T]) SetCoeff(i int, v T) {
	if i < 0 {
		panic("negative degree")
	}

	for len(p.Coeffs) <= i {
		p.Coeffs = append(p.Coeffs, field.Zero[T]())
	}
	p.Coeffs[i] = v
}

// Evaluate returns p(x).
func (p Poly[T]) Evaluate(x T) T {
	return horner(p.Coeffs, x)
}

func horner[T field.Scalar[T]](coeffs []T, x T) T {
	res := field.Zero[T]()
	for i := len(coeffs) - 1; i >= 0; i-- {
		res = res.Mul(x).Add(coeffs[i])
	}
	return res
}

// Add returns p + q.
// The shorter operand is extended with zeros.
func (p Poly[T]) Add(q Poly[T]) Poly[T] {
	out := make([]T, max(len(p.Coeffs), len(q.Coeffs)))
	for i := range out {
		out[i] = p.Coeff(i).Add(q.Coeff(i))
	}
	return Poly[T]{Coeffs: out}
}

// Sub returns p - q.
// The shorter operand is extended with zeros.
func (p Poly[T]) Sub(q Poly[T]) Poly[T] {
	out := make([]T, max(len(p.Coeffs), len(q.Coeffs)))
	for i := range out {
		out[i] = p.Coeff(i).Sub(q.Coeff(i))
	}
	return Poly[T]{Coeffs: out}
}

// Neg returns -p.
func (p Poly[T]) Neg() Poly[T] {
	out := make([]T, len(p.Coeffs))
	for i := range out {
		out[i] = p.Coeffs[i].Neg()
	}
	return Poly[T]{Coeffs: out}
}

// Clone returns a deep copy of p.
func (p Poly[T]) Clone() Poly[T] {
	return NewPoly(p.Coeffs...)
}

// Equal reports whether p and q are the same polynomial.
// Trailing zero coefficients are ignored.
func (p Poly[T]) Equal(q Poly[T]) bool {
	for i := 0; i < max(len(p.Coeffs), len(q.Coeffs)); i++ {
		if p.Coeff(i) != q.Coeff(i) {
			return false
		}
	}
	return true
}

// String returns the coefficients of p as "[c0, c1, ...]".
func (p Poly[T]) String() string {
	return formatCoeffs(p.Coeffs)
}

func formatCoeffs[T field.Scalar[T]](coeffs []T) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, c := range coeffs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.String())
	}
	b.WriteByte(']')
	return b.String()
}
