package polyring

import (
	"github.com/sp301415/ringo-modpoly/conv"
	"github.com/sp301415/ringo-modpoly/field"
)

// ModPoly is an element of the ring T[x]/(x^n - 1),
// where n is its modulus.
// It always holds exactly n coefficients.
//
// The zero value is not a valid ModPoly.
// Use [NewModPoly] or [NewZeroModPoly].
//
// A ModPoly refers to its coefficients, so a copy made by assignment
// shares them with the original, and [ModPoly.SetCoeff] or
// [ModPoly.AddAssign] on one is visible through the other.
// Use [ModPoly.Clone] for an independent value.
type ModPoly[T field.Scalar[T]] struct {
	coeffs []T
}

// Sanitize reduces p modulo x^n - 1 into exactly n coefficients.
// Shorter polynomials are padded with zeros,
// and the coefficient of degree i >= n is added to slot i mod n.
//
// Panics if n is not positive.
func Sanitize[T field.Scalar[T]](p Poly[T], n int) Poly[T] {
	if n <= 0 {
		panic("modulus not positive")
	}

	out := make([]T, n)
	for i := range out {
		out[i] = field.Zero[T]()
	}
	for i, c := range p.Coeffs {
		if i < n {
			out[i] = c
		} else {
			out[i%n] = out[i%n].Add(c)
		}
	}
	return Poly[T]{Coeffs: out}
}

// NewModPoly creates the ring element p mod x^n - 1.
//
// Panics if n is not positive.
func NewModPoly[T field.Scalar[T]](p Poly[T], n int) ModPoly[T] {
	return ModPoly[T]{coeffs: Sanitize(p, n).Coeffs}
}

// NewZeroModPoly creates the zero element of T[x]/(x^n - 1).
//
// Panics if n is not positive.
func NewZeroModPoly[T field.Scalar[T]](n int) ModPoly[T] {
	return NewModPoly(Poly[T]{}, n)
}

// Modulus returns n, the number of coefficients of p.
func (p ModPoly[T]) Modulus() int {
	return len(p.coeffs)
}

// Coeff returns the coefficient of degree d.
func (p ModPoly[T]) Coeff(d int) (T, error) {
	if err := p.checkDegree(d); err != nil {
		var z T
		return z, err
	}
	return p.coeffs[d], nil
}

// SetCoeff sets the coefficient of degree d to v.
// It writes through to every copy of p.
func (p ModPoly[T]) SetCoeff(d int, v T) error {
	if err := p.checkDegree(d); err != nil {
		return err
	}
	p.coeffs[d] = v
	return nil
}

func (p ModPoly[T]) checkDegree(d int) error {
	if d < 0 || d >= len(p.coeffs) {
		return DegreeOutOfRangeError{Index: d, Modulus: len(p.coeffs)}
	}
	return nil
}

func (p ModPoly[T]) checkModulus(q ModPoly[T]) error {
	if len(p.coeffs) != len(q.coeffs) {
		return ModulusMismatchError{Expected: len(p.coeffs), Actual: len(q.coeffs)}
	}
	return nil
}

// Coeffs returns a copy of the coefficients of p.
func (p ModPoly[T]) Coeffs() []T {
	c := make([]T, len(p.coeffs))
	copy(c, p.coeffs)
	return c
}

// Poly returns p as a Poly of length Modulus.
func (p ModPoly[T]) Poly() Poly[T] {
	return Poly[T]{Coeffs: p.Coeffs()}
}

// Clone returns a deep copy of p.
func (p ModPoly[T]) Clone() ModPoly[T] {
	return ModPoly[T]{coeffs: p.Coeffs()}
}

// Add returns p + q.
func (p ModPoly[T]) Add(q ModPoly[T]) (ModPoly[T], error) {
	pOut := p.Clone()
	if err := pOut.AddAssign(q); err != nil {
		return ModPoly[T]{}, err
	}
	return pOut, nil
}

// AddAssign assigns p += q.
// It writes through to every copy of p.
func (p ModPoly[T]) AddAssign(q ModPoly[T]) error {
	if err := p.checkModulus(q); err != nil {
		return err
	}
	for i := range p.coeffs {
		p.coeffs[i] = p.coeffs[i].Add(q.coeffs[i])
	}
	return nil
}

// Sub returns p - q.
func (p ModPoly[T]) Sub(q ModPoly[T]) (ModPoly[T], error) {
	pOut := p.Clone()
	if err := pOut.SubAssign(q); err != nil {
		return ModPoly[T]{}, err
	}
	return pOut, nil
}

// SubAssign assigns p -= q.
// It writes through to every copy of p.
func (p ModPoly[T]) SubAssign(q ModPoly[T]) error {
	if err := p.checkModulus(q); err != nil {
		return err
	}
	for i := range p.coeffs {
		p.coeffs[i] = p.coeffs[i].Sub(q.coeffs[i])
	}
	return nil
}

// Neg returns -p.
func (p ModPoly[T]) Neg() ModPoly[T] {
	pOut := make([]T, len(p.coeffs))
	for i := range pOut {
		pOut[i] = p.coeffs[i].Neg()
	}
	return ModPoly[T]{coeffs: pOut}
}

// Mul returns p * q, using the default convolution engine.
func (p ModPoly[T]) Mul(q ModPoly[T]) (ModPoly[T], error) {
	return p.MulWith(conv.Default(), q)
}

// MulWith returns p * q, using the convolution engine e.
func (p ModPoly[T]) MulWith(e *conv.Engine, q ModPoly[T]) (ModPoly[T], error) {
	if err := p.checkModulus(q); err != nil {
		return ModPoly[T]{}, err
	}

	c, err := conv.ConvolveWith(e, p.coeffs, q.coeffs)
	if err != nil {
		return ModPoly[T]{}, err
	}
	return NewModPoly(Poly[T]{Coeffs: c}, len(p.coeffs)), nil
}

// Apply returns the sum of coeff[d] * x^d.
func (p ModPoly[T]) Apply(x T) T {
	return horner(p.coeffs, x)
}

// Equal reports whether p and q have the same modulus and coefficients.
func (p ModPoly[T]) Equal(q ModPoly[T]) bool {
	if len(p.coeffs) != len(q.coeffs) {
		return false
	}
	for i := range p.coeffs {
		if p.coeffs[i] != q.coeffs[i] {
			return false
		}
	}
	return true
}

// String returns the coefficients of p as "[c0, c1, ...]".
func (p ModPoly[T]) String() string {
	return formatCoeffs(p.coeffs)
}
