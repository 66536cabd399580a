// Package field defines the coefficient types of polynomial rings.
//
// A coefficient type is any value type implementing [Scalar].
// Go has no operator overloading, so the ring operations are methods,
// and accumulation is written as x = x.Add(y).
package field

import "fmt"

// Scalar is the set of operations a ring coefficient supports.
//
// FromFloat32 and FromComplex128 ignore their receiver,
// so they can be called on the zero value of T.
type Scalar[T any] interface {
	comparable
	fmt.Stringer

	// Add returns x + y.
	Add(y T) T
	// Sub returns x - y.
	Sub(y T) T
	// Neg returns -x.
	Neg() T
	// Mul returns x * y.
	Mul(y T) T

	// FromFloat32 returns the scalar equal to the literal f.
	FromFloat32(f float32) T
	// Complex128 lifts x into the transform working type.
	Complex128() complex128
	// FromComplex128 projects c onto T.
	FromComplex128(c complex128) T
}

// Real is a Scalar embedded in the real line.
type Real[T any] interface {
	Scalar[T]

	// Float64 returns x as a float64.
	Float64() float64
}

// Zero returns the additive identity of T.
func Zero[T Scalar[T]]() T {
	var z T
	return z.FromFloat32(0)
}

// One returns the multiplicative identity of T.
func One[T Scalar[T]]() T {
	var z T
	return z.FromFloat32(1)
}

// Pow returns base^exp by square-and-multiply.
// Panics if exp is negative.
func Pow[T Scalar[T]](base T, exp int) T {
	if exp < 0 {
		panic("negative exponent")
	}

	res := One[T]()
	for exp > 0 {
		if exp&1 == 1 {
			res = res.Mul(base)
		}
		exp >>= 1
		if exp > 0 {
			base = base.Mul(base)
		}
	}
	return res
}
