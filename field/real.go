package field

import "strconv"

// Float64 is a double precision real scalar.
type Float64 float64

// Add returns x + y.
func (x Float64) Add(y Float64) Float64 {
	return x + y
}

// Sub returns x - y.
func (x Float64) Sub(y Float64) Float64 {
	return x - y
}

// Neg returns -x.
func (x Float64) Neg() Float64 {
	return -x
}

// Mul returns x * y.
func (x Float64) Mul(y Float64) Float64 {
	return x * y
}

// FromFloat32 returns f as a Float64.
func (Float64) FromFloat32(f float32) Float64 {
	return Float64(f)
}

// Complex128 returns x + 0i.
func (x Float64) Complex128() complex128 {
	return complex(float64(x), 0)
}

// FromComplex128 returns the real part of c.
func (Float64) FromComplex128(c complex128) Float64 {
	return Float64(real(c))
}

// Float64 returns x as a float64.
func (x Float64) Float64() float64 {
	return float64(x)
}

// String returns the shortest decimal representation of x.
func (x Float64) String() string {
	return strconv.FormatFloat(float64(x), 'g', -1, 64)
}

// Float32 is a single precision real scalar.
// Transforms still run in double precision.
type Float32 float32

// Add returns x + y.
func (x Float32) Add(y Float32) Float32 {
	return x + y
}

// Sub returns x - y.
func (x Float32) Sub(y Float32) Float32 {
	return x - y
}

// Neg returns -x.
func (x Float32) Neg() Float32 {
	return -x
}

// Mul returns x * y.
func (x Float32) Mul(y Float32) Float32 {
	return x * y
}

// FromFloat32 returns f as a Float32.
func (Float32) FromFloat32(f float32) Float32 {
	return Float32(f)
}

// Complex128 returns x + 0i.
func (x Float32) Complex128() complex128 {
	return complex(float64(x), 0)
}

// FromComplex128 returns the real part of c, rounded to single precision.
func (Float32) FromComplex128(c complex128) Float32 {
	return Float32(real(c))
}

// Float64 returns x as a float64.
func (x Float32) Float64() float64 {
	return float64(x)
}

// String returns the shortest decimal representation of x.
func (x Float32) String() string {
	return strconv.FormatFloat(float64(x), 'g', -1, 32)
}
