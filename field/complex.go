package field

// Complex is a complex scalar built over a real scalar F.
type Complex[F Real[F]] struct {
	Re F
	Im F
}

// NewComplex creates a new Complex.
func NewComplex[F Real[F]](re, im F) Complex[F] {
	return Complex[F]{Re: re, Im: im}
}

// I returns the imaginary unit over F.
func I[F Real[F]]() Complex[F] {
	return Complex[F]{Re: Zero[F](), Im: One[F]()}
}

// Real returns the real part of z.
func (z Complex[F]) Real() F {
	return z.Re
}

// Imag returns the imaginary part of z.
func (z Complex[F]) Imag() F {
	return z.Im
}

// Conj returns the complex conjugate of z.
func (z Complex[F]) Conj() Complex[F] {
	return Complex[F]{Re: z.Re, Im: z.Im.Neg()}
}

// Add returns z + w.
func (z Complex[F]) Add(w Complex[F]) Complex[F] {
	return Complex[F]{Re: z.Re.Add(w.Re), Im: z.Im.Add(w.Im)}
}

// Sub returns z - w.
func (z Complex[F]) Sub(w Complex[F]) Complex[F] {
	return Complex[F]{Re: z.Re.Sub(w.Re), Im: z.Im.Sub(w.Im)}
}

// Neg returns -z.
func (z Complex[F]) Neg() Complex[F] {
	return Complex[F]{Re: z.Re.Neg(), Im: z.Im.Neg()}
}

// Mul returns z * w.
func (z Complex[F]) Mul(w Complex[F]) Complex[F] {
	return Complex[F]{
		Re: z.Re.Mul(w.Re).Sub(z.Im.Mul(w.Im)),
		Im: z.Re.Mul(w.Im).Add(z.Im.Mul(w.Re)),
	}
}

// FromFloat32 returns f + 0i.
func (Complex[F]) FromFloat32(f float32) Complex[F] {
	var r F
	return Complex[F]{Re: r.FromFloat32(f), Im: r.FromFloat32(0)}
}

// Complex128 returns z as a complex128.
func (z Complex[F]) Complex128() complex128 {
	return complex(z.Re.Float64(), z.Im.Float64())
}

// FromComplex128 returns c as a Complex, keeping both parts.
func (Complex[F]) FromComplex128(c complex128) Complex[F] {
	var r F
	return Complex[F]{
		Re: r.FromComplex128(complex(real(c), 0)),
		Im: r.FromComplex128(complex(imag(c), 0)),
	}
}

// String returns z formatted as "a + bi", or "a - bi" if b is negative.
func (z Complex[F]) String() string {
	if z.Im.Float64() < 0 {
		return z.Re.String() + " - " + z.Im.Neg().String() + "i"
	}
	return z.Re.String() + " + " + z.Im.String() + "i"
}
