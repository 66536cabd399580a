// Package matrix implements matrices over the ring T[x]/(x^n - 1).
package matrix

import (
	"fmt"

	"github.com/sp301415/ringo-modpoly/conv"
	"github.com/sp301415/ringo-modpoly/field"
	"github.com/sp301415/ringo-modpoly/polyring"
)

// Matrix is a dense row-major matrix of ring elements
// sharing one modulus.
type Matrix[T field.Scalar[T]] struct {
	rows    int
	cols    int
	modulus int
	cells   []polyring.ModPoly[T]

	engine *conv.Engine
}

// Option configures a Matrix.
type Option func(*options)

type options struct {
	engine *conv.Engine
}

// WithEngine sets the convolution engine used by ring products.
func WithEngine(e *conv.Engine) Option {
	return func(o *options) {
		o.engine = e
	}
}

func newOptions(opts []Option) options {
	o := options{engine: conv.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New creates a new Matrix from row-major cells.
// Every cell must have the same positive modulus,
// so zero value cells are rejected.
func New[T field.Scalar[T]](rows, cols int, cells []polyring.ModPoly[T], opts ...Option) (*Matrix[T], error) {
	if rows <= 0 || cols <= 0 {
		return nil, ZeroDimensionError{Rows: rows, Cols: cols}
	}
	if len(cells) != rows*cols {
		return nil, InputSizeError{Expected: rows * cols, Actual: len(cells)}
	}

	modulus := cells[0].Modulus()
	if modulus <= 0 {
		return nil, InvalidModulusError{Modulus: modulus}
	}

	m := &Matrix[T]{
		rows:    rows,
		cols:    cols,
		modulus: modulus,
		cells:   make([]polyring.ModPoly[T], len(cells)),
		engine:  newOptions(opts).engine,
	}
	for i, c := range cells {
		if c.Modulus() != modulus {
			return nil, fmt.Errorf("matrix: cell %d: %w", i, polyring.ModulusMismatchError{Expected: modulus, Actual: c.Modulus()})
		}
		m.cells[i] = c.Clone()
	}
	return m, nil
}

// NewZero creates a new zero Matrix.
func NewZero[T field.Scalar[T]](rows, cols, modulus int, opts ...Option) (*Matrix[T], error) {
	if rows <= 0 || cols <= 0 {
		return nil, ZeroDimensionError{Rows: rows, Cols: cols}
	}
	if modulus <= 0 {
		return nil, InvalidModulusError{Modulus: modulus}
	}

	m := &Matrix[T]{
		rows:    rows,
		cols:    cols,
		modulus: modulus,
		cells:   make([]polyring.ModPoly[T], rows*cols),
		engine:  newOptions(opts).engine,
	}
	for i := range m.cells {
		m.cells[i] = polyring.NewZeroModPoly[T](modulus)
	}
	return m, nil
}

// Shape returns the number of rows and columns of m.
func (m *Matrix[T]) Shape() (rows, cols int) {
	return m.rows, m.cols
}

// Modulus returns the ring modulus shared by every cell.
func (m *Matrix[T]) Modulus() int {
	return m.modulus
}

func (m *Matrix[T]) checkIndex(i, j int) error {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		return IndexOutOfRangeError{Row: i, Col: j, Rows: m.rows, Cols: m.cols}
	}
	return nil
}

// At returns a copy of the cell at (i, j).
func (m *Matrix[T]) At(i, j int) (polyring.ModPoly[T], error) {
	if err := m.checkIndex(i, j); err != nil {
		return polyring.ModPoly[T]{}, err
	}
	return m.cells[i*m.cols+j].Clone(), nil
}

// Set sets the cell at (i, j) to a copy of p.
func (m *Matrix[T]) Set(i, j int, p polyring.ModPoly[T]) error {
	if err := m.checkIndex(i, j); err != nil {
		return err
	}
	if p.Modulus() != m.modulus {
		return polyring.ModulusMismatchError{Expected: m.modulus, Actual: p.Modulus()}
	}
	m.cells[i*m.cols+j] = p.Clone()
	return nil
}

func (m *Matrix[T]) clone() *Matrix[T] {
	mOut := *m
	mOut.cells = make([]polyring.ModPoly[T], len(m.cells))
	for i := range m.cells {
		mOut.cells[i] = m.cells[i].Clone()
	}
	return &mOut
}

// Transpose returns the transpose of m.
func (m *Matrix[T]) Transpose() *Matrix[T] {
	mOut := &Matrix[T]{
		rows:    m.cols,
		cols:    m.rows,
		modulus: m.modulus,
		cells:   make([]polyring.ModPoly[T], len(m.cells)),
		engine:  m.engine,
	}
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			mOut.cells[j*m.rows+i] = m.cells[i*m.cols+j].Clone()
		}
	}
	return mOut
}

func (m *Matrix[T]) checkSameShape(op string, other *Matrix[T]) error {
	if m.rows != other.rows || m.cols != other.cols {
		return ShapeMismatchError{Op: op, Left: [2]int{m.rows, m.cols}, Right: [2]int{other.rows, other.cols}}
	}
	if m.modulus != other.modulus {
		return fmt.Errorf("matrix: %s: %w", op, polyring.ModulusMismatchError{Expected: m.modulus, Actual: other.modulus})
	}
	return nil
}

func (m *Matrix[T]) checkMulShape(other *Matrix[T]) error {
	if m.cols != other.rows {
		return ShapeMismatchError{Op: "mul", Left: [2]int{m.rows, m.cols}, Right: [2]int{other.rows, other.cols}}
	}
	if m.modulus != other.modulus {
		return fmt.Errorf("matrix: mul: %w", polyring.ModulusMismatchError{Expected: m.modulus, Actual: other.modulus})
	}
	return nil
}

// Add returns m + other.
func (m *Matrix[T]) Add(other *Matrix[T]) (*Matrix[T], error) {
	if err := m.checkSameShape("add", other); err != nil {
		return nil, err
	}

	mOut := m.clone()
	for i := range mOut.cells {
		if err := mOut.cells[i].AddAssign(other.cells[i]); err != nil {
			return nil, fmt.Errorf("matrix: add: %w", err)
		}
	}
	return mOut, nil
}

// Sub returns m - other.
func (m *Matrix[T]) Sub(other *Matrix[T]) (*Matrix[T], error) {
	if err := m.checkSameShape("sub", other); err != nil {
		return nil, err
	}

	mOut := m.clone()
	for i := range mOut.cells {
		if err := mOut.cells[i].SubAssign(other.cells[i]); err != nil {
			return nil, fmt.Errorf("matrix: sub: %w", err)
		}
	}
	return mOut, nil
}

// Mul returns m * other.
func (m *Matrix[T]) Mul(other *Matrix[T]) (*Matrix[T], error) {
	if err := m.checkMulShape(other); err != nil {
		return nil, err
	}

	mOut, err := NewZero[T](m.rows, other.cols, m.modulus, WithEngine(m.engine))
	if err != nil {
		return nil, err
	}
	for i := 0; i < m.rows; i++ {
		if err := m.mulRowAssign(other, i, mOut); err != nil {
			return nil, err
		}
	}
	return mOut, nil
}

// mulRowAssign assigns row i of m * other to mOut.
func (m *Matrix[T]) mulRowAssign(other *Matrix[T], i int, mOut *Matrix[T]) error {
	for j := 0; j < other.cols; j++ {
		acc := mOut.cells[i*mOut.cols+j]
		for k := 0; k < m.cols; k++ {
			prod, err := m.cells[i*m.cols+k].MulWith(m.engine, other.cells[k*other.cols+j])
			if err != nil {
				return fmt.Errorf("matrix: mul (%d, %d): %w", i, j, err)
			}
			if err := acc.AddAssign(prod); err != nil {
				return fmt.Errorf("matrix: mul (%d, %d): %w", i, j, err)
			}
		}
	}
	return nil
}

// Equal reports whether m and other have the same shape and cells.
func (m *Matrix[T]) Equal(other *Matrix[T]) bool {
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i := range m.cells {
		if !m.cells[i].Equal(other.cells[i]) {
			return false
		}
	}
	return true
}
