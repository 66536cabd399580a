package matrix

import "fmt"

// ZeroDimensionError is returned when a matrix has no rows or no columns.
type ZeroDimensionError struct {
	Rows int
	Cols int
}

// Error implements the error interface.
func (e ZeroDimensionError) Error() string {
	return fmt.Sprintf("matrix: zero dimension %dx%d", e.Rows, e.Cols)
}

// InvalidModulusError is returned when the cells of a matrix have no positive modulus.
type InvalidModulusError struct {
	Modulus int
}

// Error implements the error interface.
func (e InvalidModulusError) Error() string {
	return fmt.Sprintf("matrix: invalid modulus %d", e.Modulus)
}

// InputSizeError is returned when the number of cells does not match the shape.
type InputSizeError struct {
	Expected int
	Actual   int
}

// Error implements the error interface.
func (e InputSizeError) Error() string {
	return fmt.Sprintf("matrix: expected %d cells, got %d", e.Expected, e.Actual)
}

// ShapeMismatchError is returned when the operands of a matrix operation
// have incompatible shapes.
type ShapeMismatchError struct {
	Op    string
	Left  [2]int
	Right [2]int
}

// Error implements the error interface.
func (e ShapeMismatchError) Error() string {
	return fmt.Sprintf("matrix: shape mismatch in %s: %dx%d and %dx%d", e.Op, e.Left[0], e.Left[1], e.Right[0], e.Right[1])
}

// IndexOutOfRangeError is returned when a cell is accessed outside of the matrix.
type IndexOutOfRangeError struct {
	Row  int
	Col  int
	Rows int
	Cols int
}

// Error implements the error interface.
func (e IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("matrix: index (%d, %d) out of range for %dx%d", e.Row, e.Col, e.Rows, e.Cols)
}
