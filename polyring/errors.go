package polyring

import "fmt"

// ModulusMismatchError is returned when a binary ring operation
// gets operands of different moduli.
type ModulusMismatchError struct {
	Expected int
	Actual   int
}

// Error implements the error interface.
func (e ModulusMismatchError) Error() string {
	return fmt.Sprintf("polyring: modulus mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// DegreeOutOfRangeError is returned when a coefficient is accessed
// outside of [0, Modulus).
type DegreeOutOfRangeError struct {
	Index   int
	Modulus int
}

// Error implements the error interface.
func (e DegreeOutOfRangeError) Error() string {
	return fmt.Sprintf("polyring: degree %d out of range for modulus %d", e.Index, e.Modulus)
}
