package tensor

import (
	"fmt"
	"math"
	"slices"
)

// Shape lists a tensor's dimensions, outermost first. The empty shape is a
// scalar.
type Shape []int

// NumElements returns the product of the dimensions, 1 for a scalar. The
// result is exact only for shapes that pass Validate.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate rejects non-positive dimensions and shapes whose element count
// does not fit in an int.
func (s Shape) Validate() error {
	n := 1
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("%w: dimension %d is %d (must be > 0)", ErrInvalidShape, i, dim)
		}
		if n > math.MaxInt/dim {
			return fmt.Errorf("%w: %v overflows int at dimension %d", ErrInvalidShape, s, i)
		}
		n *= dim
	}
	return nil
}

// Equal reports whether both shapes have the same dimensions.
func (s Shape) Equal(other Shape) bool { return slices.Equal(s, other) }

// Clone returns an independent copy; cloning a nil shape yields nil.
func (s Shape) Clone() Shape { return slices.Clone(s) }
