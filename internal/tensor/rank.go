package tensor

import "fmt"

// Ranked is a tensor viewed through its rank. The only variants are Vector
// and Matrix; callers dispatch with an exhaustive type switch.
type Ranked interface {
	ranked()
}

// Vector is a rank-1 view.
type Vector struct {
	T   *Tensor
	Len int
}

// Matrix is a rank-2 view.
type Matrix struct {
	T          *Tensor
	Rows, Cols int
}

func (Vector) ranked() {}
func (Matrix) ranked() {}

// Classify returns the rank variant of t, or ErrUnsupportedOperation when
// t is neither rank 1 nor rank 2.
func Classify(t *Tensor) (Ranked, error) {
	switch len(t.Shape) {
	case 1:
		return Vector{T: t, Len: t.Shape[0]}, nil
	case 2:
		return Matrix{T: t, Rows: t.Shape[0], Cols: t.Shape[1]}, nil
	default:
		return nil, fmt.Errorf("%w: rank %d tensor %v", ErrUnsupportedOperation, len(t.Shape), t.Shape)
	}
}

// AsMatrix requires t to be rank 2. Any other rank is a shape mismatch.
func AsMatrix(t *Tensor) (Matrix, error) {
	if len(t.Shape) != 2 {
		return Matrix{}, fmt.Errorf("%w: expected rank 2, got %v", ErrShapeMismatch, t.Shape)
	}
	return Matrix{T: t, Rows: t.Shape[0], Cols: t.Shape[1]}, nil
}
