package tensor

import (
	"fmt"

	"github.com/google/uuid"
)

// Tensor is a fixed-shape float32 buffer with an optional gradient buffer.
//
// Tensor is a plain record: operations live in the kernel and nn packages.
// Data always holds Shape.NumElements() values in row-major order. Grad is
// either nil or the same length as Data. Gradients accumulate across backward
// calls until they are explicitly zeroed.
type Tensor struct {
	ID           string
	Shape        Shape
	Data         []float32
	DType        DataType
	Grad         []float32
	RequiresGrad bool
	Name         string
	Metadata     map[string]any
}

// New creates a zero-filled tensor with the given shape and declared type.
func New(shape Shape, dtype DataType) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return &Tensor{
		ID:    uuid.NewString(),
		Shape: shape.Clone(),
		Data:  make([]float32, shape.NumElements()),
		DType: dtype,
	}, nil
}

// Zeros creates a zero-filled f32 tensor. It panics on an invalid shape.
func Zeros(shape Shape) *Tensor {
	t, err := New(shape, F32)
	if err != nil {
		panic(fmt.Sprintf("tensor.Zeros: %v", err))
	}
	return t
}

// FromSlice creates an f32 tensor holding a copy of data.
//
// Example:
//
//	x, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
func FromSlice(data []float32, shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("%w: %d values for shape %v", ErrShapeMismatch, len(data), shape)
	}
	t := &Tensor{
		ID:    uuid.NewString(),
		Shape: shape.Clone(),
		Data:  make([]float32, len(data)),
		DType: F32,
	}
	copy(t.Data, data)
	return t, nil
}

// NumElements returns the number of elements described by the shape.
func (t *Tensor) NumElements() int {
	return t.Shape.NumElements()
}

// Rank returns the number of dimensions.
func (t *Tensor) Rank() int {
	return len(t.Shape)
}

// EnsureGrad allocates a zero gradient buffer if none exists and marks the
// tensor as requiring gradients. It returns the gradient buffer.
func (t *Tensor) EnsureGrad() []float32 {
	if t.Grad == nil {
		t.Grad = make([]float32, len(t.Data))
	}
	t.RequiresGrad = true
	return t.Grad
}

// String implements fmt.Stringer.
func (t *Tensor) String() string {
	if t.Name != "" {
		return fmt.Sprintf("Tensor(%s %v %s)", t.Name, t.Shape, t.DType)
	}
	return fmt.Sprintf("Tensor(%v %s)", t.Shape, t.DType)
}
