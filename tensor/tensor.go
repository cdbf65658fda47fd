// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/sprout/internal/tensor"
)

// Tensor is a fixed-shape float32 buffer with an optional gradient buffer.
type Tensor = tensor.Tensor

// Shape lists the extent of each dimension.
type Shape = tensor.Shape

// DataType is the declared element type of a tensor.
type DataType = tensor.DataType

// Declared element types. Storage is always float32.
const (
	F32 = tensor.F32
	F16 = tensor.F16
	I32 = tensor.I32
	I16 = tensor.I16
	I8  = tensor.I8
)

// Rank variants.
type (
	// Ranked is either a Vector or a Matrix view.
	Ranked = tensor.Ranked
	// Vector is a rank-1 view.
	Vector = tensor.Vector
	// Matrix is a rank-2 view.
	Matrix = tensor.Matrix
)

// Sentinel errors.
var (
	ErrShapeMismatch        = tensor.ErrShapeMismatch
	ErrUnsupportedOperation = tensor.ErrUnsupportedOperation
	ErrInvalidShape         = tensor.ErrInvalidShape
	ErrUnknownTensor        = tensor.ErrUnknownTensor
	ErrMemoryLimit          = tensor.ErrMemoryLimit
)

// New creates a zero-filled tensor with the given shape and declared type.
func New(shape Shape, dtype DataType) (*Tensor, error) {
	return tensor.New(shape, dtype)
}

// Zeros creates a zero-filled f32 tensor. It panics on an invalid shape.
func Zeros(shape Shape) *Tensor {
	return tensor.Zeros(shape)
}

// FromSlice creates an f32 tensor holding a copy of data.
//
// Example:
//
//	x, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
func FromSlice(data []float32, shape Shape) (*Tensor, error) {
	return tensor.FromSlice(data, shape)
}

// ParseDataType parses "f32", "f16", "i32", "i16" or "i8".
func ParseDataType(s string) (DataType, error) {
	return tensor.ParseDataType(s)
}

// Classify returns the rank variant of t, or ErrUnsupportedOperation when t
// is neither rank 1 nor rank 2.
func Classify(t *Tensor) (Ranked, error) {
	return tensor.Classify(t)
}
