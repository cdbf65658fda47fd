package tensor

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataTypeSize(t *testing.T) {
	tests := []struct {
		dtype DataType
		size  int
		name  string
	}{
		{F32, 4, "f32"},
		{F16, 2, "f16"},
		{I32, 4, "i32"},
		{I16, 2, "i16"},
		{I8, 1, "i8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.size, tt.dtype.Size())
			assert.Equal(t, tt.name, tt.dtype.String())

			parsed, err := ParseDataType(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.dtype, parsed)
		})
	}

	_, err := ParseDataType("bf16")
	assert.Error(t, err)
}

func TestShape(t *testing.T) {
	tests := []struct {
		name     string
		shape    Shape
		elements int
		valid    bool
	}{
		{"scalar", Shape{}, 1, true},
		{"vector", Shape{5}, 5, true},
		{"matrix", Shape{3, 4}, 12, true},
		{"zero dim", Shape{3, 0}, 0, false},
		{"negative dim", Shape{-1, 2}, -2, false},
		{"overflow", Shape{math.MaxInt/2 + 1, 2}, math.MinInt, false},
		{"overflow wraps to zero", Shape{math.MaxInt/2 + 1, 2, 2}, 0, false},
		{"largest", Shape{math.MaxInt}, math.MaxInt, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.elements, tt.shape.NumElements())
			err := tt.shape.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidShape)
			}
		})
	}

	s := Shape{2, 3}
	c := s.Clone()
	c[0] = 9
	assert.Equal(t, 2, s[0], "Clone must not alias")
	assert.True(t, Shape{2, 3}.Equal(Shape{2, 3}))
	assert.False(t, Shape{2, 3}.Equal(Shape{3, 2}))
	assert.False(t, Shape{6}.Equal(Shape{2, 3}))
}

func TestNew(t *testing.T) {
	x, err := New(Shape{2, 3}, F16)
	require.NoError(t, err)

	assert.Len(t, x.Data, 6)
	assert.Nil(t, x.Grad)
	assert.Equal(t, F16, x.DType)
	assert.NotEmpty(t, x.ID)
	assert.Equal(t, 2, x.Rank())

	y := Zeros(Shape{2, 3})
	assert.NotEqual(t, x.ID, y.ID, "ids must be unique")

	_, err = New(Shape{0}, F32)
	assert.ErrorIs(t, err, ErrInvalidShape)

	_, err = New(Shape{math.MaxInt/2 + 1, 2, 2}, F32)
	assert.ErrorIs(t, err, ErrInvalidShape, "element count overflows")
}

func TestFromSlice(t *testing.T) {
	src := []float32{1, 2, 3, 4}
	x, err := FromSlice(src, Shape{2, 2})
	require.NoError(t, err)

	src[0] = 100
	assert.Equal(t, float32(1), x.Data[0], "FromSlice must copy")

	_, err = FromSlice([]float32{1, 2, 3}, Shape{2, 2})
	assert.True(t, errors.Is(err, ErrShapeMismatch))
}

func TestEnsureGrad(t *testing.T) {
	x := Zeros(Shape{3})
	g := x.EnsureGrad()
	assert.Len(t, g, 3)
	assert.True(t, x.RequiresGrad)

	g[1] = 5
	assert.Equal(t, float32(5), x.EnsureGrad()[1], "EnsureGrad must keep an existing buffer")
}

func TestClassify(t *testing.T) {
	v, err := Classify(Zeros(Shape{4}))
	require.NoError(t, err)
	switch r := v.(type) {
	case Vector:
		assert.Equal(t, 4, r.Len)
	case Matrix:
		t.Fatalf("rank 1 classified as matrix")
	}

	m, err := Classify(Zeros(Shape{2, 5}))
	require.NoError(t, err)
	mat, ok := m.(Matrix)
	require.True(t, ok)
	assert.Equal(t, 2, mat.Rows)
	assert.Equal(t, 5, mat.Cols)

	_, err = Classify(Zeros(Shape{2, 2, 2}))
	assert.ErrorIs(t, err, ErrUnsupportedOperation)

	_, err = AsMatrix(Zeros(Shape{4}))
	assert.ErrorIs(t, err, ErrShapeMismatch)
}
