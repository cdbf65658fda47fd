package nn_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/sprout/internal/nn"
	"github.com/born-ml/sprout/internal/tensor"
)

func TestReLU(t *testing.T) {
	relu := nn.NewReLU()
	x := mustTensor(t, []float32{-2, -1, 0, 1}, tensor.Shape{4})

	y, err := relu.Forward(nn.Train, x)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 0, 1}, y.Data)

	gy := mustTensor(t, []float32{1, 1, 1, 1}, tensor.Shape{4})
	gx, err := relu.Backward(x, gy)
	require.NoError(t, err)
	// The gradient at exactly zero is zero.
	assert.Equal(t, []float32{0, 0, 0, 1}, gx.Data)
	assert.Nil(t, relu.Parameters())
}

func TestSigmoid(t *testing.T) {
	sigmoid := nn.NewSigmoid()
	x := mustTensor(t, []float32{-10, 0, 10}, tensor.Shape{3})

	y, err := sigmoid.Forward(nn.Eval, x)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, y.Data[1], 1e-6)
	for _, v := range y.Data {
		assert.Greater(t, v, float32(0))
		assert.Less(t, v, float32(1))
	}

	// Backward without a recorded output recomputes from the input.
	gx, err := sigmoid.Backward(x, mustTensor(t, []float32{1, 1, 1}, tensor.Shape{3}))
	require.NoError(t, err)
	assert.InDelta(t, 0.25, gx.Data[1], 1e-6)
}

func TestTanh(t *testing.T) {
	tanh := nn.NewTanh()
	x := mustTensor(t, []float32{-1, 0, 0.5}, tensor.Shape{3})

	y, err := tanh.Forward(nn.Train, x)
	require.NoError(t, err)
	for i, v := range x.Data {
		assert.InDelta(t, math.Tanh(float64(v)), y.Data[i], 1e-6)
	}

	gx, err := tanh.Backward(nil, mustTensor(t, []float32{2, 2, 2}, tensor.Shape{3}))
	require.NoError(t, err)
	for i, v := range y.Data {
		assert.InDelta(t, 2*(1-v*v), gx.Data[i], 1e-6)
	}
}

func TestActivationBackwardShapeMismatch(t *testing.T) {
	x := mustTensor(t, []float32{1, 2, 3}, tensor.Shape{3})
	gy := mustTensor(t, []float32{1, 2}, tensor.Shape{2})

	for _, m := range []nn.Module{nn.NewReLU(), nn.NewSigmoid(), nn.NewTanh()} {
		_, err := m.Backward(x, gy)
		assert.ErrorIs(t, err, tensor.ErrShapeMismatch, m.Name())
	}
}

func TestActivationBackwardWithoutInput(t *testing.T) {
	gy := mustTensor(t, []float32{1}, tensor.Shape{1})
	for _, m := range []nn.Module{nn.NewReLU(), nn.NewSigmoid(), nn.NewTanh()} {
		_, err := m.Backward(nil, gy)
		assert.Error(t, err, m.Name())
	}
}

func TestActivationEvalDiscardsRecord(t *testing.T) {
	tanh := nn.NewTanh()
	a := mustTensor(t, []float32{2}, tensor.Shape{1})
	b := mustTensor(t, []float32{0}, tensor.Shape{1})

	_, err := tanh.Forward(nn.Train, a)
	require.NoError(t, err)
	_, err = tanh.Forward(nn.Eval, b)
	require.NoError(t, err)

	// With no record left, backward recomputes from b: tanh'(0) = 1.
	gx, err := tanh.Backward(b, mustTensor(t, []float32{1}, tensor.Shape{1}))
	require.NoError(t, err)
	assert.InDelta(t, 1, gx.Data[0], 1e-6)
}

func TestActivationGradientCheck(t *testing.T) {
	x := mustTensor(t, []float32{-1.5, -0.3, 0.4, 2}, tensor.Shape{2, 2})
	r := mustTensor(t, []float32{1, -1, 0.5, 2}, tensor.Shape{2, 2})

	for _, m := range []nn.Module{nn.NewReLU(), nn.NewSigmoid(), nn.NewTanh()} {
		t.Run(m.Name(), func(t *testing.T) {
			checkGradients(t, m, x, r)
		})
	}
}
