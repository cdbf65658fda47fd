package nn

import (
	"fmt"

	"github.com/born-ml/sprout/internal/backend/cpu"
	"github.com/born-ml/sprout/internal/tensor"
)

// Linear implements a fully connected (dense) layer.
//
// Performs the transformation: y = x @ W.T + b
// where:
//   - x is the input tensor with shape [batch_size, in_features]
//   - W is the weight matrix with shape [out_features, in_features]
//   - b is the bias vector with shape [out_features]
//   - y is the output tensor with shape [batch_size, out_features]
//
// Weights are initialized using Xavier/Glorot initialization.
// Biases are initialized to zeros.
//
// Example:
//
//	layer := nn.NewLinear(784, 128)
//	output, err := layer.Forward(nn.Train, input) // input [32, 784] -> [32, 128]
type Linear struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter // [out_features, in_features]
	bias        *Parameter // [out_features], nil WithoutBias

	input *tensor.Tensor // recorded in Train mode
}

// NewLinear creates a new Linear layer.
//
// Parameters:
//   - inFeatures: Number of input features
//   - outFeatures: Number of output features
//   - opts: WithoutBias, WithRand
func NewLinear(inFeatures, outFeatures int, opts ...Option) *Linear {
	if inFeatures <= 0 || outFeatures <= 0 {
		panic(fmt.Sprintf("Linear: features must be positive, got in=%d out=%d", inFeatures, outFeatures))
	}
	o := defaultOptions(opts)

	weightTensor := Xavier(inFeatures, outFeatures, tensor.Shape{outFeatures, inFeatures}, o.rng)
	l := &Linear{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      NewParameter("weight", weightTensor),
	}
	if o.bias {
		l.bias = NewParameter("bias", tensor.Zeros(tensor.Shape{outFeatures}))
	}
	return l
}

// Name implements Module.
func (l *Linear) Name() string {
	return "Linear"
}

// Forward computes y = x @ W.T + b.
//
// Input shape: [batch_size, in_features]
// Output shape: [batch_size, out_features]
//
// In Train mode the input is recorded for Backward.
func (l *Linear) Forward(mode Mode, input *tensor.Tensor) (*tensor.Tensor, error) {
	batch, err := l.checkInput(input)
	if err != nil {
		return nil, err
	}

	out := tensor.Zeros(tensor.Shape{batch, l.outFeatures})
	cpu.Gemm(false, true, batch, l.outFeatures, l.inFeatures, 1,
		input.Data, l.weight.tensor.Data, 0, out.Data)
	if l.bias != nil {
		cpu.AddRowVector(out.Data, l.bias.tensor.Data, batch, l.outFeatures)
	}

	if mode == Train {
		l.input = input
	} else {
		l.input = nil
	}
	return out, nil
}

// Backward computes the input gradient and accumulates weight and bias
// gradients:
//
//	grad_x = grad_y @ W
//	grad_W += grad_y.T @ x
//	grad_b += sum_rows(grad_y)
//
// A nil input falls back to the input recorded by the last Train forward.
func (l *Linear) Backward(input, gradOutput *tensor.Tensor) (*tensor.Tensor, error) {
	if input == nil {
		input = l.input
	}
	if input == nil {
		return nil, fmt.Errorf("linear backward: no input given and none recorded")
	}
	batch, err := l.checkInput(input)
	if err != nil {
		return nil, err
	}
	if !gradOutput.Shape.Equal(tensor.Shape{batch, l.outFeatures}) {
		return nil, fmt.Errorf("linear backward: %w: grad %v, expected [%d %d]",
			tensor.ErrShapeMismatch, gradOutput.Shape, batch, l.outFeatures)
	}

	gradInput := tensor.Zeros(tensor.Shape{batch, l.inFeatures})
	cpu.Gemm(false, false, batch, l.inFeatures, l.outFeatures, 1,
		gradOutput.Data, l.weight.tensor.Data, 0, gradInput.Data)

	cpu.Gemm(true, false, l.outFeatures, l.inFeatures, batch, 1,
		gradOutput.Data, input.Data, 1, l.weight.grad.Data)
	if l.bias != nil {
		cpu.SumRows(l.bias.grad.Data, gradOutput.Data, batch, l.outFeatures)
	}
	return gradInput, nil
}

func (l *Linear) checkInput(input *tensor.Tensor) (int, error) {
	m, err := tensor.AsMatrix(input)
	if err != nil {
		return 0, fmt.Errorf("linear: %w", err)
	}
	if m.Cols != l.inFeatures {
		return 0, fmt.Errorf("linear: %w: expected %d input features, got %d",
			tensor.ErrShapeMismatch, l.inFeatures, m.Cols)
	}
	return m.Rows, nil
}

// UpdateParameters implements Module.
func (l *Linear) UpdateParameters(lr float32) {
	stepAll(l.Parameters(), lr)
}

// ZeroGradParameters implements Module.
func (l *Linear) ZeroGradParameters() {
	zeroAll(l.Parameters())
}

// Parameters returns the weight followed by the bias, if any.
func (l *Linear) Parameters() []*Parameter {
	if l.bias == nil {
		return []*Parameter{l.weight}
	}
	return []*Parameter{l.weight, l.bias}
}

// Weight returns the weight parameter.
func (l *Linear) Weight() *Parameter {
	return l.weight
}

// Bias returns the bias parameter, or nil for a layer built WithoutBias.
func (l *Linear) Bias() *Parameter {
	return l.bias
}

// InFeatures returns the number of input features.
func (l *Linear) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the number of output features.
func (l *Linear) OutFeatures() int {
	return l.outFeatures
}
