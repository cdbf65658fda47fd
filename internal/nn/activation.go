package nn

import (
	"fmt"

	"github.com/born-ml/sprout/internal/backend/cpu"
	"github.com/born-ml/sprout/internal/tensor"
)

// stateless provides the parameter half of Module for layers without weights.
type stateless struct{}

func (stateless) UpdateParameters(float32) {}
func (stateless) ZeroGradParameters()      {}
func (stateless) Parameters() []*Parameter { return nil }

// ReLU is a Rectified Linear Unit activation module.
//
// Applies the element-wise function: f(x) = max(0, x)
//
// The gradient at exactly 0 is taken to be 0.
//
// Example:
//
//	relu := nn.NewReLU()
//	output, _ := relu.Forward(nn.Eval, input) // All negative values become 0
type ReLU struct {
	stateless
	input *tensor.Tensor
}

// NewReLU creates a new ReLU activation module.
func NewReLU() *ReLU {
	return &ReLU{}
}

// Name implements Module.
func (r *ReLU) Name() string { return "ReLU" }

// Forward applies ReLU activation. The input is recorded in Train mode.
func (r *ReLU) Forward(mode Mode, input *tensor.Tensor) (*tensor.Tensor, error) {
	out := tensor.Zeros(input.Shape)
	cpu.ReLU(out.Data, input.Data)
	r.input = recordIf(mode, input)
	return out, nil
}

// Backward computes dx = dy where x > 0, else 0. The recorded input is used
// only when input is nil.
func (r *ReLU) Backward(input, gradOutput *tensor.Tensor) (*tensor.Tensor, error) {
	x := input
	if x == nil {
		x = r.input
	}
	gradInput, err := activationGrad("relu", x, gradOutput)
	if err != nil {
		return nil, err
	}
	for i, v := range x.Data {
		if v > 0 {
			gradInput.Data[i] = gradOutput.Data[i]
		}
	}
	return gradInput, nil
}

// Sigmoid is a sigmoid activation module.
//
// Applies the element-wise function: σ(x) = 1 / (1 + exp(-x))
//
// Sigmoid squashes values to the range (0, 1).
type Sigmoid struct {
	stateless
	last forwardRecord
}

// NewSigmoid creates a new Sigmoid activation module.
func NewSigmoid() *Sigmoid {
	return &Sigmoid{}
}

// Name implements Module.
func (s *Sigmoid) Name() string { return "Sigmoid" }

// Forward applies Sigmoid activation. The output is recorded in Train mode.
func (s *Sigmoid) Forward(mode Mode, input *tensor.Tensor) (*tensor.Tensor, error) {
	out := tensor.Zeros(input.Shape)
	cpu.Sigmoid(out.Data, input.Data)
	s.last = recordForward(mode, input, out)
	return out, nil
}

// Backward computes dx = dy * y * (1 - y).
func (s *Sigmoid) Backward(input, gradOutput *tensor.Tensor) (*tensor.Tensor, error) {
	y, err := s.last.outputFor("sigmoid", input, cpu.Sigmoid)
	if err != nil {
		return nil, err
	}
	gradInput, err := activationGrad("sigmoid", y, gradOutput)
	if err != nil {
		return nil, err
	}
	for i, v := range y.Data {
		gradInput.Data[i] = gradOutput.Data[i] * v * (1 - v)
	}
	return gradInput, nil
}

// Tanh is a hyperbolic tangent activation module.
//
// Applies the element-wise function: tanh(x) = (exp(x) - exp(-x)) / (exp(x) + exp(-x))
type Tanh struct {
	stateless
	last forwardRecord
}

// NewTanh creates a new Tanh activation module.
func NewTanh() *Tanh {
	return &Tanh{}
}

// Name implements Module.
func (t *Tanh) Name() string { return "Tanh" }

// Forward applies Tanh activation. The output is recorded in Train mode.
func (t *Tanh) Forward(mode Mode, input *tensor.Tensor) (*tensor.Tensor, error) {
	out := tensor.Zeros(input.Shape)
	cpu.Tanh(out.Data, input.Data)
	t.last = recordForward(mode, input, out)
	return out, nil
}

// Backward computes dx = dy * (1 - y²).
func (t *Tanh) Backward(input, gradOutput *tensor.Tensor) (*tensor.Tensor, error) {
	y, err := t.last.outputFor("tanh", input, cpu.Tanh)
	if err != nil {
		return nil, err
	}
	gradInput, err := activationGrad("tanh", y, gradOutput)
	if err != nil {
		return nil, err
	}
	for i, v := range y.Data {
		gradInput.Data[i] = gradOutput.Data[i] * (1 - v*v)
	}
	return gradInput, nil
}

func recordIf(mode Mode, t *tensor.Tensor) *tensor.Tensor {
	if mode == Train {
		return t
	}
	return nil
}

// forwardRecord is the Train-mode forward of an activation: the input it saw
// and the output it produced.
type forwardRecord struct {
	input, output *tensor.Tensor
}

func recordForward(mode Mode, input, output *tensor.Tensor) forwardRecord {
	if mode != Train {
		return forwardRecord{}
	}
	return forwardRecord{input: input, output: output}
}

// outputFor returns the recorded output when input is nil or is the recorded
// input, and recomputes f(input) otherwise. A module instance used at several
// positions of a pipeline only keeps its last forward.
func (r forwardRecord) outputFor(op string, input *tensor.Tensor, f func(dst, x []float32)) (*tensor.Tensor, error) {
	if r.output != nil && (input == nil || input == r.input) {
		return r.output, nil
	}
	if input == nil {
		return nil, fmt.Errorf("%s backward: no input given and no output recorded", op)
	}
	y := tensor.Zeros(input.Shape)
	f(y.Data, input.Data)
	return y, nil
}

// activationGrad checks that gradOutput matches ref and returns a zero
// gradient buffer shaped like ref.
func activationGrad(op string, ref, gradOutput *tensor.Tensor) (*tensor.Tensor, error) {
	if ref == nil {
		return nil, fmt.Errorf("%s backward: no input given and none recorded", op)
	}
	if len(ref.Data) != len(gradOutput.Data) {
		return nil, fmt.Errorf("%s backward: %w: input has %d elements, gradient %d",
			op, tensor.ErrShapeMismatch, len(ref.Data), len(gradOutput.Data))
	}
	return tensor.Zeros(ref.Shape), nil
}
