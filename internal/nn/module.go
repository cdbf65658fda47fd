// Package nn implements neural network modules for sprout.
//
// This package provides building blocks for constructing neural networks:
//   - Module interface: forward, backward and parameter management
//   - Parameter: Trainable parameters paired with gradient tensors
//   - Linear: Fully connected layer
//   - Activations: ReLU, Sigmoid, Tanh
//   - Embedding: Lookup table for discrete indices
//   - Sequential: Container for stacking layers
//   - MSE: Mean squared error criterion
//
// Backward is explicit: each module turns an output gradient into an input
// gradient and accumulates its own parameter gradients. Whether a forward
// call records state for backward is decided by the Mode argument rather than
// by a flag stored on the module.
package nn

import (
	"github.com/born-ml/sprout/internal/tensor"
)

// Mode selects how a forward pass behaves.
type Mode int

const (
	// Eval runs forward without recording anything for backward and discards
	// state recorded by earlier Train passes.
	Eval Mode = iota

	// Train records what backward needs (inputs, outputs or indices).
	Train
)

// String returns "eval" or "train".
func (m Mode) String() string {
	if m == Train {
		return "train"
	}
	return "eval"
}

// Module is the base interface for all neural network components.
//
// Modules can be composed to build complex architectures:
//
//	model := nn.NewSequential(
//	    nn.NewLinear(4, 8),
//	    nn.NewTanh(),
//	    nn.NewLinear(8, 2),
//	)
type Module interface {
	// Name returns a short, human-readable module name (e.g. "Linear").
	Name() string

	// Forward computes the output of the module given an input tensor.
	Forward(mode Mode, input *tensor.Tensor) (*tensor.Tensor, error)

	// Backward returns the gradient with respect to input, given the
	// forward-time input and the gradient with respect to the output.
	// Parameter gradients are accumulated, never overwritten.
	Backward(input, gradOutput *tensor.Tensor) (*tensor.Tensor, error)

	// UpdateParameters applies p -= lr * grad to every parameter.
	UpdateParameters(lr float32)

	// ZeroGradParameters sets every parameter gradient to zero.
	ZeroGradParameters()

	// Parameters returns all trainable parameters of this module,
	// including those of nested modules. Modules without parameters
	// return nil.
	Parameters() []*Parameter
}

// Criterion is a loss function with paired forward and backward.
type Criterion interface {
	// Forward returns the scalar loss.
	Forward(prediction, target *tensor.Tensor) (float32, error)

	// Backward returns d(loss)/d(prediction).
	Backward(prediction, target *tensor.Tensor) (*tensor.Tensor, error)
}
