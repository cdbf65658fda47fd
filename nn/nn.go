// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/sprout/internal/nn"
	"github.com/born-ml/sprout/internal/tensor"
)

// Module is the common interface for all neural network modules.
type Module = nn.Module

// Criterion is a loss function with paired forward and backward.
type Criterion = nn.Criterion

// Mode selects whether a forward pass records state for backward.
type Mode = nn.Mode

// Execution modes.
const (
	Eval  = nn.Eval
	Train = nn.Train
)

// Parameter represents a trainable parameter in a neural network.
type Parameter = nn.Parameter

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter(name string, t *tensor.Tensor) *Parameter {
	return nn.NewParameter(name, t)
}

// Option configures module construction.
type Option = nn.Option

// WithoutBias builds a Linear layer without a bias vector.
func WithoutBias() Option {
	return nn.WithoutBias()
}

// Layers

// Linear represents a fully connected (dense) layer.
type Linear = nn.Linear

// NewLinear creates a new linear layer with Xavier initialization.
//
// Example:
//
//	layer := nn.NewLinear(784, 128)
func NewLinear(inFeatures, outFeatures int, opts ...Option) *Linear {
	return nn.NewLinear(inFeatures, outFeatures, opts...)
}

// Embedding is a lookup table from indices to dense vectors.
type Embedding = nn.Embedding

// NewEmbedding creates an embedding table with Xavier initialization.
func NewEmbedding(numEmbeddings, embeddingDim int, opts ...Option) *Embedding {
	return nn.NewEmbedding(numEmbeddings, embeddingDim, opts...)
}

// Activations

// ReLU applies max(0, x).
type ReLU = nn.ReLU

// NewReLU creates a new ReLU activation.
func NewReLU() *ReLU {
	return nn.NewReLU()
}

// Sigmoid applies 1 / (1 + exp(-x)).
type Sigmoid = nn.Sigmoid

// NewSigmoid creates a new Sigmoid activation.
func NewSigmoid() *Sigmoid {
	return nn.NewSigmoid()
}

// Tanh applies the hyperbolic tangent.
type Tanh = nn.Tanh

// NewTanh creates a new Tanh activation.
func NewTanh() *Tanh {
	return nn.NewTanh()
}

// Containers

// Sequential chains modules.
type Sequential = nn.Sequential

// NewSequential creates a Sequential container.
func NewSequential(modules ...Module) *Sequential {
	return nn.NewSequential(modules...)
}

// Loss Functions

// MSE is the mean squared error criterion.
type MSE = nn.MSE

// NewMSE creates an MSE criterion.
func NewMSE() *MSE {
	return nn.NewMSE()
}
