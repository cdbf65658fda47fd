// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network layers and building blocks.
//
// # Overview
//
// This package contains:
//   - Layers: Linear, Embedding
//   - Activations: ReLU, Sigmoid, Tanh
//   - Loss functions: MSE
//   - Utilities: Sequential, Module interface, Parameter, Mode
//   - Initialization: Xavier
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/sprout/nn"
//	    "github.com/born-ml/sprout/tensor"
//	)
//
//	func main() {
//	    model := nn.NewSequential(
//	        nn.NewLinear(4, 8),
//	        nn.NewTanh(),
//	        nn.NewLinear(8, 2),
//	        nn.NewSigmoid(),
//	    )
//
//	    x, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{1, 4})
//	    y, err := model.Forward(nn.Eval, x) // [1, 2]
//	}
//
// # Modes
//
// Forward takes an explicit Mode. Train records what Backward needs; Eval
// records nothing and drops earlier records.
//
// # Backward
//
// Every module implements Backward(input, gradOutput), returning the input
// gradient and accumulating parameter gradients. Sequential chains these in
// reverse order:
//
//	criterion := nn.NewMSE()
//	y, _ := model.Forward(nn.Train, x)
//	grad, _ := criterion.Backward(y, target)
//	model.Backward(x, grad)
//	model.UpdateParameters(0.1)
//	model.ZeroGradParameters()
package nn
