package nn

import (
	"fmt"

	"github.com/born-ml/sprout/internal/tensor"
)

// Sequential is a container module that chains multiple modules together.
//
// Each module's output becomes the next module's input, creating a
// sequential pipeline of transformations. Backward walks the chain in
// reverse, feeding each module the input it saw during forward.
//
// Example:
//
//	model := nn.NewSequential(
//	    nn.NewLinear(784, 128),
//	    nn.NewReLU(),
//	    nn.NewLinear(128, 10),
//	)
//
//	output, err := model.Forward(nn.Train, input)
type Sequential struct {
	modules []Module

	input   *tensor.Tensor
	outputs []*tensor.Tensor // per module, recorded in Train mode
}

// NewSequential creates a new Sequential container.
func NewSequential(modules ...Module) *Sequential {
	return &Sequential{
		modules: modules,
	}
}

// Name implements Module.
func (s *Sequential) Name() string { return "Sequential" }

// Forward applies all modules in sequence with the same mode.
//
// In Train mode every intermediate output is recorded for Backward. An Eval
// forward drops any earlier record.
func (s *Sequential) Forward(mode Mode, input *tensor.Tensor) (*tensor.Tensor, error) {
	s.input, s.outputs = nil, nil

	var outputs []*tensor.Tensor
	if mode == Train {
		outputs = make([]*tensor.Tensor, 0, len(s.modules))
	}

	output := input
	for i, module := range s.modules {
		var err error
		output, err = module.Forward(mode, output)
		if err != nil {
			return nil, fmt.Errorf("sequential[%d] %s: %w", i, module.Name(), err)
		}
		if mode == Train {
			outputs = append(outputs, output)
		}
	}

	if mode == Train {
		s.input, s.outputs = input, outputs
	}
	return output, nil
}

// Backward propagates gradOutput through the modules in reverse order and
// returns the gradient with respect to the input.
//
// Module i receives input for i == 0 and the recorded output of module i-1
// otherwise. When nothing was recorded the forward pass is replayed in Eval
// mode to recover those inputs.
func (s *Sequential) Backward(input, gradOutput *tensor.Tensor) (*tensor.Tensor, error) {
	if input == nil {
		input = s.input
	}
	if input == nil {
		return nil, fmt.Errorf("sequential backward: no input given and none recorded")
	}

	outputs := s.outputs
	if outputs == nil {
		var err error
		if outputs, err = s.replay(input); err != nil {
			return nil, err
		}
	}

	grad := gradOutput
	for i := len(s.modules) - 1; i >= 0; i-- {
		in := input
		if i > 0 {
			in = outputs[i-1]
		}
		var err error
		grad, err = s.modules[i].Backward(in, grad)
		if err != nil {
			return nil, fmt.Errorf("sequential[%d] %s backward: %w", i, s.modules[i].Name(), err)
		}
	}
	return grad, nil
}

func (s *Sequential) replay(input *tensor.Tensor) ([]*tensor.Tensor, error) {
	outputs := make([]*tensor.Tensor, len(s.modules))
	output := input
	for i, module := range s.modules {
		var err error
		output, err = module.Forward(Eval, output)
		if err != nil {
			return nil, fmt.Errorf("sequential[%d] %s: %w", i, module.Name(), err)
		}
		outputs[i] = output
	}
	return outputs, nil
}

// UpdateParameters delegates to every module.
func (s *Sequential) UpdateParameters(lr float32) {
	for _, module := range s.modules {
		module.UpdateParameters(lr)
	}
}

// ZeroGradParameters delegates to every module.
func (s *Sequential) ZeroGradParameters() {
	for _, module := range s.modules {
		module.ZeroGradParameters()
	}
}

// Parameters returns all trainable parameters from all modules, in module
// order.
func (s *Sequential) Parameters() []*Parameter {
	var params []*Parameter

	for _, module := range s.modules {
		params = append(params, module.Parameters()...)
	}

	return params
}

// Add appends a module to the sequence.
//
// This allows building models incrementally:
//
//	model := nn.NewSequential()
//	model.Add(nn.NewLinear(784, 128))
//	model.Add(nn.NewReLU())
func (s *Sequential) Add(module Module) {
	s.modules = append(s.modules, module)
	s.input, s.outputs = nil, nil
}

// Len returns the number of modules in the sequence.
func (s *Sequential) Len() int {
	return len(s.modules)
}

// Module returns the module at index i.
func (s *Sequential) Module(i int) Module {
	return s.modules[i]
}
