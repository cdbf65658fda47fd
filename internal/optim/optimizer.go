// Package optim implements optimization algorithms for training neural networks.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with momentum, dampening, weight decay and Nesterov
//   - Adam: Adaptive Moment Estimation
//   - StepLR: Step learning rate decay wrapped around another optimizer
//
// Optimizers read the gradients accumulated on nn.Parameter by explicit
// module backward passes and update parameter values in place.
//
// Example usage:
//
//	optimizer := optim.NewAdam(model.Parameters(), optim.AdamConfig{
//	    LR: 0.001,
//	})
//
//	for step := range steps {
//	    optimizer.ZeroGrad()
//	    output, _ := model.Forward(nn.Train, input)
//	    grad, _ := criterion.Backward(output, target)
//	    model.Backward(input, grad)
//	    optimizer.Step()
//	}
package optim

import (
	"github.com/born-ml/sprout/internal/backend/cpu"
	"github.com/born-ml/sprout/internal/nn"
)

// Optimizer is the base interface for all optimization algorithms.
//
// Optimizers update model parameters based on computed gradients to
// minimize the loss function during training.
type Optimizer interface {
	// Step applies one update to every parameter using its current gradient.
	Step()

	// ZeroGrad clears all parameter gradients.
	//
	// This should be called before each backward pass to prevent
	// gradient accumulation from previous iterations.
	ZeroGrad()

	// LR returns the current learning rate.
	LR() float32

	// SetLR updates the learning rate used by later steps.
	SetLR(lr float32)
}

// Config is the base configuration for all optimizers.
type Config struct {
	LR float32 // Learning rate
}

func zeroGrads(params []*nn.Parameter) {
	for _, p := range params {
		p.ZeroGrad()
	}
}

// decayed writes grad + weightDecay*param into scratch and returns it. The
// parameter's own gradient buffer is never modified.
func decayed(p *nn.Parameter, weightDecay float32, scratch []float32) []float32 {
	copy(scratch, p.Grad().Data)
	if weightDecay != 0 {
		cpu.Axpy(weightDecay, p.Tensor().Data, scratch)
	}
	return scratch
}
