package optim

import (
	"errors"

	"github.com/born-ml/sprout/internal/backend/cpu"
	"github.com/born-ml/sprout/internal/nn"
)

// SGD implements Stochastic Gradient Descent optimizer with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	gradient = gradient + weight_decay * param
//	velocity = momentum * velocity + (1 - dampening) * gradient
//	param = param - lr * velocity
//
// On the first step the velocity is initialized to the gradient itself.
// With Nesterov momentum the update direction is gradient + momentum * velocity.
//
// Example:
//
//	optimizer, err := optim.NewSGD(model.Parameters(), optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
type SGD struct {
	params      []*nn.Parameter
	lr          float32
	momentum    float32
	dampening   float32
	weightDecay float32
	nesterov    bool
	velocities  map[*nn.Parameter][]float32
	scratch     map[*nn.Parameter][]float32
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR          float32 // Learning rate (default: 0.01)
	Momentum    float32 // Momentum factor (default: 0.0, range: [0, 1))
	Dampening   float32 // Dampening for momentum (default: 0.0)
	WeightDecay float32 // L2 penalty (default: 0.0)
	Nesterov    bool    // Enables Nesterov momentum
}

// NewSGD creates a new SGD optimizer.
//
// Nesterov momentum requires a positive momentum and zero dampening.
func NewSGD(params []*nn.Parameter, config SGDConfig) (*SGD, error) {
	if config.LR == 0 {
		config.LR = 0.01
	}
	if config.LR < 0 || config.Momentum < 0 || config.WeightDecay < 0 {
		return nil, errors.New("sgd: learning rate, momentum and weight decay must be non-negative")
	}
	if config.Nesterov && (config.Momentum <= 0 || config.Dampening != 0) {
		return nil, errors.New("sgd: nesterov momentum requires a momentum and zero dampening")
	}

	return &SGD{
		params:      params,
		lr:          config.LR,
		momentum:    config.Momentum,
		dampening:   config.Dampening,
		weightDecay: config.WeightDecay,
		nesterov:    config.Nesterov,
		velocities:  make(map[*nn.Parameter][]float32),
		scratch:     make(map[*nn.Parameter][]float32),
	}, nil
}

// Step performs a single optimization step.
func (s *SGD) Step() {
	for _, param := range s.params {
		grad := decayed(param, s.weightDecay, s.scratchFor(param))

		if s.momentum != 0 {
			velocity, exists := s.velocities[param]
			if !exists {
				velocity = make([]float32, len(grad))
				copy(velocity, grad)
				s.velocities[param] = velocity
			} else {
				cpu.Scal(s.momentum, velocity)
				cpu.Axpy(1-s.dampening, grad, velocity)
			}

			if s.nesterov {
				cpu.Axpy(s.momentum, velocity, grad)
			} else {
				grad = velocity
			}
		}

		cpu.Axpy(-s.lr, grad, param.Tensor().Data)
	}
}

func (s *SGD) scratchFor(p *nn.Parameter) []float32 {
	buf, ok := s.scratch[p]
	if !ok {
		buf = make([]float32, len(p.Tensor().Data))
		s.scratch[p] = buf
	}
	return buf
}

// ZeroGrad clears gradients for all parameters.
func (s *SGD) ZeroGrad() {
	zeroGrads(s.params)
}

// LR returns the current learning rate.
func (s *SGD) LR() float32 {
	return s.lr
}

// SetLR updates the learning rate.
//
// Useful for learning rate scheduling during training.
func (s *SGD) SetLR(lr float32) {
	s.lr = lr
}

// Velocity returns the momentum buffer for p, or nil before the first
// momentum step.
func (s *SGD) Velocity(p *nn.Parameter) []float32 {
	return s.velocities[p]
}
