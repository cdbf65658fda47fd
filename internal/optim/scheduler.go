package optim

import "fmt"

// StepLR decays the learning rate of the wrapped optimizer by gamma every
// stepSize calls to Step. StepLR is itself an Optimizer, so it can be handed
// to anything that drives an optimizer.
//
// Example:
//
//	sgd, _ := optim.NewSGD(params, optim.SGDConfig{LR: 0.1})
//	opt, _ := optim.NewStepLR(sgd, 30, 0.1) // lr 0.1 -> 0.01 after 30 steps
type StepLR struct {
	Optimizer
	stepSize int
	gamma    float32
	steps    int
}

// NewStepLR wraps opt with step decay. stepSize must be positive and gamma
// must lie in (0, 1].
func NewStepLR(opt Optimizer, stepSize int, gamma float32) (*StepLR, error) {
	if stepSize <= 0 {
		return nil, fmt.Errorf("step lr: step size must be positive, got %d", stepSize)
	}
	if gamma <= 0 || gamma > 1 {
		return nil, fmt.Errorf("step lr: gamma must be in (0, 1], got %g", gamma)
	}
	return &StepLR{Optimizer: opt, stepSize: stepSize, gamma: gamma}, nil
}

// Step runs the wrapped optimizer step, then decays the learning rate when a
// step boundary is reached.
func (s *StepLR) Step() {
	s.Optimizer.Step()
	s.steps++
	if s.steps%s.stepSize == 0 {
		s.SetLR(s.LR() * s.gamma)
	}
}

// Steps returns the number of steps taken so far.
func (s *StepLR) Steps() int {
	return s.steps
}
