// Package train drives a model, a criterion and an optional optimizer
// through training and evaluation steps.
//
// A training step is: zero gradients, forward in Train mode, loss, loss
// gradient, backward, parameter update. Without an optimizer the update is
// plain gradient descent through Module.UpdateParameters.
package train

import (
	"errors"
	"fmt"

	"github.com/born-ml/sprout/internal/nn"
	"github.com/born-ml/sprout/internal/optim"
	"github.com/born-ml/sprout/internal/tensor"
)

// DefaultLearningRate is used when Config.LearningRate is zero.
const DefaultLearningRate = 0.01

// Config configures a Trainer.
type Config struct {
	LearningRate float32         // default: DefaultLearningRate
	Optimizer    optim.Optimizer // optional; replaces plain gradient descent
}

// Trainer owns the training loop for one model and criterion.
//
// Example:
//
//	trainer := train.New(model, nn.NewMSE(), train.Config{LearningRate: 0.1})
//	for range 100 {
//	    loss, err := trainer.Train(x, y)
//	}
type Trainer struct {
	model     nn.Module
	criterion nn.Criterion
	optimizer optim.Optimizer
	lr        float32
}

// New creates a Trainer. When an optimizer is configured and
// Config.LearningRate is set, the optimizer adopts that learning rate.
func New(model nn.Module, criterion nn.Criterion, cfg Config) *Trainer {
	t := &Trainer{
		model:     model,
		criterion: criterion,
		optimizer: cfg.Optimizer,
		lr:        cfg.LearningRate,
	}
	switch {
	case t.lr != 0 && t.optimizer != nil:
		t.optimizer.SetLR(t.lr)
	case t.lr == 0 && t.optimizer != nil:
		t.lr = t.optimizer.LR()
	case t.lr == 0:
		t.lr = DefaultLearningRate
	}
	return t
}

// Train runs one training step and returns the loss before the update.
func (t *Trainer) Train(input, target *tensor.Tensor) (float32, error) {
	if t.optimizer != nil {
		t.optimizer.ZeroGrad()
	} else {
		t.model.ZeroGradParameters()
	}

	output, err := t.model.Forward(nn.Train, input)
	if err != nil {
		return 0, fmt.Errorf("train: forward: %w", err)
	}
	loss, err := t.criterion.Forward(output, target)
	if err != nil {
		return 0, fmt.Errorf("train: loss: %w", err)
	}
	gradOutput, err := t.criterion.Backward(output, target)
	if err != nil {
		return 0, fmt.Errorf("train: loss gradient: %w", err)
	}
	if _, err := t.model.Backward(input, gradOutput); err != nil {
		return 0, fmt.Errorf("train: backward: %w", err)
	}

	if t.optimizer != nil {
		t.optimizer.Step()
	} else {
		t.model.UpdateParameters(t.lr)
	}
	return loss, nil
}

// Evaluate computes the loss in Eval mode without touching parameters or
// gradients.
func (t *Trainer) Evaluate(input, target *tensor.Tensor) (float32, error) {
	output, err := t.model.Forward(nn.Eval, input)
	if err != nil {
		return 0, fmt.Errorf("evaluate: forward: %w", err)
	}
	loss, err := t.criterion.Forward(output, target)
	if err != nil {
		return 0, fmt.Errorf("evaluate: loss: %w", err)
	}
	return loss, nil
}

// SetLearningRate changes the learning rate for subsequent Train calls.
func (t *Trainer) SetLearningRate(lr float32) {
	t.lr = lr
	if t.optimizer != nil {
		t.optimizer.SetLR(lr)
	}
}

// LearningRate returns the current learning rate. With an optimizer this is
// the optimizer's rate, which a scheduler may have changed.
func (t *Trainer) LearningRate() float32 {
	if t.optimizer != nil {
		return t.optimizer.LR()
	}
	return t.lr
}

// Fit runs steps training steps on the same batch and returns the loss of
// each step. onStep, if non-nil, is called after every step.
func (t *Trainer) Fit(input, target *tensor.Tensor, steps int, onStep func(step int, loss float32)) ([]float32, error) {
	if steps <= 0 {
		return nil, errors.New("fit: steps must be positive")
	}
	history := make([]float32, 0, steps)
	for step := 0; step < steps; step++ {
		loss, err := t.Train(input, target)
		if err != nil {
			return history, fmt.Errorf("fit: step %d: %w", step, err)
		}
		history = append(history, loss)
		if onStep != nil {
			onStep(step, loss)
		}
	}
	return history, nil
}
