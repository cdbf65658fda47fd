// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package train provides the training loop driver.
//
// Example:
//
//	trainer := train.New(model, nn.NewMSE(), train.Config{LearningRate: 0.1})
//	losses, err := trainer.Fit(x, y, 100, nil)
package train

import (
	"github.com/born-ml/sprout/internal/nn"
	"github.com/born-ml/sprout/internal/train"
)

// Trainer runs training and evaluation steps.
type Trainer = train.Trainer

// Config configures a Trainer.
type Config = train.Config

// DefaultLearningRate is used when Config.LearningRate is zero.
const DefaultLearningRate = train.DefaultLearningRate

// New creates a Trainer for model and criterion.
func New(model nn.Module, criterion nn.Criterion, cfg Config) *Trainer {
	return train.New(model, criterion, cfg)
}
