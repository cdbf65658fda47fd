// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/born-ml/sprout/internal/nn"
	"github.com/born-ml/sprout/internal/tensor"
)

// WithRand draws initial weights from rng instead of the global source.
func WithRand(rng *rand.Rand) Option {
	return nn.WithRand(rng)
}

// Xavier returns a tensor drawn from U(-b, b) with b = sqrt(6/(fanIn+fanOut)).
// A nil rng uses the global source.
func Xavier(fanIn, fanOut int, shape tensor.Shape, rng *rand.Rand) *tensor.Tensor {
	return nn.Xavier(fanIn, fanOut, shape, rng)
}
