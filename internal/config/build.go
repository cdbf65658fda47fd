package config

import (
	"math/rand"

	"github.com/born-ml/sprout/internal/nn"
	"github.com/born-ml/sprout/internal/optim"
)

// Rand returns a source seeded from Seed, or nil when Seed is zero so that
// callers fall back to the global source.
func (c *Config) Rand() *rand.Rand {
	if c.Seed == 0 {
		return nil
	}
	return rand.New(rand.NewSource(c.Seed)) //nolint:gosec // weight initialization, not security-critical
}

// BuildModel constructs the Sequential model described by the layer list.
// Weights are drawn from Rand.
func (c *Config) BuildModel() (*nn.Sequential, error) {
	if err := c.validateModel(); err != nil {
		return nil, err
	}

	var opts []nn.Option
	if rng := c.Rand(); rng != nil {
		opts = append(opts, nn.WithRand(rng))
	}

	model := nn.NewSequential()
	for _, l := range c.Model {
		switch l.Type {
		case LayerLinear:
			layerOpts := opts
			if l.Bias != nil && !*l.Bias {
				layerOpts = append(layerOpts[:len(layerOpts):len(layerOpts)], nn.WithoutBias())
			}
			model.Add(nn.NewLinear(l.In, l.Out, layerOpts...))
		case LayerEmbedding:
			model.Add(nn.NewEmbedding(l.Num, l.Dim, opts...))
		case LayerTanh:
			model.Add(nn.NewTanh())
		case LayerSigmoid:
			model.Add(nn.NewSigmoid())
		case LayerReLU:
			model.Add(nn.NewReLU())
		}
	}
	return model, nil
}

// BuildOptimizer returns the configured optimizer over params, or nil when
// no optimizer block is present.
func (c *Config) BuildOptimizer(params []*nn.Parameter) (optim.Optimizer, error) {
	o := c.Optimizer
	if o == nil {
		return nil, nil //nolint:nilnil // no optimizer means plain gradient descent
	}
	if err := c.validateOptimizer(); err != nil {
		return nil, err
	}

	var opt optim.Optimizer
	switch o.Name {
	case OptimizerSGD:
		sgd, err := optim.NewSGD(params, optim.SGDConfig{
			LR:          c.LearningRate,
			Momentum:    o.Momentum,
			Dampening:   o.Dampening,
			WeightDecay: o.WeightDecay,
			Nesterov:    o.Nesterov,
		})
		if err != nil {
			return nil, err
		}
		opt = sgd
	case OptimizerAdam:
		opt = optim.NewAdam(params, optim.AdamConfig{
			LR:          c.LearningRate,
			Betas:       o.Betas,
			Eps:         o.Eps,
			WeightDecay: o.WeightDecay,
		})
	}

	if o.StepSize > 0 {
		sched, err := optim.NewStepLR(opt, o.StepSize, o.Gamma)
		if err != nil {
			return nil, err
		}
		opt = sched
	}
	return opt, nil
}
