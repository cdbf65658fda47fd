// Package config loads a training run description from YAML and builds the
// model and optimizer it describes.
//
// Example file:
//
//	seed: 7
//	learning_rate: 0.1
//	steps: 50
//	optimizer: {name: sgd, momentum: 0.9}
//	model:
//	  - {type: linear, in: 4, out: 8}
//	  - {type: tanh}
//	  - {type: linear, in: 8, out: 2, bias: false}
//	  - {type: sigmoid}
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults applied by Parse.
const (
	DefaultLearningRate = 0.01
	DefaultSteps        = 100
	DefaultBatchSize    = 16
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Layer types accepted in the model list.
const (
	LayerLinear    = "linear"
	LayerTanh      = "tanh"
	LayerSigmoid   = "sigmoid"
	LayerReLU      = "relu"
	LayerEmbedding = "embedding"
)

// Optimizer names accepted in the optimizer block.
const (
	OptimizerSGD  = "sgd"
	OptimizerAdam = "adam"
)

// Config describes one training run.
type Config struct {
	Seed         int64            `yaml:"seed"`          // 0 picks a time-based seed
	LearningRate float32          `yaml:"learning_rate"` // default: 0.01
	Steps        int              `yaml:"steps"`         // default: 100
	BatchSize    int              `yaml:"batch_size"`    // default: 16
	MaxBytes     int64            `yaml:"max_bytes"`     // kernel capacity, 0 for the kernel default
	Optimizer    *OptimizerConfig `yaml:"optimizer"`     // nil trains with plain gradient descent
	Model        []LayerConfig    `yaml:"model"`
}

// OptimizerConfig selects and tunes an optimizer. Zero values fall back to
// the optimizer's own defaults.
type OptimizerConfig struct {
	Name        string     `yaml:"name"`
	Momentum    float32    `yaml:"momentum"`
	Dampening   float32    `yaml:"dampening"`
	Nesterov    bool       `yaml:"nesterov"`
	WeightDecay float32    `yaml:"weight_decay"`
	Betas       [2]float32 `yaml:"betas"`
	Eps         float32    `yaml:"eps"`

	// StepSize > 0 wraps the optimizer in a StepLR schedule.
	StepSize int     `yaml:"step_size"`
	Gamma    float32 `yaml:"gamma"`
}

// LayerConfig is one entry of the model list.
type LayerConfig struct {
	Type string `yaml:"type"`
	In   int    `yaml:"in"`   // linear
	Out  int    `yaml:"out"`  // linear
	Bias *bool  `yaml:"bias"` // linear, default true
	Num  int    `yaml:"num"`  // embedding table size
	Dim  int    `yaml:"dim"`  // embedding width
}

// Load reads and parses a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML, applies defaults and validates the result. Unknown
// fields are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LearningRate == 0 {
		c.LearningRate = DefaultLearningRate
	}
	if c.Steps == 0 {
		c.Steps = DefaultSteps
	}
	if c.BatchSize == 0 {
		c.BatchSize = DefaultBatchSize
	}
}

// Validate checks value ranges, names and that consecutive layer widths
// agree.
func (c *Config) Validate() error {
	if c.LearningRate < 0 {
		return fmt.Errorf("%w: learning_rate must be non-negative, got %g", ErrInvalid, c.LearningRate)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("%w: steps must be positive, got %d", ErrInvalid, c.Steps)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: batch_size must be positive, got %d", ErrInvalid, c.BatchSize)
	}
	if c.MaxBytes < 0 {
		return fmt.Errorf("%w: max_bytes must be non-negative, got %d", ErrInvalid, c.MaxBytes)
	}
	if err := c.validateOptimizer(); err != nil {
		return err
	}
	return c.validateModel()
}

func (c *Config) validateOptimizer() error {
	o := c.Optimizer
	if o == nil {
		return nil
	}
	switch o.Name {
	case OptimizerSGD:
		if o.Nesterov && (o.Momentum <= 0 || o.Dampening != 0) {
			return fmt.Errorf("%w: nesterov requires momentum > 0 and dampening 0", ErrInvalid)
		}
	case OptimizerAdam:
	default:
		return fmt.Errorf("%w: unknown optimizer %q", ErrInvalid, o.Name)
	}
	if o.StepSize < 0 {
		return fmt.Errorf("%w: step_size must be non-negative, got %d", ErrInvalid, o.StepSize)
	}
	if o.StepSize > 0 && (o.Gamma <= 0 || o.Gamma > 1) {
		return fmt.Errorf("%w: gamma must be in (0, 1], got %g", ErrInvalid, o.Gamma)
	}
	return nil
}

func (c *Config) validateModel() error {
	if len(c.Model) == 0 {
		return fmt.Errorf("%w: model has no layers", ErrInvalid)
	}

	width := 0 // 0 until the first layer fixes it
	for i, l := range c.Model {
		switch l.Type {
		case LayerLinear:
			if l.In <= 0 || l.Out <= 0 {
				return fmt.Errorf("%w: layer %d: linear needs positive in and out", ErrInvalid, i)
			}
			if width != 0 && width != l.In {
				return fmt.Errorf("%w: layer %d: linear expects %d inputs, previous layer yields %d",
					ErrInvalid, i, l.In, width)
			}
			width = l.Out
		case LayerEmbedding:
			if i != 0 {
				return fmt.Errorf("%w: layer %d: embedding must be the first layer", ErrInvalid, i)
			}
			if l.Num <= 0 || l.Dim <= 0 {
				return fmt.Errorf("%w: layer %d: embedding needs positive num and dim", ErrInvalid, i)
			}
			width = l.Dim
		case LayerTanh, LayerSigmoid, LayerReLU:
		default:
			return fmt.Errorf("%w: layer %d: unknown layer type %q", ErrInvalid, i, l.Type)
		}
	}
	if width == 0 {
		return fmt.Errorf("%w: model needs at least one linear or embedding layer", ErrInvalid)
	}
	return nil
}

// InputDim returns the feature count of the first linear layer, or 0 when the
// model starts with an embedding and consumes indices.
func (c *Config) InputDim() int {
	for _, l := range c.Model {
		switch l.Type {
		case LayerLinear:
			return l.In
		case LayerEmbedding:
			return 0
		}
	}
	return 0
}

// OutputDim returns the width of the model output.
func (c *Config) OutputDim() int {
	width := 0
	for _, l := range c.Model {
		switch l.Type {
		case LayerLinear:
			width = l.Out
		case LayerEmbedding:
			width = l.Dim
		}
	}
	return width
}
