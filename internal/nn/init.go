package nn

import (
	"math"
	"math/rand"

	"github.com/born-ml/sprout/internal/tensor"
)

// Option configures module construction.
type Option func(*options)

type options struct {
	bias bool
	rng  *rand.Rand
}

func defaultOptions(opts []Option) options {
	o := options{bias: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithoutBias builds a Linear layer without a bias vector.
func WithoutBias() Option {
	return func(o *options) { o.bias = false }
}

// WithRand draws initial weights from rng instead of the global source.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// Xavier (Glorot) initialization for weights.
//
// Initializes weights with values drawn from a uniform distribution:
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out)))
//
// A nil rng uses the global math/rand source.
func Xavier(fanIn, fanOut int, shape tensor.Shape, rng *rand.Rand) *tensor.Tensor {
	bound := XavierBound(fanIn, fanOut)

	t := tensor.Zeros(shape)
	for i := range t.Data {
		var r float64
		if rng != nil {
			r = rng.Float64()
		} else {
			//nolint:gosec // Using math/rand for weight initialization (not security-critical)
			r = rand.Float64()
		}
		t.Data[i] = float32((r*2.0 - 1.0) * bound)
	}
	return t
}

// XavierBound returns sqrt(6 / (fanIn + fanOut)).
func XavierBound(fanIn, fanOut int) float64 {
	return math.Sqrt(6.0 / float64(fanIn+fanOut))
}
