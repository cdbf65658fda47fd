package optim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/sprout/internal/nn"
	"github.com/born-ml/sprout/internal/optim"
	"github.com/born-ml/sprout/internal/tensor"
)

// Helper to check float equality with tolerance.
func floatEqual(a, b, eps float32) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < eps
}

func newParam(t *testing.T, value float32) *nn.Parameter {
	t.Helper()
	x, err := tensor.FromSlice([]float32{value}, tensor.Shape{1})
	require.NoError(t, err)
	return nn.NewParameter("x", x)
}

func setGrad(p *nn.Parameter, g float32) {
	p.Grad().Data[0] = g
}

func value(p *nn.Parameter) float32 {
	return p.Tensor().Data[0]
}

func newSGD(t *testing.T, params []*nn.Parameter, cfg optim.SGDConfig) *optim.SGD {
	t.Helper()
	sgd, err := optim.NewSGD(params, cfg)
	require.NoError(t, err)
	return sgd
}

// TestSGD_SimpleUpdate tests SGD without momentum.
func TestSGD_SimpleUpdate(t *testing.T) {
	param := newParam(t, 2.0)
	optimizer := newSGD(t, []*nn.Parameter{param}, optim.SGDConfig{LR: 0.1})

	setGrad(param, 1.0)
	optimizer.Step()

	// Expected: x_new = x_old - lr * grad = 2.0 - 0.1 * 1.0 = 1.9
	if !floatEqual(value(param), 1.9, 1e-6) {
		t.Errorf("SGD update: got %f, want %f", value(param), 1.9)
	}
}

// TestSGD_WithMomentum tests SGD with momentum.
func TestSGD_WithMomentum(t *testing.T) {
	param := newParam(t, 1.0)
	optimizer := newSGD(t, []*nn.Parameter{param}, optim.SGDConfig{LR: 0.1, Momentum: 0.9})

	assert.Nil(t, optimizer.Velocity(param))

	// First step copies the gradient into the velocity: v = 1.
	setGrad(param, 1.0)
	optimizer.Step()
	assert.InDelta(t, 0.9, value(param), 1e-6)
	assert.InDeltaSlice(t, []float32{1}, optimizer.Velocity(param), 1e-6)

	// Second step: v = 0.9 * 1 + 1 = 1.9, x = 0.9 - 0.19.
	optimizer.Step()
	assert.InDelta(t, 0.71, value(param), 1e-6)
}

func TestSGD_Dampening(t *testing.T) {
	param := newParam(t, 1.0)
	optimizer := newSGD(t, []*nn.Parameter{param}, optim.SGDConfig{LR: 0.1, Momentum: 0.9, Dampening: 0.5})

	setGrad(param, 1.0)
	optimizer.Step() // v = 1, dampening does not apply to the first step
	optimizer.Step() // v = 0.9 + 0.5 = 1.4
	assert.InDelta(t, 0.9-0.14, value(param), 1e-6)
}

func TestSGD_Nesterov(t *testing.T) {
	param := newParam(t, 1.0)
	optimizer := newSGD(t, []*nn.Parameter{param}, optim.SGDConfig{LR: 0.1, Momentum: 0.9, Nesterov: true})

	setGrad(param, 1.0)
	optimizer.Step() // direction = g + 0.9 * v = 1.9
	assert.InDelta(t, 0.81, value(param), 1e-6)
	assert.Equal(t, float32(1), param.Grad().Data[0], "gradient buffer must not change")
}

func TestSGD_NesterovValidation(t *testing.T) {
	p := []*nn.Parameter{newParam(t, 0)}

	_, err := optim.NewSGD(p, optim.SGDConfig{Nesterov: true})
	assert.Error(t, err)

	_, err = optim.NewSGD(p, optim.SGDConfig{Nesterov: true, Momentum: 0.9, Dampening: 0.1})
	assert.Error(t, err)

	_, err = optim.NewSGD(p, optim.SGDConfig{Momentum: -1})
	assert.Error(t, err)
}

func TestSGD_WeightDecay(t *testing.T) {
	param := newParam(t, 2.0)
	optimizer := newSGD(t, []*nn.Parameter{param}, optim.SGDConfig{LR: 0.1, WeightDecay: 0.1})

	setGrad(param, 1.0)
	optimizer.Step() // g = 1 + 0.1 * 2 = 1.2
	assert.InDelta(t, 1.88, value(param), 1e-6)
	assert.Equal(t, float32(1), param.Grad().Data[0])
}

func TestSGD_DefaultsAndLR(t *testing.T) {
	optimizer := newSGD(t, nil, optim.SGDConfig{})
	assert.Equal(t, float32(0.01), optimizer.LR())

	optimizer.SetLR(0.5)
	assert.Equal(t, float32(0.5), optimizer.LR())
}

func TestZeroGrad(t *testing.T) {
	param := newParam(t, 1.0)
	setGrad(param, 3)

	for _, opt := range []optim.Optimizer{
		newSGD(t, []*nn.Parameter{param}, optim.SGDConfig{}),
		optim.NewAdam([]*nn.Parameter{param}, optim.AdamConfig{}),
	} {
		setGrad(param, 3)
		opt.ZeroGrad()
		assert.Equal(t, float32(0), param.Grad().Data[0])
	}
}

// TestAdam_FirstStep checks that the bias-corrected first step moves each
// parameter by roughly lr in the direction opposite the gradient.
func TestAdam_FirstStep(t *testing.T) {
	param := newParam(t, 1.0)
	optimizer := optim.NewAdam([]*nn.Parameter{param}, optim.AdamConfig{LR: 0.1})

	setGrad(param, 2.0)
	optimizer.Step()

	assert.InDelta(t, 0.9, value(param), 1e-5)
	assert.Equal(t, 1, optimizer.Timestep())
}

func TestAdam_Defaults(t *testing.T) {
	optimizer := optim.NewAdam(nil, optim.AdamConfig{})
	assert.Equal(t, float32(0.001), optimizer.LR())
	optimizer.SetLR(0.01)
	assert.Equal(t, float32(0.01), optimizer.LR())
}

func TestAdam_WeightDecay(t *testing.T) {
	// With a zero gradient only the decay term drives the update.
	param := newParam(t, 1.0)
	optimizer := optim.NewAdam([]*nn.Parameter{param}, optim.AdamConfig{LR: 0.1, WeightDecay: 0.5})

	optimizer.Step()
	assert.InDelta(t, 0.9, value(param), 1e-5)
}

// minimize runs opt on f(x) = (x - 3)² and returns the final x.
func minimize(param *nn.Parameter, opt optim.Optimizer, steps int) float32 {
	for i := 0; i < steps; i++ {
		opt.ZeroGrad()
		setGrad(param, 2*(value(param)-3))
		opt.Step()
	}
	return value(param)
}

func TestOptimizersConverge(t *testing.T) {
	p1 := newParam(t, 0)
	assert.InDelta(t, 3, minimize(p1, newSGD(t, []*nn.Parameter{p1}, optim.SGDConfig{LR: 0.1}), 100), 1e-3)

	p2 := newParam(t, 0)
	sgdm := newSGD(t, []*nn.Parameter{p2}, optim.SGDConfig{LR: 0.05, Momentum: 0.9, Nesterov: true})
	assert.InDelta(t, 3, minimize(p2, sgdm, 300), 1e-2)

	p3 := newParam(t, 0)
	assert.InDelta(t, 3, minimize(p3, optim.NewAdam([]*nn.Parameter{p3}, optim.AdamConfig{LR: 0.1}), 500), 0.1)
}

func TestStepLR(t *testing.T) {
	param := newParam(t, 0)
	sgd := newSGD(t, []*nn.Parameter{param}, optim.SGDConfig{LR: 1})
	sched, err := optim.NewStepLR(sgd, 2, 0.5)
	require.NoError(t, err)

	var opt optim.Optimizer = sched
	opt.Step()
	assert.Equal(t, float32(1), opt.LR())
	opt.Step()
	assert.Equal(t, float32(0.5), opt.LR())
	assert.Equal(t, float32(0.5), sgd.LR())
	opt.Step()
	opt.Step()
	assert.Equal(t, float32(0.25), opt.LR())
	assert.Equal(t, 4, sched.Steps())
}

func TestStepLRValidation(t *testing.T) {
	sgd := newSGD(t, nil, optim.SGDConfig{})

	_, err := optim.NewStepLR(sgd, 0, 0.5)
	assert.Error(t, err)
	_, err = optim.NewStepLR(sgd, 1, 0)
	assert.Error(t, err)
	_, err = optim.NewStepLR(sgd, 1, 1.5)
	assert.Error(t, err)
}
