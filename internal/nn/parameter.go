package nn

import (
	"fmt"

	"github.com/born-ml/sprout/internal/backend/cpu"
	"github.com/born-ml/sprout/internal/tensor"
)

// Parameter represents a trainable parameter in a neural network.
//
// A parameter pairs a value tensor with a gradient tensor of identical shape.
// The value tensor's Grad buffer aliases the gradient tensor's Data, so code
// that only sees the value tensor observes the same accumulated gradient.
//
// Example:
//
//	weight := nn.NewParameter("weight", weightTensor)
//	w := weight.Tensor()
//	g := weight.Grad()
type Parameter struct {
	name   string
	tensor *tensor.Tensor
	grad   *tensor.Tensor
}

// NewParameter creates a new trainable parameter around t and allocates its
// zero gradient.
func NewParameter(name string, t *tensor.Tensor) *Parameter {
	grad := &tensor.Tensor{
		ID:    "grad_" + t.ID,
		Shape: t.Shape.Clone(),
		Data:  t.EnsureGrad(),
		DType: t.DType,
		Name:  name + ".grad",
	}
	if t.Name == "" {
		t.Name = name
	}

	return &Parameter{
		name:   name,
		tensor: t,
		grad:   grad,
	}
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter) Tensor() *tensor.Tensor {
	return p.tensor
}

// Grad returns the gradient tensor.
func (p *Parameter) Grad() *tensor.Tensor {
	return p.grad
}

// ZeroGrad clears the gradient in place.
func (p *Parameter) ZeroGrad() {
	cpu.Fill(p.grad.Data, 0)
}

// Step applies one vanilla gradient-descent update: p -= lr * grad.
func (p *Parameter) Step(lr float32) {
	cpu.Axpy(-lr, p.grad.Data, p.tensor.Data)
}

// String implements fmt.Stringer.
func (p *Parameter) String() string {
	return fmt.Sprintf("Parameter(%s %v)", p.name, p.tensor.Shape)
}

// SplitParameters flattens params into parallel value and gradient lists.
func SplitParameters(params []*Parameter) (weights, grads []*tensor.Tensor) {
	weights = make([]*tensor.Tensor, len(params))
	grads = make([]*tensor.Tensor, len(params))
	for i, p := range params {
		weights[i] = p.tensor
		grads[i] = p.grad
	}
	return weights, grads
}

func stepAll(params []*Parameter, lr float32) {
	for _, p := range params {
		p.Step(lr)
	}
}

func zeroAll(params []*Parameter) {
	for _, p := range params {
		p.ZeroGrad()
	}
}
