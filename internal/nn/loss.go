package nn

import (
	"fmt"

	"github.com/born-ml/sprout/internal/tensor"
)

// MSE computes Mean Squared Error loss.
//
// Loss = mean((predictions - targets)²)
//
// Example:
//
//	mse := nn.NewMSE()
//	loss, err := mse.Forward(predictions, targets)
//	grad, err := mse.Backward(predictions, targets)
type MSE struct{}

// NewMSE creates a new MSE loss function.
func NewMSE() *MSE {
	return &MSE{}
}

// Forward computes the MSE loss over all elements.
func (m *MSE) Forward(predictions, targets *tensor.Tensor) (float32, error) {
	if err := checkSameShape("mse", predictions, targets); err != nil {
		return 0, err
	}

	var sum float64
	for i, p := range predictions.Data {
		d := float64(p - targets.Data[i])
		sum += d * d
	}
	return float32(sum / float64(len(predictions.Data))), nil
}

// Backward computes d(loss)/d(predictions) = 2 * (predictions - targets) / N.
func (m *MSE) Backward(predictions, targets *tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkSameShape("mse backward", predictions, targets); err != nil {
		return nil, err
	}

	grad := tensor.Zeros(predictions.Shape)
	scale := 2 / float32(len(predictions.Data))
	for i, p := range predictions.Data {
		grad.Data[i] = scale * (p - targets.Data[i])
	}
	return grad, nil
}

func checkSameShape(op string, a, b *tensor.Tensor) error {
	if !a.Shape.Equal(b.Shape) {
		return fmt.Errorf("%s: %w: %v vs %v", op, tensor.ErrShapeMismatch, a.Shape, b.Shape)
	}
	return nil
}
