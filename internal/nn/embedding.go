package nn

import (
	"fmt"
	"math"

	"github.com/born-ml/sprout/internal/backend/cpu"
	"github.com/born-ml/sprout/internal/tensor"
)

// Embedding is a lookup table that maps discrete indices to dense vectors.
//
// Indices arrive as float32 values (shape [n] or [n,1]) and are floored.
// Indices outside [0, NumEmbed) produce an all-zero row and contribute no
// gradient; they are not an error.
//
// Architecture:
//   - Weight: [NumEmbed, EmbedDim] learnable parameter
//   - Forward: indices [n] -> embeddings [n, EmbedDim]
//   - Backward: gradients scatter-add to weight rows
//
// Example:
//
//	embed := nn.NewEmbedding(10000, 256)
//	ids, _ := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3})
//	embeddings, _ := embed.Forward(nn.Eval, ids) // Shape: [3, 256]
type Embedding struct {
	Weight   *Parameter // Embedding weight matrix [NumEmbed, EmbedDim]
	NumEmbed int        // Number of embeddings (vocabulary size)
	EmbedDim int        // Embedding dimension (vector size)

	indices []int // recorded in Train mode
}

// NewEmbedding creates a new Embedding layer with Xavier-uniform weights.
func NewEmbedding(numEmbeddings, embeddingDim int, opts ...Option) *Embedding {
	if numEmbeddings <= 0 || embeddingDim <= 0 {
		panic(fmt.Sprintf("Embedding: sizes must be positive, got %d x %d", numEmbeddings, embeddingDim))
	}
	o := defaultOptions(opts)
	weight := Xavier(numEmbeddings, embeddingDim, tensor.Shape{numEmbeddings, embeddingDim}, o.rng)

	return &Embedding{
		Weight:   NewParameter("embedding.weight", weight),
		NumEmbed: numEmbeddings,
		EmbedDim: embeddingDim,
	}
}

// Name implements Module.
func (e *Embedding) Name() string { return "Embedding" }

// Forward performs embedding lookup, returning [n, EmbedDim].
// The floored indices are recorded in Train mode.
func (e *Embedding) Forward(mode Mode, input *tensor.Tensor) (*tensor.Tensor, error) {
	indices, err := e.lookup(input)
	if err != nil {
		return nil, err
	}

	out := tensor.Zeros(tensor.Shape{len(indices), e.EmbedDim})
	table := e.Weight.tensor.Data
	for i, idx := range indices {
		if idx < 0 {
			continue
		}
		copy(out.Data[i*e.EmbedDim:(i+1)*e.EmbedDim], table[idx*e.EmbedDim:(idx+1)*e.EmbedDim])
	}

	if mode == Train {
		e.indices = indices
	} else {
		e.indices = nil
	}
	return out, nil
}

// Backward scatter-adds gradient rows into the weight gradient. Indices are
// not differentiable, so the returned input gradient is all zeros.
func (e *Embedding) Backward(input, gradOutput *tensor.Tensor) (*tensor.Tensor, error) {
	indices := e.indices
	if indices == nil {
		if input == nil {
			return nil, fmt.Errorf("embedding backward: no input given and no indices recorded")
		}
		var err error
		if indices, err = e.lookup(input); err != nil {
			return nil, err
		}
	}
	if len(gradOutput.Data) != len(indices)*e.EmbedDim {
		return nil, fmt.Errorf("embedding backward: %w: gradient %v for %d indices of dim %d",
			tensor.ErrShapeMismatch, gradOutput.Shape, len(indices), e.EmbedDim)
	}

	grad := e.Weight.grad.Data
	for i, idx := range indices {
		if idx < 0 {
			continue
		}
		cpu.Axpy(1, gradOutput.Data[i*e.EmbedDim:(i+1)*e.EmbedDim], grad[idx*e.EmbedDim:(idx+1)*e.EmbedDim])
	}

	shape := tensor.Shape{len(indices)}
	if input != nil {
		shape = input.Shape
	}
	return tensor.Zeros(shape), nil
}

// lookup floors the input values. Out-of-range and NaN entries map to -1.
func (e *Embedding) lookup(input *tensor.Tensor) ([]int, error) {
	switch {
	case input.Rank() == 1:
	case input.Rank() == 2 && input.Shape[1] == 1:
	default:
		return nil, fmt.Errorf("embedding: %w: expected [n] or [n 1] indices, got %v",
			tensor.ErrShapeMismatch, input.Shape)
	}

	indices := make([]int, len(input.Data))
	for i, v := range input.Data {
		f := math.Floor(float64(v))
		if math.IsNaN(f) || f < 0 || f >= float64(e.NumEmbed) {
			indices[i] = -1
			continue
		}
		indices[i] = int(f)
	}
	return indices, nil
}

// UpdateParameters implements Module.
func (e *Embedding) UpdateParameters(lr float32) {
	e.Weight.Step(lr)
}

// ZeroGradParameters implements Module.
func (e *Embedding) ZeroGradParameters() {
	e.Weight.ZeroGrad()
}

// Parameters returns the list of trainable parameters.
func (e *Embedding) Parameters() []*Parameter {
	return []*Parameter{e.Weight}
}
