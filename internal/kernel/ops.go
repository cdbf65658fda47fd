package kernel

import (
	"fmt"

	"github.com/born-ml/sprout/internal/backend/cpu"
	"github.com/born-ml/sprout/internal/tensor"
)

// MatMul computes a @ b for a [m,k] and b [k,n]. Both operands must be rank 2
// with matching inner dimensions, otherwise ErrShapeMismatch is returned.
func (k *Kernel) MatMul(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkBuffers("matmul", a, b); err != nil {
		return nil, err
	}
	ma, err := tensor.AsMatrix(a)
	if err != nil {
		return nil, fmt.Errorf("matmul: %w", err)
	}
	mb, err := tensor.AsMatrix(b)
	if err != nil {
		return nil, fmt.Errorf("matmul: %w", err)
	}
	return k.matmul(ma, mb)
}

func (k *Kernel) matmul(a, b tensor.Matrix) (*tensor.Tensor, error) {
	if a.Cols != b.Rows {
		return nil, fmt.Errorf("matmul: %w: [%d,%d] @ [%d,%d]",
			tensor.ErrShapeMismatch, a.Rows, a.Cols, b.Rows, b.Cols)
	}

	out, err := k.alloc(tensor.Shape{a.Rows, b.Cols}, tensor.F32, a.T.RequiresGrad || b.T.RequiresGrad)
	if err != nil {
		return nil, fmt.Errorf("matmul: %w", err)
	}
	cpu.Gemm(false, false, a.Rows, b.Cols, a.Cols, 1, a.T.Data, b.T.Data, 0, out.Data)
	return out, nil
}

// Softmax normalizes t along dim; negative dims count from the end.
//
// Only the last dimension of a rank-2 tensor is supported. Any other
// configuration returns an unchanged copy of t together with an error
// wrapping ErrUnsupportedOperation, so callers that accept a pass-through
// may keep the copy.
func (k *Kernel) Softmax(t *tensor.Tensor, dim int) (*tensor.Tensor, error) {
	if err := checkBuffers("softmax", t); err != nil {
		return nil, err
	}
	if dim < 0 {
		dim += t.Rank()
	}

	out, err := k.alloc(t.Shape, t.DType, t.RequiresGrad)
	if err != nil {
		return nil, fmt.Errorf("softmax: %w", err)
	}

	r, err := tensor.Classify(t)
	if err != nil {
		copy(out.Data, t.Data)
		return out, fmt.Errorf("softmax: %w", err)
	}

	switch v := r.(type) {
	case tensor.Matrix:
		if dim == 1 {
			cpu.SoftmaxRows(out.Data, v.T.Data, v.Rows, v.Cols)
			return out, nil
		}
		copy(out.Data, t.Data)
		return out, fmt.Errorf("softmax: %w: dim %d of rank-2 tensor", tensor.ErrUnsupportedOperation, dim)
	case tensor.Vector:
		copy(out.Data, t.Data)
		return out, fmt.Errorf("softmax: %w: rank-1 tensor", tensor.ErrUnsupportedOperation)
	default:
		panic(fmt.Sprintf("softmax: unexpected rank variant %T", r))
	}
}

// Add computes the elementwise sum of two tensors with identical shapes.
func (k *Kernel) Add(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkBuffers("add", a, b); err != nil {
		return nil, err
	}
	if a.Rank() != b.Rank() {
		return nil, fmt.Errorf("add: %w: rank %d vs %d", tensor.ErrShapeMismatch, a.Rank(), b.Rank())
	}
	if !a.Shape.Equal(b.Shape) {
		return nil, fmt.Errorf("add: %w: %v vs %v", tensor.ErrShapeMismatch, a.Shape, b.Shape)
	}

	out, err := k.alloc(a.Shape, tensor.F32, a.RequiresGrad || b.RequiresGrad)
	if err != nil {
		return nil, fmt.Errorf("add: %w", err)
	}
	cpu.Add(out.Data, a.Data, b.Data)
	return out, nil
}

// Contract contracts a and b. The axes pair must have the same arity; which
// contraction is performed is decided by the operand ranks:
//
//   - two rank-1 tensors of equal length: dot product, shape [1]
//   - two rank-2 tensors: matrix product (see MatMul)
//
// Every other combination returns ErrUnsupportedOperation.
func (k *Kernel) Contract(a, b *tensor.Tensor, axes [2][]int) (*tensor.Tensor, error) {
	if len(axes[0]) != len(axes[1]) {
		return nil, fmt.Errorf("contract: %w: axes %v and %v differ in length",
			tensor.ErrShapeMismatch, axes[0], axes[1])
	}
	if err := checkBuffers("contract", a, b); err != nil {
		return nil, err
	}

	ra, errA := tensor.Classify(a)
	rb, errB := tensor.Classify(b)
	if errA != nil || errB != nil {
		return nil, fmt.Errorf("contract: %w: %v with %v", tensor.ErrUnsupportedOperation, a.Shape, b.Shape)
	}

	switch va := ra.(type) {
	case tensor.Vector:
		if vb, ok := rb.(tensor.Vector); ok && va.Len == vb.Len {
			out, err := k.alloc(tensor.Shape{1}, tensor.F32, a.RequiresGrad || b.RequiresGrad)
			if err != nil {
				return nil, fmt.Errorf("contract: %w", err)
			}
			out.Data[0] = cpu.Dot(va.T.Data, vb.T.Data)
			return out, nil
		}
	case tensor.Matrix:
		if mb, ok := rb.(tensor.Matrix); ok {
			return k.matmul(va, mb)
		}
	default:
		panic(fmt.Sprintf("contract: unexpected rank variant %T", ra))
	}

	return nil, fmt.Errorf("contract: %w: %v with %v", tensor.ErrUnsupportedOperation, a.Shape, b.Shape)
}

// Reshape copies t's flat buffer, unchanged, into a new tensor of shape
// newShape. The element count must be preserved.
func (k *Kernel) Reshape(t *tensor.Tensor, newShape tensor.Shape) (*tensor.Tensor, error) {
	if err := checkBuffers("reshape", t); err != nil {
		return nil, err
	}
	if err := newShape.Validate(); err != nil {
		return nil, fmt.Errorf("reshape: %w", err)
	}
	if newShape.NumElements() != t.NumElements() {
		return nil, fmt.Errorf("reshape: %w: %v (%d elements) to %v (%d elements)",
			tensor.ErrShapeMismatch, t.Shape, t.NumElements(), newShape, newShape.NumElements())
	}

	out, err := k.alloc(newShape, t.DType, t.RequiresGrad)
	if err != nil {
		return nil, fmt.Errorf("reshape: %w", err)
	}
	copy(out.Data, t.Data)
	return out, nil
}

// checkBuffers rejects operands whose buffer does not hold their shape. A
// released tensor has a nil buffer and reports ErrUnknownTensor.
func checkBuffers(op string, ts ...*tensor.Tensor) error {
	for _, t := range ts {
		switch {
		case t.Data == nil:
			return fmt.Errorf("%s: %w: tensor %q has no buffer (released)", op, tensor.ErrUnknownTensor, t.ID)
		case len(t.Data) != t.NumElements():
			return fmt.Errorf("%s: %w: tensor %q holds %d values for shape %v",
				op, tensor.ErrShapeMismatch, t.ID, len(t.Data), t.Shape)
		}
	}
	return nil
}
