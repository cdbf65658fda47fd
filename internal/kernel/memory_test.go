package kernel_test

import (
	"math"
	"testing"

	"github.com/born-ml/sprout/internal/kernel"
	"github.com/born-ml/sprout/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) {
	k := kernel.New(kernel.Config{MaxBytes: 1000, Seed: 1})

	a, err := k.CreateTensor(tensor.Shape{10, 5}, tensor.F32)
	require.NoError(t, err)
	_, err = k.CreateTensor(tensor.Shape{25}, tensor.F32)
	require.NoError(t, err)

	stats := k.Stats()
	assert.Equal(t, int64(300), stats.Used)
	assert.Equal(t, int64(1000), stats.Total)
	assert.Equal(t, 2, stats.Live)
	assert.InDelta(t, 30.0, stats.Percentage, 1e-9)

	require.NoError(t, k.Release(a.ID))
	stats = k.Stats()
	assert.Equal(t, int64(100), stats.Used)
	assert.Equal(t, int64(200), stats.Pooled)
	assert.Equal(t, 1, stats.Live)
}

func TestDefaultCapacity(t *testing.T) {
	k := kernel.New(kernel.Config{})
	assert.Equal(t, kernel.DefaultMaxBytes, k.Stats().Total)
}

func TestRelease_Ownership(t *testing.T) {
	k := kernel.New(kernel.Config{Seed: 1})

	x, err := k.CreateTensor(tensor.Shape{4}, tensor.F32, kernel.WithRequiresGrad())
	require.NoError(t, err)

	require.NoError(t, k.Release(x.ID))
	assert.Nil(t, x.Data, "released tensors lose their buffer")
	assert.Nil(t, x.Grad)

	_, ok := k.Tensor(x.ID)
	assert.False(t, ok)

	assert.ErrorIs(t, k.Release(x.ID), tensor.ErrUnknownTensor, "double release")
	assert.ErrorIs(t, k.Release("nope"), tensor.ErrUnknownTensor)

	foreign := tensor.Zeros(tensor.Shape{4})
	assert.ErrorIs(t, k.Release(foreign.ID), tensor.ErrUnknownTensor, "kernels never adopt foreign tensors")
}

func TestOpsOnReleasedTensor(t *testing.T) {
	k := kernel.New(kernel.Config{Seed: 1})

	a, err := k.CreateTensor(tensor.Shape{2, 2}, tensor.F32)
	require.NoError(t, err)
	b, err := k.CreateTensor(tensor.Shape{2, 2}, tensor.F32)
	require.NoError(t, err)
	v, err := k.CreateTensor(tensor.Shape{4}, tensor.F32)
	require.NoError(t, err)
	require.NoError(t, k.Release(a.ID))
	live := k.Stats().Live

	ops := map[string]func() (*tensor.Tensor, error){
		"add":          func() (*tensor.Tensor, error) { return k.Add(a, b) },
		"add right":    func() (*tensor.Tensor, error) { return k.Add(b, a) },
		"matmul":       func() (*tensor.Tensor, error) { return k.MatMul(a, b) },
		"matmul right": func() (*tensor.Tensor, error) { return k.MatMul(b, a) },
		"softmax":      func() (*tensor.Tensor, error) { return k.Softmax(a, -1) },
		"contract":     func() (*tensor.Tensor, error) { return k.Contract(a, b, [2][]int{{1}, {0}}) },
		"reshape":      func() (*tensor.Tensor, error) { return k.Reshape(a, tensor.Shape{4}) },
		"clone":        func() (*tensor.Tensor, error) { return k.Clone(a) },
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			var out *tensor.Tensor
			require.NotPanics(t, func() { out, err = op() })
			assert.ErrorIs(t, err, tensor.ErrUnknownTensor)
			assert.Nil(t, out)
		})
	}
	assert.Equal(t, live, k.Stats().Live, "failed ops allocate nothing")

	// A buffer that does not hold its shape is a mismatch, not a release.
	bad := &tensor.Tensor{ID: "bad", Shape: tensor.Shape{4}, Data: make([]float32, 3)}
	_, err = k.Add(bad, v)
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestPoolReuse(t *testing.T) {
	var events []kernel.Event
	k := kernel.New(kernel.Config{Seed: 1, Observer: func(e kernel.Event) { events = append(events, e) }})

	x, err := k.CreateTensor(tensor.Shape{2, 3}, tensor.F32)
	require.NoError(t, err)
	buf := x.Data
	require.NoError(t, k.Release(x.ID))

	y, err := k.CreateTensor(tensor.Shape{3, 2}, tensor.F32, kernel.WithZeros())
	require.NoError(t, err)
	assert.Same(t, &buf[0], &y.Data[0], "same-length buffer is reused")
	assert.Equal(t, []float32{0, 0, 0, 0, 0, 0}, y.Data, "reused buffers are cleared")
	assert.Equal(t, int64(0), k.Stats().Pooled)

	kinds := make([]kernel.EventKind, len(events))
	for i, e := range events {
		kinds[i] = e.Kind
	}
	assert.Equal(t, []kernel.EventKind{kernel.EventAlloc, kernel.EventRelease, kernel.EventReuse}, kinds)
	assert.Equal(t, int64(24), events[0].Bytes)
	assert.Equal(t, "reuse", events[2].Kind.String())
}

func TestTrim(t *testing.T) {
	k := kernel.New(kernel.Config{Seed: 1})

	x, err := k.CreateTensor(tensor.Shape{8}, tensor.F32)
	require.NoError(t, err)
	require.NoError(t, k.Release(x.ID))
	assert.Equal(t, int64(32), k.Stats().Pooled)

	k.Trim()
	assert.Equal(t, int64(0), k.Stats().Pooled)
}

func TestMemoryLimit(t *testing.T) {
	k := kernel.New(kernel.Config{MaxBytes: 64, Seed: 1})

	_, err := k.CreateTensor(tensor.Shape{16}, tensor.F32)
	require.NoError(t, err)

	_, err = k.CreateTensor(tensor.Shape{1}, tensor.F32)
	assert.ErrorIs(t, err, tensor.ErrMemoryLimit)

	a := tensor.Zeros(tensor.Shape{1, 1})
	_, err = k.MatMul(a, a)
	assert.ErrorIs(t, err, tensor.ErrMemoryLimit, "op results are accounted too")
}

func TestHugeShapes(t *testing.T) {
	k := kernel.New(kernel.Config{Seed: 1})

	_, err := k.CreateTensor(tensor.Shape{math.MaxInt/2 + 1, 2, 2}, tensor.F32)
	assert.ErrorIs(t, err, tensor.ErrInvalidShape, "element count overflows int")

	// Fits in an int, but not once counted in bytes.
	_, err = k.CreateTensor(tensor.Shape{math.MaxInt/4 + 1, 3}, tensor.F32)
	assert.ErrorIs(t, err, tensor.ErrMemoryLimit)

	x := tensor.Zeros(tensor.Shape{4})
	_, err = k.Reshape(x, tensor.Shape{math.MaxInt/2 + 1, 2, 2})
	assert.ErrorIs(t, err, tensor.ErrInvalidShape)

	assert.Equal(t, int64(0), k.Stats().Used)
	assert.Equal(t, 0, k.Stats().Live)
}

func TestKernelsAreIndependent(t *testing.T) {
	k1 := kernel.New(kernel.Config{Seed: 1})
	k2 := kernel.New(kernel.Config{Seed: 1})

	x, err := k1.CreateTensor(tensor.Shape{4}, tensor.F32)
	require.NoError(t, err)

	_, ok := k2.Tensor(x.ID)
	assert.False(t, ok)
	assert.ErrorIs(t, k2.Release(x.ID), tensor.ErrUnknownTensor)
	assert.Equal(t, int64(0), k2.Stats().Used)
}
