// Package kernel implements the tensor factory and the primitive tensor
// operations: creation with Xavier initialization, matmul, softmax,
// elementwise add, contraction, reshape and clone.
//
// A Kernel owns every tensor it creates. Owned buffers are tracked in a
// registry; Release hands a buffer back to a per-length free list that later
// allocations reuse, and detaches it from the released tensor. Kernels are
// independent of each other and are not safe for concurrent use.
package kernel

import (
	"fmt"
	"maps"
	"math"
	"math/rand"
	"time"

	"github.com/born-ml/sprout/internal/backend/cpu"
	"github.com/born-ml/sprout/internal/tensor"
	"github.com/google/uuid"
)

// DefaultMaxBytes is the arena capacity used when Config.MaxBytes is zero.
const DefaultMaxBytes int64 = 1 << 30

// bytesPerElement is the accounting unit: every element is a float32.
const bytesPerElement = 4

// Config holds configuration for a Kernel.
type Config struct {
	MaxBytes int64       // Arena capacity in bytes (default: 1 GiB)
	Seed     int64       // Seed for Xavier initialization (default: time based)
	Observer func(Event) // Optional instrumentation hook, called synchronously
}

// EventKind identifies what happened to a buffer.
type EventKind int

// Buffer lifecycle events reported to Config.Observer.
const (
	EventAlloc EventKind = iota
	EventReuse
	EventRelease
	EventTrim
)

// String returns a human-readable event name.
func (k EventKind) String() string {
	switch k {
	case EventAlloc:
		return "alloc"
	case EventReuse:
		return "reuse"
	case EventRelease:
		return "release"
	case EventTrim:
		return "trim"
	default:
		return "unknown"
	}
}

// Event describes a single buffer lifecycle change.
type Event struct {
	Kind  EventKind
	ID    string // empty for EventTrim
	Bytes int64
	Used  int64 // bytes in use after the event
}

// MemoryStats is a snapshot of a kernel's accounting.
type MemoryStats struct {
	Used       int64   // Bytes held by live tensors
	Total      int64   // Arena capacity
	Live       int     // Number of live tensors
	Pooled     int64   // Bytes parked in free lists
	Percentage float64 // Used / Total * 100
}

// Kernel is a tensor factory with ownership tracking.
type Kernel struct {
	maxBytes int64
	observer func(Event)
	rng      *rand.Rand

	tensors map[string]*tensor.Tensor
	used    int64

	free   map[int][][]float32
	pooled int64
}

// New creates a kernel.
func New(cfg Config) *Kernel {
	if cfg.MaxBytes == 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Kernel{
		maxBytes: cfg.MaxBytes,
		observer: cfg.Observer,
		//nolint:gosec // math/rand is appropriate for weight initialization
		rng:     rand.New(rand.NewSource(cfg.Seed)),
		tensors: make(map[string]*tensor.Tensor),
		free:    make(map[int][][]float32),
	}
}

// Option configures CreateTensor.
type Option func(*createOptions)

type createOptions struct {
	name         string
	requiresGrad bool
	zeros        bool
}

// WithName sets the tensor name.
func WithName(name string) Option {
	return func(o *createOptions) { o.name = name }
}

// WithRequiresGrad allocates a zero gradient buffer alongside the data.
func WithRequiresGrad() Option {
	return func(o *createOptions) { o.requiresGrad = true }
}

// WithZeros skips Xavier initialization and leaves the data zero-filled.
func WithZeros() Option {
	return func(o *createOptions) { o.zeros = true }
}

// CreateTensor allocates a tensor owned by k.
//
// Unless WithZeros is given, elements are drawn uniformly from
// [-bound, bound] with bound = sqrt(6 / (shape[0] + shape[1])), where a
// missing second dimension counts as 1. Scalars stay zero.
func (k *Kernel) CreateTensor(shape tensor.Shape, dtype tensor.DataType, opts ...Option) (*tensor.Tensor, error) {
	var o createOptions
	for _, opt := range opts {
		opt(&o)
	}

	t, err := k.alloc(shape, dtype, o.requiresGrad)
	if err != nil {
		return nil, err
	}
	t.Name = o.name

	if !o.zeros && len(shape) > 0 {
		fanOut := 1
		if len(shape) > 1 {
			fanOut = shape[1]
		}
		bound := math.Sqrt(6.0 / float64(shape[0]+fanOut))
		for i := range t.Data {
			t.Data[i] = float32((k.rng.Float64()*2.0 - 1.0) * bound)
		}
	}

	return t, nil
}

// Tensor returns the live tensor with the given id.
func (k *Kernel) Tensor(id string) (*tensor.Tensor, bool) {
	t, ok := k.tensors[id]
	return t, ok
}

// Release returns the tensor's buffer to the kernel's pool and detaches it
// from the tensor: Data and Grad become nil. Releasing an id the kernel does
// not own, or releasing twice, returns ErrUnknownTensor. Kernel ops given a
// released tensor return ErrUnknownTensor as well.
func (k *Kernel) Release(id string) error {
	t, ok := k.tensors[id]
	if !ok {
		return fmt.Errorf("release %q: %w", id, tensor.ErrUnknownTensor)
	}
	delete(k.tensors, id)

	n := len(t.Data)
	bytes := int64(n) * bytesPerElement
	k.used -= bytes
	k.free[n] = append(k.free[n], t.Data)
	k.pooled += bytes

	t.Data = nil
	t.Grad = nil

	k.emit(Event{Kind: EventRelease, ID: id, Bytes: bytes, Used: k.used})
	return nil
}

// Trim drops every pooled buffer so the garbage collector can reclaim them.
func (k *Kernel) Trim() {
	if k.pooled == 0 {
		return
	}
	bytes := k.pooled
	k.free = make(map[int][][]float32)
	k.pooled = 0
	k.emit(Event{Kind: EventTrim, Bytes: bytes, Used: k.used})
}

// Stats returns the current memory accounting.
func (k *Kernel) Stats() MemoryStats {
	return MemoryStats{
		Used:       k.used,
		Total:      k.maxBytes,
		Live:       len(k.tensors),
		Pooled:     k.pooled,
		Percentage: float64(k.used) / float64(k.maxBytes) * 100,
	}
}

// alloc registers a zero-filled tensor, reusing a pooled buffer when one of
// the right length is available.
func (k *Kernel) alloc(shape tensor.Shape, dtype tensor.DataType, requiresGrad bool) (*tensor.Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("create tensor: %w", err)
	}

	n := shape.NumElements()
	if int64(n) > (k.maxBytes-k.used)/bytesPerElement {
		return nil, fmt.Errorf("create tensor %v: %w: %d elements with %d of %d bytes in use",
			shape, tensor.ErrMemoryLimit, n, k.used, k.maxBytes)
	}
	bytes := int64(n) * bytesPerElement

	t := &tensor.Tensor{
		ID:           uuid.NewString(),
		Shape:        shape.Clone(),
		DType:        dtype,
		RequiresGrad: requiresGrad,
		Metadata:     map[string]any{},
	}

	kind := EventAlloc
	if bufs := k.free[n]; len(bufs) > 0 {
		t.Data = bufs[len(bufs)-1]
		k.free[n] = bufs[:len(bufs)-1]
		k.pooled -= bytes
		cpu.Fill(t.Data, 0)
		kind = EventReuse
	} else {
		t.Data = make([]float32, n)
	}
	if requiresGrad {
		t.Grad = make([]float32, n)
	}

	k.tensors[t.ID] = t
	k.used += bytes
	k.emit(Event{Kind: kind, ID: t.ID, Bytes: bytes, Used: k.used})
	return t, nil
}

// Clone deep-copies data, gradient, name and metadata into a new tensor
// owned by k.
func (k *Kernel) Clone(t *tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkBuffers("clone", t); err != nil {
		return nil, err
	}
	out, err := k.alloc(t.Shape, t.DType, t.RequiresGrad || t.Grad != nil)
	if err != nil {
		return nil, fmt.Errorf("clone: %w", err)
	}
	out.RequiresGrad = t.RequiresGrad
	out.Name = t.Name
	copy(out.Data, t.Data)
	if t.Grad != nil {
		copy(out.Grad, t.Grad)
	}
	if t.Metadata != nil {
		out.Metadata = maps.Clone(t.Metadata)
	}
	return out, nil
}

func (k *Kernel) emit(e Event) {
	if k.observer != nil {
		k.observer(e)
	}
}
