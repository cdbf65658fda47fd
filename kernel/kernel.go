// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package kernel provides the tensor arena: creation, ownership, release,
// buffer pooling, memory statistics and the matmul, softmax, add, contract
// and reshape operations.
//
// Example:
//
//	k := kernel.New(kernel.Config{Seed: 1})
//	a, _ := k.CreateTensor(tensor.Shape{2, 3}, tensor.F32)
//	b, _ := k.CreateTensor(tensor.Shape{3, 4}, tensor.F32)
//	c, err := k.MatMul(a, b) // [2, 4]
//	_ = k.Release(c.ID)
package kernel

import (
	"github.com/born-ml/sprout/internal/kernel"
)

// Kernel owns the tensors it creates.
type Kernel = kernel.Kernel

// Config configures a Kernel.
type Config = kernel.Config

// Event is delivered to Config.Observer.
type Event = kernel.Event

// EventKind identifies an Event.
type EventKind = kernel.EventKind

// Event kinds.
const (
	EventAlloc   = kernel.EventAlloc
	EventReuse   = kernel.EventReuse
	EventRelease = kernel.EventRelease
	EventTrim    = kernel.EventTrim
)

// MemoryStats reports arena usage.
type MemoryStats = kernel.MemoryStats

// Option configures CreateTensor.
type Option = kernel.Option

// DefaultMaxBytes is the capacity used when Config.MaxBytes is zero.
const DefaultMaxBytes = kernel.DefaultMaxBytes

// New creates an independent kernel.
func New(cfg Config) *Kernel {
	return kernel.New(cfg)
}

// WithName sets the tensor name.
func WithName(name string) Option {
	return kernel.WithName(name)
}

// WithRequiresGrad allocates a gradient buffer.
func WithRequiresGrad() Option {
	return kernel.WithRequiresGrad()
}

// WithZeros skips Xavier initialization.
func WithZeros() Option {
	return kernel.WithZeros()
}
