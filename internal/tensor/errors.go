package tensor

import "errors"

// Sentinel errors shared by the kernel and the nn modules.
// Callers match them with errors.Is; producers wrap them with context.
var (
	// ErrShapeMismatch reports a rank or per-axis extent mismatch.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrUnsupportedOperation reports a configuration outside the rank-1/rank-2 cases.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrInvalidShape reports a zero or negative dimension.
	ErrInvalidShape = errors.New("invalid shape")

	// ErrUnknownTensor reports an id that is not owned by the kernel.
	ErrUnknownTensor = errors.New("unknown tensor")

	// ErrMemoryLimit reports that an allocation would exceed the kernel capacity.
	ErrMemoryLimit = errors.New("memory limit exceeded")
)
