// Package tensor provides the core tensor record and shape types for sprout.
package tensor

import "fmt"

// DataType is the declared element type of a tensor.
//
// Only float32 semantics are implemented: every tensor stores its elements in
// a []float32 buffer regardless of the declared type. The declared type is
// carried for callers that mirror ggml-style tensor descriptors.
type DataType int

// Supported data types for tensors.
const (
	F32 DataType = iota
	F16
	I32
	I16
	I8
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case F32, I32:
		return 4
	case F16, I16:
		return 2
	case I8:
		return 1
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case F32:
		return "f32"
	case F16:
		return "f16"
	case I32:
		return "i32"
	case I16:
		return "i16"
	case I8:
		return "i8"
	default:
		return "unknown"
	}
}

// ParseDataType is the inverse of DataType.String.
func ParseDataType(s string) (DataType, error) {
	switch s {
	case "f32", "":
		return F32, nil
	case "f16":
		return F16, nil
	case "i32":
		return I32, nil
	case "i16":
		return I16, nil
	case "i8":
		return I8, nil
	default:
		return F32, fmt.Errorf("unknown data type %q", s)
	}
}
