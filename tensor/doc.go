// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public tensor record used throughout sprout.
//
// # Overview
//
// A Tensor is a plain fixed-shape float32 buffer with an optional gradient
// buffer of the same length. It carries no behavior of its own: arithmetic
// lives in the kernel package and the nn modules.
//
// # Basic Usage
//
//	import "github.com/born-ml/sprout/tensor"
//
//	func main() {
//	    x, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(x.Shape, x.NumElements()) // [2 2] 4
//	}
//
// # Rank dispatch
//
// Operations that only make sense for vectors or matrices classify their
// operands first and switch over the result:
//
//	r, err := tensor.Classify(x)
//	switch v := r.(type) {
//	case tensor.Vector:
//	    _ = v.Len
//	case tensor.Matrix:
//	    _ = v.Rows * v.Cols
//	}
//
// # Errors
//
// Failures wrap one of the sentinel errors (ErrShapeMismatch,
// ErrUnsupportedOperation, ErrInvalidShape, ErrUnknownTensor, ErrMemoryLimit)
// and can be matched with errors.Is.
package tensor
