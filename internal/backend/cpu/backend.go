// Package cpu implements the float32 compute kernels used by the kernel and
// nn packages. Buffers are flat row-major []float32 slices; callers validate
// shapes and these functions panic on inconsistent lengths.
//
// Dense products and vector updates go through gonum's blas32.
package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
)

func transpose(t bool) blas.Transpose {
	if t {
		return blas.Trans
	}
	return blas.NoTrans
}

func general(rows, cols int, data []float32) blas32.General {
	return blas32.General{Rows: rows, Cols: cols, Stride: cols, Data: data}
}

func vector(data []float32) blas32.Vector {
	return blas32.Vector{N: len(data), Inc: 1, Data: data}
}

// Gemm computes c = alpha*op(a)*op(b) + beta*c where op(a) is [m,k],
// op(b) is [k,n] and c is [m,n]. transA/transB select whether a and b are
// stored transposed ([k,m] and [n,k] respectively).
//
// Passing beta=1 accumulates into c, which is how parameter gradients are
// summed across backward calls.
func Gemm(transA, transB bool, m, n, k int, alpha float32, a, b []float32, beta float32, c []float32) {
	if len(a) != m*k || len(b) != k*n || len(c) != m*n {
		panic(fmt.Sprintf("gemm: buffer sizes %d,%d,%d do not match m=%d n=%d k=%d", len(a), len(b), len(c), m, n, k))
	}

	ga := general(m, k, a)
	if transA {
		ga = general(k, m, a)
	}
	gb := general(k, n, b)
	if transB {
		gb = general(n, k, b)
	}

	blas32.Gemm(transpose(transA), transpose(transB), alpha, ga, gb, beta, general(m, n, c))
}

// MatMul computes c = a @ b for a [m,k] and b [k,n] into a fresh buffer.
func MatMul(a, b []float32, m, k, n int) []float32 {
	c := make([]float32, m*n)
	Gemm(false, false, m, n, k, 1, a, b, 0, c)
	return c
}

// Dot returns the inner product of two equal-length vectors.
func Dot(x, y []float32) float32 {
	if len(x) != len(y) {
		panic(fmt.Sprintf("dot: length mismatch %d vs %d", len(x), len(y)))
	}
	return blas32.Dot(vector(x), vector(y))
}

// Axpy computes y += alpha*x.
func Axpy(alpha float32, x, y []float32) {
	if len(x) != len(y) {
		panic(fmt.Sprintf("axpy: length mismatch %d vs %d", len(x), len(y)))
	}
	blas32.Axpy(alpha, vector(x), vector(y))
}

// Scal computes x *= alpha.
func Scal(alpha float32, x []float32) {
	blas32.Scal(alpha, vector(x))
}

// Fill sets every element of x to v.
func Fill(x []float32, v float32) {
	for i := range x {
		x[i] = v
	}
}
