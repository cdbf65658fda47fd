package cpu

import (
	"fmt"
	"math"
)

func checkLen(op string, dst, src []float32) {
	if len(dst) != len(src) {
		panic(fmt.Sprintf("%s: length mismatch %d vs %d", op, len(dst), len(src)))
	}
}

// Tanh writes tanh(x) into dst.
func Tanh(dst, x []float32) {
	checkLen("tanh", dst, x)
	for i, v := range x {
		dst[i] = float32(math.Tanh(float64(v)))
	}
}

// Sigmoid writes 1/(1+exp(-x)) into dst.
func Sigmoid(dst, x []float32) {
	checkLen("sigmoid", dst, x)
	for i, v := range x {
		dst[i] = float32(1.0 / (1.0 + math.Exp(-float64(v))))
	}
}

// ReLU writes max(0, x) into dst.
func ReLU(dst, x []float32) {
	checkLen("relu", dst, x)
	for i, v := range x {
		if v > 0 {
			dst[i] = v
		} else {
			dst[i] = 0
		}
	}
}

// SoftmaxRows computes a row-wise softmax of the [rows,cols] matrix x into
// dst. Each row is shifted by its maximum before exponentiation.
func SoftmaxRows(dst, x []float32, rows, cols int) {
	if len(x) != rows*cols {
		panic(fmt.Sprintf("softmax: got %d values for [%d,%d]", len(x), rows, cols))
	}
	checkLen("softmax", dst, x)

	for i := 0; i < rows; i++ {
		src := x[i*cols : (i+1)*cols]
		out := dst[i*cols : (i+1)*cols]

		maxVal := src[0]
		for _, v := range src[1:] {
			if v > maxVal {
				maxVal = v
			}
		}

		var sum float64
		for j, v := range src {
			e := math.Exp(float64(v - maxVal))
			out[j] = float32(e)
			sum += e
		}

		inv := float32(1.0 / sum)
		for j := range out {
			out[j] *= inv
		}
	}
}
