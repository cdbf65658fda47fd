package cpu

import "fmt"

// Add writes a + b into dst. All three slices must have the same length;
// dst may alias a or b.
func Add(dst, a, b []float32) {
	if len(a) != len(b) || len(dst) != len(a) {
		panic(fmt.Sprintf("add: length mismatch %d, %d -> %d", len(a), len(b), len(dst)))
	}
	for i := range a {
		dst[i] = a[i] + b[i]
	}
}

// Sub writes a - b into dst.
func Sub(dst, a, b []float32) {
	if len(a) != len(b) || len(dst) != len(a) {
		panic(fmt.Sprintf("sub: length mismatch %d, %d -> %d", len(a), len(b), len(dst)))
	}
	for i := range a {
		dst[i] = a[i] - b[i]
	}
}

// SumRows adds every row of the [rows,cols] matrix x into dst (length cols).
func SumRows(dst, x []float32, rows, cols int) {
	if len(dst) != cols || len(x) != rows*cols {
		panic(fmt.Sprintf("sum rows: got dst %d and x %d for [%d,%d]", len(dst), len(x), rows, cols))
	}
	for i := 0; i < rows; i++ {
		Axpy(1, x[i*cols:(i+1)*cols], dst)
	}
}

// AddRowVector adds v (length cols) to every row of x in place.
func AddRowVector(x, v []float32, rows, cols int) {
	if len(v) != cols || len(x) != rows*cols {
		panic(fmt.Sprintf("add row vector: got x %d and v %d for [%d,%d]", len(x), len(v), rows, cols))
	}
	for i := 0; i < rows; i++ {
		Axpy(1, v, x[i*cols:(i+1)*cols])
	}
}
