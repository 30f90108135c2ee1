// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
)

// Build allocates a rows×cols Dense and fills it with f(i, j) in row-major
// order.
//
// Implementation:
//   - Stage 1: allocate via NewDense (shape validation).
//   - Stage 2: evaluate f once per cell; reject NaN/±Inf immediately.
//
// Errors:
//   - ErrInvalidDimensions from NewDense.
//   - ErrNaNInf (wrapped with coordinates) on the first non-finite value.
//
// Complexity:
//   - Time O(rows*cols) calls of f, Space O(rows*cols).
func Build(rows, cols int, f func(i, j int) float64) (*Dense, error) {
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}

	var i, j, base int
	var v float64
	for i = 0; i < rows; i++ {
		base = i * cols
		for j = 0; j < cols; j++ {
			v = f(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("matrix.Build(%d,%d): %w", i, j, ErrNaNInf)
			}
			m.data[base+j] = v
		}
	}

	return m, nil
}
