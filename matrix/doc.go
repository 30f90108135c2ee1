// Package matrix provides the dense row-major storage used by the transport
// solvers.
//
// The package provides:
//
//   - Dense: a flat row-major float64 buffer with bounds-checked no-copy row
//     access (Row) and finite-only whole-row writes (SetRow).
//   - Build: fill a Dense from a generator f(i, j), rejecting NaN/±Inf.
//
// Two matrices dominate the discrete–discrete solver: the |μ|×|ν| cost
// matrix C[i,j] = c(xᵢ, yⱼ), computed once per solve, and the SAG memory
// table holding one stored gradient row per sampled support index. Both are
// plain Dense values owned by a single solve.
//
// Complexity quicksheet:
//   - NewDense/Build: O(r·c); Row: O(1); SetRow: O(c).
package matrix
