// Package cost provides pointwise ground-cost functions c(x, y) for the
// transport solvers.
//
// A cost function must be pure: no state, no randomness, cheap enough to be
// called O(MaxIters·|support|) times. Nonnegative costs guarantee a
// nonnegative transport distance.
//
// Scalar costs work on float64 points; vector costs work on []float64 points
// of equal length and are built on gonum's floats.Distance.
package cost

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Func is a ground cost between a point of the first measure and a point of
// the second.
type Func[X, Y any] func(x X, y Y) float64

// Flip swaps the argument order: Flip(c)(y, x) == c(x, y). The dispatcher
// uses it when the discrete measure comes first.
func Flip[X, Y any](c Func[X, Y]) Func[Y, X] {
	return func(y Y, x X) float64 { return c(x, y) }
}

// Abs is |x − y|.
func Abs(x, y float64) float64 { return math.Abs(x - y) }

// Squared is (x − y)².
func Squared(x, y float64) float64 {
	d := x - y
	return d * d
}

// Euclidean is ‖x − y‖₂. It panics when len(x) != len(y), as gonum does.
func Euclidean(x, y []float64) float64 { return floats.Distance(x, y, 2) }

// SqEuclidean is ‖x − y‖₂².
func SqEuclidean(x, y []float64) float64 {
	if len(x) != len(y) {
		panic("cost: slice lengths do not match")
	}
	var s, d float64
	for i := range x {
		d = x[i] - y[i]
		s += d * d
	}

	return s
}

// Minkowski returns the Lp distance ‖x − y‖_p for p ≥ 1 (p = +Inf allowed).
// It panics on p < 1, which is not a metric.
func Minkowski(p float64) Func[[]float64, []float64] {
	if !(p >= 1) {
		panic("cost: Minkowski requires p >= 1")
	}

	return func(x, y []float64) float64 { return floats.Distance(x, y, p) }
}

// Power raises a base cost to the power q, e.g. Power(Abs, 2) == Squared.
// Wasserstein-q distances use c = d^q.
func Power[X, Y any](c Func[X, Y], q float64) Func[X, Y] {
	return func(x X, y Y) float64 { return math.Pow(c(x, y), q) }
}
