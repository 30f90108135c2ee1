package measure

import (
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Discrete is a finitely supported probability measure Σᵢ wᵢ·δ(xᵢ).
// The support order is significant: dual potentials are indexed by it.
type Discrete[T any] struct {
	support []T
	weights []float64
	cdf     []float64 // cumulative weights, for inverse-CDF sampling
	lastPos int       // last index with positive weight
}

var _ Measure[int] = (*Discrete[int])(nil)

// NewDiscrete validates and copies support and weights.
//
// Contract:
//   - len(support) > 0 and len(weights) == len(support).
//   - every weight is finite and ≥ 0; |Σ w − 1| ≤ WeightTolerance.
//
// Errors: ErrEmptySupport, ErrLengthMismatch, ErrNegativeWeight, ErrNotNormalized.
//
// Complexity: O(n).
func NewDiscrete[T any](support []T, weights []float64) (*Discrete[T], error) {
	if err := validateDiscrete(len(support), weights); err != nil {
		return nil, err
	}
	if math.Abs(floats.Sum(weights)-1) > WeightTolerance {
		return nil, ErrNotNormalized
	}

	return newDiscrete(support, weights), nil
}

// Normalized builds a discrete measure from nonnegative masses, dividing by
// their sum. A zero total mass is rejected with ErrNotNormalized.
func Normalized[T any](support []T, masses []float64) (*Discrete[T], error) {
	if err := validateDiscrete(len(support), masses); err != nil {
		return nil, err
	}
	total := floats.Sum(masses)
	if !(total > 0) || math.IsInf(total, 0) {
		return nil, ErrNotNormalized
	}
	w := make([]float64, len(masses))
	copy(w, masses)
	floats.Scale(1/total, w)

	return newDiscrete(support, w), nil
}

// Uniform builds the empirical measure (1/n)·Σ δ(xᵢ).
func Uniform[T any](support []T) (*Discrete[T], error) {
	n := len(support)
	if n == 0 {
		return nil, ErrEmptySupport
	}
	w := make([]float64, n)
	for i := range w {
		w[i] = 1 / float64(n)
	}

	return newDiscrete(support, w), nil
}

func validateDiscrete(n int, weights []float64) error {
	if n == 0 {
		return ErrEmptySupport
	}
	if len(weights) != n {
		return ErrLengthMismatch
	}
	for _, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return ErrNegativeWeight
		}
	}

	return nil
}

// newDiscrete copies validated inputs and precomputes the CDF.
func newDiscrete[T any](support []T, weights []float64) *Discrete[T] {
	n := len(support)
	d := &Discrete[T]{
		support: make([]T, n),
		weights: make([]float64, n),
		cdf:     make([]float64, n),
	}
	copy(d.support, support)
	copy(d.weights, weights)
	floats.CumSum(d.cdf, d.weights)
	for i := n - 1; i >= 0; i-- {
		if d.weights[i] > 0 {
			d.lastPos = i
			break
		}
	}

	return d
}

// Kind returns KindDiscrete.
func (d *Discrete[T]) Kind() Kind { return KindDiscrete }

func (d *Discrete[T]) sealed() {}

// Len returns the number of support points.
func (d *Discrete[T]) Len() int { return len(d.support) }

// Point returns the i-th support point. It panics on a bad index like a slice.
func (d *Discrete[T]) Point(i int) T { return d.support[i] }

// Support returns a copy of the ordered support.
func (d *Discrete[T]) Support() []T {
	out := make([]T, len(d.support))
	copy(out, d.support)

	return out
}

// Weights returns a copy of the probability masses.
func (d *Discrete[T]) Weights() []float64 {
	out := make([]float64, len(d.weights))
	copy(out, d.weights)

	return out
}

// SampleIndex draws an index with probability wᵢ by inverse CDF.
// Complexity: O(log n).
func (d *Discrete[T]) SampleIndex(rng *rand.Rand) int {
	u := rng.Float64()
	i := sort.Search(len(d.cdf), func(k int) bool { return d.cdf[k] > u })
	if i > d.lastPos {
		// Rounding left Σw slightly below u; fall back to the last atom with mass.
		i = d.lastPos
	}

	return i
}

// Sample draws a support point with probability wᵢ.
func (d *Discrete[T]) Sample(rng *rand.Rand) T {
	return d.support[d.SampleIndex(rng)]
}
