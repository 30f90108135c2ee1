package aggregate

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrEmpty indicates an empty input sequence.
	ErrEmpty = errors.New("aggregate: input must be non-empty")

	// ErrNonPositiveEpsilon indicates ε ≤ 0 (or a non-finite ε) for the soft form.
	ErrNonPositiveEpsilon = errors.New("aggregate: epsilon must be finite and > 0")

	// ErrLengthMismatch indicates vectors of different lengths.
	ErrLengthMismatch = errors.New("aggregate: length mismatch")

	// ErrNumericInstability indicates NaN inputs or an overflowing result that
	// max subtraction could not prevent.
	ErrNumericInstability = errors.New("aggregate: numeric instability")
)

// LogSumExp returns ε·log Σᵢ exp(aᵢ/ε).
//
// Algorithm:
//  1. s = a/ε (into a fresh buffer).
//  2. m = max(s); lse = m + log Σ exp(sᵢ − m)   (gonum floats.LogSumExp).
//  3. return ε·lse.
//
// Errors: ErrEmpty, ErrNonPositiveEpsilon, ErrNumericInstability.
//
// Complexity: O(n) time, O(n) memory.
func LogSumExp(a []float64, eps float64) (float64, error) {
	if len(a) == 0 {
		return 0, ErrEmpty
	}
	if err := checkEpsilon(eps); err != nil {
		return 0, err
	}
	s := make([]float64, len(a))

	return logSumExpInto(s, a, nil, eps)
}

// WeightedLogSumExp returns ε·log Σᵢ wᵢ·exp(aᵢ/ε). Entries with wᵢ == 0
// contribute nothing; negative weights are rejected as unstable input.
//
// Complexity: O(n) time, O(n) memory.
func WeightedLogSumExp(a, w []float64, eps float64) (float64, error) {
	if len(a) == 0 {
		return 0, ErrEmpty
	}
	if len(w) != len(a) {
		return 0, ErrLengthMismatch
	}
	if err := checkEpsilon(eps); err != nil {
		return 0, err
	}
	s := make([]float64, len(a))

	return logSumExpInto(s, a, w, eps)
}

// logSumExpInto evaluates the weighted reduction using s as scratch (len(s) == len(a)).
// After the call s[i] holds log(wᵢ) + aᵢ/ε, which Soft reuses for the Gibbs weights.
func logSumExpInto(s, a, w []float64, eps float64) (float64, error) {
	var i int
	for i = range a {
		if math.IsNaN(a[i]) || math.IsInf(a[i], 1) {
			return 0, ErrNumericInstability
		}
		s[i] = a[i] / eps
		if w != nil {
			if w[i] < 0 || math.IsNaN(w[i]) {
				return 0, ErrNumericInstability
			}
			s[i] += math.Log(w[i]) // log(0) = -Inf drops the term
		}
	}

	lse := floats.LogSumExp(s)
	res := eps * lse
	if math.IsNaN(res) || math.IsInf(res, 0) {
		return 0, ErrNumericInstability
	}

	return res, nil
}

func checkEpsilon(eps float64) error {
	if !(eps > 0) || math.IsInf(eps, 1) {
		return ErrNonPositiveEpsilon
	}

	return nil
}
