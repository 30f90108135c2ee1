package wasserstein

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Monitor decides when successive dual iterates have stopped moving.
//
// Two vectors p (previous) and n (next) are converged iff they have equal
// length and every coordinate satisfies
//
//	|n_j − p_j| ≤ Atol + Rtol·|p_j|
//
// A Monitor is a value type without state; it is safe to copy and share.
type Monitor struct {
	Atol float64
	Rtol float64
}

// NewMonitor resolves the relative tolerance (see ResolveRtol) and returns a Monitor.
func NewMonitor(atol float64, rtol *float64) Monitor {
	return Monitor{Atol: atol, Rtol: ResolveRtol(atol, rtol)}
}

// ResolveRtol returns *rtol when set, otherwise DefaultRelTol if atol == 0
// and 0 when an absolute tolerance is in force.
func ResolveRtol(atol float64, rtol *float64) float64 {
	if rtol != nil {
		return *rtol
	}
	if atol == 0 {
		return DefaultRelTol
	}

	return 0
}

// Converged reports whether next is within tolerance of prev.
// A length mismatch is never converged; NaN coordinates never converge.
func (m Monitor) Converged(prev, next []float64) bool {
	if len(prev) != len(next) {
		return false
	}
	for j := range prev {
		if !(math.Abs(next[j]-prev[j]) <= m.Atol+m.Rtol*math.Abs(prev[j])) {
			return false
		}
	}

	return true
}

// maxAbsDelta is the sup-norm of next − prev, used for progress logs.
func maxAbsDelta(prev, next []float64) float64 {
	if len(prev) == 0 || len(prev) != len(next) {
		return 0
	}

	return floats.Distance(prev, next, math.Inf(1))
}
