package aggregate

import "math"

// Aggregator evaluates the (soft) c-transform of a dual potential at one point.
//
// Given potentials v over a weighted support (weights w) and the costs
// c_j = c(x, y_j) from a fixed point x to every support point, Eval returns
//
//	Hard:  min_j (c_j − v_j)
//	Soft:  −ε·log Σ_j w_j·exp((v_j − c_j)/ε)
//
// and, when dst != nil, writes the conditional assignment of x over the
// support into dst: the one-hot argmin (Hard) or the Gibbs weights
// π_j ∝ w_j·exp((v_j − c_j)/ε) (Soft). Both solvers use ∇ = w − dst as the
// stochastic semi-dual gradient.
type Aggregator interface {
	Eval(dst, v, c, w []float64) (float64, error)

	// Epsilon reports the regularization strength; ok is false for Hard.
	Epsilon() (eps float64, ok bool)
}

// New selects the strategy for a solve: nil → Hard, *eps > 0 → Soft.
// An explicit ε ≤ 0 fails fast with ErrNonPositiveEpsilon.
func New(eps *float64) (Aggregator, error) {
	if eps == nil {
		return Hard{}, nil
	}

	return NewSoft(*eps)
}

// Hard is the unregularized (ε → 0) strategy.
type Hard struct{}

var _ Aggregator = Hard{}

// Epsilon reports that Hard is unregularized.
func (Hard) Epsilon() (float64, bool) { return 0, false }

// Eval returns min_j (c_j − v_j) over support points with w_j > 0 and marks
// the argmin in dst. Ties resolve to the lowest index.
func (Hard) Eval(dst, v, c, w []float64) (float64, error) {
	if err := checkLengths(dst, v, c, w); err != nil {
		return 0, err
	}

	best := math.Inf(1)
	arg := -1
	var j int
	var d float64
	for j = range v {
		if w[j] == 0 {
			continue
		}
		d = c[j] - v[j]
		if math.IsNaN(d) {
			return 0, ErrNumericInstability
		}
		if d < best {
			best = d
			arg = j
		}
	}
	if arg < 0 || math.IsInf(best, 0) {
		return 0, ErrNumericInstability
	}

	if dst != nil {
		for j = range dst {
			dst[j] = 0
		}
		dst[arg] = 1
	}

	return best, nil
}

// Soft is the entropic strategy with fixed ε > 0.
// A Soft value keeps a scratch buffer; do not share one across goroutines.
type Soft struct {
	eps     float64
	scratch []float64 // reused per Eval; grows to the support size
	neg     []float64 // v − c, reused per Eval
}

var _ Aggregator = (*Soft)(nil)

// NewSoft returns a Soft aggregator or ErrNonPositiveEpsilon.
func NewSoft(eps float64) (*Soft, error) {
	if err := checkEpsilon(eps); err != nil {
		return nil, err
	}

	return &Soft{eps: eps}, nil
}

// Epsilon returns ε.
func (s *Soft) Epsilon() (float64, bool) { return s.eps, true }

// Eval returns −ε·log Σ_j w_j·exp((v_j − c_j)/ε) and writes the Gibbs
// weights into dst when dst != nil.
//
// Complexity: O(n) time, no allocations after the first call for a given n.
func (s *Soft) Eval(dst, v, c, w []float64) (float64, error) {
	if err := checkLengths(dst, v, c, w); err != nil {
		return 0, err
	}
	n := len(v)
	if cap(s.scratch) < n {
		s.scratch = make([]float64, n)
		s.neg = make([]float64, n)
	}
	sc := s.scratch[:n]
	neg := s.neg[:n]

	var j int
	for j = range neg {
		neg[j] = v[j] - c[j]
	}
	lse, err := logSumExpInto(sc, neg, w, s.eps)
	if err != nil {
		return 0, err
	}

	if dst != nil {
		// sc[j] = log w_j + (v_j − c_j)/ε, so π_j = exp(sc[j] − lse/ε).
		z := lse / s.eps
		for j = range dst {
			dst[j] = math.Exp(sc[j] - z)
		}
	}

	return -lse, nil
}

func checkLengths(dst, v, c, w []float64) error {
	if len(v) == 0 {
		return ErrEmpty
	}
	if len(c) != len(v) || len(w) != len(v) {
		return ErrLengthMismatch
	}
	if dst != nil && len(dst) != len(v) {
		return ErrLengthMismatch
	}

	return nil
}
