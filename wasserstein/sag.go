package wasserstein

import (
	"fmt"
	"math/rand/v2"

	"github.com/katalvlaran/stochot/aggregate"
	"github.com/katalvlaran/stochot/cost"
	"github.com/katalvlaran/stochot/matrix"
	"github.com/katalvlaran/stochot/measure"
)

// discretePair is a discrete–discrete problem with its cost matrix
// precomputed once per solve.
type discretePair struct {
	costs *matrix.Dense // |μ|×|ν|, costs[i][j] = c(x_i, y_j)
	muW   []float64
	nuW   []float64
}

// newDiscretePair evaluates c on every (x_i, y_j). A non-finite cost fails
// with ErrNumericInstability.
//
// Complexity: O(|μ|·|ν|) cost evaluations and memory.
func newDiscretePair[X, Y any](c cost.Func[X, Y], mu *measure.Discrete[X], nu *measure.Discrete[Y]) (*discretePair, error) {
	xs, ys := mu.Support(), nu.Support()
	costs, err := matrix.Build(len(xs), len(ys), func(i, j int) float64 {
		return c(xs[i], ys[j])
	})
	if err != nil {
		return nil, fmt.Errorf("%w: cost matrix: %w", ErrNumericInstability, err)
	}

	return &discretePair{costs: costs, muW: mu.Weights(), nuW: nu.Weights()}, nil
}

// sagState holds the iterate, the running gradient sum and the per-index
// gradient memory of one SAG run.
type sagState struct {
	v      []float64     // potential over ν's support
	prev   []float64     // v before the current update
	next   []float64     // lookahead used by the convergence check
	d      []float64     // Σ_i memory[i]
	pi     []float64     // assignment of the sampled x_i over ν's support
	memory *matrix.Dense // |μ|×|ν|, last gradient seen for each index

	best    []float64 // highest-valued potential seen at an epoch boundary
	bestVal float64   // exact semi-dual value at best
}

func newSAGState(n, m int) (*sagState, error) {
	memory, err := matrix.NewDense(n, m)
	if err != nil {
		return nil, fmt.Errorf("wasserstein: SAG memory: %w", err)
	}

	return &sagState{
		v:      make([]float64, m),
		prev:   make([]float64, m),
		next:   make([]float64, m),
		d:      make([]float64, m),
		pi:     make([]float64, m),
		memory: memory,
		best:   make([]float64, m),
	}, nil
}

// keepBest records v when its exact value beats the best seen so far.
//
// Complexity: O(|μ|·|ν|), no RNG use.
func (s *sagState) keepBest(agg aggregate.Aggregator, p *discretePair) error {
	val, err := p.objective(agg, s.v, nil)
	if err != nil {
		return err
	}
	if val > s.bestVal {
		s.bestVal = val
		copy(s.best, s.v)
	}

	return nil
}

// finish returns the current iterate unless an epoch checkpoint scored
// strictly higher.
func (s *sagState) finish(agg aggregate.Aggregator, p *discretePair, k int, converged bool) (Potentials, error) {
	val, err := p.objective(agg, s.v, nil)
	if err != nil {
		return Potentials{}, err
	}
	v := s.v
	if s.bestVal > val {
		v = s.best
	}

	return Potentials{V: v, Iterations: k, Converged: converged}, nil
}

// refresh recomputes every stored gradient at the current v and rebuilds d
// from scratch, so d is the exact full gradient (times |μ|) at v.
//
// Complexity: O(|μ|·|ν|), no RNG use.
func (s *sagState) refresh(agg aggregate.Aggregator, p *discretePair) error {
	n := p.costs.Rows()
	for j := range s.d {
		s.d[j] = 0
	}

	// s.next is free here; runSAG overwrites it after the refresh.
	g := s.next
	var (
		row []float64
		w   float64
		err error
	)
	for i := 0; i < n; i++ {
		if row, err = p.costs.Row(i); err != nil {
			return err
		}
		if _, err = agg.Eval(s.pi, s.v, row, p.nuW); err != nil {
			return fmt.Errorf("wasserstein: SAG refresh at source point %d: %w", i, err)
		}
		w = float64(n) * p.muW[i]
		for j := range s.d {
			g[j] = w * (p.nuW[j] - s.pi[j])
			s.d[j] += g[j]
		}
		if err = s.memory.SetRow(i, g); err != nil {
			return fmt.Errorf("wasserstein: SAG refresh: %w", err)
		}
	}

	return nil
}

// SAG runs stochastic averaged gradient ascent on the semi-dual of a
// discrete–discrete problem and returns the potential v over ν's support.
//
// Each iteration draws an index i uniformly from μ's support, computes the
// stochastic gradient g = |μ|·μ_i·(ν − π(x_i, v)), replaces the stored
// gradient of i in the running sum d and moves v by StepSize·d/|μ|.
//
// Implementation:
//   - Stage 1: Validate options, ε and measures (no RNG use).
//   - Stage 2: Precompute the cost matrix and zero the memory table.
//   - Stage 3: Iterate until the monitor accepts two consecutive iterates
//     and, after refreshing the whole memory at the current v, also accepts
//     the step the full gradient would take. Stop at MaxIters otherwise.
//   - Stage 4: Return the final iterate, or the best potential scored at an
//     epoch boundary (every |μ| iterations, v = 0 included) when that one
//     has a strictly higher exact objective.
//
// A nil rng selects the deterministic default stream. With MaxIters == 0
// the rng is never read.
//
// Complexity: O(|μ|·|ν|) memory; O(|ν|) amortized time per iteration.
func SAG[X, Y any](rng *rand.Rand, c cost.Func[X, Y], mu *measure.Discrete[X], nu *measure.Discrete[Y], eps *float64, opts Options) (Potentials, error) {
	if err := validateOptions(opts); err != nil {
		return Potentials{}, err
	}
	agg, err := newAggregator(eps)
	if err != nil {
		return Potentials{}, err
	}
	if mu == nil || nu == nil {
		return Potentials{}, ErrNilMeasure
	}

	pair, err := newDiscretePair(c, mu, nu)
	if err != nil {
		return Potentials{}, err
	}

	return runSAG(orDefault(rng), agg, pair, opts)
}

func runSAG(rng *rand.Rand, agg aggregate.Aggregator, p *discretePair, opts Options) (Potentials, error) {
	n, m := p.costs.Shape()
	st, err := newSAGState(n, m)
	if err != nil {
		return Potentials{}, err
	}
	// Every semi-dual value is a lower bound on the transport cost; v = 0
	// scores Σ_i μ_i·min_j c_ij ≥ 0 and seeds the checkpoint.
	if st.bestVal, err = p.objective(agg, st.best, nil); err != nil {
		return Potentials{}, err
	}
	mon := NewMonitor(opts.Atol, opts.Rtol)
	tr := newTracer(opts, MethodSAG)
	scale := opts.StepSize / float64(n)

	var (
		k, i, j  int
		row, mem []float64
		w, g     float64
	)
	for k = 1; k <= opts.MaxIters; k++ {
		i = rng.IntN(n)
		if row, err = p.costs.Row(i); err != nil {
			return Potentials{}, err
		}
		if _, err = agg.Eval(st.pi, st.v, row, p.nuW); err != nil {
			return Potentials{}, fmt.Errorf("wasserstein: SAG iteration %d: %w", k, err)
		}
		if mem, err = st.memory.Row(i); err != nil {
			return Potentials{}, err
		}

		copy(st.prev, st.v)
		w = float64(n) * p.muW[i]
		for j = range st.v {
			g = w * (p.nuW[j] - st.pi[j])
			st.d[j] += g - mem[j]
			mem[j] = g
			st.v[j] += scale * st.d[j]
		}
		tr.progress(k, st.prev, st.v)
		if k%n == 0 {
			if err = st.keepBest(agg, p); err != nil {
				return Potentials{}, err
			}
		}

		if !mon.Converged(st.prev, st.v) {
			continue
		}
		// A small step can come from stale memory; confirm with fresh gradients.
		if err = st.refresh(agg, p); err != nil {
			return Potentials{}, err
		}
		for j = range st.v {
			st.next[j] = st.v[j] + scale*st.d[j]
		}
		if mon.Converged(st.v, st.next) {
			return st.finish(agg, p, k, true)
		}
	}

	return st.finish(agg, p, opts.MaxIters, false)
}
