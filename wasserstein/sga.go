package wasserstein

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/katalvlaran/stochot/aggregate"
	"github.com/katalvlaran/stochot/cost"
	"github.com/katalvlaran/stochot/measure"
)

// StepSizeAt returns the SGA step size at iteration k ≥ 1:
//
//	τ_k = τ₁ / (1 + sqrt((k − 1) / w))
//
// so τ_1 = τ₁ and τ_k decays like 1/sqrt(k) once k ≫ w.
func StepSizeAt(tau1, warmup float64, k int) float64 {
	return tau1 / (1 + math.Sqrt(float64(k-1)/warmup))
}

// semiDiscrete is a problem whose source is only sampled and whose target
// is discrete. row is scratch for the costs from one sample.
type semiDiscrete[X, Y any] struct {
	c   cost.Func[X, Y]
	src measure.Sampler[X]
	ys  []Y
	w   []float64
	row []float64
}

func newSemiDiscrete[X, Y any](c cost.Func[X, Y], src measure.Sampler[X], dst *measure.Discrete[Y]) *semiDiscrete[X, Y] {
	return &semiDiscrete[X, Y]{
		c:   c,
		src: src,
		ys:  dst.Support(),
		w:   dst.Weights(),
		row: make([]float64, dst.Len()),
	}
}

// costsAt fills the scratch row with c(x, y_j). The row is overwritten by
// the next call.
func (p *semiDiscrete[X, Y]) costsAt(x X) ([]float64, error) {
	var cj float64
	for j := range p.ys {
		cj = p.c(x, p.ys[j])
		if math.IsNaN(cj) || math.IsInf(cj, 0) {
			return nil, fmt.Errorf("%w: cost to target point %d is %v", ErrNumericInstability, j, cj)
		}
		p.row[j] = cj
	}

	return p.row, nil
}

// SGA runs averaged stochastic gradient ascent on the semi-dual with μ
// accessed only through sampling, and returns the Cesàro average of the
// iterates as the potential over ν's support.
//
// Iteration k draws x ~ μ, moves v by τ_k·(ν − π(x, v)) with τ_k from
// StepSizeAt, then folds v into the running average v̄. Convergence needs
// the monitor to accept both the last step of v̄ and its drift since the
// anchor v̄_p, p a power of two with k/4 ≤ p ≤ k/2. A single small step of
// v̄ happens whenever the raw iterate crosses the average.
//
// A nil rng selects the deterministic default stream; MaxIters == 0 never
// reads it. Both *measure.Discrete and *measure.Sampleable satisfy
// measure.Sampler, so SGA also runs on discrete–discrete pairs.
//
// Complexity: O(|ν|) memory and O(|ν|) cost evaluations per iteration.
func SGA[X, Y any](rng *rand.Rand, c cost.Func[X, Y], mu measure.Sampler[X], nu *measure.Discrete[Y], eps *float64, opts Options) (Potentials, error) {
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

	return runSGA(orDefault(rng), agg, newSemiDiscrete(c, mu, nu), opts)
}

func runSGA[X, Y any](rng *rand.Rand, agg aggregate.Aggregator, p *semiDiscrete[X, Y], opts Options) (Potentials, error) {
	m := len(p.ys)
	var (
		v    = make([]float64, m)
		avg  = make([]float64, m)
		prev = make([]float64, m)
		pi   = make([]float64, m)

		// anchor is v̄ at the power of two p with 2p ≤ k ≤ 4p (v̄₀ = 0 while
		// k < 2); pending is v̄ at the most recent power of two.
		anchor  = make([]float64, m)
		pending = make([]float64, m)
		mark    = 1
	)
	mon := NewMonitor(opts.Atol, opts.Rtol)
	tr := newTracer(opts, MethodSGA)

	var (
		k, j     int
		row      []float64
		tau, inv float64
		err      error
	)
	for k = 1; k <= opts.MaxIters; k++ {
		if row, err = p.costsAt(p.src.Sample(rng)); err != nil {
			return Potentials{}, fmt.Errorf("wasserstein: SGA iteration %d: %w", k, err)
		}
		if _, err = agg.Eval(pi, v, row, p.w); err != nil {
			return Potentials{}, fmt.Errorf("wasserstein: SGA iteration %d: %w", k, err)
		}

		tau = StepSizeAt(opts.StepSize, opts.WarmupPhase, k)
		for j = range v {
			v[j] += tau * (p.w[j] - pi[j])
		}

		copy(prev, avg)
		inv = 1 / float64(k)
		for j = range avg {
			avg[j] += (v[j] - avg[j]) * inv
		}
		tr.progress(k, prev, avg)

		if mon.Converged(prev, avg) && mon.Converged(anchor, avg) {
			return Potentials{V: avg, Iterations: k, Converged: true}, nil
		}
		if k == mark {
			copy(anchor, pending)
			copy(pending, avg)
			mark *= 2
		}
	}

	return Potentials{V: avg, Iterations: opts.MaxIters}, nil
}
