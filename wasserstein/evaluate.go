package wasserstein

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/stochot/aggregate"
	"github.com/katalvlaran/stochot/cost"
	"github.com/katalvlaran/stochot/measure"
)

// ErrPotentialLength indicates a potential whose length differs from the
// target support.
var ErrPotentialLength = fmt.Errorf("%w: potential length differs from target support", aggregate.ErrLengthMismatch)

// EvaluateDiscrete computes the semi-dual objective of a discrete–discrete
// problem exactly:
//
//	Σ_j v_j·ν_j + Σ_i μ_i·v^{c,ε}(x_i)
//
// and returns it together with the dual potential u_i = v^{c,ε}(x_i) over
// μ's support. eps == nil uses the hard c-transform.
//
// Complexity: O(|μ|·|ν|).
func EvaluateDiscrete[X, Y any](c cost.Func[X, Y], mu *measure.Discrete[X], nu *measure.Discrete[Y], v []float64, eps *float64) (float64, []float64, error) {
	agg, err := newAggregator(eps)
	if err != nil {
		return 0, nil, err
	}
	if mu == nil || nu == nil {
		return 0, nil, ErrNilMeasure
	}
	if len(v) != nu.Len() {
		return 0, nil, ErrPotentialLength
	}
	pair, err := newDiscretePair(c, mu, nu)
	if err != nil {
		return 0, nil, err
	}

	return pair.evaluate(agg, v)
}

func (p *discretePair) evaluate(agg aggregate.Aggregator, v []float64) (float64, []float64, error) {
	dual := make([]float64, p.costs.Rows())
	value, err := p.objective(agg, v, dual)
	if err != nil {
		return 0, nil, err
	}

	return value, dual, nil
}

// objective is the exact semi-dual value at v. When dual is non-nil it
// receives the c-transform over μ's support.
func (p *discretePair) objective(agg aggregate.Aggregator, v, dual []float64) (float64, error) {
	value := floats.Dot(v, p.nuW)

	var (
		row []float64
		u   float64
		err error
	)
	for i := 0; i < p.costs.Rows(); i++ {
		if row, err = p.costs.Row(i); err != nil {
			return 0, err
		}
		if u, err = agg.Eval(nil, v, row, p.nuW); err != nil {
			return 0, fmt.Errorf("wasserstein: c-transform at source point %d: %w", i, err)
		}
		if dual != nil {
			dual[i] = u
		}
		value += p.muW[i] * u
	}

	return value, nil
}

// EvaluateSemiDiscrete estimates the semi-dual objective when μ is only
// sampled:
//
//	Σ_j v_j·ν_j + (1/N)·Σ_s v^{c,ε}(x_s),  x_s ~ μ
//
// with N = samples fresh draws from rng. It returns the estimate and its
// Monte Carlo standard error. samples == 0 contributes nothing to the
// estimate and reports StdErr = +Inf, as does a single sample.
//
// Complexity: O(N·|ν|) time, O(N) memory for the sample values.
func EvaluateSemiDiscrete[X, Y any](rng *rand.Rand, c cost.Func[X, Y], mu measure.Sampler[X], nu *measure.Discrete[Y], v []float64, eps *float64, samples int) (float64, float64, error) {
	if samples < 0 {
		return 0, 0, ErrInvalidMonteCarlo
	}
	agg, err := newAggregator(eps)
	if err != nil {
		return 0, 0, err
	}
	if mu == nil || nu == nil {
		return 0, 0, ErrNilMeasure
	}
	if len(v) != nu.Len() {
		return 0, 0, ErrPotentialLength
	}

	return newSemiDiscrete(c, mu, nu).evaluate(orDefault(rng), agg, v, samples)
}

func (p *semiDiscrete[X, Y]) evaluate(rng *rand.Rand, agg aggregate.Aggregator, v []float64, samples int) (float64, float64, error) {
	base := floats.Dot(v, p.w)
	if samples == 0 {
		return base, math.Inf(1), nil
	}

	vals := make([]float64, samples)
	var (
		row []float64
		err error
	)
	for s := range vals {
		if row, err = p.costsAt(p.src.Sample(rng)); err != nil {
			return 0, 0, fmt.Errorf("wasserstein: Monte Carlo sample %d: %w", s, err)
		}
		if vals[s], err = agg.Eval(nil, v, row, p.w); err != nil {
			return 0, 0, fmt.Errorf("wasserstein: Monte Carlo sample %d: %w", s, err)
		}
	}

	mean, std := stat.MeanStdDev(vals, nil)
	stderr := math.Inf(1)
	if samples > 1 {
		stderr = stat.StdErr(std, float64(samples))
	}

	return base + mean, stderr, nil
}
