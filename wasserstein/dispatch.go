package wasserstein

import (
	"math/rand/v2"

	"github.com/katalvlaran/stochot/aggregate"
	"github.com/katalvlaran/stochot/cost"
	"github.com/katalvlaran/stochot/measure"
)

// Wasserstein estimates the (optionally entropy-regularized) transport cost
// between mu and nu under the ground cost c. It is Solve without the
// diagnostics.
func Wasserstein[X, Y any](rng *rand.Rand, c cost.Func[X, Y], mu measure.Measure[X], nu measure.Measure[Y], eps *float64, opts Options) (float64, error) {
	res, err := Solve(rng, c, mu, nu, eps, opts)
	if err != nil {
		return 0, err
	}

	return res.Distance, nil
}

// Solve dispatches on the measure variants and returns the full Result.
//
// Routing:
//   - discrete μ, discrete ν   → SAG, exact evaluation (SGA when Method == MethodSGA).
//   - sampleable μ, discrete ν → SGA, Monte Carlo evaluation.
//   - discrete μ, sampleable ν → SGA with the roles swapped and c flipped.
//   - sampleable μ and ν      → ErrNoDiscreteMeasure.
//
// Validation runs in stages before any sampling: options, then ε, then the
// measures. A nil rng selects the deterministic default stream.
func Solve[X, Y any](rng *rand.Rand, c cost.Func[X, Y], mu measure.Measure[X], nu measure.Measure[Y], eps *float64, opts Options) (Result, error) {
	// Stage 1: configuration.
	if err := validateOptions(opts); err != nil {
		return Result{}, err
	}
	agg, err := newAggregator(eps)
	if err != nil {
		return Result{}, err
	}

	// Stage 2: measures.
	if isNilMeasure[X](mu) || isNilMeasure[Y](nu) {
		return Result{}, ErrNilMeasure
	}
	dmu, muDiscrete := mu.(*measure.Discrete[X])
	dnu, nuDiscrete := nu.(*measure.Discrete[Y])
	if !muDiscrete && !nuDiscrete {
		return Result{}, ErrNoDiscreteMeasure
	}
	if opts.Method == MethodSAG && !(muDiscrete && nuDiscrete) {
		return Result{}, ErrMethodMismatch
	}

	// Stage 3: solve and evaluate.
	rng = orDefault(rng)
	var res Result
	switch {
	case muDiscrete && nuDiscrete:
		res, err = solveDiscrete(rng, agg, c, dmu, dnu, opts)
	case nuDiscrete:
		res, err = solveSemiDiscrete(rng, agg, c, mu.(*measure.Sampleable[X]), dnu, opts)
	default:
		res, err = solveSemiDiscrete(rng, agg, cost.Flip(c), nu.(*measure.Sampleable[Y]), dmu, opts)
	}
	if err != nil {
		return Result{}, err
	}
	newTracer(opts, res.Method).finished(res)

	return res, nil
}

// solveDiscrete runs SAG (or SGA on request) and evaluates the objective exactly.
func solveDiscrete[X, Y any](rng *rand.Rand, agg aggregate.Aggregator, c cost.Func[X, Y], mu *measure.Discrete[X], nu *measure.Discrete[Y], opts Options) (Result, error) {
	pair, err := newDiscretePair(c, mu, nu)
	if err != nil {
		return Result{}, err
	}

	var (
		pot    Potentials
		method = MethodSAG
	)
	if opts.Method == MethodSGA {
		method = MethodSGA
		pot, err = runSGA(rng, agg, newSemiDiscrete(c, measure.Sampler[X](mu), nu), opts)
		if err == nil {
			err = floorAtZero(agg, pair, &pot)
		}
	} else {
		pot, err = runSAG(rng, agg, pair, opts)
	}
	if err != nil {
		return Result{}, err
	}

	value, dual, err := pair.evaluate(agg, pot.V)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Distance:   value,
		Potential:  pot.V,
		Dual:       dual,
		Iterations: pot.Iterations,
		Converged:  pot.Converged,
		Method:     method,
	}, nil
}

// floorAtZero swaps pot.V for the zero potential when v = 0 has the higher
// exact objective. SAG checkpoints v = 0 itself.
func floorAtZero(agg aggregate.Aggregator, p *discretePair, pot *Potentials) error {
	got, err := p.objective(agg, pot.V, nil)
	if err != nil {
		return err
	}
	zero := make([]float64, len(pot.V))
	base, err := p.objective(agg, zero, nil)
	if err != nil {
		return err
	}
	if base > got {
		pot.V = zero
	}

	return nil
}

// solveSemiDiscrete runs SGA with src sampled and dst discrete, then spends
// MonteCarloSamples fresh draws on the estimate.
func solveSemiDiscrete[S, D any](rng *rand.Rand, agg aggregate.Aggregator, c cost.Func[S, D], src measure.Sampler[S], dst *measure.Discrete[D], opts Options) (Result, error) {
	p := newSemiDiscrete(c, src, dst)
	pot, err := runSGA(rng, agg, p, opts)
	if err != nil {
		return Result{}, err
	}

	value, stderr, err := p.evaluate(rng, agg, pot.V, opts.MonteCarloSamples)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Distance:   value,
		Potential:  pot.V,
		Iterations: pot.Iterations,
		Converged:  pot.Converged,
		StdErr:     stderr,
		Method:     MethodSGA,
	}, nil
}

func isNilMeasure[T any](m measure.Measure[T]) bool {
	switch v := m.(type) {
	case nil:
		return true
	case *measure.Discrete[T]:
		return v == nil
	case *measure.Sampleable[T]:
		return v == nil
	default:
		return false
	}
}
