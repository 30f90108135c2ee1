// Package wasserstein - validation utilities shared by both solvers.
//
// Design principles:
//   - Deterministic, side-effect free functions.
//   - No logging, no panics on user input - only sentinel errors from types.go.
//   - Everything is checked before the first iteration, so a solve either
//     starts with a consistent configuration or fails immediately.
package wasserstein

import (
	"fmt"
	"math"

	"github.com/katalvlaran/stochot/aggregate"
)

// validateOptions checks internal consistency of Options.
//
// Complexity: O(1).
func validateOptions(opts Options) error {
	// Stage 1: budgets.
	if opts.MaxIters < 0 {
		return ErrInvalidMaxIters
	}
	if opts.MonteCarloSamples < 0 {
		return ErrInvalidMonteCarlo
	}
	if opts.LogEvery < 0 {
		return ErrInvalidLogEvery
	}

	// Stage 2: step-size schedule.
	if !positiveFinite(opts.StepSize) {
		return ErrInvalidStepSize
	}
	if !positiveFinite(opts.WarmupPhase) {
		return ErrInvalidWarmup
	}

	// Stage 3: tolerances (NaN fails every comparison, so test the accepted range).
	if !(opts.Atol >= 0) {
		return ErrInvalidTolerance
	}
	if opts.Rtol != nil && !(*opts.Rtol >= 0) {
		return ErrInvalidTolerance
	}

	// Stage 4: method.
	switch opts.Method {
	case MethodAuto, MethodSAG, MethodSGA:
		// ok
	default:
		return ErrUnknownMethod
	}

	return nil
}

// newAggregator validates ε and selects the per-solve aggregation strategy.
// The returned error wraps both ErrInvalidEpsilon and the aggregate sentinel.
func newAggregator(eps *float64) (aggregate.Aggregator, error) {
	if eps != nil && !positiveFinite(*eps) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEpsilon, aggregate.ErrNonPositiveEpsilon)
	}

	return aggregate.New(eps)
}

func positiveFinite(x float64) bool { return x > 0 && !math.IsInf(x, 1) }
