package wasserstein_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stochot/aggregate"
	"github.com/katalvlaran/stochot/cost"
	"github.com/katalvlaran/stochot/wasserstein"
)

func TestMonitor_Converged(t *testing.T) {
	tests := []struct {
		name       string
		atol       float64
		rtol       *float64
		prev, next []float64
		want       bool
	}{
		{"identical", 0, nil, []float64{1, 2}, []float64{1, 2}, true},
		{"within default rtol", 0, nil, []float64{100}, []float64{100.005}, true},
		{"outside default rtol", 0, nil, []float64{100}, []float64{100.02}, false},
		{"zero prev with default rtol", 0, nil, []float64{0}, []float64{1e-300}, false},
		{"atol disables default rtol", 1e-3, nil, []float64{100}, []float64{100.002}, false},
		{"atol accepts", 1e-3, nil, []float64{0}, []float64{5e-4}, true},
		{"explicit rtol", 0, wasserstein.Float(0.1), []float64{10}, []float64{10.9}, true},
		{"one bad coordinate", 1e-6, nil, []float64{0, 0}, []float64{0, 1}, false},
		{"length mismatch", 1, nil, []float64{0}, []float64{0, 0}, false},
		{"nan never converges", 1, nil, []float64{0}, []float64{math.NaN()}, false},
		{"empty", 0, nil, nil, nil, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := wasserstein.NewMonitor(tc.atol, tc.rtol)
			assert.Equal(t, tc.want, m.Converged(tc.prev, tc.next))
		})
	}
}

func TestResolveRtol(t *testing.T) {
	assert.Equal(t, wasserstein.DefaultRelTol, wasserstein.ResolveRtol(0, nil))
	assert.Equal(t, 0.0, wasserstein.ResolveRtol(1e-6, nil))
	assert.Equal(t, 0.5, wasserstein.ResolveRtol(1e-6, wasserstein.Float(0.5)))
}

func TestStepSizeAt(t *testing.T) {
	assert.Equal(t, 2.0, wasserstein.StepSizeAt(2, 10, 1))
	assert.InDelta(t, 1.0, wasserstein.StepSizeAt(2, 10, 11), 1e-15)
	assert.InDelta(t, 2.0/3.0, wasserstein.StepSizeAt(2, 1, 5), 1e-15)

	prev := math.Inf(1)
	for k := 1; k <= 100; k++ {
		tau := wasserstein.StepSizeAt(1, 4, k)
		assert.Less(t, tau, prev+1e-18)
		prev = tau
	}
}

func TestValidateOptions(t *testing.T) {
	mu := mustUniform(t, 0.0, 1.0)
	tests := []struct {
		name string
		mut  func(o *wasserstein.Options)
		want error
	}{
		{"max iters", func(o *wasserstein.Options) { o.MaxIters = -1 }, wasserstein.ErrInvalidMaxIters},
		{"step size zero", func(o *wasserstein.Options) { o.StepSize = 0 }, wasserstein.ErrInvalidStepSize},
		{"step size inf", func(o *wasserstein.Options) { o.StepSize = math.Inf(1) }, wasserstein.ErrInvalidStepSize},
		{"step size nan", func(o *wasserstein.Options) { o.StepSize = math.NaN() }, wasserstein.ErrInvalidStepSize},
		{"warmup", func(o *wasserstein.Options) { o.WarmupPhase = -2 }, wasserstein.ErrInvalidWarmup},
		{"atol", func(o *wasserstein.Options) { o.Atol = -1e-9 }, wasserstein.ErrInvalidTolerance},
		{"atol nan", func(o *wasserstein.Options) { o.Atol = math.NaN() }, wasserstein.ErrInvalidTolerance},
		{"rtol", func(o *wasserstein.Options) { o.Rtol = wasserstein.Float(-1) }, wasserstein.ErrInvalidTolerance},
		{"montecarlo", func(o *wasserstein.Options) { o.MonteCarloSamples = -1 }, wasserstein.ErrInvalidMonteCarlo},
		{"log every", func(o *wasserstein.Options) { o.LogEvery = -1 }, wasserstein.ErrInvalidLogEvery},
		{"method", func(o *wasserstein.Options) { o.Method = wasserstein.Method(42) }, wasserstein.ErrUnknownMethod},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			opts := wasserstein.DefaultOptions()
			tc.mut(&opts)
			_, err := wasserstein.SAG(nil, cost.Abs, mu, mu, nil, opts)
			assert.ErrorIs(t, err, tc.want)
			assert.ErrorIs(t, err, wasserstein.ErrInvalidConfiguration)
		})
	}
}

func TestMethod_String(t *testing.T) {
	assert.Equal(t, "auto", wasserstein.MethodAuto.String())
	assert.Equal(t, "sag", wasserstein.MethodSAG.String())
	assert.Equal(t, "sga", wasserstein.MethodSGA.String())
	assert.Equal(t, "Method(7)", wasserstein.Method(7).String())
}

func TestSAG_Potentials(t *testing.T) {
	mu := mustUniform(t, 0.0, 1.0)
	nu := mustUniform(t, 0.0, 1.0)

	pot, err := wasserstein.SAG(wasserstein.NewRand(seedDet), cost.Abs, mu, nu, nil, fastOptions(5000))
	require.NoError(t, err)
	require.Len(t, pot.V, 2)
	assert.True(t, pot.Converged)
	// Updates are ±(ν − e_j) scaled, so the potential stays antisymmetric.
	assert.InDelta(t, 0, pot.V[0]+pot.V[1], epsExact)

	d, dual, err := wasserstein.EvaluateDiscrete(cost.Abs, mu, nu, pot.V, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0, d, epsExact)
	assert.Len(t, dual, 2)
}

func TestSGA_Potentials(t *testing.T) {
	mu := mustNormal(t, 0, 1)
	nu := mustUniform(t, -1.0, 1.0)
	opts := fastOptions(20000)
	opts.Atol = 1e-9

	pot, err := wasserstein.SGA(wasserstein.NewRand(seedDet), cost.Squared, mu, nu, wasserstein.Float(0.5), opts)
	require.NoError(t, err)
	require.Len(t, pot.V, 2)
	// Symmetric problem: the optimal potential is constant up to the ±v shift.
	assert.InDelta(t, 0, pot.V[0]+pot.V[1], epsExact)
	assert.InDelta(t, 0, pot.V[0], 0.2)
}

// The average can take a tiny step when the raw iterate crosses it; that
// alone must not stop SGA away from the optimum v = 0.
func TestSGA_NoStopOnAverageCrossing(t *testing.T) {
	mu := mustNormal(t, 0, 1)
	nu := mustUniform(t, -1.0, 1.0)
	opts := wasserstein.DefaultOptions()

	for seed := uint64(1); seed <= 20; seed++ {
		pot, err := wasserstein.SGA(wasserstein.NewRand(seed), cost.Squared, mu, nu, nil, opts)
		require.NoError(t, err)
		assert.InDelta(t, 0, pot.V[0], 0.15, "seed=%d converged=%t iters=%d", seed, pot.Converged, pot.Iterations)
		assert.InDelta(t, 0, pot.V[0]+pot.V[1], epsExact)
	}
}

func TestEvaluateDiscrete(t *testing.T) {
	mu := mustDiscrete(t, []float64{0, 2}, []float64{0.25, 0.75})
	nu := mustUniform(t, 1.0, 3.0)

	d, dual, err := wasserstein.EvaluateDiscrete(cost.Abs, mu, nu, []float64{0, 0}, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1, d, epsExact)
	assert.Equal(t, []float64{1, 1}, dual)

	// Shifting v by a constant leaves the objective unchanged.
	d2, _, err := wasserstein.EvaluateDiscrete(cost.Abs, mu, nu, []float64{0.7, 0.7}, nil)
	require.NoError(t, err)
	assert.InDelta(t, d, d2, epsExact)

	_, _, err = wasserstein.EvaluateDiscrete(cost.Abs, mu, nu, []float64{0}, nil)
	assert.ErrorIs(t, err, wasserstein.ErrPotentialLength)
	assert.ErrorIs(t, err, aggregate.ErrLengthMismatch)
}

func TestEvaluateSemiDiscrete(t *testing.T) {
	mu := mustNormal(t, 2, 0.5)
	nu := mustUniform(t, 0.0)

	d, se, err := wasserstein.EvaluateSemiDiscrete(wasserstein.NewRand(seedDet), cost.Abs, mu, nu, []float64{0.3}, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.3, d)
	assert.True(t, math.IsInf(se, 1))

	d, se, err = wasserstein.EvaluateSemiDiscrete(wasserstein.NewRand(seedDet), cost.Abs, mu, nu, []float64{0.3}, nil, 1)
	require.NoError(t, err)
	assert.True(t, math.IsInf(se, 1))
	assert.Greater(t, d, 0.0)

	d, se, err = wasserstein.EvaluateSemiDiscrete(wasserstein.NewRand(seedDet), cost.Abs, mu, nu, []float64{0}, nil, 20000)
	require.NoError(t, err)
	// E|X| for X ~ N(2, 0.25) is 2 up to a negligible tail term.
	assert.InDelta(t, 2, d, epsLoose)
	assert.Less(t, se, 0.01)

	_, _, err = wasserstein.EvaluateSemiDiscrete(nil, cost.Abs, mu, nu, []float64{0}, nil, -1)
	assert.ErrorIs(t, err, wasserstein.ErrInvalidMonteCarlo)
}
