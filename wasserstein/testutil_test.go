// Package wasserstein_test provides lightweight helpers shared across the
// *_test.go files of this package.
package wasserstein_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stochot/measure"
	"github.com/katalvlaran/stochot/wasserstein"
)

// -----------------------------------------------------------------------------
// Constants - single source of truth for test knobs
// -----------------------------------------------------------------------------

const (
	// epsExact is the tolerance for results that are exact up to rounding.
	epsExact = 1e-9

	// epsLoose is the tolerance for stochastic estimates.
	epsLoose = 5e-2

	// seedDet is the deterministic seed used across tests.
	seedDet = uint64(42)
)

// countingSource wraps a PCG and counts draws, to prove a path never touches
// the random stream.
type countingSource struct {
	src   rand.Source
	draws int
}

func newCountingSource(seed uint64) *countingSource {
	return &countingSource{src: rand.NewPCG(seed, seed)}
}

func (c *countingSource) Uint64() uint64 {
	c.draws++

	return c.src.Uint64()
}

// mustUniform builds a uniform discrete measure or fails the test.
func mustUniform[T any](t *testing.T, pts ...T) *measure.Discrete[T] {
	t.Helper()
	d, err := measure.Uniform(pts)
	require.NoError(t, err)

	return d
}

// mustDiscrete builds a discrete measure with explicit weights.
func mustDiscrete[T any](t *testing.T, pts []T, w []float64) *measure.Discrete[T] {
	t.Helper()
	d, err := measure.NewDiscrete(pts, w)
	require.NoError(t, err)

	return d
}

// mustNormal builds a 1-D Gaussian sampleable measure.
func mustNormal(t *testing.T, mu, sigma float64) *measure.Sampleable[float64] {
	t.Helper()
	s, err := measure.Normal(mu, sigma)
	require.NoError(t, err)

	return s
}

// fastOptions are defaults with a smaller budget for quick tests.
func fastOptions(maxIters int) wasserstein.Options {
	opts := wasserstein.DefaultOptions()
	opts.MaxIters = maxIters

	return opts
}

// Repeat runs fn n times as numbered subtests.
func Repeat(t *testing.T, n int, fn func(t *testing.T)) {
	t.Helper()
	for i := 0; i < n; i++ {
		t.Run("", fn)
	}
}
