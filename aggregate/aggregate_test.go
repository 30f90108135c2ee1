package aggregate_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/stochot/aggregate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-12

// TestLogSumExp_MatchesNaive compares against the direct formula on small values.
func TestLogSumExp_MatchesNaive(t *testing.T) {
	a := []float64{0.3, -1.2, 2.5}
	eps := 0.7

	got, err := aggregate.LogSumExp(a, eps)
	require.NoError(t, err)

	var sum float64
	for _, x := range a {
		sum += math.Exp(x / eps)
	}
	assert.InDelta(t, eps*math.Log(sum), got, tol)
}

// TestLogSumExp_NoOverflow checks that max subtraction keeps huge inputs finite.
func TestLogSumExp_NoOverflow(t *testing.T) {
	a := []float64{1000, 1000}
	got, err := aggregate.LogSumExp(a, 0.01)
	require.NoError(t, err)
	assert.InDelta(t, 1000+0.01*math.Log(2), got, 1e-9)
}

// TestLogSumExp_Errors covers the input contract.
func TestLogSumExp_Errors(t *testing.T) {
	_, err := aggregate.LogSumExp(nil, 1)
	assert.ErrorIs(t, err, aggregate.ErrEmpty)

	_, err = aggregate.LogSumExp([]float64{1}, 0)
	assert.ErrorIs(t, err, aggregate.ErrNonPositiveEpsilon, "ε == 0 must fail fast")

	_, err = aggregate.LogSumExp([]float64{1}, -0.5)
	assert.ErrorIs(t, err, aggregate.ErrNonPositiveEpsilon)

	_, err = aggregate.LogSumExp([]float64{1, math.NaN()}, 1)
	assert.ErrorIs(t, err, aggregate.ErrNumericInstability)

	// 1e300/1e-300 overflows before any exponentiation.
	_, err = aggregate.LogSumExp([]float64{1e300}, 1e-300)
	assert.ErrorIs(t, err, aggregate.ErrNumericInstability)
}

// TestWeightedLogSumExp_ZeroWeightDropsTerm ensures w=0 entries are ignored.
func TestWeightedLogSumExp_ZeroWeightDropsTerm(t *testing.T) {
	got, err := aggregate.WeightedLogSumExp([]float64{5, 1}, []float64{0, 1}, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, tol)

	_, err = aggregate.WeightedLogSumExp([]float64{5, 1}, []float64{1}, 0.5)
	assert.ErrorIs(t, err, aggregate.ErrLengthMismatch)
}

// TestNew_SelectsStrategy verifies the nil/positive/zero ε contract.
func TestNew_SelectsStrategy(t *testing.T) {
	agg, err := aggregate.New(nil)
	require.NoError(t, err)
	_, ok := agg.Epsilon()
	assert.False(t, ok)
	assert.IsType(t, aggregate.Hard{}, agg)

	eps := 0.2
	agg, err = aggregate.New(&eps)
	require.NoError(t, err)
	got, ok := agg.Epsilon()
	assert.True(t, ok)
	assert.Equal(t, 0.2, got)

	zero := 0.0
	_, err = aggregate.New(&zero)
	assert.ErrorIs(t, err, aggregate.ErrNonPositiveEpsilon)
}

// TestHard_Eval checks the min, the one-hot argmin and tie-breaking.
func TestHard_Eval(t *testing.T) {
	v := []float64{0.5, 0, 1}
	c := []float64{1, 2, 2}
	w := []float64{0.2, 0.3, 0.5}
	dst := make([]float64, 3)

	val, err := aggregate.Hard{}.Eval(dst, v, c, w)
	require.NoError(t, err)
	// c - v = {0.5, 2, 1}
	assert.Equal(t, 0.5, val)
	assert.Equal(t, []float64{1, 0, 0}, dst)

	// Tie between index 0 and 2 resolves to 0.
	val, err = aggregate.Hard{}.Eval(dst, []float64{0, 0, 0}, []float64{1, 3, 1}, w)
	require.NoError(t, err)
	assert.Equal(t, 1.0, val)
	assert.Equal(t, []float64{1, 0, 0}, dst)

	// Zero-weight points are outside the support.
	val, err = aggregate.Hard{}.Eval(nil, []float64{0, 0}, []float64{0, 5}, []float64{0, 1})
	require.NoError(t, err)
	assert.Equal(t, 5.0, val)
}

// TestSoft_Eval checks the value and that the Gibbs weights form a distribution.
func TestSoft_Eval(t *testing.T) {
	s, err := aggregate.NewSoft(0.5)
	require.NoError(t, err)

	v := []float64{0.1, -0.2}
	c := []float64{1, 0}
	w := []float64{0.5, 0.5}
	dst := make([]float64, 2)

	val, err := s.Eval(dst, v, c, w)
	require.NoError(t, err)

	e0 := 0.5 * math.Exp((0.1-1)/0.5)
	e1 := 0.5 * math.Exp((-0.2-0)/0.5)
	assert.InDelta(t, -0.5*math.Log(e0+e1), val, tol)
	assert.InDelta(t, e0/(e0+e1), dst[0], tol)
	assert.InDelta(t, 1.0, dst[0]+dst[1], tol)
}

// TestSoft_ApproachesHard checks that a tiny ε recovers the hard c-transform.
func TestSoft_ApproachesHard(t *testing.T) {
	v := []float64{0.3, 0.1, -0.4}
	c := []float64{2, 1, 3}
	w := []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}

	hard, err := aggregate.Hard{}.Eval(nil, v, c, w)
	require.NoError(t, err)

	s, err := aggregate.NewSoft(1e-4)
	require.NoError(t, err)
	soft, err := s.Eval(nil, v, c, w)
	require.NoError(t, err)

	// −ε·log(w·exp(−min/ε)) = min + ε·log 3
	assert.InDelta(t, hard, soft, 1e-3)
	assert.GreaterOrEqual(t, soft, hard, "soft c-transform upper-bounds the hard one for normalized w")
}

// TestEval_LengthChecks covers the shape contract shared by both strategies.
func TestEval_LengthChecks(t *testing.T) {
	s, err := aggregate.NewSoft(1)
	require.NoError(t, err)

	for _, agg := range []aggregate.Aggregator{aggregate.Hard{}, s} {
		_, err = agg.Eval(nil, nil, nil, nil)
		assert.ErrorIs(t, err, aggregate.ErrEmpty)

		_, err = agg.Eval(nil, []float64{1, 2}, []float64{1}, []float64{0.5, 0.5})
		assert.ErrorIs(t, err, aggregate.ErrLengthMismatch)

		_, err = agg.Eval(make([]float64, 3), []float64{1, 2}, []float64{1, 2}, []float64{0.5, 0.5})
		assert.ErrorIs(t, err, aggregate.ErrLengthMismatch)
	}
}
