package measure

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Sampleable is a measure known only through i.i.d. draws.
type Sampleable[T any] struct {
	draw func(rng *rand.Rand) T
}

var _ Measure[float64] = (*Sampleable[float64])(nil)

// NewSampleable wraps a draw function. The function must take all of its
// randomness from rng.
func NewSampleable[T any](draw func(rng *rand.Rand) T) (*Sampleable[T], error) {
	if draw == nil {
		return nil, ErrNilSampler
	}

	return &Sampleable[T]{draw: draw}, nil
}

// Kind returns KindSampleable.
func (s *Sampleable[T]) Kind() Kind { return KindSampleable }

func (s *Sampleable[T]) sealed() {}

// Sample draws one point using rng.
func (s *Sampleable[T]) Sample(rng *rand.Rand) T { return s.draw(rng) }

// FromRander adapts a gonum distuv distribution. build is called per draw
// with the solve's rng as Src, so the distribution never holds a source of
// its own.
//
//	m, _ := measure.FromRander(func(src rand.Source) distuv.Rander {
//		return distuv.Weibull{K: 2, Lambda: 1, Src: src}
//	})
func FromRander(build func(src rand.Source) distuv.Rander) (*Sampleable[float64], error) {
	if build == nil {
		return nil, ErrNilSampler
	}

	return &Sampleable[float64]{draw: func(rng *rand.Rand) float64 {
		return build(rng).Rand()
	}}, nil
}

// Normal returns N(mu, sigma²). sigma must be finite and > 0.
func Normal(mu, sigma float64) (*Sampleable[float64], error) {
	if !finite(mu) || !positive(sigma) {
		return nil, ErrBadParameter
	}

	return FromRander(func(src rand.Source) distuv.Rander {
		return distuv.Normal{Mu: mu, Sigma: sigma, Src: src}
	})
}

// UniformRange returns U[lo, hi). Requires lo < hi, both finite.
func UniformRange(lo, hi float64) (*Sampleable[float64], error) {
	if !finite(lo) || !finite(hi) || !(lo < hi) {
		return nil, ErrBadParameter
	}

	return FromRander(func(src rand.Source) distuv.Rander {
		return distuv.Uniform{Min: lo, Max: hi, Src: src}
	})
}

// Exponential returns Exp(rate). rate must be finite and > 0.
func Exponential(rate float64) (*Sampleable[float64], error) {
	if !positive(rate) {
		return nil, ErrBadParameter
	}

	return FromRander(func(src rand.Source) distuv.Rander {
		return distuv.Exponential{Rate: rate, Src: src}
	})
}

// Gamma returns Gamma(alpha, beta) with shape alpha and rate beta.
func Gamma(alpha, beta float64) (*Sampleable[float64], error) {
	if !positive(alpha) || !positive(beta) {
		return nil, ErrBadParameter
	}

	return FromRander(func(src rand.Source) distuv.Rander {
		return distuv.Gamma{Alpha: alpha, Beta: beta, Src: src}
	})
}

// Beta returns Beta(alpha, beta) on [0, 1].
func Beta(alpha, beta float64) (*Sampleable[float64], error) {
	if !positive(alpha) || !positive(beta) {
		return nil, ErrBadParameter
	}

	return FromRander(func(src rand.Source) distuv.Rander {
		return distuv.Beta{Alpha: alpha, Beta: beta, Src: src}
	})
}

// IsotropicNormal returns N(mean, sigma²·I) over []float64 points. Each draw
// allocates a fresh slice of len(mean).
func IsotropicNormal(mean []float64, sigma float64) (*Sampleable[[]float64], error) {
	if len(mean) == 0 || !positive(sigma) {
		return nil, ErrBadParameter
	}
	mu := make([]float64, len(mean))
	copy(mu, mean)
	for _, m := range mu {
		if !finite(m) {
			return nil, ErrBadParameter
		}
	}

	return &Sampleable[[]float64]{draw: func(rng *rand.Rand) []float64 {
		x := make([]float64, len(mu))
		for i := range x {
			x[i] = distuv.Normal{Mu: mu[i], Sigma: sigma, Src: rng}.Rand()
		}
		return x
	}}, nil
}

// Lift maps a scalar measure onto 1-dimensional vectors, so scalar samplers
// can be paired with vector costs. A nil s fails with ErrNilSampler.
func Lift(s *Sampleable[float64]) (*Sampleable[[]float64], error) {
	if s == nil {
		return nil, ErrNilSampler
	}

	return &Sampleable[[]float64]{draw: func(rng *rand.Rand) []float64 {
		return []float64{s.draw(rng)}
	}}, nil
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

func positive(x float64) bool { return x > 0 && !math.IsInf(x, 1) }

// Product returns the law of dim independent draws of s as one []float64
// point. Product(s, 1) is equivalent to Lift(s).
func Product(s *Sampleable[float64], dim int) (*Sampleable[[]float64], error) {
	if s == nil {
		return nil, ErrNilSampler
	}
	if dim < 1 {
		return nil, ErrBadParameter
	}

	return &Sampleable[[]float64]{draw: func(rng *rand.Rand) []float64 {
		x := make([]float64, dim)
		for i := range x {
			x[i] = s.draw(rng)
		}
		return x
	}}, nil
}
