package measure

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// WeightTolerance is the absolute tolerance for |Σ wᵢ − 1|.
const WeightTolerance = 1e-8

// ErrInvalidMeasure is the umbrella sentinel wrapped by every validation error below.
var ErrInvalidMeasure = errors.New("measure: invalid measure")

var (
	// ErrEmptySupport indicates a discrete measure with no support points.
	ErrEmptySupport = fmt.Errorf("%w: empty support", ErrInvalidMeasure)

	// ErrLengthMismatch indicates len(weights) != len(support).
	ErrLengthMismatch = fmt.Errorf("%w: weights and support differ in length", ErrInvalidMeasure)

	// ErrNegativeWeight indicates a negative, NaN or infinite weight.
	ErrNegativeWeight = fmt.Errorf("%w: weights must be finite and nonnegative", ErrInvalidMeasure)

	// ErrNotNormalized indicates weights that do not sum to 1 within WeightTolerance.
	ErrNotNormalized = fmt.Errorf("%w: weights must sum to 1", ErrInvalidMeasure)

	// ErrNilSampler indicates a Sampleable built from a nil draw function.
	ErrNilSampler = fmt.Errorf("%w: nil sampler", ErrInvalidMeasure)

	// ErrBadParameter indicates invalid distribution parameters (e.g. sigma ≤ 0).
	ErrBadParameter = fmt.Errorf("%w: bad distribution parameter", ErrInvalidMeasure)
)

// Kind tags the two measure variants.
type Kind int

const (
	// KindDiscrete marks a measure with finite explicit support.
	KindDiscrete Kind = iota

	// KindSampleable marks a measure known only through a sampler.
	KindSampleable
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindDiscrete:
		return "discrete"
	case KindSampleable:
		return "sampleable"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Measure is a probability measure over points of type T.
// It is sealed: the only implementations are *Discrete[T] and *Sampleable[T].
type Measure[T any] interface {
	Kind() Kind
	sealed()
}

// Sampler is satisfied by both variants: anything that draws points of T
// from an explicit random stream.
type Sampler[T any] interface {
	Sample(rng *rand.Rand) T
}

var (
	_ Sampler[float64] = (*Discrete[float64])(nil)
	_ Sampler[float64] = (*Sampleable[float64])(nil)
	_ Measure[float64] = (*Discrete[float64])(nil)
	_ Measure[float64] = (*Sampleable[float64])(nil)
)
