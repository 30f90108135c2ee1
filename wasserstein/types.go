package wasserstein

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/stochot/aggregate"
	"github.com/katalvlaran/stochot/measure"
)

// Defaults (single source of truth for DefaultOptions).
const (
	DefaultMaxIters          = 10000
	DefaultStepSize          = 1.0
	DefaultWarmupPhase       = 1.0
	DefaultAtol              = 0.0
	DefaultMonteCarloSamples = 10000

	// DefaultRelTol is the relative tolerance used when Atol == 0 and Rtol is unset.
	DefaultRelTol = 1e-4
)

// ErrInvalidConfiguration is the umbrella sentinel for bad options and ε.
var ErrInvalidConfiguration = errors.New("wasserstein: invalid configuration")

var (
	// ErrInvalidMaxIters indicates MaxIters < 0.
	ErrInvalidMaxIters = fmt.Errorf("%w: MaxIters must be >= 0", ErrInvalidConfiguration)

	// ErrInvalidStepSize indicates StepSize that is not finite and > 0.
	ErrInvalidStepSize = fmt.Errorf("%w: StepSize must be finite and > 0", ErrInvalidConfiguration)

	// ErrInvalidWarmup indicates WarmupPhase that is not finite and > 0.
	ErrInvalidWarmup = fmt.Errorf("%w: WarmupPhase must be finite and > 0", ErrInvalidConfiguration)

	// ErrInvalidTolerance indicates a negative or NaN Atol/Rtol.
	ErrInvalidTolerance = fmt.Errorf("%w: tolerances must be >= 0", ErrInvalidConfiguration)

	// ErrInvalidMonteCarlo indicates MonteCarloSamples < 0.
	ErrInvalidMonteCarlo = fmt.Errorf("%w: MonteCarloSamples must be >= 0", ErrInvalidConfiguration)

	// ErrInvalidLogEvery indicates LogEvery < 0.
	ErrInvalidLogEvery = fmt.Errorf("%w: LogEvery must be >= 0", ErrInvalidConfiguration)

	// ErrUnknownMethod indicates a Method outside the declared constants.
	ErrUnknownMethod = fmt.Errorf("%w: unknown method", ErrInvalidConfiguration)

	// ErrInvalidEpsilon indicates ε supplied but not finite and > 0 (ε == 0 included).
	ErrInvalidEpsilon = fmt.Errorf("%w: epsilon must be finite and > 0 when set", ErrInvalidConfiguration)
)

var (
	// ErrNoDiscreteMeasure indicates that neither measure is discrete.
	ErrNoDiscreteMeasure = fmt.Errorf("%w: at least one measure must be discrete", measure.ErrInvalidMeasure)

	// ErrNilMeasure indicates a nil measure argument.
	ErrNilMeasure = fmt.Errorf("%w: nil measure", measure.ErrInvalidMeasure)

	// ErrMethodMismatch indicates MethodSAG requested for a pair that is not discrete–discrete.
	ErrMethodMismatch = fmt.Errorf("%w: SAG requires two discrete measures", ErrInvalidConfiguration)
)

// ErrNumericInstability is raised when the aggregation overflows even after
// max subtraction, or when the cost function returns NaN/±Inf.
var ErrNumericInstability = aggregate.ErrNumericInstability

// Method selects the solver.
type Method int

const (
	// MethodAuto picks SAG for discrete–discrete pairs and SGA otherwise.
	MethodAuto Method = iota

	// MethodSAG forces stochastic averaged gradient (discrete–discrete only).
	MethodSAG

	// MethodSGA forces averaged stochastic gradient ascent; a discrete first
	// measure is then sampled instead of enumerated.
	MethodSGA
)

// String implements fmt.Stringer.
func (m Method) String() string {
	switch m {
	case MethodAuto:
		return "auto"
	case MethodSAG:
		return "sag"
	case MethodSGA:
		return "sga"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// Options configures a solve. Options are read-only for the duration of a
// solve; no solver mutates them.
//
// Fields:
//   - MaxIters          — iteration budget (≥ 0). 0 evaluates the initial zero potential.
//   - StepSize          — τ₁: constant SAG step, initial SGA step (> 0).
//   - WarmupPhase       — w in τₖ = τ₁ / (1 + sqrt((k−1)/w)) (> 0).
//   - Atol              — absolute tolerance of the convergence test (≥ 0).
//   - Rtol              — relative tolerance; nil ⇒ 1e-4 when Atol == 0, else 0.
//   - MonteCarloSamples — fresh samples for the semi-discrete evaluator (≥ 0).
//   - Method            — solver selection (MethodAuto by default).
//   - Logger            — optional structured logger; nil keeps the solve silent.
//   - LogEvery          — debug progress cadence in iterations (0 ⇒ summary only).
type Options struct {
	MaxIters          int
	StepSize          float64
	WarmupPhase       float64
	Atol              float64
	Rtol              *float64
	MonteCarloSamples int
	Method            Method
	Logger            *slog.Logger
	LogEvery          int
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		MaxIters:          DefaultMaxIters,
		StepSize:          DefaultStepSize,
		WarmupPhase:       DefaultWarmupPhase,
		Atol:              DefaultAtol,
		MonteCarloSamples: DefaultMonteCarloSamples,
		Method:            MethodAuto,
	}
}

// Float returns a pointer to x, for the optional ε and Rtol arguments.
//
//	d, err := wasserstein.Wasserstein(rng, c, mu, nu, wasserstein.Float(0.1), opts)
func Float(x float64) *float64 { return &x }

// Result is the outcome of a solve.
type Result struct {
	// Distance is the (regularized) transport cost estimate.
	Distance float64

	// Potential is the dual potential over the support of the discrete
	// measure (ν for discrete–discrete; whichever side is discrete otherwise).
	Potential []float64

	// Dual is the c-transform of Potential over μ's support (discrete–discrete
	// only; nil otherwise).
	Dual []float64

	// Iterations actually performed (≤ MaxIters).
	Iterations int

	// Converged is false when the iteration budget ran out first.
	Converged bool

	// StdErr is the Monte Carlo standard error of Distance (0 when exact,
	// +Inf when fewer than two samples were drawn).
	StdErr float64

	// Method is the solver that ran.
	Method Method
}

// Potentials is the raw output of SAG and SGA before cost evaluation.
type Potentials struct {
	V          []float64 // over the discrete (target) support
	Iterations int
	Converged  bool
}
