package wasserstein

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/stochot/cost"
	"github.com/katalvlaran/stochot/measure"
)

// Sweep solves the same problem for every ε in epsilons concurrently and
// returns the results in input order. A nil entry selects the hard
// (unregularized) transform.
//
// Entry k draws from DeriveRand(seed, k), so the output depends only on seed
// and the inputs, never on scheduling. limit > 0 caps the number of
// concurrent solves; limit ≤ 0 runs them all at once.
//
// The first failing entry cancels the rest; its error is returned wrapped
// with the entry index. Measures are read-only and cost functions pure, so
// they are shared across goroutines; a Sampleable's draw function must not
// keep unsynchronized state of its own.
func Sweep[X, Y any](ctx context.Context, seed uint64, c cost.Func[X, Y], mu measure.Measure[X], nu measure.Measure[Y], epsilons []*float64, opts Options, limit int) ([]Result, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	results := make([]Result, len(epsilons))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for k, eps := range epsilons {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := Solve(DeriveRand(seed, uint64(k)), c, mu, nu, eps, opts)
			if err != nil {
				return fmt.Errorf("wasserstein: sweep entry %d: %w", k, err)
			}
			results[k] = res

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
