// Package bootstrap compares two empirical distributions by paired bootstrap
// resampling followed by a one-sided two-proportion z-test.
//
// Each simulation draws one value from each sample with replacement. The
// first sample scores when its draw is greater than or equal to the second's,
// the second scores only on a strict win. The resulting win rates are
// compared with a pooled-variance z-test and the upper-tail normal
// probability is returned: small values mean dist1 tends to exceed dist2.
package bootstrap

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"

	"bootcompare/domain/core"
	"bootcompare/domain/stats"
	"bootcompare/internal"
)

// BootstrapComparator runs paired bootstrap comparisons.
// It is safe for concurrent use; the root random source is only touched
// under mu while chunk streams are derived.
type BootstrapComparator struct {
	mu      sync.Mutex
	rng     *rand.Rand
	workers int
	logger  *internal.Logger
}

// Option configures a BootstrapComparator
type Option func(*BootstrapComparator)

// WithRand sets the root random source
func WithRand(rng *rand.Rand) Option {
	return func(c *BootstrapComparator) { c.rng = rng }
}

// WithSeed seeds the root random source deterministically
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// WithWorkers sets how many chunks may be tallied at once (1..MAX_WORKERS)
func WithWorkers(n int) Option {
	return func(c *BootstrapComparator) {
		c.workers = min(max(n, 1), MAX_WORKERS)
	}
}

// WithLogger sets the logger
func WithLogger(logger *internal.Logger) Option {
	return func(c *BootstrapComparator) { c.logger = logger }
}

// NewBootstrapComparator creates a comparator. Without WithRand or WithSeed
// the root source is seeded from the runtime's entropy.
func NewBootstrapComparator(opts ...Option) *BootstrapComparator {
	c := &BootstrapComparator{workers: 1}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if c.logger == nil {
		c.logger = internal.DefaultLogger
	}
	c.logger = c.logger.Named("bootstrap")
	return c
}

// Compare returns P(Z > z) for the hypothesis that dist1 tends to exceed dist2.
//
// On invalid input the result is NaN and the error wraps core.ErrInvalidInput.
// When one sample wins every paired draw the error wraps
// core.ErrDegenerateVariance and the result is the limiting sentinel
// (0 if dist1 always won, 1 if it always lost).
func (c *BootstrapComparator) Compare(ctx context.Context, dist1, dist2 stats.Sample, n stats.SimulationCount) (stats.TestResult, error) {
	cmp, err := c.Run(ctx, dist1, dist2, n)
	if cmp == nil {
		return stats.TestResult(math.NaN()), err
	}
	return cmp.PValue, err
}

// CompareDefault is Compare with DefaultSimulations draws
func (c *BootstrapComparator) CompareDefault(ctx context.Context, dist1, dist2 stats.Sample) (stats.TestResult, error) {
	return c.Compare(ctx, dist1, dist2, stats.DefaultSimulations)
}

// Run performs the comparison and returns the full record.
// A degenerate run returns the record (Degenerate set) together with the error;
// invalid input and cancellation return a nil record.
func (c *BootstrapComparator) Run(ctx context.Context, dist1, dist2 stats.Sample, n stats.SimulationCount) (*stats.Comparison, error) {
	if err := dist1.Validate("dist_1"); err != nil {
		return nil, err
	}
	if err := dist2.Validate("dist_2"); err != nil {
		return nil, err
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	chunks := planChunks(c.rng, int(n), c.workers)
	c.mu.Unlock()

	c.logger.Debug("resampling n=%d |dist_1|=%d |dist_2|=%d chunks=%d workers=%d",
		n, len(dist1), len(dist2), len(chunks), c.workers)

	out, err := tally(ctx, chunks, c.workers, dist1, dist2, int(n))
	if err != nil {
		return nil, err
	}

	return evaluate(out, n)
}

// evaluate turns tallied outcomes into the z-test result
func evaluate(out *outcomes, n stats.SimulationCount) (*stats.Comparison, error) {
	e1, e2 := out.seq1.Estimate(), out.seq2.Estimate()
	pooled, z := twoProportionZ(e1, e2)

	cmp := &stats.Comparison{
		Simulations: n,
		Dist1:       e1,
		Dist2:       e2,
		Ties:        out.ties,
		PooledP:     pooled,
		ZStatistic:  z,
	}

	if !isDegenerate(e1, pooled, z) {
		p := upperTail(z)
		if !math.IsNaN(p) {
			cmp.PValue = stats.TestResult(p)
			return cmp, nil
		}
	}

	cmp.Degenerate = true
	cmp.PValue = degenerateSentinel(e1)
	return cmp, core.NewDegenerateVarianceError(e1.P(), pooled)
}
