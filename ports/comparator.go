package ports

import (
	"context"

	"bootcompare/domain/stats"
)

// Comparator tests whether one empirical distribution tends to exceed another
type Comparator interface {
	// Compare returns the one-sided p-value for "dist1 tends to exceed dist2"
	Compare(ctx context.Context, dist1, dist2 stats.Sample, n stats.SimulationCount) (stats.TestResult, error)

	// Run returns the full comparison record behind the p-value
	Run(ctx context.Context, dist1, dist2 stats.Sample, n stats.SimulationCount) (*stats.Comparison, error)
}

// SampleProfiler summarizes an input sample for reporting
type SampleProfiler interface {
	Profile(sample stats.Sample) (stats.SampleProfile, error)
}
