package stats

import (
	"math"

	"bootcompare/domain/core"
)

// ============================================================================
// INPUT PRIMITIVES
// ============================================================================

// DefaultSimulations is the resampling count used when the caller does not pick one
const DefaultSimulations SimulationCount = 10000

// Sample is an empirical distribution: ordered, non-empty, duplicates allowed
type Sample []float64

// Validate rejects empty samples and values that cannot be ordered (NaN, ±Inf)
func (s Sample) Validate(name string) error {
	if len(s) == 0 {
		return core.NewEmptySampleError(name)
	}
	for i, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return core.NewInvalidNumberError(name, i, v)
		}
	}
	return nil
}

// SimulationCount controls how many paired draws are compared
type SimulationCount int

// Validate rejects counts below one
func (n SimulationCount) Validate() error {
	if n < 1 {
		return core.NewSimulationCountError(int(n))
	}
	return nil
}

// ============================================================================
// DERIVED VALUES
// ============================================================================

// BinaryOutcomeSequence holds one {0,1} outcome per paired draw
type BinaryOutcomeSequence []uint8

// Successes counts the ones in the sequence
func (b BinaryOutcomeSequence) Successes() int {
	n := 0
	for _, v := range b {
		n += int(v)
	}
	return n
}

// Estimate fits a binomial proportion to the sequence
func (b BinaryOutcomeSequence) Estimate() ProportionEstimate {
	return ProportionEstimate{Successes: b.Successes(), Trials: len(b)}
}

// ProportionEstimate is a binomial proportion: Successes out of Trials
type ProportionEstimate struct {
	Successes int `json:"successes"`
	Trials    int `json:"trials"`
}

// P returns Successes/Trials, or NaN with no trials
func (p ProportionEstimate) P() float64 {
	if p.Trials == 0 {
		return math.NaN()
	}
	return float64(p.Successes) / float64(p.Trials)
}

// Unanimous reports whether every trial had the same outcome
func (p ProportionEstimate) Unanimous() bool {
	return p.Successes == 0 || p.Successes == p.Trials
}

// TestResult is a one-sided p-value in [0,1]
type TestResult float64

// ============================================================================
// RUN RECORD
// ============================================================================

// Comparison is the full record of one bootstrap comparison.
// Dist1 counts wins plus ties, Dist2 counts strict wins of the second sample.
type Comparison struct {
	Simulations SimulationCount    `json:"simulations"`
	Dist1       ProportionEstimate `json:"dist_1"`
	Dist2       ProportionEstimate `json:"dist_2"`
	Ties        int                `json:"ties"`
	PooledP     float64            `json:"pooled_p"`
	ZStatistic  float64            `json:"z_statistic"`
	PValue      TestResult         `json:"p_value"`
	Degenerate  bool               `json:"degenerate"`
}

// StrictWins1 is the number of draws where dist_1 was strictly greater
func (c *Comparison) StrictWins1() int {
	return c.Dist1.Successes - c.Ties
}

// SampleProfile summarizes one input sample
type SampleProfile struct {
	Count    int     `json:"count"`
	Distinct int     `json:"distinct"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Min      float64 `json:"min"`
	Q25      float64 `json:"q25"`
	Median   float64 `json:"median"`
	Q75      float64 `json:"q75"`
	Max      float64 `json:"max"`
}
