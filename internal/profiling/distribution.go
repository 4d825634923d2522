package profiling

import (
	"github.com/montanaflynn/stats"

	domainstats "bootcompare/domain/stats"
)

// DistributionAnalyzer summarizes input samples
type DistributionAnalyzer struct{}

// NewDistributionAnalyzer creates a new distribution analyzer
func NewDistributionAnalyzer() *DistributionAnalyzer {
	return &DistributionAnalyzer{}
}

// Profile computes count, spread and quartiles for one sample
func (da *DistributionAnalyzer) Profile(sample domainstats.Sample) (domainstats.SampleProfile, error) {
	profile := domainstats.SampleProfile{Count: len(sample)}
	data := stats.Float64Data(sample)

	mean, err := stats.Mean(data)
	if err != nil {
		return profile, err
	}

	// Population standard deviation: the bootstrap resamples the sample as if it were the population
	stdDev, err := stats.StandardDeviationPopulation(data)
	if err != nil {
		return profile, err
	}

	min, err := stats.Min(data)
	if err != nil {
		return profile, err
	}

	max, err := stats.Max(data)
	if err != nil {
		return profile, err
	}

	median, err := stats.Median(data)
	if err != nil {
		return profile, err
	}

	q25, err := stats.PercentileNearestRank(data, 25)
	if err != nil {
		return profile, err
	}

	q75, err := stats.PercentileNearestRank(data, 75)
	if err != nil {
		return profile, err
	}

	profile.Distinct = countDistinct(sample)
	profile.Mean = mean
	profile.StdDev = stdDev
	profile.Min = min
	profile.Max = max
	profile.Median = median
	profile.Q25 = q25
	profile.Q75 = q75

	return profile, nil
}

// countDistinct counts unique values; few distinct values means many ties
func countDistinct(sample domainstats.Sample) int {
	seen := make(map[float64]struct{}, len(sample))
	for _, v := range sample {
		seen[v] = struct{}{}
	}
	return len(seen)
}
