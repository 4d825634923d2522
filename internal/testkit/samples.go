package testkit

import (
	"math/rand/v2"

	"bootcompare/domain/stats"
)

// SampleGeneratorConfig configures the synthetic sample generator
type SampleGeneratorConfig struct {
	Seed uint64 `json:"seed"`
}

// DefaultSampleConfig returns a fixed seed so fixtures are reproducible
func DefaultSampleConfig() SampleGeneratorConfig {
	return SampleGeneratorConfig{Seed: 42}
}

// SampleGenerator produces synthetic empirical distributions for tests and demos
type SampleGenerator struct {
	config SampleGeneratorConfig
	rng    *rand.Rand
}

// NewSampleGenerator creates a new sample generator
func NewSampleGenerator(config SampleGeneratorConfig) *SampleGenerator {
	return &SampleGenerator{
		config: config,
		rng:    rand.New(rand.NewPCG(config.Seed, config.Seed+1)),
	}
}

// Uniform draws n values from [0,1)
func (g *SampleGenerator) Uniform(n int) stats.Sample {
	out := make(stats.Sample, n)
	for i := range out {
		out[i] = g.rng.Float64()
	}
	return out
}

// Normal draws n values from N(mu, sigma^2)
func (g *SampleGenerator) Normal(n int, mu, sigma float64) stats.Sample {
	out := make(stats.Sample, n)
	for i := range out {
		out[i] = mu + sigma*g.rng.NormFloat64()
	}
	return out
}

// Choice draws n values from values with replacement
func (g *SampleGenerator) Choice(values []float64, n int) stats.Sample {
	out := make(stats.Sample, n)
	for i := range out {
		out[i] = values[g.rng.IntN(len(values))]
	}
	return out
}

// Shift returns a copy of sample with delta added to every value
func Shift(sample stats.Sample, delta float64) stats.Sample {
	out := make(stats.Sample, len(sample))
	for i, v := range sample {
		out[i] = v + delta
	}
	return out
}

// Range returns lo, lo+1, ..., hi
func Range(lo, hi int) stats.Sample {
	if hi < lo {
		return stats.Sample{}
	}
	out := make(stats.Sample, 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		out = append(out, float64(v))
	}
	return out
}
