package bootstrap

import (
	"math/rand/v2"

	"bootcompare/domain/stats"
)

// drawWithReplacement fills dst with uniform draws from sample
func drawWithReplacement(rng *rand.Rand, sample stats.Sample, dst []float64) {
	n := len(sample)
	for i := range dst {
		dst[i] = sample[rng.IntN(n)]
	}
}

// newStream derives an independent PCG stream from parent
func newStream(parent *rand.Rand) *rand.Rand {
	return rand.New(rand.NewPCG(parent.Uint64(), parent.Uint64()))
}
