package bootstrap

import (
	"context"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"bootcompare/domain/stats"
)

// chunk is a contiguous slot range of both outcome sequences with its own stream
type chunk struct {
	lo, hi int
	rng    *rand.Rand
}

// outcomes holds the paired binary sequences produced by one run
type outcomes struct {
	seq1 stats.BinaryOutcomeSequence
	seq2 stats.BinaryOutcomeSequence
	ties int
}

// planChunks splits n slots into at most workers chunks of at least MIN_CHUNK_SIZE.
// Streams are derived from root in slot order, so the plan is fixed by the
// root seed, n and workers.
func planChunks(root *rand.Rand, n, workers int) []chunk {
	if workers < 1 {
		workers = 1
	}
	size := (n + workers - 1) / workers
	if size < MIN_CHUNK_SIZE {
		size = MIN_CHUNK_SIZE
	}

	chunks := make([]chunk, 0, (n+size-1)/size)
	for lo := 0; lo < n; lo += size {
		hi := min(lo+size, n)
		chunks = append(chunks, chunk{lo: lo, hi: hi, rng: newStream(root)})
	}
	return chunks
}

// tallyChunk resamples both distributions for c's slots and records the outcomes.
// A draw from dist2 must be strictly greater to count for dist2; ties go to dist1.
func tallyChunk(c chunk, dist1, dist2 stats.Sample, out *outcomes) int {
	width := c.hi - c.lo
	samples1 := make([]float64, width)
	samples2 := make([]float64, width)
	drawWithReplacement(c.rng, dist1, samples1)
	drawWithReplacement(c.rng, dist2, samples2)

	ties := 0
	for i := 0; i < width; i++ {
		slot := c.lo + i
		if samples2[i] > samples1[i] {
			out.seq1[slot] = 0
			out.seq2[slot] = 1
			continue
		}
		out.seq1[slot] = 1
		out.seq2[slot] = 0
		if samples2[i] == samples1[i] {
			ties++
		}
	}
	return ties
}

// tally runs every chunk on a bounded pool. Each chunk writes only its own
// slots and its own ties entry, so no locking is needed.
func tally(ctx context.Context, chunks []chunk, workers int, dist1, dist2 stats.Sample, n int) (*outcomes, error) {
	out := &outcomes{
		seq1: make(stats.BinaryOutcomeSequence, n),
		seq2: make(stats.BinaryOutcomeSequence, n),
	}
	ties := make([]int, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for k := range chunks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ties[k] = tallyChunk(chunks[k], dist1, dist2, out)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, t := range ties {
		out.ties += t
	}
	return out, nil
}
