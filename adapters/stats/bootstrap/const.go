package bootstrap

// const.go
//
// Tuning knobs for the paired bootstrap. None of these change the statistic,
// only how the work is split.

const (
	// MIN_CHUNK_SIZE: smallest slot range handed to a worker. Below this the
	// goroutine and PCG setup outweigh the draws themselves.
	MIN_CHUNK_SIZE = 2048

	// MAX_WORKERS caps WithWorkers.
	MAX_WORKERS = 64
)
