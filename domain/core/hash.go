package core

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// Short returns the first 12 hex characters, enough to tell runs apart in logs
func (h Hash) Short() string {
	if len(h) <= 12 {
		return string(h)
	}
	return string(h[:12])
}

// InputFingerprint identifies the exact inputs of a comparison run
type InputFingerprint Hash

func (h InputFingerprint) String() string { return Hash(h).String() }

// ComputeInputFingerprint hashes both samples, the simulation count and the seed.
// Samples are length-prefixed so [1,2]+[3] and [1]+[2,3] differ.
func ComputeInputFingerprint(dist1, dist2 []float64, simulations int, seed uint64) InputFingerprint {
	buf := make([]byte, 0, 8*(len(dist1)+len(dist2)+4))
	buf = appendSample(buf, dist1)
	buf = appendSample(buf, dist2)
	buf = binary.BigEndian.AppendUint64(buf, uint64(simulations))
	buf = binary.BigEndian.AppendUint64(buf, seed)
	return InputFingerprint(NewHash(buf))
}

func appendSample(buf []byte, sample []float64) []byte {
	buf = binary.BigEndian.AppendUint64(buf, uint64(len(sample)))
	for _, v := range sample {
		buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(v))
	}
	return buf
}
