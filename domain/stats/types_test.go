package stats

import (
	"math"
	"testing"

	"bootcompare/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleValidate(t *testing.T) {
	require.NoError(t, Sample{1, 1, 2}.Validate("dist_1"))

	err := Sample{}.Validate("dist_1")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrEmptySample)
	assert.Contains(t, err.Error(), "dist_1")

	err = Sample{1, math.NaN()}.Validate("dist_2")
	assert.ErrorIs(t, err, core.ErrInvalidNumber)
	assert.True(t, core.IsInvalidInputError(err))

	assert.ErrorIs(t, Sample{math.Inf(-1)}.Validate("dist_2"), core.ErrInvalidNumber)
}

func TestSimulationCountValidate(t *testing.T) {
	assert.NoError(t, SimulationCount(1).Validate())
	assert.NoError(t, DefaultSimulations.Validate())
	assert.ErrorIs(t, SimulationCount(0).Validate(), core.ErrSimulations)
	assert.ErrorIs(t, SimulationCount(-5).Validate(), core.ErrInvalidInput)
}

func TestBinaryOutcomeSequenceEstimate(t *testing.T) {
	seq := BinaryOutcomeSequence{1, 0, 1, 1}
	est := seq.Estimate()

	assert.Equal(t, 3, est.Successes)
	assert.Equal(t, 4, est.Trials)
	assert.InDelta(t, 0.75, est.P(), 1e-12)
	assert.False(t, est.Unanimous())

	assert.True(t, BinaryOutcomeSequence{1, 1}.Estimate().Unanimous())
	assert.True(t, BinaryOutcomeSequence{0}.Estimate().Unanimous())
	assert.True(t, math.IsNaN(ProportionEstimate{}.P()))
}

func TestComparisonStrictWins(t *testing.T) {
	c := Comparison{Dist1: ProportionEstimate{Successes: 7, Trials: 10}, Ties: 2}
	assert.Equal(t, 5, c.StrictWins1())
}
