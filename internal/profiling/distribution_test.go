package profiling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainstats "bootcompare/domain/stats"
)

func TestProfile(t *testing.T) {
	da := NewDistributionAnalyzer()

	profile, err := da.Profile(domainstats.Sample{10, 11, 12, 10, 11, 12, 10, 11})
	require.NoError(t, err)

	assert.Equal(t, 8, profile.Count)
	assert.Equal(t, 3, profile.Distinct)
	assert.InDelta(t, 10.875, profile.Mean, 1e-9)
	assert.Equal(t, 10.0, profile.Min)
	assert.Equal(t, 12.0, profile.Max)
	assert.Equal(t, 11.0, profile.Median)
	assert.LessOrEqual(t, profile.Q25, profile.Median)
	assert.GreaterOrEqual(t, profile.Q75, profile.Median)
	assert.Greater(t, profile.StdDev, 0.0)
}

func TestProfileSingleValue(t *testing.T) {
	profile, err := NewDistributionAnalyzer().Profile(domainstats.Sample{100})
	require.NoError(t, err)

	assert.Equal(t, 1, profile.Count)
	assert.Equal(t, 1, profile.Distinct)
	assert.Equal(t, 100.0, profile.Mean)
	assert.Equal(t, 0.0, profile.StdDev)
}

func TestProfileEmpty(t *testing.T) {
	_, err := NewDistributionAnalyzer().Profile(domainstats.Sample{})
	assert.Error(t, err)
}
