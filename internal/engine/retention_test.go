package engine

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateRetentionNeverReviewed(t *testing.T) {
	r, err := EstimateRetention(nil, 0.5, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1.0, r)
}

func TestEstimateRetentionRejectsInvalidMastery(t *testing.T) {
	now := time.Now()
	last := now.Add(-time.Hour)

	for _, mastery := range []float64{-0.1, 1.1, math.NaN()} {
		_, err := EstimateRetention(&last, mastery, now)
		require.Error(t, err, "mastery %v", mastery)

		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	}
}

func TestEstimateRetentionZeroElapsed(t *testing.T) {
	now := time.Now()
	r, err := EstimateRetention(&now, 0.3, now)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r, 1e-9)
}

func TestEstimateRetentionKnownValue(t *testing.T) {
	// Zero mastery gives a 24h memory strength, so one day out the
	// retention is exactly e^-1.
	now := time.Now()
	last := now.Add(-24 * time.Hour)

	r, err := EstimateRetention(&last, 0.0, now)
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(-1), r, 1e-9)
}

func TestEstimateRetentionDecaysOverTime(t *testing.T) {
	now := time.Now()
	prev := 1.1
	for _, hours := range []float64{1, 12, 24, 72, 168, 720} {
		last := now.Add(-time.Duration(hours * float64(time.Hour)))
		r, err := EstimateRetention(&last, 0.5, now)
		require.NoError(t, err)

		assert.Less(t, r, prev, "retention after %vh", hours)
		assert.GreaterOrEqual(t, r, 0.0)
		prev = r
	}
}

func TestEstimateRetentionHigherMasteryDecaysSlower(t *testing.T) {
	now := time.Now()
	last := now.Add(-72 * time.Hour)

	low, err := EstimateRetention(&last, 0.1, now)
	require.NoError(t, err)
	high, err := EstimateRetention(&last, 0.9, now)
	require.NoError(t, err)

	assert.Greater(t, high, low)
}

func TestEstimateRetentionFutureReviewClamps(t *testing.T) {
	// A clock skew putting the last review in the future reads as fresh
	now := time.Now()
	last := now.Add(time.Hour)

	r, err := EstimateRetention(&last, 0.5, now)
	require.NoError(t, err)
	assert.Equal(t, 1.0, r)
}

func TestProjectRetention(t *testing.T) {
	r, err := ProjectRetention(0.5, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r, 1e-9)

	prev := 1.1
	for _, days := range ProjectionOffsetsDays {
		r, err := ProjectRetention(0.5, days)
		require.NoError(t, err)
		assert.LessOrEqual(t, r, prev, "day %d", days)
		prev = r
	}

	_, err = ProjectRetention(1.5, 7)
	require.Error(t, err)
}
