package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRollingZScoreKnownDistribution(t *testing.T) {
	// Mean 0, population std 2 over the trailing window.
	history := []float64{-2, 2, -2, 2, -2, 2, -2, 2}

	res := RollingZScore(4, history, 52)

	assert.Equal(t, 2.0, res.ZScore)
	assert.Equal(t, "Bullish", res.Interpretation)
	assert.True(t, res.IsExtreme)
	assert.Equal(t, 0.0, res.Mean)
	assert.Equal(t, 2.0, res.Std)
	assert.InDelta(t, 97.7, res.Percentile, 0.11)
}

func TestRollingZScoreUsesTrailingWindowOnly(t *testing.T) {
	// Old values far from the window must not shift the mean.
	history := append([]float64{1e9, 1e9, 1e9}, []float64{-1, 1, -1, 1}...)

	res := RollingZScore(0, history, 4)

	assert.Equal(t, 0.0, res.ZScore)
	assert.Equal(t, "Neutral", res.Interpretation)
}

func TestRollingZScoreInsufficientData(t *testing.T) {
	res := RollingZScore(10, []float64{1}, 52)

	assert.Equal(t, "Insufficient data", res.Interpretation)
	assert.Equal(t, 50.0, res.Percentile)
	assert.Equal(t, 0.0, res.ZScore)
}

func TestRollingZScoreNoVariance(t *testing.T) {
	res := RollingZScore(7, []float64{7, 7, 7, 7}, 52)

	assert.Equal(t, "No variance in data", res.Interpretation)
	assert.Equal(t, 50.0, res.Percentile)
	assert.False(t, res.IsExtreme)
}

func TestRollingZScoreBuckets(t *testing.T) {
	// std=1, mean=0 window.
	history := []float64{-1, 1, -1, 1, -1, 1}

	cases := []struct {
		current float64
		want    string
	}{
		{3, "Extremely Bullish"},
		{1.5, "Bullish"},
		{0, "Neutral"},
		{-1.5, "Bearish"},
		{-3, "Extremely Bearish"},
	}
	for _, c := range cases {
		res := RollingZScore(c.current, history, 52)
		assert.Equal(t, c.want, res.Interpretation, "current=%v", c.current)
	}
}

func TestPositioningVelocityTrendUp(t *testing.T) {
	// Steadily accelerating buildup.
	values := []float64{0, 1, 3, 6, 10, 15, 21, 28, 36, 45}

	res := PositioningVelocity(values, 1)

	assert.Greater(t, res.Velocity, 0.0)
	assert.Greater(t, res.Acceleration, 0.0)
	assert.Equal(t, "Accelerating Buildup", res.Trend)
	assert.Equal(t, "Strong Bullish", res.MomentumSignal)
	assert.Len(t, res.VelocitySeries, len(values)-1)
	assert.Len(t, res.AccelerationSeries, len(values)-2)
}

func TestPositioningVelocityDeceleratingSelloff(t *testing.T) {
	// Falling but flattening out.
	values := []float64{100, 80, 65, 55, 50, 48}

	res := PositioningVelocity(values, 1)

	assert.Less(t, res.Velocity, 0.0)
	assert.Greater(t, res.Acceleration, 0.0)
	assert.Equal(t, "Decelerating Selloff", res.Trend)
	assert.Equal(t, "Potential Reversal", res.MomentumSignal)
}

func TestPositioningVelocityInsufficientData(t *testing.T) {
	res := PositioningVelocity([]float64{1, 2}, 4)

	assert.Equal(t, "Insufficient data", res.Trend)
	assert.Equal(t, "Neutral", res.MomentumSignal)
	assert.Empty(t, res.VelocitySeries)
}

func TestPositioningVelocityChartSeriesCapped(t *testing.T) {
	values := make([]float64, 60)
	for i := range values {
		values[i] = float64(i * i)
	}

	res := PositioningVelocity(values, 1)

	assert.Len(t, res.VelocitySeries, velocityChartPoints)
	assert.Len(t, res.AccelerationSeries, velocityChartPoints)
}
