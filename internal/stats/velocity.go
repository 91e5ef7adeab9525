package stats

import (
	"math"

	"CotLens/internal/domain/models"
)

const (
	// DefaultSmoothingWindow is four weeks.
	DefaultSmoothingWindow = 4

	// velocityChartPoints is how many trailing derivative points are kept
	// for charting.
	velocityChartPoints = 20
)

// PositioningVelocity computes the first derivative (velocity) and second
// derivative (acceleration) of a smoothed positioning series, oldest-first.
// Positive velocity with positive acceleration reads as strong trend
// continuation; negative velocity with positive acceleration as a bearish
// trend losing steam.
func PositioningVelocity(values []float64, smoothing int) models.VelocityResult {
	if smoothing <= 0 {
		smoothing = DefaultSmoothingWindow
	}
	if len(values) < 3 {
		return models.VelocityResult{
			Trend:              labelInsufficient,
			MomentumSignal:     "Neutral",
			VelocitySeries:     []float64{},
			AccelerationSeries: []float64{},
		}
	}

	smoothed := values
	if len(values) >= smoothing {
		smoothed = movingAverage(values, smoothing)
	}

	velocity := diff(smoothed)
	acceleration := []float64{0}
	if len(velocity) > 1 {
		acceleration = diff(velocity)
	}

	v := math.Round(velocity[len(velocity)-1])
	a := math.Round(acceleration[len(acceleration)-1])
	trend, signal := trendLabels(v, a)

	return models.VelocityResult{
		Velocity:           v,
		Acceleration:       a,
		Trend:              trend,
		MomentumSignal:     signal,
		VelocitySeries:     tail(velocity, velocityChartPoints),
		AccelerationSeries: tail(acceleration, velocityChartPoints),
	}
}

func trendLabels(velocity, acceleration float64) (string, string) {
	switch {
	case velocity > 0 && acceleration > 0:
		return "Accelerating Buildup", "Strong Bullish"
	case velocity > 0 && acceleration < 0:
		return "Decelerating Buildup", "Weakening Bullish"
	case velocity > 0:
		return "Steady Buildup", "Bullish"
	case velocity < 0 && acceleration < 0:
		return "Accelerating Selloff", "Strong Bearish"
	case velocity < 0 && acceleration > 0:
		return "Decelerating Selloff", "Potential Reversal"
	case velocity < 0:
		return "Steady Selloff", "Bearish"
	default:
		return "Stable", "Neutral"
	}
}

// movingAverage applies a centered uniform filter, clamping the window at
// the edges so output length matches input length.
func movingAverage(xs []float64, window int) []float64 {
	out := make([]float64, len(xs))
	half := window / 2
	for i := range xs {
		lo := max(0, i-half)
		hi := min(len(xs), i+window-half)
		sum := 0.0
		for j := lo; j < hi; j++ {
			sum += xs[j]
		}
		out[i] = sum / float64(hi-lo)
	}
	return out
}

func diff(xs []float64) []float64 {
	out := make([]float64, len(xs)-1)
	for i := 1; i < len(xs); i++ {
		out[i-1] = xs[i] - xs[i-1]
	}
	return out
}

func tail(xs []float64, n int) []float64 {
	if len(xs) <= n {
		return xs
	}
	return xs[len(xs)-n:]
}
