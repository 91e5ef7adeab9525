package stats

import (
	"math"

	"CotLens/internal/domain/models"
)

// DefaultZScoreWindow is one year of weekly reports.
const DefaultZScoreWindow = 52

// RollingZScore measures how many standard deviations the current position
// sits from the mean of its trailing window. The history must be ordered
// oldest-first; the window is the trailing `window` values. Degenerate
// inputs degrade to a neutral sentinel.
func RollingZScore(current float64, history []float64, window int) models.ZScoreResult {
	if window <= 0 {
		window = DefaultZScoreWindow
	}
	if len(history) < 2 {
		return models.ZScoreResult{Interpretation: labelInsufficient, Percentile: 50}
	}

	recent := history
	if len(history) >= window {
		recent = history[len(history)-window:]
	}

	mean, std := meanStd(recent)
	if std == 0 {
		return models.ZScoreResult{
			Interpretation: "No variance in data",
			Percentile:     50,
			Mean:           mean,
		}
	}

	z := math.Round((current-mean)/std*100) / 100
	return models.ZScoreResult{
		ZScore:         z,
		Interpretation: zScoreLabel(z),
		Percentile:     round1(normCDF(z) * 100),
		IsExtreme:      math.Abs(z) >= 2,
		Mean:           math.Round(mean),
		Std:            math.Round(std),
	}
}

func zScoreLabel(z float64) string {
	switch {
	case z > 2:
		return "Extremely Bullish"
	case z > 1:
		return "Bullish"
	case z > -1:
		return "Neutral"
	case z > -2:
		return "Bearish"
	default:
		return "Extremely Bearish"
	}
}

// normCDF is the standard normal cumulative distribution function.
func normCDF(z float64) float64 {
	return 0.5 * (1 + math.Erf(z/math.Sqrt2))
}

// meanStd computes mean and population standard deviation.
func meanStd(xs []float64) (float64, float64) {
	n := float64(len(xs))
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	mean := sum / n

	sq := 0.0
	for _, x := range xs {
		d := x - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / n)
}
