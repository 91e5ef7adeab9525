package stats

import (
	"iter"
	"math"
	"sort"

	"CotLens/internal/domain/models"
)

const (
	// DefaultLookbackWeeks is three years of weekly reports.
	DefaultLookbackWeeks = 156

	// minSampleSize is the smallest window a rank is computed over.
	minSampleSize = 10

	labelInsufficient = "Insufficient data"
)

// RankCurrent ranks the most recent observation against its trailing window.
// The series must be ordered newest-first. Degenerate inputs (short series,
// too few numeric values) return a neutral sentinel instead of an error so a
// dashboard always has something to render.
//
// Ties are not counted as "below": a value equal to several others ranks at
// the count of strictly smaller values, not the average rank. Statistically
// crude, but displayed values depend on it; do not change.
func RankCurrent(series []models.Observation, lookbackWeeks int) models.PercentileResult {
	if lookbackWeeks <= 0 {
		lookbackWeeks = DefaultLookbackWeeks
	}

	window := series[:min(lookbackWeeks, len(series))]
	vals := validValues(window)

	if len(series) < minSampleSize || len(vals) < minSampleSize {
		res := models.PercentileResult{
			Percentile:  50,
			SampleCount: len(vals),
			Label:       labelInsufficient,
		}
		if len(vals) > 0 {
			res.CurrentValue = roundInt(vals[0])
		}
		return res
	}

	current := vals[0]
	below := 0
	for _, v := range vals {
		if v < current {
			below++
		}
	}

	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)

	pct := round1(float64(below) / float64(len(vals)) * 100)
	return models.PercentileResult{
		CurrentValue: roundInt(current),
		Percentile:   pct,
		Min:          roundInt(sorted[0]),
		Median:       roundInt(median(sorted)),
		Max:          roundInt(sorted[len(sorted)-1]),
		SampleCount:  len(vals),
		Label:        RankLabel(pct),
	}
}

// History yields one HistoryPoint per observation that has a sufficient
// trailing window, oldest-first for chronological charting. The window for
// index i is series[i:i+lookbackWeeks]; points near the oldest edge use a
// shrinking window rather than requiring a full lookback. The sequence is
// finite and restartable.
func History(series []models.Observation, lookbackWeeks int) iter.Seq[models.HistoryPoint] {
	if lookbackWeeks <= 0 {
		lookbackWeeks = DefaultLookbackWeeks
	}
	return func(yield func(models.HistoryPoint) bool) {
		for i := len(series) - 1; i >= 0; i-- {
			current := series[i].Value
			if !isNumeric(current) {
				continue
			}
			vals := validValues(series[i:min(i+lookbackWeeks, len(series))])
			if len(vals) < minSampleSize {
				continue
			}
			below := 0
			for _, v := range vals {
				if v < current {
					below++
				}
			}
			p := models.HistoryPoint{
				Date:       series[i].Date,
				Percentile: round1(float64(below) / float64(len(vals)) * 100),
				Value:      roundInt(current),
			}
			if !yield(p) {
				return
			}
		}
	}
}

// HistorySlice materializes History for transport layers.
func HistorySlice(series []models.Observation, lookbackWeeks int) []models.HistoryPoint {
	out := make([]models.HistoryPoint, 0, len(series))
	for p := range History(series, lookbackWeeks) {
		out = append(out, p)
	}
	return out
}

// RankLabel maps a percentile to its qualitative bucket. Lower edges are
// inclusive, upper edges exclusive, except the top bucket which includes 100.
func RankLabel(pct float64) string {
	switch {
	case pct < 10:
		return "Extremely Low"
	case pct < 25:
		return "Low"
	case pct < 75:
		return "Neutral"
	case pct < 90:
		return "High"
	default:
		return "Extremely High"
	}
}

func validValues(window []models.Observation) []float64 {
	out := make([]float64, 0, len(window))
	for _, o := range window {
		if isNumeric(o.Value) {
			out = append(out, o.Value)
		}
	}
	return out
}

func isNumeric(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// median expects a sorted, non-empty slice; even-sized inputs take the
// midpoint average.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func roundInt(v float64) int64 {
	return int64(math.Round(v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
