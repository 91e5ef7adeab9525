package models

import "time"

// Observation is a single dated value of a positioning series.
// Series passed between layers are ordered newest-first unless noted.
type Observation struct {
	Date  time.Time
	Value float64
}

// WeeklyRow is one parsed COT report row with net positions per trader
// category, keyed by category label ("commercial", "managed_money", ...).
type WeeklyRow struct {
	Date         time.Time
	Nets         map[string]int64
	OpenInterest int64
}

// PercentileResult is a point-in-time percentile rank of the latest
// observation against its trailing window. Produced fresh per query.
type PercentileResult struct {
	CurrentValue int64   `json:"current_value"`
	Percentile   float64 `json:"percentile"`
	Min          int64   `json:"min"`
	Median       int64   `json:"median"`
	Max          int64   `json:"max"`
	SampleCount  int     `json:"sample_count"`
	Label        string  `json:"label"`
}

// HistoryPoint is one charted percentile observation, emitted oldest-first.
type HistoryPoint struct {
	Date       time.Time `json:"date"`
	Percentile float64   `json:"percentile"`
	Value      int64     `json:"value"`
}

// ZScoreResult reports how many standard deviations the current position
// sits from its rolling mean.
type ZScoreResult struct {
	ZScore         float64 `json:"z_score"`
	Interpretation string  `json:"interpretation"`
	Percentile     float64 `json:"percentile"`
	IsExtreme      bool    `json:"is_extreme"`
	Mean           float64 `json:"mean"`
	Std            float64 `json:"std"`
}

// VelocityResult reports first and second derivatives of a smoothed
// positioning series plus short trailing series for charting.
type VelocityResult struct {
	Velocity           float64   `json:"velocity"`
	Acceleration       float64   `json:"acceleration"`
	Trend              string    `json:"trend"`
	MomentumSignal     string    `json:"momentum_signal"`
	VelocitySeries     []float64 `json:"velocity_series"`
	AccelerationSeries []float64 `json:"acceleration_series"`
}

// CategoryPositions is one trader category of a processed latest report.
type CategoryPositions struct {
	Label   string  `json:"label"`
	Long    int64   `json:"long"`
	Short   int64   `json:"short"`
	Net     int64   `json:"net"`
	Change  int64   `json:"change"`
	PctOfOI float64 `json:"pct_of_oi"`
}

// LatestReport is the most recent COT report processed for summary cards.
type LatestReport struct {
	ReportDate   string              `json:"report_date"`
	OpenInterest int64               `json:"open_interest"`
	OIChange     int64               `json:"oi_change"`
	Categories   []CategoryPositions `json:"categories"`
}

// ChartPoint is one week of net positions across all trader categories,
// oldest-first, shaped for the dashboard chart.
type ChartPoint struct {
	Date string           `json:"date"`
	Week int              `json:"week"`
	Nets map[string]int64 `json:"nets"`
}
