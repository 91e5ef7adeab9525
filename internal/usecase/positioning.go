package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"CotLens/internal/domain/models"
	domrepo "CotLens/internal/domain/repository"
	"CotLens/internal/service/cache"
	"CotLens/internal/stats"
	"CotLens/pkg/logger"
)

// ErrUnknownCategory is returned when a request names a trader category the
// report type does not carry.
var ErrUnknownCategory = errors.New("unknown category")

const defaultSeriesTTL = 24 * time.Hour

// PositioningUseCase serves all positioning analytics. Weekly series are
// fetched once per symbol and report type and held in the cache for the TTL;
// COT reports only change once a week so a long TTL is safe.
type PositioningUseCase struct {
	provider domrepo.ReportProvider
	cache    *cache.TTLCache
	metrics  domrepo.Metrics
	log      *logger.Logger
	ttl      time.Duration
}

// PositioningOption configures PositioningUseCase.
type PositioningOption func(*PositioningUseCase)

// WithSeriesTTL overrides the series cache TTL.
func WithSeriesTTL(ttl time.Duration) PositioningOption {
	return func(uc *PositioningUseCase) {
		if ttl > 0 {
			uc.ttl = ttl
		}
	}
}

func NewPositioningUseCase(provider domrepo.ReportProvider, c *cache.TTLCache, m domrepo.Metrics, log *logger.Logger, opts ...PositioningOption) *PositioningUseCase {
	uc := &PositioningUseCase{
		provider: provider,
		cache:    c,
		metrics:  m,
		log:      log,
		ttl:      defaultSeriesTTL,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Positioning ranks the newest net position for a category against its
// trailing window.
func (uc *PositioningUseCase) Positioning(ctx context.Context, req models.PositioningRequest) (*models.PercentileResult, error) {
	series, category, err := uc.categorySeries(ctx, req.Symbol, req.Report, req.Category)
	if err != nil {
		return nil, err
	}

	obs := observationsNewestFirst(series, category)
	res := stats.RankCurrent(obs, req.Lookback)
	return &res, nil
}

// History charts the percentile rank over time, oldest-first.
func (uc *PositioningUseCase) History(ctx context.Context, req models.HistoryRequest) ([]models.HistoryPoint, error) {
	series, category, err := uc.categorySeries(ctx, req.Symbol, req.Report, req.Category)
	if err != nil {
		return nil, err
	}

	obs := observationsNewestFirst(series, category)
	return stats.HistorySlice(obs, req.Lookback), nil
}

// ZScore measures the newest net position against its rolling distribution.
// The trailing window excludes the current value so an extreme print cannot
// dampen its own score.
func (uc *PositioningUseCase) ZScore(ctx context.Context, req models.ZScoreRequest) (*models.ZScoreResult, error) {
	series, category, err := uc.categorySeries(ctx, req.Symbol, req.Report, req.Category)
	if err != nil {
		return nil, err
	}

	values := netValues(series, category)
	if len(values) == 0 {
		res := stats.RollingZScore(0, nil, req.Window)
		return &res, nil
	}
	current := values[len(values)-1]
	res := stats.RollingZScore(current, values[:len(values)-1], req.Window)
	return &res, nil
}

// Velocity reports the first and second derivatives of the smoothed series.
func (uc *PositioningUseCase) Velocity(ctx context.Context, req models.VelocityRequest) (*models.VelocityResult, error) {
	series, category, err := uc.categorySeries(ctx, req.Symbol, req.Report, req.Category)
	if err != nil {
		return nil, err
	}

	res := stats.PositioningVelocity(netValues(series, category), req.Smoothing)
	return &res, nil
}

// Chart shapes the full weekly series for the dashboard's net-position chart.
func (uc *PositioningUseCase) Chart(ctx context.Context, req models.ChartRequest) ([]models.ChartPoint, error) {
	rt := domrepo.NormalizeReportType(req.Report)
	series, err := uc.series(ctx, req.Symbol, rt)
	if err != nil {
		return nil, err
	}

	points := make([]models.ChartPoint, len(series))
	for i, row := range series {
		points[i] = models.ChartPoint{
			Date: row.Date.Format("2006-01-02"),
			Week: i,
			Nets: row.Nets,
		}
	}
	return points, nil
}

// Latest returns the most recent processed legacy report for a symbol.
func (uc *PositioningUseCase) Latest(ctx context.Context, symbol string) (*models.LatestReport, error) {
	key := cache.Key("latest", symbol)
	if v, ok := uc.cache.Get(key); ok {
		uc.metrics.RecordCacheHit("latest")
		return v.(*models.LatestReport), nil
	}
	uc.metrics.RecordCacheMiss("latest")

	start := time.Now()
	report, err := uc.provider.LatestReport(ctx, symbol)
	if err != nil {
		uc.metrics.RecordError("fetch_latest")
		return nil, err
	}
	uc.metrics.RecordLatency("fetch_latest", time.Since(start).Seconds())

	uc.cache.Set(key, report, uc.ttl)
	return report, nil
}

// Symbols lists supported symbols for a report type.
func (uc *PositioningUseCase) Symbols(report string) []string {
	return uc.provider.Symbols(domrepo.NormalizeReportType(report))
}

// Categories lists trader category labels for a report type.
func (uc *PositioningUseCase) Categories(report string) []string {
	return uc.provider.Categories(domrepo.NormalizeReportType(report))
}

// Refresh re-fetches a symbol's series and replaces the cached copy. Used by
// the scheduled warmer so user requests rarely pay the upstream latency.
func (uc *PositioningUseCase) Refresh(ctx context.Context, symbol string, rt domrepo.ReportType) error {
	series, err := uc.fetchSeries(ctx, symbol, rt)
	if err != nil {
		return err
	}
	uc.cache.Set(cache.Key("series", symbol, string(rt)), series, uc.ttl)
	uc.cache.Delete(cache.Key("latest", symbol))
	return nil
}

// categorySeries resolves the category label and returns the cached series.
func (uc *PositioningUseCase) categorySeries(ctx context.Context, symbol, report, category string) ([]models.WeeklyRow, string, error) {
	rt := domrepo.NormalizeReportType(report)

	labels := uc.provider.Categories(rt)
	if category == "" {
		category = labels[0]
	} else if !containsString(labels, category) {
		return nil, "", fmt.Errorf("%w: %s (%s)", ErrUnknownCategory, category, rt)
	}

	series, err := uc.series(ctx, symbol, rt)
	if err != nil {
		return nil, "", err
	}
	return series, category, nil
}

func (uc *PositioningUseCase) series(ctx context.Context, symbol string, rt domrepo.ReportType) ([]models.WeeklyRow, error) {
	key := cache.Key("series", symbol, string(rt))
	if v, ok := uc.cache.Get(key); ok {
		uc.metrics.RecordCacheHit("series")
		return v.([]models.WeeklyRow), nil
	}
	uc.metrics.RecordCacheMiss("series")

	series, err := uc.fetchSeries(ctx, symbol, rt)
	if err != nil {
		return nil, err
	}
	uc.cache.Set(key, series, uc.ttl)
	return series, nil
}

func (uc *PositioningUseCase) fetchSeries(ctx context.Context, symbol string, rt domrepo.ReportType) ([]models.WeeklyRow, error) {
	start := time.Now()
	series, err := uc.provider.HistoricalSeries(ctx, symbol, rt)
	if err != nil {
		uc.metrics.RecordError("fetch_series")
		return nil, err
	}
	uc.metrics.RecordFetch(symbol, string(rt))
	uc.metrics.RecordLatency("fetch_series", time.Since(start).Seconds())
	uc.log.Info("series fetched",
		logger.String("symbol", symbol),
		logger.String("report_type", string(rt)),
		logger.Int("weeks", len(series)))
	return series, nil
}

// observationsNewestFirst flips an oldest-first weekly series into the
// newest-first observation order the rank engine expects.
func observationsNewestFirst(series []models.WeeklyRow, category string) []models.Observation {
	out := make([]models.Observation, len(series))
	for i, row := range series {
		out[len(series)-1-i] = models.Observation{
			Date:  row.Date,
			Value: float64(row.Nets[category]),
		}
	}
	return out
}

// netValues extracts one category's nets, oldest-first.
func netValues(series []models.WeeklyRow, category string) []float64 {
	out := make([]float64, len(series))
	for i, row := range series {
		out[i] = float64(row.Nets[category])
	}
	return out
}

func containsString(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
