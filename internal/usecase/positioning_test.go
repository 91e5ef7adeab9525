package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CotLens/internal/domain/models"
	domrepo "CotLens/internal/domain/repository"
	"CotLens/internal/service/cache"
	"CotLens/pkg/logger"
)

type fakeProvider struct {
	seriesCalls int
	latestCalls int
	series      []models.WeeklyRow
}

func (f *fakeProvider) HistoricalSeries(_ context.Context, _ string, _ domrepo.ReportType) ([]models.WeeklyRow, error) {
	f.seriesCalls++
	return f.series, nil
}

func (f *fakeProvider) LatestReport(_ context.Context, _ string) (*models.LatestReport, error) {
	f.latestCalls++
	return &models.LatestReport{ReportDate: "June 18, 2024", OpenInterest: 100}, nil
}

func (f *fakeProvider) Symbols(domrepo.ReportType) []string {
	return []string{"CL", "GC"}
}

func (f *fakeProvider) Categories(rt domrepo.ReportType) []string {
	if rt == domrepo.ReportLegacy {
		return []string{"non_commercial", "commercial", "non_reportable"}
	}
	return []string{"dealer"}
}

type nopMetrics struct{}

func (nopMetrics) RecordFetch(string, string)      {}
func (nopMetrics) RecordError(string)              {}
func (nopMetrics) RecordCacheHit(string)           {}
func (nopMetrics) RecordCacheMiss(string)          {}
func (nopMetrics) RecordLatency(string, float64)   {}

// weeklySeries builds an oldest-first series where non_commercial net walks
// 10, 20, ... n*10 and commercial mirrors it negatively.
func weeklySeries(n int) []models.WeeklyRow {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	out := make([]models.WeeklyRow, n)
	for i := 0; i < n; i++ {
		out[i] = models.WeeklyRow{
			Date: start.AddDate(0, 0, 7*i),
			Nets: map[string]int64{
				"non_commercial": int64((i + 1) * 10),
				"commercial":     int64(-(i + 1) * 10),
			},
			OpenInterest: 1000,
		}
	}
	return out
}

func newTestUseCase(t *testing.T, provider *fakeProvider) *PositioningUseCase {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	return NewPositioningUseCase(provider, cache.NewTTLCache(), nopMetrics{}, log)
}

func TestPositioningRanksNewestValue(t *testing.T) {
	provider := &fakeProvider{series: weeklySeries(12)}
	uc := newTestUseCase(t, provider)

	res, err := uc.Positioning(context.Background(), models.PositioningRequest{
		Symbol: "CL", Report: "legacy", Category: "non_commercial", Lookback: 156,
	})
	require.NoError(t, err)

	// Newest value 120 beats all 11 older values.
	assert.Equal(t, int64(120), res.CurrentValue)
	assert.InDelta(t, 91.7, res.Percentile, 0.01)
	assert.Equal(t, "Extremely High", res.Label)
	assert.Equal(t, 12, res.SampleCount)
}

func TestPositioningDefaultsToFirstCategory(t *testing.T) {
	provider := &fakeProvider{series: weeklySeries(12)}
	uc := newTestUseCase(t, provider)

	res, err := uc.Positioning(context.Background(), models.PositioningRequest{
		Symbol: "CL", Report: "legacy", Lookback: 156,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(120), res.CurrentValue, "non_commercial is the first legacy category")
}

func TestPositioningRejectsUnknownCategory(t *testing.T) {
	provider := &fakeProvider{series: weeklySeries(12)}
	uc := newTestUseCase(t, provider)

	_, err := uc.Positioning(context.Background(), models.PositioningRequest{
		Symbol: "CL", Report: "legacy", Category: "managed_money", Lookback: 156,
	})
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestSeriesIsCachedAcrossCalls(t *testing.T) {
	provider := &fakeProvider{series: weeklySeries(12)}
	uc := newTestUseCase(t, provider)
	ctx := context.Background()

	_, err := uc.Positioning(ctx, models.PositioningRequest{Symbol: "CL", Report: "legacy", Lookback: 156})
	require.NoError(t, err)
	_, err = uc.History(ctx, models.HistoryRequest{Symbol: "CL", Report: "legacy", Lookback: 156})
	require.NoError(t, err)
	_, err = uc.Chart(ctx, models.ChartRequest{Symbol: "CL", Report: "legacy"})
	require.NoError(t, err)

	assert.Equal(t, 1, provider.seriesCalls)
}

func TestHistoryIsOldestFirst(t *testing.T) {
	provider := &fakeProvider{series: weeklySeries(12)}
	uc := newTestUseCase(t, provider)

	points, err := uc.History(context.Background(), models.HistoryRequest{
		Symbol: "CL", Report: "legacy", Category: "non_commercial", Lookback: 156,
	})
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.True(t, points[0].Date.Before(points[1].Date))
	assert.Equal(t, int64(120), points[len(points)-1].Value)
}

func TestZScoreExcludesCurrentFromWindow(t *testing.T) {
	provider := &fakeProvider{series: weeklySeries(5)}
	uc := newTestUseCase(t, provider)

	res, err := uc.ZScore(context.Background(), models.ZScoreRequest{
		Symbol: "CL", Report: "legacy", Category: "non_commercial", Window: 52,
	})
	require.NoError(t, err)

	// History 10..40: mean 25, population std ~11.18; current 50 → z ≈ 2.24.
	assert.InDelta(t, 2.24, res.ZScore, 0.01)
	assert.True(t, res.IsExtreme)
}

func TestVelocityOnRisingSeries(t *testing.T) {
	provider := &fakeProvider{series: weeklySeries(30)}
	uc := newTestUseCase(t, provider)

	res, err := uc.Velocity(context.Background(), models.VelocityRequest{
		Symbol: "CL", Report: "legacy", Category: "non_commercial", Smoothing: 4,
	})
	require.NoError(t, err)
	assert.Greater(t, res.Velocity, 0.0)
}

func TestChartShapesSeries(t *testing.T) {
	provider := &fakeProvider{series: weeklySeries(3)}
	uc := newTestUseCase(t, provider)

	points, err := uc.Chart(context.Background(), models.ChartRequest{Symbol: "CL", Report: "legacy"})
	require.NoError(t, err)
	require.Len(t, points, 3)

	assert.Equal(t, "2024-01-02", points[0].Date)
	assert.Equal(t, 0, points[0].Week)
	assert.Equal(t, int64(10), points[0].Nets["non_commercial"])
	assert.Equal(t, 2, points[2].Week)
}

func TestLatestIsCached(t *testing.T) {
	provider := &fakeProvider{series: weeklySeries(3)}
	uc := newTestUseCase(t, provider)
	ctx := context.Background()

	first, err := uc.Latest(ctx, "CL")
	require.NoError(t, err)
	second, err := uc.Latest(ctx, "CL")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, provider.latestCalls)
}

func TestRefreshReplacesCachedSeries(t *testing.T) {
	provider := &fakeProvider{series: weeklySeries(12)}
	uc := newTestUseCase(t, provider)
	ctx := context.Background()

	_, err := uc.Chart(ctx, models.ChartRequest{Symbol: "CL", Report: "legacy"})
	require.NoError(t, err)

	provider.series = weeklySeries(13)
	require.NoError(t, uc.Refresh(ctx, "CL", domrepo.ReportLegacy))

	points, err := uc.Chart(ctx, models.ChartRequest{Symbol: "CL", Report: "legacy"})
	require.NoError(t, err)
	assert.Len(t, points, 13)
	assert.Equal(t, 2, provider.seriesCalls)
}
