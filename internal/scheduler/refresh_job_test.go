package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "CotLens/internal/domain/models"
	domrepo "CotLens/internal/domain/repository"
	"CotLens/internal/service/cache"
	"CotLens/internal/usecase"
	xlogger "CotLens/pkg/logger"
)

type fakeProvider struct {
	calls   int
	failAll bool
}

func (p *fakeProvider) HistoricalSeries(_ context.Context, symbol string, rt domrepo.ReportType) ([]models.WeeklyRow, error) {
	p.calls++
	if p.failAll {
		return nil, errors.New("upstream down")
	}
	// GC only trades in the legacy family here.
	if symbol == "GC" && rt != domrepo.ReportLegacy {
		return nil, domrepo.ErrUnknownSymbol
	}
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	out := make([]models.WeeklyRow, 12)
	for i := range out {
		out[i] = models.WeeklyRow{
			Date:         start.AddDate(0, 0, 7*i),
			Nets:         map[string]int64{"non_commercial": int64((i + 1) * 10)},
			OpenInterest: 1000,
		}
	}
	return out, nil
}

func (p *fakeProvider) LatestReport(context.Context, string) (*models.LatestReport, error) {
	return &models.LatestReport{ReportDate: "June 18, 2024"}, nil
}

func (p *fakeProvider) Symbols(domrepo.ReportType) []string { return []string{"CL", "GC"} }

func (p *fakeProvider) Categories(domrepo.ReportType) []string {
	return []string{"non_commercial"}
}

type noopMetrics struct{}

func (noopMetrics) RecordFetch(string, string)    {}
func (noopMetrics) RecordError(string)            {}
func (noopMetrics) RecordCacheHit(string)         {}
func (noopMetrics) RecordCacheMiss(string)        {}
func (noopMetrics) RecordLatency(string, float64) {}

func testLogger(t *testing.T) *xlogger.Logger {
	t.Helper()
	log, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	return log
}

func newRefreshJob(t *testing.T, provider *fakeProvider, symbols []string) *RefreshJob {
	t.Helper()
	log := testLogger(t)
	uc := usecase.NewPositioningUseCase(provider, cache.NewTTLCache(), noopMetrics{}, log)
	return NewRefreshJob(uc, log, symbols, time.Minute)
}

func TestRefreshJobWarmsAllReportTypes(t *testing.T) {
	provider := &fakeProvider{}
	job := newRefreshJob(t, provider, []string{"CL"})

	require.NoError(t, job.Run())
	assert.Equal(t, 3, provider.calls)
	assert.Equal(t, "report_refresh", job.Name())
}

func TestRefreshJobSkipsUnknownSymbols(t *testing.T) {
	provider := &fakeProvider{}
	job := newRefreshJob(t, provider, []string{"GC"})

	require.NoError(t, job.Run())
	assert.Equal(t, 3, provider.calls)
}

func TestRefreshJobReportsFailures(t *testing.T) {
	provider := &fakeProvider{failAll: true}
	job := newRefreshJob(t, provider, []string{"CL"})

	err := job.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 fetches failed")
}

func TestSchedulerRejectsBadSchedule(t *testing.T) {
	s := New(testLogger(t))

	provider := &fakeProvider{}
	job := newRefreshJob(t, provider, []string{"CL"})

	assert.Error(t, s.AddJob("not a schedule", job))
	assert.NoError(t, s.AddJob("0 22 * * 5", job))
}

func TestSchedulerRunNow(t *testing.T) {
	s := New(testLogger(t))

	provider := &fakeProvider{}
	job := newRefreshJob(t, provider, []string{"CL"})

	require.NoError(t, s.RunNow(job))
	assert.Equal(t, 3, provider.calls)
}
