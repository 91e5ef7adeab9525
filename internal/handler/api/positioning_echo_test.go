package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "CotLens/internal/domain/models"
	domrepo "CotLens/internal/domain/repository"
	"CotLens/internal/service/cache"
	"CotLens/internal/usecase"
	xhttp "CotLens/pkg/http"
	xlogger "CotLens/pkg/logger"
)

type stubProvider struct {
	seriesCalls int
}

func (p *stubProvider) HistoricalSeries(_ context.Context, symbol string, _ domrepo.ReportType) ([]models.WeeklyRow, error) {
	if symbol == "XXX" {
		return nil, domrepo.ErrUnknownSymbol
	}
	p.seriesCalls++
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	out := make([]models.WeeklyRow, 12)
	for i := range out {
		out[i] = models.WeeklyRow{
			Date:         start.AddDate(0, 0, 7*i),
			Nets:         map[string]int64{"non_commercial": int64((i + 1) * 10), "commercial": int64(-(i + 1) * 10)},
			OpenInterest: 1000,
		}
	}
	return out, nil
}

func (p *stubProvider) LatestReport(_ context.Context, symbol string) (*models.LatestReport, error) {
	if symbol == "XXX" {
		return nil, domrepo.ErrUnknownSymbol
	}
	return &models.LatestReport{ReportDate: "June 18, 2024", OpenInterest: 1000}, nil
}

func (p *stubProvider) Symbols(domrepo.ReportType) []string {
	return []string{"CL", "GC"}
}

func (p *stubProvider) Categories(rt domrepo.ReportType) []string {
	if rt == domrepo.ReportLegacy {
		return []string{"non_commercial", "commercial", "non_reportable"}
	}
	return []string{"dealer"}
}

type stubMetrics struct{}

func (stubMetrics) RecordFetch(string, string)    {}
func (stubMetrics) RecordError(string)            {}
func (stubMetrics) RecordCacheHit(string)         {}
func (stubMetrics) RecordCacheMiss(string)        {}
func (stubMetrics) RecordLatency(string, float64) {}

func testLogger(t *testing.T) *xlogger.Logger {
	t.Helper()
	log, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	return log
}

func newPositioningServer(t *testing.T) (*echo.Echo, *stubProvider) {
	t.Helper()
	log := testLogger(t)
	provider := &stubProvider{}
	uc := usecase.NewPositioningUseCase(provider, cache.NewTTLCache(), stubMetrics{}, log)
	h := NewPositioningEchoHandler(log, uc, cache.NewTTLCache())

	e := echo.New()
	h.RegisterRoutes(e)
	return e, provider
}

func doGet(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) xhttp.APIResponse {
	t.Helper()
	var env xhttp.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestPositioningEndpoint(t *testing.T) {
	e, _ := newPositioningServer(t)

	rec := doGet(e, "/api/positioning?symbol=CL&category=non_commercial")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusOK, env.Status)

	data := env.Data.(map[string]interface{})
	assert.Equal(t, float64(120), data["current_value"])
	assert.Equal(t, "Extremely High", data["label"])
	assert.Equal(t, float64(12), data["sample_count"])
}

func TestPositioningRequiresSymbol(t *testing.T) {
	e, _ := newPositioningServer(t)

	rec := doGet(e, "/api/positioning")
	require.Equal(t, http.StatusOK, rec.Code, "errors ride the envelope")
	env := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusBadRequest, env.Status)
}

func TestPositioningRejectsBadReport(t *testing.T) {
	e, _ := newPositioningServer(t)

	env := decodeEnvelope(t, doGet(e, "/api/positioning?symbol=CL&report=bogus"))
	assert.Equal(t, http.StatusBadRequest, env.Status)
}

func TestPositioningUnknownSymbolIs404(t *testing.T) {
	e, _ := newPositioningServer(t)

	env := decodeEnvelope(t, doGet(e, "/api/positioning?symbol=XXX"))
	assert.Equal(t, http.StatusNotFound, env.Status)
}

func TestPositioningUnknownCategoryIs400(t *testing.T) {
	e, _ := newPositioningServer(t)

	env := decodeEnvelope(t, doGet(e, "/api/positioning?symbol=CL&category=managed_money"))
	assert.Equal(t, http.StatusBadRequest, env.Status)
}

func TestHistoryEndpoint(t *testing.T) {
	e, _ := newPositioningServer(t)

	rec := doGet(e, "/api/positioning/history?symbol=CL")
	env := decodeEnvelope(t, rec)
	require.Equal(t, http.StatusOK, env.Status)

	points := env.Data.([]interface{})
	assert.Len(t, points, 3)
}

func TestZScoreEndpoint(t *testing.T) {
	e, _ := newPositioningServer(t)

	env := decodeEnvelope(t, doGet(e, "/api/zscore?symbol=CL"))
	require.Equal(t, http.StatusOK, env.Status)

	data := env.Data.(map[string]interface{})
	assert.NotEmpty(t, data["interpretation"])
}

func TestVelocityEndpoint(t *testing.T) {
	e, _ := newPositioningServer(t)

	env := decodeEnvelope(t, doGet(e, "/api/velocity?symbol=CL"))
	require.Equal(t, http.StatusOK, env.Status)

	data := env.Data.(map[string]interface{})
	assert.NotEmpty(t, data["trend"])
}

func TestLatestReportEndpoint(t *testing.T) {
	e, _ := newPositioningServer(t)

	rec := doGet(e, "/api/report/latest?symbol=CL")
	env := decodeEnvelope(t, rec)
	require.Equal(t, http.StatusOK, env.Status)
	assert.Contains(t, rec.Header().Get(echo.HeaderCacheControl), "max-age")

	data := env.Data.(map[string]interface{})
	assert.Equal(t, "June 18, 2024", data["report_date"])
}

func TestChartEndpointCachesPayload(t *testing.T) {
	e, provider := newPositioningServer(t)

	first := doGet(e, "/api/chart?symbol=CL")
	require.Equal(t, http.StatusOK, first.Code)
	second := doGet(e, "/api/chart?symbol=CL")
	require.Equal(t, http.StatusOK, second.Code)

	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, provider.seriesCalls)

	env := decodeEnvelope(t, second)
	points := env.Data.([]interface{})
	require.Len(t, points, 12)
	p0 := points[0].(map[string]interface{})
	assert.Equal(t, "2024-01-02", p0["date"])
}

func TestSymbolsEndpoint(t *testing.T) {
	e, _ := newPositioningServer(t)

	env := decodeEnvelope(t, doGet(e, "/api/symbols?report=legacy"))
	require.Equal(t, http.StatusOK, env.Status)

	data := env.Data.(map[string]interface{})
	assert.Equal(t, "legacy", data["report"])
	assert.Len(t, data["symbols"].([]interface{}), 2)
	assert.Len(t, data["categories"].([]interface{}), 3)
}
