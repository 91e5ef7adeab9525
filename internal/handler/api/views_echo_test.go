package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CotLens/internal/auth"
	"CotLens/internal/dashboard"
)

func newViewsServer(t *testing.T) (*echo.Echo, string) {
	t.Helper()
	log := testLogger(t)
	store := newMemUserStore()
	tokens := auth.NewJWTService("test-secret", time.Hour)
	reducer := dashboard.NewReducer(&stubProvider{})
	h := NewViewsEchoHandler(log, store, reducer, tokens)

	e := echo.New()
	h.RegisterRoutes(e)

	token, err := tokens.Generate("user-1")
	require.NoError(t, err)
	return e, token
}

func TestViewsRequireAuth(t *testing.T) {
	e, _ := newViewsServer(t)

	env := decodeEnvelope(t, doJSON(e, http.MethodGet, "/api/views", "", ""))
	assert.Equal(t, http.StatusUnauthorized, env.Status)
}

func TestViewsDefaultWhenUnsaved(t *testing.T) {
	e, token := newViewsServer(t)

	env := decodeEnvelope(t, doJSON(e, http.MethodGet, "/api/views", "", token))
	require.Equal(t, http.StatusOK, env.Status)

	data := env.Data.(map[string]interface{})
	assert.Equal(t, "CL", data["symbol"])
	assert.Equal(t, "legacy", data["report_type"])
	assert.Equal(t, float64(156), data["lookback_weeks"])
}

func TestViewsApplyActionPersists(t *testing.T) {
	e, token := newViewsServer(t)

	env := decodeEnvelope(t, doJSON(e, http.MethodPut, "/api/views",
		`{"action":"set_symbol","value":"GC"}`, token))
	require.Equal(t, http.StatusOK, env.Status)
	assert.Equal(t, "GC", env.Data.(map[string]interface{})["symbol"])

	// The change survives a reload.
	env = decodeEnvelope(t, doJSON(e, http.MethodGet, "/api/views", "", token))
	assert.Equal(t, "GC", env.Data.(map[string]interface{})["symbol"])
}

func TestViewsApplyLookbackParsesValue(t *testing.T) {
	e, token := newViewsServer(t)

	env := decodeEnvelope(t, doJSON(e, http.MethodPut, "/api/views",
		`{"action":"set_lookback","value":"52"}`, token))
	require.Equal(t, http.StatusOK, env.Status)
	assert.Equal(t, float64(52), env.Data.(map[string]interface{})["lookback_weeks"])

	env = decodeEnvelope(t, doJSON(e, http.MethodPut, "/api/views",
		`{"action":"set_lookback","value":"not-a-number"}`, token))
	assert.Equal(t, http.StatusBadRequest, env.Status)
}

func TestViewsApplyRejectsUnknownAction(t *testing.T) {
	e, token := newViewsServer(t)

	env := decodeEnvelope(t, doJSON(e, http.MethodPut, "/api/views",
		`{"action":"explode"}`, token))
	assert.Equal(t, http.StatusBadRequest, env.Status)
}

func TestViewsReset(t *testing.T) {
	e, token := newViewsServer(t)

	doJSON(e, http.MethodPut, "/api/views", `{"action":"set_symbol","value":"GC"}`, token)
	env := decodeEnvelope(t, doJSON(e, http.MethodPut, "/api/views", `{"action":"reset"}`, token))
	require.Equal(t, http.StatusOK, env.Status)
	assert.Equal(t, "CL", env.Data.(map[string]interface{})["symbol"])
}
