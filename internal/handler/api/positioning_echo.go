package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	models "CotLens/internal/domain/models"
	domrepo "CotLens/internal/domain/repository"
	"CotLens/internal/service/cache"
	"CotLens/internal/usecase"
	xhttp "CotLens/pkg/http"
	xlogger "CotLens/pkg/logger"
)

const defaultChartTTL = time.Hour

// PositioningEchoHandler serves the positioning analytics endpoints.
type PositioningEchoHandler struct {
	logger   *xlogger.Logger
	uc       *usecase.PositioningUseCase
	rcache   cache.BytesCache
	chartTTL time.Duration
}

// PositioningHandlerOption configures PositioningEchoHandler.
type PositioningHandlerOption func(*PositioningEchoHandler)

// WithChartTTL overrides how long rendered chart payloads stay cached.
func WithChartTTL(ttl time.Duration) PositioningHandlerOption {
	return func(h *PositioningEchoHandler) {
		if ttl > 0 {
			h.chartTTL = ttl
		}
	}
}

func NewPositioningEchoHandler(logger *xlogger.Logger, uc *usecase.PositioningUseCase, rcache cache.BytesCache, opts ...PositioningHandlerOption) *PositioningEchoHandler {
	h := &PositioningEchoHandler{logger: logger, uc: uc, rcache: rcache, chartTTL: defaultChartTTL}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *PositioningEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/positioning", h.Positioning)
	g.GET("/positioning/history", h.History)
	g.GET("/zscore", h.ZScore)
	g.GET("/velocity", h.Velocity)
	g.GET("/report/latest", h.Latest)
	g.GET("/chart", h.Chart)
	g.GET("/symbols", h.Symbols)
}

func (h *PositioningEchoHandler) Positioning(c echo.Context) error {
	req := &models.PositioningRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.uc.Positioning(c.Request().Context(), *req)
	if err != nil {
		return h.mapError(c, "positioning", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *PositioningEchoHandler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.uc.History(c.Request().Context(), *req)
	if err != nil {
		return h.mapError(c, "history", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *PositioningEchoHandler) ZScore(c echo.Context) error {
	req := &models.ZScoreRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.uc.ZScore(c.Request().Context(), *req)
	if err != nil {
		return h.mapError(c, "zscore", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *PositioningEchoHandler) Velocity(c echo.Context) error {
	req := &models.VelocityRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.uc.Velocity(c.Request().Context(), *req)
	if err != nil {
		return h.mapError(c, "velocity", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *PositioningEchoHandler) Latest(c echo.Context) error {
	req := &models.LatestReportRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.uc.Latest(c.Request().Context(), req.Symbol)
	if err != nil {
		return h.mapError(c, "latest report", err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=3600")
	return xhttp.SuccessResponse(c, res)
}

// Chart responses are large and identical for every viewer, so the encoded
// payload is kept in the bytes cache (Redis when configured).
func (h *PositioningEchoHandler) Chart(c echo.Context) error {
	req := &models.ChartRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	key := cache.Key("chart", req.Symbol, req.Report)
	if b, ok, err := h.rcache.GetBytes(key); err == nil && ok {
		return c.JSONBlob(http.StatusOK, b)
	}

	points, err := h.uc.Chart(c.Request().Context(), *req)
	if err != nil {
		return h.mapError(c, "chart", err)
	}

	payload, err := json.Marshal(xhttp.APIResponse{
		Status:  http.StatusOK,
		Message: http.StatusText(http.StatusOK),
		Data:    points,
	})
	if err != nil {
		return xhttp.InternalServerErrorResponse(c)
	}
	if err := h.rcache.SetBytes(key, payload, h.chartTTL); err != nil {
		h.logger.Warn("chart cache write failed", xlogger.Error(err))
	}
	return c.JSONBlob(http.StatusOK, payload)
}

func (h *PositioningEchoHandler) Symbols(c echo.Context) error {
	req := &models.SymbolsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	return xhttp.SuccessResponse(c, map[string]interface{}{
		"report":     req.Report,
		"symbols":    h.uc.Symbols(req.Report),
		"categories": h.uc.Categories(req.Report),
	})
}

func (h *PositioningEchoHandler) mapError(c echo.Context, op string, err error) error {
	switch {
	case errors.Is(err, domrepo.ErrUnknownSymbol):
		return xhttp.NotFoundResponse(c, err.Error())
	case errors.Is(err, usecase.ErrUnknownCategory):
		return xhttp.BadRequestResponse(c, err.Error())
	default:
		h.logger.Error(op+" usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
}
