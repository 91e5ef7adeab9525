package api

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"CotLens/internal/auth"
	"CotLens/internal/dashboard"
	models "CotLens/internal/domain/models"
	domrepo "CotLens/internal/domain/repository"
	"CotLens/internal/middleware"
	xhttp "CotLens/pkg/http"
	xlogger "CotLens/pkg/logger"
)

// ViewsEchoHandler serves per-user saved dashboard views. All routes require
// authentication.
type ViewsEchoHandler struct {
	logger  *xlogger.Logger
	views   domrepo.ViewStore
	reducer *dashboard.Reducer
	tokens  *auth.JWTService
}

func NewViewsEchoHandler(logger *xlogger.Logger, views domrepo.ViewStore, reducer *dashboard.Reducer, tokens *auth.JWTService) *ViewsEchoHandler {
	return &ViewsEchoHandler{logger: logger, views: views, reducer: reducer, tokens: tokens}
}

func (h *ViewsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/views", middleware.RequireAuth(h.tokens))
	g.GET("", h.Get)
	g.PUT("", h.Apply)
}

// Get returns the caller's saved view, or the default view if none exists.
func (h *ViewsEchoHandler) Get(c echo.Context) error {
	view, err := h.views.View(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		h.logger.Error("load view error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	if view == nil {
		v := h.reducer.DefaultView()
		view = &v
	}
	return xhttp.SuccessResponse(c, view)
}

// Apply runs one reducer action against the caller's view and persists the
// result.
func (h *ViewsEchoHandler) Apply(c echo.Context) error {
	req := &models.ViewActionRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	userID := middleware.UserID(c)
	ctx := c.Request().Context()

	view, err := h.views.View(ctx, userID)
	if err != nil {
		h.logger.Error("load view error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	if view == nil {
		v := h.reducer.DefaultView()
		view = &v
	}

	action := dashboard.Action{Type: dashboard.ActionType(req.Action), Value: req.Value}
	if action.Type == dashboard.ActionSetLookback {
		lookback, err := strconv.Atoi(req.Value)
		if err != nil {
			return xhttp.BadRequestResponse(c, "value must be an integer number of weeks")
		}
		action.Lookback = lookback
	}

	next := h.reducer.Reduce(*view, action)
	if err := h.views.SaveView(ctx, userID, &next); err != nil {
		h.logger.Error("save view error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, next)
}
