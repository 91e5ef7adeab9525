package api

import (
	"errors"

	"github.com/labstack/echo/v4"

	"CotLens/internal/auth"
	models "CotLens/internal/domain/models"
	"CotLens/internal/middleware"
	xhttp "CotLens/pkg/http"
	xlogger "CotLens/pkg/logger"
)

// AuthEchoHandler serves signup, login and phone verification.
type AuthEchoHandler struct {
	logger *xlogger.Logger
	svc    *auth.Service
	tokens *auth.JWTService
}

func NewAuthEchoHandler(logger *xlogger.Logger, svc *auth.Service, tokens *auth.JWTService) *AuthEchoHandler {
	return &AuthEchoHandler{logger: logger, svc: svc, tokens: tokens}
}

func (h *AuthEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/auth")
	g.POST("/signup", h.Signup)
	g.POST("/login", h.Login)

	verified := g.Group("/verify", middleware.RequireAuth(h.tokens))
	verified.POST("/send", h.SendCode)
	verified.POST("/confirm", h.ConfirmCode)
}

func (h *AuthEchoHandler) Signup(c echo.Context) error {
	req := &models.SignupRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	user, err := h.svc.Signup(c.Request().Context(), req.Email, req.Password, req.Phone)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			return xhttp.BadRequestResponse(c, err.Error())
		}
		h.logger.Error("signup error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.CreatedResponse(c, user)
}

func (h *AuthEchoHandler) Login(c echo.Context) error {
	req := &models.LoginRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	token, user, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			return xhttp.UnauthorizedResponse(c, "invalid credentials")
		case errors.Is(err, auth.ErrRateLimited):
			return xhttp.DataResponse(c, 429, "too many attempts")
		default:
			h.logger.Error("login error", xlogger.Error(err))
			return xhttp.AppErrorResponse(c, err)
		}
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

func (h *AuthEchoHandler) SendCode(c echo.Context) error {
	err := h.svc.SendCode(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrRateLimited):
			return xhttp.DataResponse(c, 429, "too many code requests")
		case errors.Is(err, auth.ErrUserNotFound):
			return xhttp.NotFoundResponse(c, "user not found")
		default:
			h.logger.Error("send code error", xlogger.Error(err))
			return xhttp.AppErrorResponse(c, err)
		}
	}
	return xhttp.SuccessResponse(c, map[string]string{"status": "sent"})
}

func (h *AuthEchoHandler) ConfirmCode(c echo.Context) error {
	req := &models.VerifyConfirmRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	err := h.svc.ConfirmCode(c.Request().Context(), middleware.UserID(c), req.Code)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrCodeInvalid), errors.Is(err, auth.ErrCodeExpired):
			return xhttp.BadRequestResponse(c, err.Error())
		default:
			h.logger.Error("confirm code error", xlogger.Error(err))
			return xhttp.AppErrorResponse(c, err)
		}
	}
	return xhttp.SuccessResponse(c, map[string]string{"status": "verified"})
}
