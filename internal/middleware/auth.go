package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"CotLens/internal/auth"
	xhttp "CotLens/pkg/http"
)

const userIDKey = "user_id"

// RequireAuth rejects requests without a valid Bearer token and stores the
// authenticated user ID on the echo context.
func RequireAuth(tokens *auth.JWTService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			const prefix = "Bearer "
			if !strings.HasPrefix(header, prefix) {
				return xhttp.UnauthorizedResponse(c, "missing bearer token")
			}

			claims, err := tokens.Validate(strings.TrimPrefix(header, prefix))
			if err != nil {
				return xhttp.UnauthorizedResponse(c, "invalid or expired token")
			}

			c.Set(userIDKey, claims.UserID)
			return next(c)
		}
	}
}

// UserID returns the authenticated user ID set by RequireAuth, or "".
func UserID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}
