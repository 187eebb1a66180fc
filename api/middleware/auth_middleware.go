package middleware

import (
	"net/http"
	"strings"

	"petadopt/internal/service"

	"github.com/labstack/echo/v4"
)

type TokenVerifier interface {
	VerifyToken(token string) (service.Identity, error)
}

// AuthMiddleware admits requests carrying a valid bearer token and stores the
// token's identity on the echo context.
type AuthMiddleware struct {
	Tokens TokenVerifier
}

func (m AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.Tokens == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		token := extractBearerToken(c.Request())
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		identity, err := m.Tokens.VerifyToken(token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		}
		SetAuthContext(c, identity)
		return next(c)
	}
}

func extractBearerToken(r *http.Request) string {
	authorization := r.Header.Get("Authorization")
	if authorization == "" {
		return ""
	}
	parts := strings.SplitN(authorization, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
