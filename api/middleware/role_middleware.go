package middleware

import (
	"net/http"
	"slices"

	"petadopt/internal/entity"

	"github.com/labstack/echo/v4"
)

// RequireRole admits callers whose token carries one of roles. It must run
// after RequireAuth.
func RequireRole(roles ...entity.UserKind) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			currentRole, ok := RoleFromContext(c)
			if !ok || !slices.Contains(roles, currentRole) {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
