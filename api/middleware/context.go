package middleware

import (
	"petadopt/internal/entity"
	"petadopt/internal/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	contextUserIDKey = "auth_user_id"
	contextRoleKey   = "auth_role"
)

func SetAuthContext(c echo.Context, identity service.Identity) {
	c.Set(contextUserIDKey, identity.UserID)
	c.Set(contextRoleKey, identity.Role)
}

func UserIDFromContext(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(contextUserIDKey).(uuid.UUID)
	return userID, ok
}

func RoleFromContext(c echo.Context) (entity.UserKind, bool) {
	role, ok := c.Get(contextRoleKey).(entity.UserKind)
	return role, ok
}

func IdentityFromContext(c echo.Context) (service.Identity, bool) {
	userID, ok := UserIDFromContext(c)
	if !ok {
		return service.Identity{}, false
	}
	role, ok := RoleFromContext(c)
	if !ok {
		return service.Identity{}, false
	}
	return service.Identity{UserID: userID, Role: role}, true
}
