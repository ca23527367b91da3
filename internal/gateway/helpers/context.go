// Package helpers reads and writes the verified-identity values the gate
// middleware attaches to a request. Handlers never parse caller-supplied
// identity; they use these accessors only.
package helpers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kalado/auth-gateway/internal/core/domain/account"
)

const (
	ContextKeyToken  = "auth_token"
	ContextKeyUserID = "auth_user_id"
	ContextKeyRole   = "auth_user_role"

	// Headers carrying verified identity to proxied downstream services.
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"
)

// BearerToken extracts the bearer token from the Authorization header.
func BearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "empty bearer token")
	}
	return token, nil
}

func SetIdentity(c echo.Context, token string, userID int64, role account.Role) {
	c.Set(ContextKeyToken, token)
	c.Set(ContextKeyUserID, userID)
	c.Set(ContextKeyRole, role)
}

func GetTokenFromContext(c echo.Context) (string, bool) {
	token, ok := c.Get(ContextKeyToken).(string)
	return token, ok
}

func GetUserIDFromContext(c echo.Context) (int64, bool) {
	id, ok := c.Get(ContextKeyUserID).(int64)
	return id, ok
}

func GetUserRoleFromContext(c echo.Context) (account.Role, bool) {
	role, ok := c.Get(ContextKeyRole).(account.Role)
	return role, ok
}
