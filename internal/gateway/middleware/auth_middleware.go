package middleware

import (
	"context"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/kalado/auth-gateway/internal/core/domain/apperr"
	"github.com/kalado/auth-gateway/internal/core/domain/auth"
	"github.com/kalado/auth-gateway/internal/gateway/helpers"
	"github.com/kalado/auth-gateway/internal/gateway/policy"
)

// TokenValidator is the gate's view of the authentication service: one
// network call that turns a token string into a verified identity.
type TokenValidator interface {
	Validate(ctx context.Context, token string) (*auth.Result, error)
}

// AuthMiddleware is the authorization gate. It runs before any protected
// handler: bearer extraction, remote validation, role policy, then identity
// injection. Handlers and downstream services only ever see server-verified
// identity.
type AuthMiddleware struct {
	validator TokenValidator
	table     policy.Table
	logger    *logrus.Logger
}

func NewAuthMiddleware(validator TokenValidator, table policy.Table, logger *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{validator: validator, table: table, logger: logger}
}

// RequireAuth fails closed: no handler below it executes without a verified
// identity whose role the policy table permits for the request path.
func (m *AuthMiddleware) RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := helpers.BearerToken(c)
			if err != nil {
				if m.logger != nil {
					m.logger.WithFields(logrus.Fields{"path": c.Request().URL.Path}).Warn("missing or malformed authorization header")
				}
				return apperr.New(apperr.CodeInvalidToken, "Invalid token")
			}

			result, err := m.validator.Validate(c.Request().Context(), token)
			if err != nil {
				if m.logger != nil {
					m.logger.WithError(err).Error("token validation call failed")
				}
				return apperr.New(apperr.CodeInternal, "Internal server error")
			}
			if !result.Valid {
				if m.logger != nil {
					m.logger.WithFields(logrus.Fields{"path": c.Request().URL.Path}).Warn("rejected invalid token")
				}
				return apperr.New(apperr.CodeUnauthorized, "Unauthorized")
			}

			path := c.Request().URL.Path
			if !m.table.Allowed(result.Role, path) {
				if m.logger != nil {
					m.logger.WithFields(logrus.Fields{"role": result.Role, "path": path}).Warn("access denied by role policy")
				}
				return apperr.New(apperr.CodeForbidden, "Access denied")
			}

			helpers.SetIdentity(c, token, result.UserID, result.Role)

			// Overwrite any caller-supplied identity headers before the
			// request is proxied downstream.
			req := c.Request()
			req.Header.Set(helpers.HeaderUserID, strconv.FormatInt(result.UserID, 10))
			req.Header.Set(helpers.HeaderUserRole, result.Role.String())

			return next(c)
		}
	}
}
