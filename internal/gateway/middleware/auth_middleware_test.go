package middleware_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/kalado/auth-gateway/internal/core/domain/account"
	"github.com/kalado/auth-gateway/internal/core/domain/apperr"
	"github.com/kalado/auth-gateway/internal/core/domain/auth"
	"github.com/kalado/auth-gateway/internal/gateway/helpers"
	"github.com/kalado/auth-gateway/internal/gateway/middleware"
	"github.com/kalado/auth-gateway/internal/gateway/policy"
)

type validatorFunc func(ctx context.Context, token string) (*auth.Result, error)

func (f validatorFunc) Validate(ctx context.Context, token string) (*auth.Result, error) {
	return f(ctx, token)
}

func knownToken(token string, userID int64, role account.Role) validatorFunc {
	return func(ctx context.Context, t string) (*auth.Result, error) {
		if t == token {
			return &auth.Result{Valid: true, UserID: userID, Role: role}, nil
		}
		return auth.Invalid(), nil
	}
}

func runGate(t *testing.T, gate *middleware.AuthMiddleware, path, authHeader string) (echo.Context, bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	handler := gate.RequireAuth()(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	err := handler(c)
	return c, reached, err
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	gate := middleware.NewAuthMiddleware(knownToken("tok", 1, account.RoleUser), policy.Default(), nil)

	_, reached, err := runGate(t, gate, "/v1/product", "")
	require.False(t, reached)
	require.True(t, apperr.Is(err, apperr.CodeInvalidToken))
	require.Equal(t, http.StatusUnauthorized, apperr.CodeOf(err).HTTPStatus())
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	gate := middleware.NewAuthMiddleware(knownToken("tok", 1, account.RoleUser), policy.Default(), nil)

	for _, header := range []string{"tok", "Basic dXNlcg==", "Bearer "} {
		_, reached, err := runGate(t, gate, "/v1/product", header)
		require.False(t, reached)
		require.True(t, apperr.Is(err, apperr.CodeInvalidToken))
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	gate := middleware.NewAuthMiddleware(knownToken("tok", 1, account.RoleUser), policy.Default(), nil)

	_, reached, err := runGate(t, gate, "/v1/product", "Bearer other")
	require.False(t, reached)
	require.True(t, apperr.Is(err, apperr.CodeUnauthorized))
}

func TestRequireAuth_ValidatorFailure(t *testing.T) {
	failing := validatorFunc(func(ctx context.Context, token string) (*auth.Result, error) {
		return nil, fmt.Errorf("auth service unreachable")
	})
	gate := middleware.NewAuthMiddleware(failing, policy.Default(), nil)

	_, reached, err := runGate(t, gate, "/v1/product", "Bearer tok")
	require.False(t, reached)
	require.True(t, apperr.Is(err, apperr.CodeInternal), "an unreachable validator is a server fault, not a client one")
}

func TestRequireAuth_ForbiddenRole(t *testing.T) {
	table := policy.Table{
		{Prefix: "/v1/admin", Roles: []account.Role{account.RoleAdmin}},
	}
	gate := middleware.NewAuthMiddleware(knownToken("tok", 1, account.RoleUser), table, nil)

	_, reached, err := runGate(t, gate, "/v1/admin/settings", "Bearer tok")
	require.False(t, reached)
	require.True(t, apperr.Is(err, apperr.CodeForbidden))
	require.Equal(t, http.StatusForbidden, apperr.CodeOf(err).HTTPStatus())
}

func TestRequireAuth_InjectsVerifiedIdentity(t *testing.T) {
	gate := middleware.NewAuthMiddleware(knownToken("tok", 42, account.RoleAdmin), policy.Default(), nil)

	c, reached, err := runGate(t, gate, "/v1/product", "Bearer tok")
	require.NoError(t, err)
	require.True(t, reached)

	token, ok := helpers.GetTokenFromContext(c)
	require.True(t, ok)
	require.Equal(t, "tok", token)
	userID, ok := helpers.GetUserIDFromContext(c)
	require.True(t, ok)
	require.Equal(t, int64(42), userID)
	role, ok := helpers.GetUserRoleFromContext(c)
	require.True(t, ok)
	require.Equal(t, account.RoleAdmin, role)

	require.Equal(t, "42", c.Request().Header.Get(helpers.HeaderUserID))
	require.Equal(t, "ADMIN", c.Request().Header.Get(helpers.HeaderUserRole))
}

func TestRequireAuth_OverwritesSpoofedIdentityHeaders(t *testing.T) {
	gate := middleware.NewAuthMiddleware(knownToken("tok", 7, account.RoleUser), policy.Default(), nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/product", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer tok")
	req.Header.Set(helpers.HeaderUserID, "9999")
	req.Header.Set(helpers.HeaderUserRole, "ADMIN")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := gate.RequireAuth()(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	require.NoError(t, handler(c))

	require.Equal(t, "7", c.Request().Header.Get(helpers.HeaderUserID))
	require.Equal(t, "USER", c.Request().Header.Get(helpers.HeaderUserRole))
}

func TestRequireAuth_UnmatchedPathNeedsOnlyValidToken(t *testing.T) {
	gate := middleware.NewAuthMiddleware(knownToken("tok", 1, account.RoleUser), policy.Default(), nil)

	_, reached, err := runGate(t, gate, "/v1/user/profile", "Bearer tok")
	require.NoError(t, err)
	require.True(t, reached)
}
