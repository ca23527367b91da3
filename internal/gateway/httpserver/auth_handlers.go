package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kalado/auth-gateway/internal/core/domain/account"
	"github.com/kalado/auth-gateway/internal/core/domain/auth"
	"github.com/kalado/auth-gateway/internal/gateway/helpers"
)

func (s *Server) login(c echo.Context) error {
	var req auth.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	resp, err := s.authClient.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

func (s *Server) register(c echo.Context) error {
	var req account.RegistrationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := s.authClient.Register(c.Request().Context(), &req); err != nil {
		return err
	}

	return c.NoContent(http.StatusCreated)
}

// validate reaches a handler only when the gate accepted the token, so the
// answer is always affirmative; the interesting work happened upstream.
func (s *Server) validate(c echo.Context) error {
	userID, _ := helpers.GetUserIDFromContext(c)
	role, _ := helpers.GetUserRoleFromContext(c)
	return c.JSON(http.StatusOK, auth.Result{Valid: true, UserID: userID, Role: role})
}

// logout uses the gate-verified token, never a caller-supplied parameter.
func (s *Server) logout(c echo.Context) error {
	token, ok := helpers.GetTokenFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing token context")
	}

	if err := s.authClient.Logout(c.Request().Context(), token); err != nil {
		return err
	}

	return c.NoContent(http.StatusOK)
}

func (s *Server) getUsername(c echo.Context) error {
	userID, err := strconv.ParseInt(c.QueryParam("userId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid userId")
	}

	username, err := s.authClient.GetUsername(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.String(http.StatusOK, username)
}

func (s *Server) verifyEmail(c echo.Context) error {
	code := c.QueryParam("token")
	if code == "" {
		code = c.FormValue("token")
	}

	msg, err := s.authClient.VerifyEmail(c.Request().Context(), code)
	if err != nil {
		return err
	}

	return c.String(http.StatusOK, msg)
}

func (s *Server) resendVerification(c echo.Context) error {
	username := c.QueryParam("username")

	msg, err := s.authClient.ResendVerification(c.Request().Context(), username)
	if err != nil {
		return err
	}

	return c.String(http.StatusOK, msg)
}
