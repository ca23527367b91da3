package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kalado/auth-gateway/internal/core/domain/account"
	"github.com/kalado/auth-gateway/internal/core/domain/apperr"
	"github.com/kalado/auth-gateway/internal/core/domain/auth"
)

// Auth handlers
func (s *Server) register(c echo.Context) error {
	var req account.RegistrationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	acc, err := s.authSvc.Register(c.Request().Context(), &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, acc)
}

func (s *Server) login(c echo.Context) error {
	var req auth.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	resp, err := s.authSvc.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

func (s *Server) validateToken(c echo.Context) error {
	token := c.QueryParam("token")

	result, err := s.authSvc.ValidateToken(c.Request().Context(), token)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func (s *Server) getUsername(c echo.Context) error {
	userID, err := strconv.ParseInt(c.QueryParam("userId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid userId")
	}

	username, err := s.authSvc.LookupUsername(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.String(http.StatusOK, username)
}

// logout always answers 2xx: revoking an unknown or already-revoked token is
// a no-op.
func (s *Server) logout(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "token is required")
	}

	if err := s.authSvc.Logout(c.Request().Context(), token); err != nil {
		return err
	}

	return c.NoContent(http.StatusOK)
}

// verifyEmail takes the emailed verification code, not a bearer token. The
// query param is named "token" for compatibility with existing clients.
func (s *Server) verifyEmail(c echo.Context) error {
	code := c.QueryParam("token")
	if code == "" {
		code = c.FormValue("token")
	}

	verified, err := s.verificationSvc.Verify(c.Request().Context(), code)
	if err != nil {
		return err
	}
	if !verified {
		return c.String(http.StatusOK, "Invalid or expired code")
	}
	return c.String(http.StatusOK, "Email verified successfully")
}

func (s *Server) resendVerification(c echo.Context) error {
	username := c.QueryParam("username")

	acc, err := s.accountRepo.GetByUsername(c.Request().Context(), username)
	if err != nil && !apperr.Is(err, apperr.CodeNotFound) {
		return err
	}

	if acc != nil {
		verified, err := s.verificationSvc.IsVerified(c.Request().Context(), acc.ID)
		if err != nil {
			return err
		}
		if !verified {
			if err := s.verificationSvc.Resend(c.Request().Context(), acc); err != nil {
				return err
			}
			return c.String(http.StatusOK, "Verification code sent")
		}
	}

	return c.String(http.StatusOK, "Invalid request or email already verified")
}
