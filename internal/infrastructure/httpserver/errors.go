package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kalado/auth-gateway/internal/core/domain/apperr"
)

// ErrorResponse is the wire shape of every error leaving this service.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// errorHandler maps domain errors to their taxonomy status and everything
// else to an opaque internal error. Stack detail never reaches the client.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var domainErr *apperr.Error
	if errors.As(err, &domainErr) {
		status := domainErr.Code.HTTPStatus()
		_ = c.JSON(status, ErrorResponse{Code: status, Message: domainErr.Message})
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		msg, ok := httpErr.Message.(string)
		if !ok {
			msg = http.StatusText(httpErr.Code)
		}
		_ = c.JSON(httpErr.Code, ErrorResponse{Code: httpErr.Code, Message: msg})
		return
	}

	if s.logger != nil {
		s.logger.WithError(err).Error("unhandled error")
	}
	_ = c.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    http.StatusInternalServerError,
		Message: "Internal server error",
	})
}
