package authclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	config "github.com/kalado/auth-gateway/configs"
	"github.com/kalado/auth-gateway/internal/core/domain/apperr"
	"github.com/kalado/auth-gateway/internal/gateway/authclient"
)

func newClient(t *testing.T, handler http.Handler) *authclient.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return authclient.NewClient(&config.GatewayConfig{AuthServiceURL: srv.URL, ValidateTimeout: 2 * time.Second}, nil)
}

func TestValidate(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/validate", r.URL.Path)
		w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		if r.URL.Query().Get("token") == "good" {
			_, _ = w.Write([]byte(`{"isValid":true,"userId":42,"role":"ADMIN"}`))
			return
		}
		_, _ = w.Write([]byte(`{"isValid":false}`))
	}))

	result, err := client.Validate(context.Background(), "good")
	require.NoError(t, err)
	require.True(t, result.Valid)
	require.Equal(t, int64(42), result.UserID)

	result, err = client.Validate(context.Background(), "bad")
	require.NoError(t, err)
	require.False(t, result.Valid)
}

func TestValidate_ServerError(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.Validate(context.Background(), "tok")
	require.Error(t, err, "a failing auth service must not read as an invalid token")
}

func TestLogin(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		_, _ = w.Write([]byte(`{"token":"tok","role":"USER"}`))
	}))

	resp, err := client.Login(context.Background(), "alice@example.com", "secret")
	require.NoError(t, err)
	require.Equal(t, "tok", resp.Token)
}

func TestLogin_ErrorEnvelopeMapsBack(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":401,"message":"Invalid username or password"}`))
	}))

	_, err := client.Login(context.Background(), "alice@example.com", "wrong")
	require.Error(t, err)
	require.Equal(t, http.StatusUnauthorized, apperr.CodeOf(err).HTTPStatus())
}

func TestVerifyEmail_PassesThroughOutcomeText(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/verify", r.URL.Path)
		_, _ = w.Write([]byte("Email verified successfully"))
	}))

	text, err := client.VerifyEmail(context.Background(), "123456")
	require.NoError(t, err)
	require.Equal(t, "Email verified successfully", text)
}

func TestGetUsername(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/info", r.URL.Path)
		if r.URL.Query().Get("userId") == "3" {
			_, _ = w.Write([]byte("bob@example.com"))
			return
		}
		w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":404,"message":"Resource not found"}`))
	}))

	username, err := client.GetUsername(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, "bob@example.com", username)

	_, err = client.GetUsername(context.Background(), 99)
	require.Error(t, err)
}
