package httpserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/kalado/auth-gateway/internal/core/domain/account"
	"github.com/kalado/auth-gateway/internal/core/domain/apperr"
	"github.com/kalado/auth-gateway/internal/core/domain/auth"
	"github.com/kalado/auth-gateway/internal/infrastructure/httpserver"
	"github.com/kalado/auth-gateway/test/mocks"
)

func newTestServer(deps httpserver.ServerDeps) *httpserver.Server {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return httpserver.NewServer(&httpserver.ServerConfig{Host: "127.0.0.1", Port: "0"}, logger, deps)
}

func doRequest(s *httpserver.Server, method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	return rec
}

func TestLoginEndpoint_Success(t *testing.T) {
	authSvc := &mocks.AuthServiceMock{
		LoginFn: func(ctx context.Context, username, password string) (*auth.LoginResponse, error) {
			require.Equal(t, "alice@example.com", username)
			require.Equal(t, "secret", password)
			return &auth.LoginResponse{Token: "tok", Role: account.RoleUser}, nil
		},
	}
	s := newTestServer(httpserver.ServerDeps{AuthService: authSvc, VerificationService: &mocks.VerificationServiceMock{}, AccountRepo: &mocks.AccountRepositoryMock{}})

	rec := doRequest(s, http.MethodPost, "/auth/login", `{"username":"alice@example.com","password":"secret"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp auth.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "tok", resp.Token)
	require.Equal(t, account.RoleUser, resp.Role)
}

func TestLoginEndpoint_InvalidCredentials(t *testing.T) {
	authSvc := &mocks.AuthServiceMock{
		LoginFn: func(ctx context.Context, username, password string) (*auth.LoginResponse, error) {
			return nil, apperr.New(apperr.CodeInvalidCredentials, "Invalid username or password")
		},
	}
	s := newTestServer(httpserver.ServerDeps{AuthService: authSvc, VerificationService: &mocks.VerificationServiceMock{}, AccountRepo: &mocks.AccountRepositoryMock{}})

	rec := doRequest(s, http.MethodPost, "/auth/login", `{"username":"alice@example.com","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp httpserver.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, http.StatusUnauthorized, resp.Code)
	require.Equal(t, "Invalid username or password", resp.Message)
}

func TestLoginEndpoint_EmailNotVerified(t *testing.T) {
	authSvc := &mocks.AuthServiceMock{
		LoginFn: func(ctx context.Context, username, password string) (*auth.LoginResponse, error) {
			return nil, apperr.New(apperr.CodeEmailNotVerified, "Email not verified")
		},
	}
	s := newTestServer(httpserver.ServerDeps{AuthService: authSvc, VerificationService: &mocks.VerificationServiceMock{}, AccountRepo: &mocks.AccountRepositoryMock{}})

	rec := doRequest(s, http.MethodPost, "/auth/login", `{"username":"alice@example.com","password":"secret"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "Email not verified")
}

func TestRegisterEndpoint_Success(t *testing.T) {
	authSvc := &mocks.AuthServiceMock{
		RegisterFn: func(ctx context.Context, req *account.RegistrationRequest) (*account.Account, error) {
			require.Equal(t, "alice@example.com", req.Email)
			require.Equal(t, account.RoleUser, req.Role)
			return &account.Account{ID: 1, Username: req.Email, Role: req.Role}, nil
		},
	}
	s := newTestServer(httpserver.ServerDeps{AuthService: authSvc, VerificationService: &mocks.VerificationServiceMock{}, AccountRepo: &mocks.AccountRepositoryMock{}})

	body := `{"email":"alice@example.com","password":"secret","firstName":"Alice","lastName":"Smith","phoneNumber":"555-0100","role":"USER"}`
	rec := doRequest(s, http.MethodPost, "/auth/register", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var acc account.Account
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &acc))
	require.Equal(t, int64(1), acc.ID)
	require.Equal(t, "alice@example.com", acc.Username)
	require.Empty(t, acc.PasswordHash, "password hash must not be serialized")
}

func TestRegisterEndpoint_Duplicate(t *testing.T) {
	authSvc := &mocks.AuthServiceMock{
		RegisterFn: func(ctx context.Context, req *account.RegistrationRequest) (*account.Account, error) {
			return nil, apperr.New(apperr.CodeUserAlreadyExists, "User already exists")
		},
	}
	s := newTestServer(httpserver.ServerDeps{AuthService: authSvc, VerificationService: &mocks.VerificationServiceMock{}, AccountRepo: &mocks.AccountRepositoryMock{}})

	body := `{"email":"alice@example.com","password":"secret","firstName":"Alice","lastName":"Smith","phoneNumber":"555-0100","role":"USER"}`
	rec := doRequest(s, http.MethodPost, "/auth/register", body)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestValidateEndpoint_AlwaysAnswers200(t *testing.T) {
	authSvc := &mocks.AuthServiceMock{
		ValidateTokenFn: func(ctx context.Context, token string) (*auth.Result, error) {
			if token == "good" {
				return &auth.Result{Valid: true, UserID: 42, Role: account.RoleAdmin}, nil
			}
			return auth.Invalid(), nil
		},
	}
	s := newTestServer(httpserver.ServerDeps{AuthService: authSvc, VerificationService: &mocks.VerificationServiceMock{}, AccountRepo: &mocks.AccountRepositoryMock{}})

	rec := doRequest(s, http.MethodGet, "/auth/validate?token=good", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var result auth.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.True(t, result.Valid)
	require.Equal(t, int64(42), result.UserID)

	rec = doRequest(s, http.MethodGet, "/auth/validate?token=bad", "")
	require.Equal(t, http.StatusOK, rec.Code, "an invalid token is a negative answer, not an error")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.False(t, result.Valid)
}

func TestInfoEndpoint(t *testing.T) {
	authSvc := &mocks.AuthServiceMock{
		LookupUsernameFn: func(ctx context.Context, userID int64) (string, error) {
			if userID == 3 {
				return "bob@example.com", nil
			}
			return "", apperr.New(apperr.CodeNotFound, "account not found")
		},
	}
	s := newTestServer(httpserver.ServerDeps{AuthService: authSvc, VerificationService: &mocks.VerificationServiceMock{}, AccountRepo: &mocks.AccountRepositoryMock{}})

	rec := doRequest(s, http.MethodGet, "/auth/info?userId=3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "bob@example.com", rec.Body.String())

	rec = doRequest(s, http.MethodGet, "/auth/info?userId=99", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(s, http.MethodGet, "/auth/info?userId=abc", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogoutEndpoint(t *testing.T) {
	revoked := ""
	authSvc := &mocks.AuthServiceMock{
		LogoutFn: func(ctx context.Context, token string) error {
			revoked = token
			return nil
		},
	}
	s := newTestServer(httpserver.ServerDeps{AuthService: authSvc, VerificationService: &mocks.VerificationServiceMock{}, AccountRepo: &mocks.AccountRepositoryMock{}})

	rec := doRequest(s, http.MethodPost, "/auth/logout?token=tok", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "tok", revoked)

	rec = doRequest(s, http.MethodPost, "/auth/logout", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerifyEndpoint(t *testing.T) {
	verification := &mocks.VerificationServiceMock{
		VerifyFn: func(ctx context.Context, code string) (bool, error) {
			return code == "123456", nil
		},
	}
	s := newTestServer(httpserver.ServerDeps{AuthService: &mocks.AuthServiceMock{}, VerificationService: verification, AccountRepo: &mocks.AccountRepositoryMock{}})

	rec := doRequest(s, http.MethodPost, "/auth/verify?token=123456", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Email verified successfully", rec.Body.String())

	rec = doRequest(s, http.MethodPost, "/auth/verify?token=000000", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Invalid or expired code", rec.Body.String())
}

func TestResendVerificationEndpoint(t *testing.T) {
	acc := &account.Account{ID: 5, Username: "alice@example.com"}
	accountRepo := &mocks.AccountRepositoryMock{
		GetByUsernameFn: func(ctx context.Context, username string) (*account.Account, error) {
			if username == acc.Username {
				return acc, nil
			}
			return nil, apperr.New(apperr.CodeNotFound, "account not found")
		},
	}
	resent := false
	verification := &mocks.VerificationServiceMock{
		IsVerifiedFn: func(ctx context.Context, userID int64) (bool, error) { return false, nil },
		ResendFn:     func(ctx context.Context, a *account.Account) error { resent = true; return nil },
	}
	s := newTestServer(httpserver.ServerDeps{AuthService: &mocks.AuthServiceMock{}, VerificationService: verification, AccountRepo: accountRepo})

	rec := doRequest(s, http.MethodPost, "/auth/resend-verification?username=alice@example.com", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Verification code sent", rec.Body.String())
	require.True(t, resent)

	// Unknown address and already-verified address share one response so the
	// endpoint cannot be used to enumerate accounts.
	rec = doRequest(s, http.MethodPost, "/auth/resend-verification?username=nobody@example.com", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Invalid request or email already verified", rec.Body.String())
}

func TestResendVerificationEndpoint_AlreadyVerified(t *testing.T) {
	acc := &account.Account{ID: 5, Username: "alice@example.com"}
	accountRepo := &mocks.AccountRepositoryMock{
		GetByUsernameFn: func(ctx context.Context, username string) (*account.Account, error) { return acc, nil },
	}
	resent := false
	verification := &mocks.VerificationServiceMock{
		IsVerifiedFn: func(ctx context.Context, userID int64) (bool, error) { return true, nil },
		ResendFn:     func(ctx context.Context, a *account.Account) error { resent = true; return nil },
	}
	s := newTestServer(httpserver.ServerDeps{AuthService: &mocks.AuthServiceMock{}, VerificationService: verification, AccountRepo: accountRepo})

	rec := doRequest(s, http.MethodPost, "/auth/resend-verification?username=alice@example.com", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Invalid request or email already verified", rec.Body.String())
	require.False(t, resent)
}
