// Package authclient is the gateway's network client for the authentication
// service. Every call is bounded by the configured client timeout.
package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	config "github.com/kalado/auth-gateway/configs"
	"github.com/kalado/auth-gateway/internal/core/domain/account"
	"github.com/kalado/auth-gateway/internal/core/domain/apperr"
	"github.com/kalado/auth-gateway/internal/core/domain/auth"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewClient(cfg *config.GatewayConfig, logger *logrus.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.AuthServiceURL, "/"),
		httpClient: &http.Client{Timeout: cfg.ValidateTimeout},
		logger:     logger,
	}
}

// Validate asks the authentication service whether the token is honored. An
// unreachable auth service is an infrastructure error, not an invalid token.
func (c *Client) Validate(ctx context.Context, token string) (*auth.Result, error) {
	endpoint := fmt.Sprintf("%s/auth/validate?token=%s", c.baseURL, url.QueryEscape(token))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build validate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("validate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth service returned status %d", resp.StatusCode)
	}

	var result auth.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode validate response: %w", err)
	}
	return &result, nil
}

// Login forwards the credential pair and returns the issued token and role.
func (c *Client) Login(ctx context.Context, username, password string) (*auth.LoginResponse, error) {
	payload, _ := json.Marshal(auth.LoginRequest{Username: username, Password: password})

	var resp auth.LoginResponse
	if err := c.postJSON(ctx, "/auth/login", payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register forwards the registration request.
func (c *Client) Register(ctx context.Context, req *account.RegistrationRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal registration request: %w", err)
	}
	return c.postJSON(ctx, "/auth/register", payload, nil)
}

// Logout revokes the token; the auth service treats unknown tokens as a no-op.
func (c *Client) Logout(ctx context.Context, token string) error {
	path := "/auth/logout?token=" + url.QueryEscape(token)
	return c.postJSON(ctx, path, nil, nil)
}

// VerifyEmail submits a verification code and returns the outcome text.
func (c *Client) VerifyEmail(ctx context.Context, code string) (string, error) {
	path := "/auth/verify?token=" + url.QueryEscape(code)
	return c.postText(ctx, path)
}

// ResendVerification re-triggers the verification code for a username.
func (c *Client) ResendVerification(ctx context.Context, username string) (string, error) {
	path := "/auth/resend-verification?username=" + url.QueryEscape(username)
	return c.postText(ctx, path)
}

// GetUsername resolves a user id to its login handle.
func (c *Client) GetUsername(ctx context.Context, userID int64) (string, error) {
	endpoint := fmt.Sprintf("%s/auth/info?userId=%s", c.baseURL, strconv.FormatInt(userID, 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build info request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("info request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return "", err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read info response: %w", err)
	}
	return string(body), nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload []byte, out interface{}) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return err
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) postText(ctx context.Context, path string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return "", err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	return string(body), nil
}

// checkStatus translates auth-service error envelopes back into the shared
// taxonomy so gateway clients see the same kinds the auth service emitted.
func (c *Client) checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var envelope struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil || envelope.Message == "" {
		return fmt.Errorf("auth service returned status %d", resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return apperr.New(apperr.CodeInvalidCredentials, envelope.Message)
	case http.StatusConflict:
		return apperr.New(apperr.CodeUserAlreadyExists, envelope.Message)
	case http.StatusNotFound:
		return apperr.New(apperr.CodeNotFound, envelope.Message)
	case http.StatusForbidden:
		return apperr.New(apperr.CodeForbidden, envelope.Message)
	default:
		return apperr.New(apperr.CodeInternal, envelope.Message)
	}
}
