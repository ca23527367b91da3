package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	config "github.com/kalado/auth-gateway/configs"
	"github.com/kalado/auth-gateway/internal/core/domain/account"
	"github.com/kalado/auth-gateway/internal/core/ports"
)

// Client provisions user and admin profiles in the user service over HTTP.
// Calls are bounded by the configured client timeout; a failure is returned to
// the caller, never retried here.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewClient(cfg *config.ProfileConfig, logger *logrus.Logger) ports.ProfileClient {
	return &Client{
		baseURL:    strings.TrimRight(cfg.UserServiceURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

func (c *Client) CreateUser(ctx context.Context, p *account.Profile) error {
	return c.post(ctx, "/users", p)
}

func (c *Client) CreateAdmin(ctx context.Context, p *account.Profile) error {
	return c.post(ctx, "/admins", p)
}

func (c *Client) post(ctx context.Context, path string, p *account.Profile) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build profile request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("profile request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if c.logger != nil {
			c.logger.WithFields(logrus.Fields{"path": path, "status": resp.StatusCode, "user_id": p.ID}).Error("user service rejected profile")
		}
		return fmt.Errorf("user service returned status %d", resp.StatusCode)
	}

	return nil
}
