package ports

import (
	"context"

	"github.com/kalado/auth-gateway/internal/core/domain/account"
	"github.com/kalado/auth-gateway/internal/core/domain/auth"
)

// AuthService orchestrates login, registration, logout and token validation.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*auth.LoginResponse, error)
	Register(ctx context.Context, req *account.RegistrationRequest) (*account.Account, error)
	ValidateToken(ctx context.Context, token string) (*auth.Result, error)
	Logout(ctx context.Context, token string) error
	LookupUsername(ctx context.Context, userID int64) (string, error)
}
