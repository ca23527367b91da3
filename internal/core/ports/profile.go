package ports

import (
	"context"

	"github.com/kalado/auth-gateway/internal/core/domain/account"
)

// ProfileClient provisions the user-service profile that backs a new account.
// Admin and regular accounts land on different endpoints of the user service.
type ProfileClient interface {
	CreateUser(ctx context.Context, profile *account.Profile) error
	CreateAdmin(ctx context.Context, profile *account.Profile) error
}
