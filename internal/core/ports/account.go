package ports

import (
	"context"

	"github.com/kalado/auth-gateway/internal/core/domain/account"
)

// AccountRepository defines the interface for credential storage. The
// username column carries a UNIQUE constraint; Create surfaces a violation as
// a USER_ALREADY_EXISTS domain error, which is the authoritative guard against
// concurrent duplicate registration.
type AccountRepository interface {
	Create(ctx context.Context, acc *account.Account) error
	GetByUsername(ctx context.Context, username string) (*account.Account, error)
	GetByID(ctx context.Context, id int64) (*account.Account, error)
}
