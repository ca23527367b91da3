package ports

import (
	"context"
	"time"

	"github.com/kalado/auth-gateway/internal/core/domain/auth"
)

// TokenService issues, validates and revokes signed bearer tokens. A token is
// honored only while its literal string is present in the revocation store; a
// valid signature alone is not enough.
type TokenService interface {
	Issue(ctx context.Context, userID int64) (string, error)
	Validate(ctx context.Context, token string) (*auth.Result, error)
	Revoke(ctx context.Context, token string) error
}

// RevocationStore is a TTL-keyed allowlist of currently-honored tokens. Keys
// are literal token strings, values the owning user id.
type RevocationStore interface {
	Add(ctx context.Context, token string, userID int64, ttl time.Duration) error
	Contains(ctx context.Context, token string) (bool, error)
	Remove(ctx context.Context, token string) error
}
