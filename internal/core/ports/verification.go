package ports

import (
	"context"

	"github.com/kalado/auth-gateway/internal/core/domain/account"
	"github.com/kalado/auth-gateway/internal/core/domain/verification"
)

// VerificationService manages one-time email verification codes and gates
// login on verification status.
type VerificationService interface {
	CreateCode(ctx context.Context, acc *account.Account) error
	Verify(ctx context.Context, code string) (bool, error)
	IsVerified(ctx context.Context, userID int64) (bool, error)
	Resend(ctx context.Context, acc *account.Account) error
}

// VerificationRepository persists verification codes: at most one row per
// account, enforced by a UNIQUE constraint on user_id.
type VerificationRepository interface {
	Create(ctx context.Context, code *verification.Code) error
	GetByCode(ctx context.Context, code string) (*verification.Code, error)
	GetByUserID(ctx context.Context, userID int64) (*verification.Code, error)
	DeleteByUserID(ctx context.Context, userID int64) error
	MarkVerified(ctx context.Context, id int64) error
}
