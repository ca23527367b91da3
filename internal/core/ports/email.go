package ports

import (
	"context"
)

// EmailService defines the interface for outbound email. Delivery is a
// notification sink: callers treat failures as non-fatal.
type EmailService interface {
	SendVerificationCode(ctx context.Context, email, code string) error
}
