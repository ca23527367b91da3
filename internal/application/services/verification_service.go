package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kalado/auth-gateway/internal/core/domain/account"
	"github.com/kalado/auth-gateway/internal/core/domain/apperr"
	"github.com/kalado/auth-gateway/internal/core/domain/verification"
	"github.com/kalado/auth-gateway/internal/core/ports"
)

const codeExpiration = 24 * time.Hour

// VerificationService manages one-time email verification codes. An account
// has at most one live code; issuing a new one supersedes the old.
type VerificationService struct {
	verificationRepo ports.VerificationRepository
	emailService     ports.EmailService
	logger           *logrus.Logger
}

func NewVerificationService(verificationRepo ports.VerificationRepository, emailService ports.EmailService, logger *logrus.Logger) ports.VerificationService {
	return &VerificationService{
		verificationRepo: verificationRepo,
		emailService:     emailService,
		logger:           logger,
	}
}

// CreateCode replaces any existing code for the account and dispatches the new
// one by email. Email delivery is fire-and-forget: a failed send is logged as
// a warning and does not fail the operation.
func (s *VerificationService) CreateCode(ctx context.Context, acc *account.Account) error {
	if err := s.verificationRepo.DeleteByUserID(ctx, acc.ID); err != nil {
		return fmt.Errorf("failed to delete existing verification code: %w", err)
	}

	codeValue, err := generateCode()
	if err != nil {
		return fmt.Errorf("failed to generate verification code: %w", err)
	}

	code := &verification.Code{
		UserID:    acc.ID,
		Code:      codeValue,
		ExpiresAt: time.Now().Add(codeExpiration),
		Verified:  false,
	}
	if err := s.verificationRepo.Create(ctx, code); err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}

	if err := s.emailService.SendVerificationCode(ctx, acc.Username, codeValue); err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"user_id": acc.ID}).WithError(err).Warn("failed to send verification email")
		}
	}

	return nil
}

// Verify marks the matching code as verified. Unknown or expired codes return
// false without mutating anything; an expired row is superseded lazily by the
// next CreateCode.
func (s *VerificationService) Verify(ctx context.Context, codeValue string) (bool, error) {
	code, err := s.verificationRepo.GetByCode(ctx, codeValue)
	if err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			return false, nil
		}
		return false, err
	}

	if code.IsExpired() {
		return false, nil
	}

	if err := s.verificationRepo.MarkVerified(ctx, code.ID); err != nil {
		return false, fmt.Errorf("failed to mark code as verified: %w", err)
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"user_id": code.UserID}).Info("email verified")
	}
	return true, nil
}

// IsVerified is fail-closed: no code row means not verified.
func (s *VerificationService) IsVerified(ctx context.Context, userID int64) (bool, error) {
	code, err := s.verificationRepo.GetByUserID(ctx, userID)
	if err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			return false, nil
		}
		return false, err
	}
	return code.Verified, nil
}

func (s *VerificationService) Resend(ctx context.Context, acc *account.Account) error {
	return s.CreateCode(ctx, acc)
}

// generateCode draws each digit from crypto/rand.
func generateCode() (string, error) {
	var b strings.Builder
	for i := 0; i < verification.CodeLength; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "%d", n.Int64())
	}
	return b.String(), nil
}
