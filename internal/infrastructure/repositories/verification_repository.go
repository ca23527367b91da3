package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/kalado/auth-gateway/internal/core/domain/apperr"
	"github.com/kalado/auth-gateway/internal/core/domain/verification"
	"github.com/kalado/auth-gateway/internal/core/ports"
	"github.com/kalado/auth-gateway/internal/infrastructure/db"
)

// VerificationRepository implements the verification-code store on Postgres.
// A UNIQUE constraint on user_id enforces the one-code-per-account invariant.
type VerificationRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

func NewVerificationRepository(database *db.Database, logger *logrus.Logger) ports.VerificationRepository {
	return &VerificationRepository{
		db:     database,
		logger: logger,
	}
}

func (r *VerificationRepository) Create(ctx context.Context, code *verification.Code) error {
	query := `
		INSERT INTO verification_codes (user_id, code, expires_at, verified)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.DB.QueryRowxContext(ctx, query, code.UserID, code.Code, code.ExpiresAt, code.Verified).
		Scan(&code.ID, &code.CreatedAt)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"user_id": code.UserID}).WithError(err).Error("db: failed to create verification code")
		}
		return fmt.Errorf("failed to create verification code: %w", err)
	}

	return nil
}

func (r *VerificationRepository) GetByCode(ctx context.Context, codeValue string) (*verification.Code, error) {
	var code verification.Code
	query := `
		SELECT id, user_id, code, expires_at, verified, created_at
		FROM verification_codes
		WHERE code = $1`

	err := r.db.DB.GetContext(ctx, &code, query, codeValue)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.New(apperr.CodeNotFound, "verification code not found")
		}
		if r.logger != nil {
			r.logger.WithError(err).Error("db: failed to get verification code")
		}
		return nil, fmt.Errorf("failed to get verification code: %w", err)
	}

	return &code, nil
}

func (r *VerificationRepository) GetByUserID(ctx context.Context, userID int64) (*verification.Code, error) {
	var code verification.Code
	query := `
		SELECT id, user_id, code, expires_at, verified, created_at
		FROM verification_codes
		WHERE user_id = $1`

	err := r.db.DB.GetContext(ctx, &code, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.New(apperr.CodeNotFound, fmt.Sprintf("no verification code for user %d", userID))
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"user_id": userID}).WithError(err).Error("db: failed to get verification code by user")
		}
		return nil, fmt.Errorf("failed to get verification code by user: %w", err)
	}

	return &code, nil
}

// DeleteByUserID removes the account's code row; deleting a missing row is
// not an error.
func (r *VerificationRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	query := `DELETE FROM verification_codes WHERE user_id = $1`

	if _, err := r.db.DB.ExecContext(ctx, query, userID); err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"user_id": userID}).WithError(err).Error("db: failed to delete verification code")
		}
		return fmt.Errorf("failed to delete verification code: %w", err)
	}

	return nil
}

func (r *VerificationRepository) MarkVerified(ctx context.Context, id int64) error {
	query := `UPDATE verification_codes SET verified = TRUE WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query, id)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"code_id": id}).WithError(err).Error("db: failed to mark code verified")
		}
		return fmt.Errorf("failed to mark code verified: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return apperr.New(apperr.CodeNotFound, "verification code not found")
	}

	return nil
}
