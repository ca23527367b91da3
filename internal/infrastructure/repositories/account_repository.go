package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/kalado/auth-gateway/internal/core/domain/account"
	"github.com/kalado/auth-gateway/internal/core/domain/apperr"
	"github.com/kalado/auth-gateway/internal/core/ports"
	"github.com/kalado/auth-gateway/internal/infrastructure/db"
)

// uniqueViolation is the Postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

// AccountRepository implements the credential store on Postgres.
type AccountRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

func NewAccountRepository(database *db.Database, logger *logrus.Logger) ports.AccountRepository {
	return &AccountRepository{
		db:     database,
		logger: logger,
	}
}

// Create inserts the account and fills in its generated id. A duplicate
// username surfaces as USER_ALREADY_EXISTS; the constraint, not the caller's
// pre-check, is what closes the concurrent-registration race.
func (r *AccountRepository) Create(ctx context.Context, acc *account.Account) error {
	query := `
		INSERT INTO accounts (username, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := r.db.DB.QueryRowxContext(ctx, query, acc.Username, acc.PasswordHash, acc.Role).
		Scan(&acc.ID, &acc.CreatedAt, &acc.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			if r.logger != nil {
				r.logger.WithFields(logrus.Fields{"username": acc.Username}).Info("db: duplicate username on insert")
			}
			return apperr.New(apperr.CodeUserAlreadyExists, "User already exists")
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"username": acc.Username}).WithError(err).Error("db: failed to create account")
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"user_id": acc.ID, "username": acc.Username}).Info("db: account created")
	}

	return nil
}

// GetByUsername retrieves an account by its login handle
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*account.Account, error) {
	var acc account.Account
	query := `
		SELECT id, username, password_hash, role, created_at, updated_at
		FROM accounts
		WHERE username = $1`

	err := r.db.DB.GetContext(ctx, &acc, query, username)
	if err != nil {
		if err == sql.ErrNoRows {
			if r.logger != nil {
				r.logger.WithFields(logrus.Fields{"username": username}).Debug("db: account not found by username")
			}
			return nil, apperr.New(apperr.CodeNotFound, fmt.Sprintf("account %s not found", username))
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"username": username}).WithError(err).Error("db: failed to get account by username")
		}
		return nil, fmt.Errorf("failed to get account by username: %w", err)
	}

	return &acc, nil
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*account.Account, error) {
	var acc account.Account
	query := `
		SELECT id, username, password_hash, role, created_at, updated_at
		FROM accounts
		WHERE id = $1`

	err := r.db.DB.GetContext(ctx, &acc, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			if r.logger != nil {
				r.logger.WithFields(logrus.Fields{"user_id": id}).Debug("db: account not found by ID")
			}
			return nil, apperr.New(apperr.CodeNotFound, fmt.Sprintf("account %d not found", id))
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"user_id": id}).WithError(err).Error("db: failed to get account by ID")
		}
		return nil, fmt.Errorf("failed to get account by ID: %w", err)
	}

	return &acc, nil
}
