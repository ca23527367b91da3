package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/kalado/auth-gateway/internal/core/domain/account"
	"github.com/kalado/auth-gateway/internal/core/domain/apperr"
	"github.com/kalado/auth-gateway/internal/core/domain/auth"
	"github.com/kalado/auth-gateway/internal/core/ports"
)

// AuthService orchestrates registration, login, logout and token validation
// over the credential store, the token service, the verification service and
// the external profile provisioning call.
type AuthService struct {
	accountRepo  ports.AccountRepository
	tokenService ports.TokenService
	verification ports.VerificationService
	profiles     ports.ProfileClient
	logger       *logrus.Logger
}

func NewAuthService(accountRepo ports.AccountRepository, tokenService ports.TokenService, verification ports.VerificationService, profiles ports.ProfileClient, logger *logrus.Logger) ports.AuthService {
	return &AuthService{
		accountRepo:  accountRepo,
		tokenService: tokenService,
		verification: verification,
		profiles:     profiles,
		logger:       logger,
	}
}

// Login gates in order: credentials, email verification, token issuance.
// Unknown username and wrong password produce the same error so callers
// cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, username, password string) (*auth.LoginResponse, error) {
	if username == "" {
		return nil, apperr.New(apperr.CodeInvalidCredentials, "Username cannot be empty")
	}
	if password == "" {
		return nil, apperr.New(apperr.CodeInvalidCredentials, "Password cannot be empty")
	}

	acc, err := s.accountRepo.GetByUsername(ctx, username)
	if err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			if s.logger != nil {
				s.logger.WithFields(logrus.Fields{"username": username}).Warn("invalid login attempt")
			}
			return nil, apperr.New(apperr.CodeInvalidCredentials, "Invalid username or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"username": username}).Warn("invalid login attempt")
		}
		return nil, apperr.New(apperr.CodeInvalidCredentials, "Invalid username or password")
	}

	verified, err := s.verification.IsVerified(ctx, acc.ID)
	if err != nil {
		return nil, err
	}
	if !verified {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"username": username}).Warn("email not verified")
		}
		return nil, apperr.New(apperr.CodeEmailNotVerified, "Email not verified")
	}

	token, err := s.tokenService.Issue(ctx, acc.ID)
	if err != nil {
		return nil, err
	}

	return &auth.LoginResponse{Token: token, Role: acc.Role}, nil
}

// Register persists the account first, then provisions the role-specific
// profile in the user service, then creates the verification code. That
// ordering is part of the contract.
func (s *AuthService) Register(ctx context.Context, req *account.RegistrationRequest) (*account.Account, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	existing, err := s.accountRepo.GetByUsername(ctx, req.Email)
	if err != nil && !apperr.Is(err, apperr.CodeNotFound) {
		return nil, err
	}
	if existing != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"username": req.Email}).Info("user already exists")
		}
		return nil, apperr.New(apperr.CodeUserAlreadyExists, "User already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	acc := &account.Account{
		Username:     req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	// The username pre-check above is an optimization; the unique constraint
	// in the credential store is the authoritative duplicate guard.
	if err := s.accountRepo.Create(ctx, acc); err != nil {
		return nil, err
	}

	profile := &account.Profile{
		ID:          acc.ID,
		Username:    req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	}
	switch req.Role {
	case account.RoleAdmin:
		err = s.profiles.CreateAdmin(ctx, profile)
	default:
		err = s.profiles.CreateUser(ctx, profile)
	}
	if err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"user_id": acc.ID, "role": req.Role}).WithError(err).Error("profile provisioning failed")
		}
		return nil, fmt.Errorf("failed to provision profile: %w", err)
	}

	if err := s.verification.CreateCode(ctx, acc); err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"user_id": acc.ID, "username": acc.Username, "role": acc.Role}).Info("account registered")
	}
	return acc, nil
}

func (s *AuthService) ValidateToken(ctx context.Context, token string) (*auth.Result, error) {
	return s.tokenService.Validate(ctx, token)
}

// Logout revokes the token; revoking an unknown or already-revoked token is a
// no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.tokenService.Revoke(ctx, token)
}

func (s *AuthService) LookupUsername(ctx context.Context, userID int64) (string, error) {
	acc, err := s.accountRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return acc.Username, nil
}

func validateRegistration(req *account.RegistrationRequest) error {
	if req.Email == "" {
		return apperr.New(apperr.CodeInvalidCredentials, "Username cannot be empty")
	}
	if req.Password == "" {
		return apperr.New(apperr.CodeInvalidCredentials, "Password cannot be empty")
	}
	if req.FirstName == "" {
		return apperr.New(apperr.CodeInvalidCredentials, "First name cannot be empty")
	}
	if req.LastName == "" {
		return apperr.New(apperr.CodeInvalidCredentials, "Last name cannot be empty")
	}
	if req.PhoneNumber == "" {
		return apperr.New(apperr.CodeInvalidCredentials, "Phone number cannot be empty")
	}
	if !req.Role.IsValid() {
		return apperr.New(apperr.CodeInvalidCredentials, "Role cannot be empty")
	}
	return nil
}
