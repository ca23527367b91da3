package mocks

import (
	"context"
	"time"

	"github.com/kalado/auth-gateway/internal/core/domain/account"
	"github.com/kalado/auth-gateway/internal/core/domain/apperr"
	"github.com/kalado/auth-gateway/internal/core/domain/auth"
	"github.com/kalado/auth-gateway/internal/core/domain/verification"
)

// AccountRepositoryMock is a lightweight mock for AccountRepository
type AccountRepositoryMock struct {
	CreateFn        func(ctx context.Context, acc *account.Account) error
	GetByUsernameFn func(ctx context.Context, username string) (*account.Account, error)
	GetByIDFn       func(ctx context.Context, id int64) (*account.Account, error)
}

func (m *AccountRepositoryMock) Create(ctx context.Context, acc *account.Account) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, acc)
	}
	return nil
}
func (m *AccountRepositoryMock) GetByUsername(ctx context.Context, username string) (*account.Account, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}
	return nil, apperr.New(apperr.CodeNotFound, "account not found")
}
func (m *AccountRepositoryMock) GetByID(ctx context.Context, id int64) (*account.Account, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, apperr.New(apperr.CodeNotFound, "account not found")
}

// RevocationStoreMock is a lightweight mock for RevocationStore
type RevocationStoreMock struct {
	AddFn      func(ctx context.Context, token string, userID int64, ttl time.Duration) error
	ContainsFn func(ctx context.Context, token string) (bool, error)
	RemoveFn   func(ctx context.Context, token string) error
}

func (m *RevocationStoreMock) Add(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	if m.AddFn != nil {
		return m.AddFn(ctx, token, userID, ttl)
	}
	return nil
}
func (m *RevocationStoreMock) Contains(ctx context.Context, token string) (bool, error) {
	if m.ContainsFn != nil {
		return m.ContainsFn(ctx, token)
	}
	return true, nil
}
func (m *RevocationStoreMock) Remove(ctx context.Context, token string) error {
	if m.RemoveFn != nil {
		return m.RemoveFn(ctx, token)
	}
	return nil
}

// TokenServiceMock is a lightweight mock for TokenService
type TokenServiceMock struct {
	IssueFn    func(ctx context.Context, userID int64) (string, error)
	ValidateFn func(ctx context.Context, token string) (*auth.Result, error)
	RevokeFn   func(ctx context.Context, token string) error
}

func (m *TokenServiceMock) Issue(ctx context.Context, userID int64) (string, error) {
	if m.IssueFn != nil {
		return m.IssueFn(ctx, userID)
	}
	return "token", nil
}
func (m *TokenServiceMock) Validate(ctx context.Context, token string) (*auth.Result, error) {
	if m.ValidateFn != nil {
		return m.ValidateFn(ctx, token)
	}
	return auth.Invalid(), nil
}
func (m *TokenServiceMock) Revoke(ctx context.Context, token string) error {
	if m.RevokeFn != nil {
		return m.RevokeFn(ctx, token)
	}
	return nil
}

// VerificationRepositoryMock is a lightweight mock for VerificationRepository
type VerificationRepositoryMock struct {
	CreateFn         func(ctx context.Context, code *verification.Code) error
	GetByCodeFn      func(ctx context.Context, code string) (*verification.Code, error)
	GetByUserIDFn    func(ctx context.Context, userID int64) (*verification.Code, error)
	DeleteByUserIDFn func(ctx context.Context, userID int64) error
	MarkVerifiedFn   func(ctx context.Context, id int64) error
}

func (m *VerificationRepositoryMock) Create(ctx context.Context, code *verification.Code) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, code)
	}
	return nil
}
func (m *VerificationRepositoryMock) GetByCode(ctx context.Context, code string) (*verification.Code, error) {
	if m.GetByCodeFn != nil {
		return m.GetByCodeFn(ctx, code)
	}
	return nil, apperr.New(apperr.CodeNotFound, "verification code not found")
}
func (m *VerificationRepositoryMock) GetByUserID(ctx context.Context, userID int64) (*verification.Code, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, apperr.New(apperr.CodeNotFound, "verification code not found")
}
func (m *VerificationRepositoryMock) DeleteByUserID(ctx context.Context, userID int64) error {
	if m.DeleteByUserIDFn != nil {
		return m.DeleteByUserIDFn(ctx, userID)
	}
	return nil
}
func (m *VerificationRepositoryMock) MarkVerified(ctx context.Context, id int64) error {
	if m.MarkVerifiedFn != nil {
		return m.MarkVerifiedFn(ctx, id)
	}
	return nil
}

// VerificationServiceMock is a lightweight mock for VerificationService
type VerificationServiceMock struct {
	CreateCodeFn func(ctx context.Context, acc *account.Account) error
	VerifyFn     func(ctx context.Context, code string) (bool, error)
	IsVerifiedFn func(ctx context.Context, userID int64) (bool, error)
	ResendFn     func(ctx context.Context, acc *account.Account) error
}

func (m *VerificationServiceMock) CreateCode(ctx context.Context, acc *account.Account) error {
	if m.CreateCodeFn != nil {
		return m.CreateCodeFn(ctx, acc)
	}
	return nil
}
func (m *VerificationServiceMock) Verify(ctx context.Context, code string) (bool, error) {
	if m.VerifyFn != nil {
		return m.VerifyFn(ctx, code)
	}
	return false, nil
}
func (m *VerificationServiceMock) IsVerified(ctx context.Context, userID int64) (bool, error) {
	if m.IsVerifiedFn != nil {
		return m.IsVerifiedFn(ctx, userID)
	}
	return true, nil
}
func (m *VerificationServiceMock) Resend(ctx context.Context, acc *account.Account) error {
	if m.ResendFn != nil {
		return m.ResendFn(ctx, acc)
	}
	return nil
}

// EmailServiceMock is a lightweight mock for EmailService
type EmailServiceMock struct {
	SendVerificationCodeFn func(ctx context.Context, email, code string) error
}

func (m *EmailServiceMock) SendVerificationCode(ctx context.Context, email, code string) error {
	if m.SendVerificationCodeFn != nil {
		return m.SendVerificationCodeFn(ctx, email, code)
	}
	return nil
}

// ProfileClientMock is a lightweight mock for ProfileClient
type ProfileClientMock struct {
	CreateUserFn  func(ctx context.Context, profile *account.Profile) error
	CreateAdminFn func(ctx context.Context, profile *account.Profile) error
}

func (m *ProfileClientMock) CreateUser(ctx context.Context, profile *account.Profile) error {
	if m.CreateUserFn != nil {
		return m.CreateUserFn(ctx, profile)
	}
	return nil
}
func (m *ProfileClientMock) CreateAdmin(ctx context.Context, profile *account.Profile) error {
	if m.CreateAdminFn != nil {
		return m.CreateAdminFn(ctx, profile)
	}
	return nil
}

// AuthServiceMock is a lightweight mock for AuthService
type AuthServiceMock struct {
	LoginFn          func(ctx context.Context, username, password string) (*auth.LoginResponse, error)
	RegisterFn       func(ctx context.Context, req *account.RegistrationRequest) (*account.Account, error)
	ValidateTokenFn  func(ctx context.Context, token string) (*auth.Result, error)
	LogoutFn         func(ctx context.Context, token string) error
	LookupUsernameFn func(ctx context.Context, userID int64) (string, error)
}

func (m *AuthServiceMock) Login(ctx context.Context, username, password string) (*auth.LoginResponse, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, username, password)
	}
	return nil, apperr.New(apperr.CodeInvalidCredentials, "Invalid credentials")
}
func (m *AuthServiceMock) Register(ctx context.Context, req *account.RegistrationRequest) (*account.Account, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, req)
	}
	return nil, apperr.New(apperr.CodeInternal, "not implemented")
}
func (m *AuthServiceMock) ValidateToken(ctx context.Context, token string) (*auth.Result, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, token)
	}
	return auth.Invalid(), nil
}
func (m *AuthServiceMock) Logout(ctx context.Context, token string) error {
	if m.LogoutFn != nil {
		return m.LogoutFn(ctx, token)
	}
	return nil
}
func (m *AuthServiceMock) LookupUsername(ctx context.Context, userID int64) (string, error) {
	if m.LookupUsernameFn != nil {
		return m.LookupUsernameFn(ctx, userID)
	}
	return "", apperr.New(apperr.CodeNotFound, "account not found")
}

// RateLimitRepositoryMock is a lightweight mock for RateLimitRepository
type RateLimitRepositoryMock struct {
	IncrementWindowFn func(ctx context.Context, caller string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error)
}

func (m *RateLimitRepositoryMock) IncrementWindow(ctx context.Context, caller string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error) {
	if m.IncrementWindowFn != nil {
		return m.IncrementWindowFn(ctx, caller, window, keyPrefix, ttl)
	}
	return 1, time.Now().Add(time.Minute), nil
}
