package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	config "github.com/kalado/auth-gateway/configs"
	"github.com/kalado/auth-gateway/internal/core/domain/apperr"
	"github.com/kalado/auth-gateway/internal/core/domain/auth"
	"github.com/kalado/auth-gateway/internal/core/ports"
)

// TokenService issues HS256 tokens and keeps their literal strings in a
// TTL'd revocation allowlist. Deleting the allowlist entry on logout makes a
// token unusable immediately, regardless of its signed expiry.
type TokenService struct {
	accountRepo ports.AccountRepository
	revocations ports.RevocationStore
	jwtConfig   *config.JWTConfig
	logger      *logrus.Logger
}

func NewTokenService(accountRepo ports.AccountRepository, revocations ports.RevocationStore, jwtConfig *config.JWTConfig, logger *logrus.Logger) ports.TokenService {
	return &TokenService{
		accountRepo: accountRepo,
		revocations: revocations,
		jwtConfig:   jwtConfig,
		logger:      logger,
	}
}

func (s *TokenService) Issue(ctx context.Context, userID int64) (string, error) {
	now := time.Now()

	claims := &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtConfig.TokenTTL)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	if err := s.revocations.Add(ctx, tokenString, userID, s.jwtConfig.TokenTTL); err != nil {
		return "", fmt.Errorf("failed to store token in revocation store: %w", err)
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"user_id": userID}).Debug("token issued")
	}

	return tokenString, nil
}

// Validate checks signature, revocation-store membership and wall-clock
// expiry, then resolves the account. Parse and signature failures yield an
// invalid result, never an error; only store round-trip failures error out.
func (s *TokenService) Validate(ctx context.Context, tokenString string) (*auth.Result, error) {
	claims, ok := s.parseClaims(tokenString)
	if !ok {
		return auth.Invalid(), nil
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return auth.Invalid(), nil
	}

	honored, err := s.revocations.Contains(ctx, tokenString)
	if err != nil {
		return nil, fmt.Errorf("failed to check revocation store: %w", err)
	}
	if !honored {
		return auth.Invalid(), nil
	}

	// The signature already covers exp, but the allowlist TTL and the signed
	// expiry can drift; check the clock as well.
	if claims.ExpiresAt == nil || time.Now().After(claims.ExpiresAt.Time) {
		return auth.Invalid(), nil
	}

	acc, err := s.accountRepo.GetByID(ctx, userID)
	if err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			return auth.Invalid(), nil
		}
		return nil, err
	}

	return &auth.Result{Valid: true, UserID: acc.ID, Role: acc.Role}, nil
}

func (s *TokenService) Revoke(ctx context.Context, tokenString string) error {
	if err := s.revocations.Remove(ctx, tokenString); err != nil {
		return fmt.Errorf("failed to remove token from revocation store: %w", err)
	}
	if s.logger != nil {
		s.logger.Debug("token revoked")
	}
	return nil
}

func (s *TokenService) parseClaims(tokenString string) (*auth.Claims, bool) {
	token, err := jwt.ParseWithClaims(tokenString, &auth.Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is HMAC (prevent alg confusion)
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.Secret), nil
	})
	if err != nil || !token.Valid {
		if s.logger != nil {
			s.logger.WithError(err).Debug("token parse failed")
		}
		return nil, false
	}

	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return nil, false
	}
	return claims, true
}
