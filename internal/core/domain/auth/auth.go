package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/kalado/auth-gateway/internal/core/domain/account"
)

// LoginRequest represents the login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token and the account's role.
type LoginResponse struct {
	Token string       `json:"token"`
	Role  account.Role `json:"role"`
}

// Claims are the signed claims embedded in an access token. The subject is the
// account id; the jti keeps otherwise-identical tokens distinct.
type Claims struct {
	jwt.RegisteredClaims
}

// Result is the outcome of validating a token. Invalid tokens produce a Result
// with Valid=false rather than an error, so callers can branch without
// exception-style handling.
type Result struct {
	Valid  bool         `json:"isValid"`
	UserID int64        `json:"userId,omitempty"`
	Role   account.Role `json:"role,omitempty"`
}

// Invalid is the canonical failed validation result.
func Invalid() *Result {
	return &Result{Valid: false}
}
