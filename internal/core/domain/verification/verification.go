package verification

import "time"

// CodeLength is the number of digits in a verification code.
const CodeLength = 6

// Code is a one-time email verification code. At most one row exists per
// account; creating a new code supersedes the previous one.
type Code struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Code      string    `json:"code" db:"code"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	Verified  bool      `json:"verified" db:"verified"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// IsExpired checks if the code has expired
func (c *Code) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}
