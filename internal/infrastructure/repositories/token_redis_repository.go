package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/kalado/auth-gateway/internal/core/ports"
)

const tokenPrefix = "auth_tokens"

// TokenRedisRepository implements the revocation allowlist on Redis. The key
// is the literal token string, the value the owning user id, the TTL the
// token's remaining lifetime; an allowlist miss means the token is revoked or
// expired.
type TokenRedisRepository struct {
	client redis.Cmdable
	logger *logrus.Logger
}

func NewTokenRedisRepository(client redis.Cmdable, logger *logrus.Logger) ports.RevocationStore {
	return &TokenRedisRepository{client: client, logger: logger}
}

func (r *TokenRedisRepository) key(token string) string {
	return fmt.Sprintf("%s:%s", tokenPrefix, token)
}

func (r *TokenRedisRepository) Add(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("token already expired")
	}
	if err := r.client.Set(ctx, r.key(token), userID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store token in Redis: %w", err)
	}
	return nil
}

func (r *TokenRedisRepository) Contains(ctx context.Context, token string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token in Redis: %w", err)
	}
	return n > 0, nil
}

// Remove deletes the allowlist entry. Removing an absent entry is a no-op.
func (r *TokenRedisRepository) Remove(ctx context.Context, token string) error {
	deleted, err := r.client.Del(ctx, r.key(token)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete token from Redis: %w", err)
	}
	if deleted > 0 && r.logger != nil {
		r.logger.Info("token removed from allowlist")
	}
	return nil
}
