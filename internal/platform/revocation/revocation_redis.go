// Package revocation stores revoked token IDs in Redis so that every serving
// instance sees a logout immediately.
package revocation

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	jwtmw "task_backend/internal/platform/jwt"
)

// RevocationRedis implements jwtmw.RevocationStore using Redis keys that
// expire together with the token they revoke.
type RevocationRedis struct {
	client *redis.Client
	prefix string
}

var _ jwtmw.RevocationStore = (*RevocationRedis)(nil)

// NewRevocationRedis creates a new RevocationRedis instance.
// If prefix is empty, it uses "revoked".
func NewRevocationRedis(client *redis.Client, prefix string) *RevocationRedis {
	if prefix == "" {
		prefix = "revoked"
	}
	return &RevocationRedis{
		client: client,
		prefix: prefix,
	}
}

// key returns the Redis key for a token ID.
func (r *RevocationRedis) key(jti string) string {
	return fmt.Sprintf("%s:%s", r.prefix, jti)
}

// Revoke stores jti until expiresAt. Tokens that are already expired need no
// entry because they can no longer validate.
func (r *RevocationRedis) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	// Round up so the key never disappears before the token expires.
	ttl = ttl.Truncate(time.Second) + time.Second

	if err := r.client.Set(ctx, r.key(jti), expiresAt.Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to store revocation: %w", err)
	}
	return nil
}

// IsRevoked reports whether jti has a revocation entry.
func (r *RevocationRedis) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check revocation: %w", err)
	}
	return n > 0, nil
}
