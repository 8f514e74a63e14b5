// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "task_backend/internal/feature/auth/adapters"
	jwtmw "task_backend/internal/platform/jwt"
	"task_backend/internal/platform/revocation"
)

// NewRevocationStore creates the store that records logged-out tokens.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to the revoked_tokens table.
func NewRevocationStore(rdb *redis.Client, db *gorm.DB, prefix string) jwtmw.RevocationStore {
	if rdb != nil {
		return revocation.NewRevocationRedis(rdb, prefix)
	}
	return authadapters.NewRevokedTokenGorm(db)
}
