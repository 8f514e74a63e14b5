package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"task_backend/internal/feature/auth/domain/entity"
	jwtmw "task_backend/internal/platform/jwt"
)

// revokedTokenGorm stores logged-out token IDs in the revoked_tokens table.
// It is used when Redis is not configured.
type revokedTokenGorm struct {
	db  *gorm.DB
	now func() time.Time
}

// Compile-time check to ensure revokedTokenGorm implements RevocationStore.
var _ jwtmw.RevocationStore = (*revokedTokenGorm)(nil)

// NewRevokedTokenGorm creates a new instance of revokedTokenGorm.
func NewRevokedTokenGorm(db *gorm.DB) *revokedTokenGorm {
	return &revokedTokenGorm{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Revoke records jti until expiresAt. Revoking the same jti twice is a no-op.
func (r *revokedTokenGorm) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	row := &entity.RevokedToken{
		JTI:       jti,
		ExpiresAt: expiresAt.UTC(),
		CreatedAt: r.now(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(row).Error
}

// IsRevoked reports whether jti was revoked and has not yet expired.
func (r *revokedTokenGorm) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.RevokedToken{}).
		Where("jti = ? AND expires_at > ?", jti, r.now()).
		Count(&count).Error
	return count > 0, err
}

// DeleteExpired removes entries whose tokens would no longer validate anyway.
func (r *revokedTokenGorm) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", r.now()).
		Delete(&entity.RevokedToken{})
	return result.RowsAffected, result.Error
}
