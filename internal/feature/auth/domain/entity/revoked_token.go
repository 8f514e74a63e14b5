package entity

import "time"

// RevokedToken records a logged-out access token by its JWT ID.
// Entries are only meaningful until the token would have expired anyway.
type RevokedToken struct {
	JTI       string    `gorm:"primaryKey;size:64"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// IsExpired reports whether the token has expired at now. A token expires at
// the instant ExpiresAt is reached.
func (r *RevokedToken) IsExpired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}
