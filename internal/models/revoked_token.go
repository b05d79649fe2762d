package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RevokedToken records an access token invalidated by logout. The token's
// JTI is checked on every authenticated request; once ExpiresAt passes the
// token can no longer validate anyway and the row is safe to sweep.
//
// UserID is uuid.Nil when an unreadable or already-expired token is revoked
// defensively and no owner could be established.
type RevokedToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	JTI       string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"jti"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	RevokedAt time.Time `gorm:"not null" json:"revoked_at"`
}

// IsExpired reports whether the underlying token has passed its natural
// expiry, making the revocation record sweepable.
func (rt *RevokedToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// TableName returns the table name for RevokedToken
func (rt *RevokedToken) TableName() string {
	return "revoked_tokens"
}

// BeforeCreate hook for RevokedToken
func (rt *RevokedToken) BeforeCreate(tx *gorm.DB) error {
	if rt.ID == uuid.Nil {
		rt.ID = uuid.New()
	}
	return nil
}
