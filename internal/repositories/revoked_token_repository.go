package repositories

import (
	"fmt"
	"time"

	"expense-manager/internal/models"

	"gorm.io/gorm"
)

// revokedTokenRepository implements RevokedTokenRepositoryInterface
type revokedTokenRepository struct {
	db *gorm.DB
}

// NewRevokedTokenRepository creates a new revoked token repository
func NewRevokedTokenRepository(db *gorm.DB) RevokedTokenRepositoryInterface {
	return &revokedTokenRepository{db: db}
}

// Create records a revocation. The JTI carries a uniqueness constraint, so
// revoking the same token twice fails on the second insert.
func (r *revokedTokenRepository) Create(token *models.RevokedToken) error {
	token.RevokedAt = time.Now()
	if err := r.db.Create(token).Error; err != nil {
		return fmt.Errorf("failed to record revoked token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the given JTI has been revoked.
func (r *revokedTokenRepository) IsRevoked(jti string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.RevokedToken{}).
		Where("jti = ?", jti).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check revoked token: %w", err)
	}
	return count > 0, nil
}

// DeleteExpired removes revocation records whose tokens have passed their
// natural expiry and returns how many were swept.
func (r *revokedTokenRepository) DeleteExpired() (int64, error) {
	result := r.db.Where("expires_at < ?", time.Now()).
		Delete(&models.RevokedToken{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired revoked tokens: %w", result.Error)
	}
	return result.RowsAffected, nil
}
