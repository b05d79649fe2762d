package repositories

import (
	"errors"
	"fmt"

	"expense-manager/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
)

// categoryRepository implements CategoryRepositoryInterface
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepositoryInterface {
	return &categoryRepository{
		db: db,
	}
}

// Create creates a new category
func (r *categoryRepository) Create(category *models.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// GetByIDVisibleTo retrieves a category by ID if it is global or owned by
// the given user; anything else is reported as not found.
func (r *categoryRepository) GetByIDVisibleTo(id, userID uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("id = ? AND (user_id IS NULL OR user_id = ?)", id, userID).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

// ListVisible retrieves every global category plus the user's own custom
// categories, ordered by (type, name). This ordering feeds every
// category-selecting control.
func (r *categoryRepository) ListVisible(userID uuid.UUID) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Where("user_id IS NULL OR user_id = ?", userID).
		Order("type, name").
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// ExistsVisible checks for a category with the exact same name among global
// categories and the user's own. The match is case-sensitive.
func (r *categoryRepository) ExistsVisible(name string, userID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Category{}).
		Where("name = ? AND (user_id IS NULL OR user_id = ?)", name, userID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check existing category: %w", err)
	}
	return count > 0, nil
}
