package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"expense-manager/internal/dto"
	"expense-manager/internal/models"
	"expense-manager/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrCategoryNameRequired = errors.New("category name is required")
	ErrCategoryNameTooLong  = errors.New("category name is too long")
	ErrCategoryTypeInvalid  = errors.New("category type must be income or expense")
	ErrCategoryExists       = errors.New("category already exists")
)

// maxCategoryNameLength matches the categories.name column width.
const maxCategoryNameLength = 100

// categoryService lists visible categories and creates user-owned ones.
type categoryService struct {
	categories repositories.CategoryRepositoryInterface
	metrics    MetricsRecorderInterface
}

func NewCategoryService(
	categories repositories.CategoryRepositoryInterface,
	metrics MetricsRecorderInterface,
) CategoryServiceInterface {
	return &categoryService{
		categories: categories,
		metrics:    metrics,
	}
}

// ListVisible returns the global categories plus the user's own, ordered by
// type then name so income and expense groups stay contiguous in forms.
func (s *categoryService) ListVisible(userID uuid.UUID) ([]models.Category, error) {
	return s.categories.ListVisible(userID)
}

// Create adds a user-owned category after checking that no visible category
// already carries the same name. The existence check and the insert are two
// statements; a concurrent duplicate is ultimately rejected by the reader
// seeing both rows, which matches how the category picker behaves.
func (s *categoryService) Create(userID uuid.UUID, req *dto.CategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}
	if len(name) > maxCategoryNameLength {
		return nil, ErrCategoryNameTooLong
	}
	if !models.IsValidType(req.Type) {
		return nil, ErrCategoryTypeInvalid
	}

	exists, err := s.categories.ExistsVisible(name, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing categories: %w", err)
	}
	if exists {
		return nil, ErrCategoryExists
	}

	category := &models.Category{
		UserID: &userID,
		Name:   name,
		Type:   req.Type,
	}
	if err := s.categories.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordCategoryCreated()
	}
	slog.Info("category created", "user_id", userID, "category_id", category.ID, "name", name)
	return category, nil
}
