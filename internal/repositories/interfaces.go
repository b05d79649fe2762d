package repositories

import (
	"expense-manager/internal/models"

	"github.com/google/uuid"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByUsernameOrEmail(login string) (*models.User, error)
	ExistsByUsernameOrEmail(username, email string) (bool, error)
}

// RevokedTokenRepositoryInterface tracks access tokens invalidated by
// logout before their natural expiry.
type RevokedTokenRepositoryInterface interface {
	Create(token *models.RevokedToken) error
	IsRevoked(jti string) (bool, error)
	DeleteExpired() (int64, error)
}

// CategoryRepositoryInterface defines the contract for category repository
// operations. Categories are create-and-read only.
type CategoryRepositoryInterface interface {
	Create(category *models.Category) error
	GetByIDVisibleTo(id, userID uuid.UUID) (*models.Category, error)
	ListVisible(userID uuid.UUID) ([]models.Category, error)
	ExistsVisible(name string, userID uuid.UUID) (bool, error)
}

// TransactionRepositoryInterface defines the contract for transaction
// repository operations. Every method is scoped to an owner; a row that
// belongs to another user behaves exactly like a missing row.
type TransactionRepositoryInterface interface {
	Create(transaction *models.Transaction) error
	GetByIDForUser(id, userID uuid.UUID) (*models.Transaction, error)
	UpdateForUser(userID uuid.UUID, transaction *models.Transaction) (*models.Transaction, error)
	DeleteForUser(id, userID uuid.UUID) (int64, error)
	ListWithFilters(userID uuid.UUID, filters models.TransactionFilters, page, pageSize int) ([]models.Transaction, int64, error)
	GetRecent(userID uuid.UUID, limit int) ([]models.Transaction, error)

	// Aggregation reads
	Summary(userID uuid.UUID, filters models.TransactionFilters) (*models.Summary, error)
	MonthlyTrend(userID uuid.UUID, filters models.TransactionFilters) ([]models.MonthlyTotal, error)
	CategoryBreakdown(userID uuid.UUID, filters models.TransactionFilters) ([]models.CategoryBreakdownRow, error)
}
