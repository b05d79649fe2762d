package repositories

import (
	"errors"
	"fmt"
	"time"

	"expense-manager/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
)

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

// applyFilters appends the set predicates to the query. Absent filters add
// no constraint at all; values are always bound as parameters.
func applyFilters(query *gorm.DB, filters models.TransactionFilters) *gorm.DB {
	if filters.Type != "" {
		query = query.Where("transactions.type = ?", filters.Type)
	}
	if filters.CategoryID != nil {
		query = query.Where("transactions.category_id = ?", *filters.CategoryID)
	}
	if filters.DateFrom != nil {
		query = query.Where("transactions.transaction_date >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("transactions.transaction_date <= ?", *filters.DateTo)
	}
	return query
}

// Create creates a new transaction
func (r *transactionRepository) Create(transaction *models.Transaction) error {
	if err := r.db.Create(transaction).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetByIDForUser retrieves a transaction scoped by (id, owner). A row owned
// by another user is indistinguishable from a missing row.
func (r *transactionRepository) GetByIDForUser(id, userID uuid.UUID) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.Preload("Category").
		Where("id = ? AND user_id = ?", id, userID).
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &transaction, nil
}

// UpdateForUser replaces the mutable fields of the transaction scoped by
// (id, owner), then re-reads the row inside the same database transaction so
// the returned value reflects exactly what is stored.
func (r *transactionRepository) UpdateForUser(userID uuid.UUID, transaction *models.Transaction) (*models.Transaction, error) {
	var updated models.Transaction

	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Transaction{}).
			Where("id = ? AND user_id = ?", transaction.ID, userID).
			Updates(map[string]interface{}{
				"amount":           transaction.Amount,
				"type":             transaction.Type,
				"category_id":      transaction.CategoryID,
				"description":      transaction.Description,
				"transaction_date": transaction.TransactionDate,
				"updated_at":       time.Now(),
			})

		if result.Error != nil {
			return fmt.Errorf("failed to update transaction: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrTransactionNotFound
		}

		if err := tx.Preload("Category").
			Where("id = ? AND user_id = ?", transaction.ID, userID).
			First(&updated).Error; err != nil {
			return fmt.Errorf("failed to re-read updated transaction: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// DeleteForUser deletes the transaction scoped by (id, owner) and returns
// the number of rows affected. Zero rows is not an error: deleting a
// nonexistent or foreign id is a silent no-op so existence never leaks.
func (r *transactionRepository) DeleteForUser(id, userID uuid.UUID) (int64, error) {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Transaction{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete transaction: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// ListWithFilters retrieves the user's transactions matching the filters
// with offset pagination. Page is clamped to a minimum of 1; rows are in
// stable recency order (transaction_date desc, created_at desc).
func (r *transactionRepository) ListWithFilters(userID uuid.UUID, filters models.TransactionFilters, page, pageSize int) ([]models.Transaction, int64, error) {
	var transactions []models.Transaction
	var total int64

	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	query := r.db.Model(&models.Transaction{}).
		Where("transactions.user_id = ?", userID)
	query = applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	if err := query.Preload("Category").
		Order("transaction_date DESC, created_at DESC").
		Offset(offset).Limit(pageSize).
		Find(&transactions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}

	return transactions, total, nil
}

// GetRecent retrieves the user's most recent transactions for the dashboard.
func (r *transactionRepository) GetRecent(userID uuid.UUID, limit int) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Preload("Category").
		Where("user_id = ?", userID).
		Order("transaction_date DESC, created_at DESC").
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get recent transactions: %w", err)
	}
	return transactions, nil
}

// Summary computes conditionally aggregated totals and counts over the
// matched transaction set.
func (r *transactionRepository) Summary(userID uuid.UUID, filters models.TransactionFilters) (*models.Summary, error) {
	var summary models.Summary

	query := r.db.Model(&models.Transaction{}).
		Where("transactions.user_id = ?", userID)
	query = applyFilters(query, filters)

	if err := query.Select(
		"COALESCE(SUM(CASE WHEN transactions.type = 'income' THEN transactions.amount ELSE 0 END), 0) AS total_income, " +
			"COALESCE(SUM(CASE WHEN transactions.type = 'expense' THEN transactions.amount ELSE 0 END), 0) AS total_expense, " +
			"COUNT(CASE WHEN transactions.type = 'income' THEN 1 END) AS income_count, " +
			"COUNT(CASE WHEN transactions.type = 'expense' THEN 1 END) AS expense_count").
		Scan(&summary).Error; err != nil {
		return nil, fmt.Errorf("failed to get summary: %w", err)
	}

	return &summary, nil
}

// monthKeyExpr returns the SQL expression producing the "YYYY-MM" grouping
// key for the connected dialect. Tests run on sqlite, production on postgres.
func (r *transactionRepository) monthKeyExpr() string {
	if r.db.Dialector.Name() == "postgres" {
		return "to_char(transaction_date, 'YYYY-MM')"
	}
	return "strftime('%Y-%m', transaction_date)"
}

// MonthlyTrend groups the matched set by calendar month in ascending order.
// Months with no matching transaction are omitted, not zero-filled.
func (r *transactionRepository) MonthlyTrend(userID uuid.UUID, filters models.TransactionFilters) ([]models.MonthlyTotal, error) {
	var rows []models.MonthlyTotal
	monthExpr := r.monthKeyExpr()

	query := r.db.Model(&models.Transaction{}).
		Where("transactions.user_id = ?", userID)
	query = applyFilters(query, filters)

	if err := query.Select(
		monthExpr+" AS month, "+
			"COALESCE(SUM(CASE WHEN transactions.type = 'income' THEN transactions.amount ELSE 0 END), 0) AS income, "+
			"COALESCE(SUM(CASE WHEN transactions.type = 'expense' THEN transactions.amount ELSE 0 END), 0) AS expense").
		Group(monthExpr).
		Order("month ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get monthly trend: %w", err)
	}

	return rows, nil
}

// CategoryBreakdown aggregates the matched set per category, keeping only
// categories with a nonzero total, largest first. Derived metrics (average,
// percentage) are left to the caller.
func (r *transactionRepository) CategoryBreakdown(userID uuid.UUID, filters models.TransactionFilters) ([]models.CategoryBreakdownRow, error) {
	var rows []models.CategoryBreakdownRow

	query := r.db.Table("transactions").
		Select("categories.name AS category_name, "+
			"categories.type AS type, "+
			"COALESCE(SUM(transactions.amount), 0) AS total_amount, "+
			"COUNT(transactions.id) AS transaction_count").
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ?", userID)
	query = applyFilters(query, filters)

	if err := query.Group("categories.id, categories.name, categories.type").
		Having("SUM(transactions.amount) > 0").
		Order("total_amount DESC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get category breakdown: %w", err)
	}

	return rows, nil
}
