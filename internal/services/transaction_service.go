package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"expense-manager/internal/dto"
	"expense-manager/internal/models"
	"expense-manager/internal/repositories"
	"expense-manager/internal/validation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount      = errors.New("amount must be greater than 0")
	ErrAmountPrecision    = errors.New("amount cannot have more than two decimal places")
	ErrEmptyDescription   = errors.New("description is required")
	ErrInvalidDate        = errors.New("transaction date is invalid")
	ErrInvalidType        = errors.New("transaction type must be income or expense")
	ErrInvalidCategoryID  = errors.New("category id is invalid")
	ErrCategoryNotVisible = errors.New("category does not exist or is not available")
)

// DefaultPageSize is the fixed page size of the transaction listing.
const DefaultPageSize = 20

// transactionService implements the transaction lifecycle on top of the
// repositories. All field parsing from the submitted form values happens
// here, so repositories only ever see typed values.
type transactionService struct {
	transactions repositories.TransactionRepositoryInterface
	categories   repositories.CategoryRepositoryInterface
	metrics      MetricsRecorderInterface
}

func NewTransactionService(
	transactions repositories.TransactionRepositoryInterface,
	categories repositories.CategoryRepositoryInterface,
	metrics MetricsRecorderInterface,
) TransactionServiceInterface {
	return &transactionService{
		transactions: transactions,
		categories:   categories,
		metrics:      metrics,
	}
}

// parsedTransaction holds the typed values of a validated request.
type parsedTransaction struct {
	amount     decimal.Decimal
	txType     string
	categoryID uuid.UUID
	desc       string
	date       time.Time
}

func (s *transactionService) parseRequest(userID uuid.UUID, req *dto.TransactionRequest) (*parsedTransaction, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil || !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	// Compare against the rounded value rather than the exponent, so a
	// trailing-zero literal like "45.500" still counts as two decimals.
	if !amount.Equal(amount.Round(2)) {
		return nil, ErrAmountPrecision
	}

	if !models.IsValidType(req.Type) {
		return nil, ErrInvalidType
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, ErrInvalidCategoryID
	}

	desc := strings.TrimSpace(req.Description)
	if desc == "" {
		return nil, ErrEmptyDescription
	}

	date, err := time.Parse(validation.DateLayout, req.TransactionDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	// The category must be a global one or belong to the acting user. The
	// submitted type is stored as-is even when it differs from the
	// category's type; reports group by the transaction's own type.
	if _, err := s.categories.GetByIDVisibleTo(categoryID, userID); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotVisible
		}
		return nil, fmt.Errorf("failed to resolve category: %w", err)
	}

	return &parsedTransaction{
		amount:     amount,
		txType:     req.Type,
		categoryID: categoryID,
		desc:       desc,
		date:       date,
	}, nil
}

func (s *transactionService) Create(userID uuid.UUID, req *dto.TransactionRequest) (*models.Transaction, error) {
	parsed, err := s.parseRequest(userID, req)
	if err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		UserID:          userID,
		CategoryID:      parsed.categoryID,
		Type:            parsed.txType,
		Amount:          parsed.amount,
		Description:     parsed.desc,
		TransactionDate: parsed.date,
	}
	if err := s.transactions.Create(transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordTransactionCreated(transaction.Type)
	}
	slog.Info("transaction created",
		"user_id", userID,
		"transaction_id", transaction.ID,
		"type", transaction.Type)

	return s.transactions.GetByIDForUser(transaction.ID, userID)
}

// Update replaces every editable field of the transaction and returns the
// stored row re-read from the database.
func (s *transactionService) Update(userID, transactionID uuid.UUID, req *dto.TransactionRequest) (*models.Transaction, error) {
	parsed, err := s.parseRequest(userID, req)
	if err != nil {
		return nil, err
	}

	updated, err := s.transactions.UpdateForUser(userID, &models.Transaction{
		ID:              transactionID,
		UserID:          userID,
		CategoryID:      parsed.categoryID,
		Type:            parsed.txType,
		Amount:          parsed.amount,
		Description:     parsed.desc,
		TransactionDate: parsed.date,
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordTransactionUpdated()
	}
	slog.Info("transaction updated", "user_id", userID, "transaction_id", transactionID)
	return updated, nil
}

// Delete removes the transaction if it belongs to the user. Deleting a row
// that does not exist (or belongs to someone else) is not an error.
func (s *transactionService) Delete(userID, transactionID uuid.UUID) error {
	affected, err := s.transactions.DeleteForUser(transactionID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if affected > 0 {
		if s.metrics != nil {
			s.metrics.RecordTransactionDeleted()
		}
		slog.Info("transaction deleted", "user_id", userID, "transaction_id", transactionID)
	}
	return nil
}

func (s *transactionService) Get(userID, transactionID uuid.UUID) (*models.Transaction, error) {
	return s.transactions.GetByIDForUser(transactionID, userID)
}

func (s *transactionService) List(userID uuid.UUID, filters models.TransactionFilters, page int) ([]models.Transaction, int64, error) {
	start := time.Now()
	transactions, total, err := s.transactions.ListWithFilters(userID, filters, page, DefaultPageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	if s.metrics != nil {
		s.metrics.ObserveListDuration(time.Since(start))
	}
	return transactions, total, nil
}
