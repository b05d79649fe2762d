package services

import (
	"fmt"
	"log/slog"
	"time"

	"expense-manager/internal/models"
	"expense-manager/internal/repositories"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// sampleDataService seeds plausible transactions for development
// environments so the dashboard and reports have something to show.
type sampleDataService struct {
	transactions repositories.TransactionRepositoryInterface
	categories   repositories.CategoryRepositoryInterface
}

func NewSampleDataService(
	transactions repositories.TransactionRepositoryInterface,
	categories repositories.CategoryRepositoryInterface,
) SampleDataServiceInterface {
	return &sampleDataService{
		transactions: transactions,
		categories:   categories,
	}
}

// SeedTransactions inserts count fake transactions for the user, spread over
// the last six months and across the categories visible to them.
func (s *sampleDataService) SeedTransactions(userID uuid.UUID, count int) error {
	categories, err := s.categories.ListVisible(userID)
	if err != nil {
		return fmt.Errorf("failed to list categories for seeding: %w", err)
	}
	if len(categories) == 0 {
		return fmt.Errorf("no categories visible to user %s", userID)
	}

	byType := map[string][]models.Category{}
	for _, c := range categories {
		byType[c.Type] = append(byType[c.Type], c)
	}

	for i := 0; i < count; i++ {
		txType := models.TypeExpense
		if gofakeit.Number(1, 100) <= 30 {
			txType = models.TypeIncome
		}
		pool := byType[txType]
		if len(pool) == 0 {
			continue
		}
		category := pool[gofakeit.Number(0, len(pool)-1)]

		var amount decimal.Decimal
		if txType == models.TypeIncome {
			amount = decimal.NewFromFloat(gofakeit.Price(500, 5000)).Round(2)
		} else {
			amount = decimal.NewFromFloat(gofakeit.Price(5, 400)).Round(2)
		}

		now := time.Now()
		date := gofakeit.DateRange(firstOfMonthsAgo(now, 5), now)

		transaction := &models.Transaction{
			UserID:          userID,
			CategoryID:      category.ID,
			Type:            txType,
			Amount:          amount,
			Description:     gofakeit.ProductName(),
			TransactionDate: date,
		}
		if err := s.transactions.Create(transaction); err != nil {
			return fmt.Errorf("failed to seed transaction %d: %w", i, err)
		}
	}

	slog.Info("sample transactions seeded", "user_id", userID, "count", count)
	return nil
}
