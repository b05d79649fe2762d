package repositories

import (
	"testing"
	"time"

	"expense-manager/internal/database"
	"expense-manager/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func TestTransactionRepository(t *testing.T) {
	suite.Run(t, new(TransactionRepositorySuite))
}

type TransactionRepositorySuite struct {
	suite.Suite
	db       *database.DB
	repo     TransactionRepositoryInterface
	user     *models.User
	salary   *models.Category
	food     *models.Category
	housing  *models.Category
}

func (s *TransactionRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewTransactionRepository(s.db.DB)

	s.user = database.CreateTestUser(s.T(), s.db, "alice")
	s.salary = database.CreateTestCategory(s.T(), s.db, nil, "Salary", models.TypeIncome)
	s.food = database.CreateTestCategory(s.T(), s.db, nil, "Food", models.TypeExpense)
	s.housing = database.CreateTestCategory(s.T(), s.db, nil, "Housing", models.TypeExpense)
}

func (s *TransactionRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *TransactionRepositorySuite) TestCreate_RoundTripKeepsTwoDecimals() {
	txn := &models.Transaction{
		UserID:          s.user.ID,
		CategoryID:      s.food.ID,
		Type:            models.TypeExpense,
		Amount:          decimal.RequireFromString("45.50"),
		Description:     "groceries",
		TransactionDate: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
	}

	s.NoError(s.repo.Create(txn))
	s.NotEqual(uuid.Nil, txn.ID)

	stored, err := s.repo.GetByIDForUser(txn.ID, s.user.ID)
	s.NoError(err)
	s.Equal("45.50", stored.Amount.StringFixed(2))
	s.Equal("groceries", stored.Description)
	s.Equal(models.TypeExpense, stored.Type)
	s.Equal("Food", stored.Category.Name)
	s.Equal("2025-03-14", stored.TransactionDate.Format("2006-01-02"))
}

func (s *TransactionRepositorySuite) TestCreate_RejectsNonPositiveAmount() {
	txn := &models.Transaction{
		UserID:          s.user.ID,
		CategoryID:      s.food.ID,
		Type:            models.TypeExpense,
		Amount:          decimal.Zero,
		Description:     "nothing",
		TransactionDate: time.Now(),
	}

	err := s.repo.Create(txn)
	s.ErrorIs(err, models.ErrInvalidAmount)

	var count int64
	s.db.Model(&models.Transaction{}).Count(&count)
	s.Zero(count)
}

func (s *TransactionRepositorySuite) TestGetByIDForUser_ForeignOwnerLooksMissing() {
	other := database.CreateTestUser(s.T(), s.db, "bob")
	txn := database.CreateTestTransaction(s.T(), s.db, other.ID, s.food.ID, models.TypeExpense, "10.00", "2025-01-01")

	_, err := s.repo.GetByIDForUser(txn.ID, s.user.ID)
	s.ErrorIs(err, ErrTransactionNotFound)
}

func (s *TransactionRepositorySuite) TestUpdateForUser_ReplacesAllFields() {
	txn := database.CreateTestTransaction(s.T(), s.db, s.user.ID, s.food.ID, models.TypeExpense, "20.00", "2025-02-01")

	updated, err := s.repo.UpdateForUser(s.user.ID, &models.Transaction{
		ID:              txn.ID,
		UserID:          s.user.ID,
		CategoryID:      s.housing.ID,
		Type:            models.TypeExpense,
		Amount:          decimal.RequireFromString("850.00"),
		Description:     "rent",
		TransactionDate: time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
	})
	s.NoError(err)
	s.Equal("850.00", updated.Amount.StringFixed(2))
	s.Equal("rent", updated.Description)
	s.Equal(s.housing.ID, updated.CategoryID)
	s.Equal("Housing", updated.Category.Name)
	s.Equal("2025-02-28", updated.TransactionDate.Format("2006-01-02"))
}

func (s *TransactionRepositorySuite) TestUpdateForUser_ForeignOwnerNotFoundAndUnchanged() {
	other := database.CreateTestUser(s.T(), s.db, "bob")
	txn := database.CreateTestTransaction(s.T(), s.db, other.ID, s.food.ID, models.TypeExpense, "20.00", "2025-02-01")

	_, err := s.repo.UpdateForUser(s.user.ID, &models.Transaction{
		ID:              txn.ID,
		UserID:          s.user.ID,
		CategoryID:      s.food.ID,
		Type:            models.TypeExpense,
		Amount:          decimal.RequireFromString("999.99"),
		Description:     "hijack",
		TransactionDate: time.Now(),
	})
	s.ErrorIs(err, ErrTransactionNotFound)

	stored, err := s.repo.GetByIDForUser(txn.ID, other.ID)
	s.NoError(err)
	s.Equal("20.00", stored.Amount.StringFixed(2))
	s.Equal("test transaction", stored.Description)
}

func (s *TransactionRepositorySuite) TestDeleteForUser() {
	txn := database.CreateTestTransaction(s.T(), s.db, s.user.ID, s.food.ID, models.TypeExpense, "12.00", "2025-01-15")

	affected, err := s.repo.DeleteForUser(txn.ID, s.user.ID)
	s.NoError(err)
	s.EqualValues(1, affected)

	_, err = s.repo.GetByIDForUser(txn.ID, s.user.ID)
	s.ErrorIs(err, ErrTransactionNotFound)
}

func (s *TransactionRepositorySuite) TestDeleteForUser_MissingRowIsSilentNoOp() {
	affected, err := s.repo.DeleteForUser(uuid.New(), s.user.ID)
	s.NoError(err)
	s.Zero(affected)
}

func (s *TransactionRepositorySuite) TestDeleteForUser_ForeignRowSurvives() {
	other := database.CreateTestUser(s.T(), s.db, "bob")
	txn := database.CreateTestTransaction(s.T(), s.db, other.ID, s.food.ID, models.TypeExpense, "12.00", "2025-01-15")

	affected, err := s.repo.DeleteForUser(txn.ID, s.user.ID)
	s.NoError(err)
	s.Zero(affected)

	_, err = s.repo.GetByIDForUser(txn.ID, other.ID)
	s.NoError(err)
}

func (s *TransactionRepositorySuite) TestListWithFilters_OrderAndFilters() {
	database.CreateTestTransaction(s.T(), s.db, s.user.ID, s.salary.ID, models.TypeIncome, "3000.00", "2025-01-31")
	database.CreateTestTransaction(s.T(), s.db, s.user.ID, s.food.ID, models.TypeExpense, "25.00", "2025-02-10")
	database.CreateTestTransaction(s.T(), s.db, s.user.ID, s.food.ID, models.TypeExpense, "18.00", "2025-03-05")

	// unfiltered, newest first
	all, total, err := s.repo.ListWithFilters(s.user.ID, models.TransactionFilters{}, 1, 20)
	s.NoError(err)
	s.EqualValues(3, total)
	s.Len(all, 3)
	s.Equal("2025-03-05", all[0].TransactionDate.Format("2006-01-02"))
	s.Equal("2025-01-31", all[2].TransactionDate.Format("2006-01-02"))

	// type filter
	incomes, total, err := s.repo.ListWithFilters(s.user.ID, models.TransactionFilters{Type: models.TypeIncome}, 1, 20)
	s.NoError(err)
	s.EqualValues(1, total)
	s.Equal(models.TypeIncome, incomes[0].Type)

	// category filter
	foods, total, err := s.repo.ListWithFilters(s.user.ID, models.TransactionFilters{CategoryID: &s.food.ID}, 1, 20)
	s.NoError(err)
	s.EqualValues(2, total)
	s.Len(foods, 2)

	// inclusive date range
	from := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	ranged, total, err := s.repo.ListWithFilters(s.user.ID, models.TransactionFilters{DateFrom: &from, DateTo: &to}, 1, 20)
	s.NoError(err)
	s.EqualValues(2, total)
	s.Len(ranged, 2)
}

func (s *TransactionRepositorySuite) TestListWithFilters_PagesAreDisjointAndComplete() {
	for day := 1; day <= 25; day++ {
		date := time.Date(2025, 1, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		database.CreateTestTransaction(s.T(), s.db, s.user.ID, s.food.ID, models.TypeExpense, "5.00", date)
	}

	page1, total, err := s.repo.ListWithFilters(s.user.ID, models.TransactionFilters{}, 1, 20)
	s.NoError(err)
	s.EqualValues(25, total)
	s.Len(page1, 20)

	page2, total, err := s.repo.ListWithFilters(s.user.ID, models.TransactionFilters{}, 2, 20)
	s.NoError(err)
	s.EqualValues(25, total)
	s.Len(page2, 5)

	seen := make(map[uuid.UUID]bool)
	for _, txn := range append(page1, page2...) {
		s.False(seen[txn.ID], "transaction %s appeared on both pages", txn.ID)
		seen[txn.ID] = true
	}
	s.Len(seen, 25)
}

func (s *TransactionRepositorySuite) TestListWithFilters_PageClampedToOne() {
	database.CreateTestTransaction(s.T(), s.db, s.user.ID, s.food.ID, models.TypeExpense, "5.00", "2025-01-01")

	rows, total, err := s.repo.ListWithFilters(s.user.ID, models.TransactionFilters{}, 0, 20)
	s.NoError(err)
	s.EqualValues(1, total)
	s.Len(rows, 1)

	rows, _, err = s.repo.ListWithFilters(s.user.ID, models.TransactionFilters{}, -3, 20)
	s.NoError(err)
	s.Len(rows, 1)
}

func (s *TransactionRepositorySuite) TestSummary() {
	database.CreateTestTransaction(s.T(), s.db, s.user.ID, s.salary.ID, models.TypeIncome, "3000.00", "2025-01-31")
	database.CreateTestTransaction(s.T(), s.db, s.user.ID, s.food.ID, models.TypeExpense, "45.50", "2025-02-01")
	database.CreateTestTransaction(s.T(), s.db, s.user.ID, s.food.ID, models.TypeExpense, "14.50", "2025-02-02")

	summary, err := s.repo.Summary(s.user.ID, models.TransactionFilters{})
	s.NoError(err)
	s.Equal("3000.00", summary.TotalIncome.StringFixed(2))
	s.Equal("60.00", summary.TotalExpense.StringFixed(2))
	s.Equal("2940.00", summary.Balance().StringFixed(2))
	s.EqualValues(1, summary.IncomeCount)
	s.EqualValues(2, summary.ExpenseCount)
}

func (s *TransactionRepositorySuite) TestSummary_EmptySetIsZero() {
	summary, err := s.repo.Summary(s.user.ID, models.TransactionFilters{})
	s.NoError(err)
	s.True(summary.TotalIncome.IsZero())
	s.True(summary.TotalExpense.IsZero())
	s.Zero(summary.IncomeCount)
	s.Zero(summary.ExpenseCount)
}

func (s *TransactionRepositorySuite) TestSummary_ScopedToUser() {
	other := database.CreateTestUser(s.T(), s.db, "bob")
	database.CreateTestTransaction(s.T(), s.db, other.ID, s.salary.ID, models.TypeIncome, "9999.00", "2025-01-01")
	database.CreateTestTransaction(s.T(), s.db, s.user.ID, s.food.ID, models.TypeExpense, "10.00", "2025-01-01")

	summary, err := s.repo.Summary(s.user.ID, models.TransactionFilters{})
	s.NoError(err)
	s.True(summary.TotalIncome.IsZero())
	s.Equal("10.00", summary.TotalExpense.StringFixed(2))
}

func (s *TransactionRepositorySuite) TestMonthlyTrend_AscendingAndConsistentWithSummary() {
	database.CreateTestTransaction(s.T(), s.db, s.user.ID, s.salary.ID, models.TypeIncome, "3000.00", "2025-01-31")
	database.CreateTestTransaction(s.T(), s.db, s.user.ID, s.food.ID, models.TypeExpense, "100.00", "2025-01-15")
	database.CreateTestTransaction(s.T(), s.db, s.user.ID, s.salary.ID, models.TypeIncome, "3000.00", "2025-03-01")
	database.CreateTestTransaction(s.T(), s.db, s.user.ID, s.food.ID, models.TypeExpense, "250.00", "2025-03-20")

	trend, err := s.repo.MonthlyTrend(s.user.ID, models.TransactionFilters{})
	s.NoError(err)
	s.Require().Len(trend, 2)
	s.Equal("2025-01", trend[0].Month)
	s.Equal("2025-03", trend[1].Month)

	// the trend sums to the same totals as the summary over the same set
	summary, err := s.repo.Summary(s.user.ID, models.TransactionFilters{})
	s.NoError(err)

	income, expense := decimal.Zero, decimal.Zero
	for _, m := range trend {
		income = income.Add(m.Income)
		expense = expense.Add(m.Expense)
	}
	s.True(income.Equal(summary.TotalIncome))
	s.True(expense.Equal(summary.TotalExpense))
}

func (s *TransactionRepositorySuite) TestCategoryBreakdown_OrderedByTotalDesc() {
	database.CreateTestTransaction(s.T(), s.db, s.user.ID, s.food.ID, models.TypeExpense, "45.50", "2025-01-10")
	database.CreateTestTransaction(s.T(), s.db, s.user.ID, s.food.ID, models.TypeExpense, "54.50", "2025-01-20")
	database.CreateTestTransaction(s.T(), s.db, s.user.ID, s.housing.ID, models.TypeExpense, "850.00", "2025-01-01")

	rows, err := s.repo.CategoryBreakdown(s.user.ID, models.TransactionFilters{Type: models.TypeExpense})
	s.NoError(err)
	s.Require().Len(rows, 2)

	s.Equal("Housing", rows[0].CategoryName)
	s.Equal("850.00", rows[0].TotalAmount.StringFixed(2))
	s.EqualValues(1, rows[0].TransactionCount)

	s.Equal("Food", rows[1].CategoryName)
	s.Equal("100.00", rows[1].TotalAmount.StringFixed(2))
	s.EqualValues(2, rows[1].TransactionCount)
}

func (s *TransactionRepositorySuite) TestCategoryBreakdown_OmitsUnusedCategories() {
	database.CreateTestTransaction(s.T(), s.db, s.user.ID, s.food.ID, models.TypeExpense, "10.00", "2025-01-01")

	rows, err := s.repo.CategoryBreakdown(s.user.ID, models.TransactionFilters{})
	s.NoError(err)
	s.Len(rows, 1)
	s.Equal("Food", rows[0].CategoryName)
}

func (s *TransactionRepositorySuite) TestGetRecent_LimitAndOrder() {
	for day := 1; day <= 12; day++ {
		date := time.Date(2025, 4, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		database.CreateTestTransaction(s.T(), s.db, s.user.ID, s.food.ID, models.TypeExpense, "5.00", date)
	}

	recent, err := s.repo.GetRecent(s.user.ID, 10)
	s.NoError(err)
	s.Require().Len(recent, 10)
	s.Equal("2025-04-12", recent[0].TransactionDate.Format("2006-01-02"))
	s.Equal("2025-04-03", recent[9].TransactionDate.Format("2006-01-02"))
}
