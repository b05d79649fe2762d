package services

import (
	"fmt"
	"time"

	"expense-manager/internal/models"
	"expense-manager/internal/repositories"

	"github.com/google/uuid"
)

// Dashboard composition constants.
const (
	dashboardRecentLimit      = 10
	dashboardTrendMonths      = 6
	dashboardTopExpensesLimit = 8
)

// DashboardData is the aggregate the dashboard view renders in one shot.
type DashboardData struct {
	Summary      *models.Summary
	Recent       []models.Transaction
	MonthlyTrend []models.MonthlyTotal
	TopExpenses  []models.CategoryBreakdownRow
}

// reportService serves the read-only aggregation views. It owns no state
// beyond the repository handle; every call recomputes from stored rows.
type reportService struct {
	transactions repositories.TransactionRepositoryInterface
	metrics      MetricsRecorderInterface
}

func NewReportService(
	transactions repositories.TransactionRepositoryInterface,
	metrics MetricsRecorderInterface,
) ReportServiceInterface {
	return &reportService{
		transactions: transactions,
		metrics:      metrics,
	}
}

func (s *reportService) Summary(userID uuid.UUID, filters models.TransactionFilters) (*models.Summary, error) {
	if s.metrics != nil {
		s.metrics.RecordReportQuery("summary")
	}
	return s.transactions.Summary(userID, filters)
}

func (s *reportService) MonthlyTrend(userID uuid.UUID, filters models.TransactionFilters) ([]models.MonthlyTotal, error) {
	if s.metrics != nil {
		s.metrics.RecordReportQuery("monthly_trend")
	}
	return s.transactions.MonthlyTrend(userID, filters)
}

func (s *reportService) CategoryBreakdown(userID uuid.UUID, filters models.TransactionFilters) ([]models.CategoryBreakdownRow, error) {
	if s.metrics != nil {
		s.metrics.RecordReportQuery("category_breakdown")
	}
	return s.transactions.CategoryBreakdown(userID, filters)
}

// Dashboard assembles the overview: all-time totals, the ten most recent
// transactions, the last six calendar months of the trend, and the top
// expense categories by spend.
func (s *reportService) Dashboard(userID uuid.UUID) (*DashboardData, error) {
	if s.metrics != nil {
		s.metrics.RecordReportQuery("dashboard")
	}

	summary, err := s.transactions.Summary(userID, models.TransactionFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard summary: %w", err)
	}

	recent, err := s.transactions.GetRecent(userID, dashboardRecentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent transactions: %w", err)
	}

	trendFrom := firstOfMonthsAgo(time.Now(), dashboardTrendMonths-1)
	trend, err := s.transactions.MonthlyTrend(userID, models.TransactionFilters{DateFrom: &trendFrom})
	if err != nil {
		return nil, fmt.Errorf("failed to build monthly trend: %w", err)
	}

	breakdown, err := s.transactions.CategoryBreakdown(userID, models.TransactionFilters{Type: models.TypeExpense})
	if err != nil {
		return nil, fmt.Errorf("failed to build expense breakdown: %w", err)
	}
	if len(breakdown) > dashboardTopExpensesLimit {
		breakdown = breakdown[:dashboardTopExpensesLimit]
	}

	return &DashboardData{
		Summary:      summary,
		Recent:       recent,
		MonthlyTrend: trend,
		TopExpenses:  breakdown,
	}, nil
}

// firstOfMonthsAgo returns midnight UTC on the first day of the month n
// months before t.
func firstOfMonthsAgo(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, -n, 0)
}
