package handlers

import (
	"net/http"

	"expense-manager/internal/dto"
	"expense-manager/internal/errors"
	"expense-manager/internal/models"
	"expense-manager/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// ReportHandler serves the read-only aggregation endpoints
type ReportHandler struct {
	reportService services.ReportServiceInterface
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService services.ReportServiceInterface) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

func toSummaryResponse(s *models.Summary) dto.SummaryResponse {
	return dto.SummaryResponse{
		TotalIncome:  s.TotalIncome.StringFixed(2),
		TotalExpense: s.TotalExpense.StringFixed(2),
		Balance:      s.Balance().StringFixed(2),
		IncomeCount:  s.IncomeCount,
		ExpenseCount: s.ExpenseCount,
	}
}

func toMonthlyTrendResponse(rows []models.MonthlyTotal) []dto.MonthlyTotalResponse {
	out := make([]dto.MonthlyTotalResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.MonthlyTotalResponse{
			Month:   row.Month,
			Income:  row.Income.StringFixed(2),
			Expense: row.Expense.StringFixed(2),
		})
	}
	return out
}

// toBreakdownResponse derives the per-category average and the share of the
// grand total from the aggregated rows. The percentage base is the sum over
// the returned rows, so the shares of a report always add up to one hundred.
func toBreakdownResponse(rows []models.CategoryBreakdownRow) []dto.CategoryBreakdownResponse {
	grandTotal := decimal.Zero
	for _, row := range rows {
		grandTotal = grandTotal.Add(row.TotalAmount)
	}

	out := make([]dto.CategoryBreakdownResponse, 0, len(rows))
	for _, row := range rows {
		avg := decimal.Zero
		if row.TransactionCount > 0 {
			avg = row.TotalAmount.Div(decimal.NewFromInt(row.TransactionCount)).Round(2)
		}

		pct := 0.0
		if grandTotal.IsPositive() {
			pct, _ = row.TotalAmount.Div(grandTotal).Mul(decimal.NewFromInt(100)).Round(2).Float64()
		}

		out = append(out, dto.CategoryBreakdownResponse{
			CategoryName:     row.CategoryName,
			Type:             row.Type,
			TotalAmount:      row.TotalAmount.StringFixed(2),
			TransactionCount: row.TransactionCount,
			Average:          avg.StringFixed(2),
			Percentage:       pct,
		})
	}
	return out
}

// Summary returns aggregated totals for the filtered transaction set
// @Summary Report summary
// @Tags Reports
// @Produce json
// @Param type query string false "Filter by type (income, expense)"
// @Param category query string false "Filter by category ID"
// @Param date_from query string false "Inclusive lower date bound (YYYY-MM-DD)"
// @Param date_to query string false "Inclusive upper date bound (YYYY-MM-DD)"
// @Success 200 {object} dto.SummaryResponse
// @Router /reports/summary [get]
func (h *ReportHandler) Summary(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	summary, err := h.reportService.Summary(userID, parseListFilters(c))
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, toSummaryResponse(summary))
}

// MonthlyTrend returns per-month totals in ascending month order
// @Summary Monthly trend
// @Tags Reports
// @Produce json
// @Success 200 {array} dto.MonthlyTotalResponse
// @Router /reports/monthly-trend [get]
func (h *ReportHandler) MonthlyTrend(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	rows, err := h.reportService.MonthlyTrend(userID, parseListFilters(c))
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, toMonthlyTrendResponse(rows))
}

// CategoryBreakdown returns per-category totals ordered by descending total
// @Summary Category breakdown
// @Tags Reports
// @Produce json
// @Success 200 {array} dto.CategoryBreakdownResponse
// @Router /reports/category-breakdown [get]
func (h *ReportHandler) CategoryBreakdown(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	rows, err := h.reportService.CategoryBreakdown(userID, parseListFilters(c))
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, toBreakdownResponse(rows))
}
