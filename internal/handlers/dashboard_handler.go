package handlers

import (
	"net/http"

	"expense-manager/internal/dto"
	"expense-manager/internal/errors"
	"expense-manager/internal/services"

	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the combined overview endpoint
type DashboardHandler struct {
	reportService services.ReportServiceInterface
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(reportService services.ReportServiceInterface) *DashboardHandler {
	return &DashboardHandler{
		reportService: reportService,
	}
}

// Get returns everything the overview page needs in one payload
// @Summary Dashboard
// @Tags Reports
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Router /dashboard [get]
func (h *DashboardHandler) Get(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	data, err := h.reportService.Dashboard(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	recent := make([]dto.TransactionResponse, 0, len(data.Recent))
	for i := range data.Recent {
		recent = append(recent, toTransactionResponse(&data.Recent[i]))
	}

	return c.JSON(http.StatusOK, dto.DashboardResponse{
		Summary:            toSummaryResponse(data.Summary),
		RecentTransactions: recent,
		MonthlyTrend:       toMonthlyTrendResponse(data.MonthlyTrend),
		TopExpenses:        toBreakdownResponse(data.TopExpenses),
	})
}
