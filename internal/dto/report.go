package dto

// SummaryResponse contains the aggregated totals for the matched set.
type SummaryResponse struct {
	TotalIncome  string `json:"total_income"`
	TotalExpense string `json:"total_expense"`
	Balance      string `json:"balance"`
	IncomeCount  int64  `json:"income_count"`
	ExpenseCount int64  `json:"expense_count"`
}

// MonthlyTotalResponse is one month of the trend chart payload.
type MonthlyTotalResponse struct {
	Month   string `json:"month"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
}

// CategoryBreakdownResponse is one category row of the breakdown report.
// Average and Percentage are derived from the aggregation result when the
// response is built.
type CategoryBreakdownResponse struct {
	CategoryName     string  `json:"category_name"`
	Type             string  `json:"type"`
	TotalAmount      string  `json:"total_amount"`
	TransactionCount int64   `json:"transaction_count"`
	Average          string  `json:"average"`
	Percentage       float64 `json:"percentage"`
}

// DashboardResponse bundles the overview page payload: all-time totals,
// the most recent transactions, the six-month trend, and the largest
// expense categories.
type DashboardResponse struct {
	Summary            SummaryResponse             `json:"summary"`
	RecentTransactions []TransactionResponse       `json:"recent_transactions"`
	MonthlyTrend       []MonthlyTotalResponse      `json:"monthly_trend"`
	TopExpenses        []CategoryBreakdownResponse `json:"top_expense_categories"`
}
