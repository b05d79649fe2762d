package models

import "github.com/shopspring/decimal"

// Summary contains conditionally aggregated totals over the matched
// transaction set.
type Summary struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	IncomeCount  int64           `json:"income_count"`
	ExpenseCount int64           `json:"expense_count"`
}

// Balance is income minus expense over the summarized set.
func (s *Summary) Balance() decimal.Decimal {
	return s.TotalIncome.Sub(s.TotalExpense)
}

// MonthlyTotal is one row of the month-by-month trend. Month is a "YYYY-MM"
// key; months without any matching transaction are omitted, not zero-filled.
type MonthlyTotal struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// CategoryBreakdownRow contains aggregated transaction data for one visible
// category with a nonzero matched total. Derived metrics (average,
// percentage) are computed by the caller, not here.
type CategoryBreakdownRow struct {
	CategoryName     string          `json:"category_name"`
	Type             string          `json:"type"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	TransactionCount int64           `json:"transaction_count"`
}
