package dto

import (
	"time"

	"github.com/google/uuid"
)

// TransactionRequest carries the form fields of the create and update
// operations. Amount and date arrive as strings exactly as submitted; the
// service parses and validates them.
type TransactionRequest struct {
	Amount          string `json:"amount" form:"amount" validate:"required,transaction_amount"`
	Type            string `json:"type" form:"type" validate:"required,transaction_type"`
	CategoryID      string `json:"category_id" form:"category_id" validate:"required,uuid"`
	Description     string `json:"description" form:"description" validate:"required"`
	TransactionDate string `json:"transaction_date" form:"transaction_date" validate:"required,transaction_date"`
}

// TransactionResponse is the JSON shape of a single transaction
type TransactionResponse struct {
	ID              uuid.UUID `json:"id"`
	Amount          string    `json:"amount"`
	Type            string    `json:"type"`
	CategoryID      uuid.UUID `json:"category_id"`
	CategoryName    string    `json:"category_name"`
	Description     string    `json:"description"`
	TransactionDate string    `json:"transaction_date"`
	CreatedAt       time.Time `json:"created_at"`
}

// PaginationInfo contains pagination metadata for listing responses
type PaginationInfo struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
}

// ListTransactionsResponse represents the response for listing transactions
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Pagination   PaginationInfo        `json:"pagination"`
}
