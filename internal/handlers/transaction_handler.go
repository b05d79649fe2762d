package handlers

import (
	"net/http"

	"expense-manager/internal/dto"
	"expense-manager/internal/errors"
	"expense-manager/internal/models"
	"expense-manager/internal/repositories"
	"expense-manager/internal/services"
	"expense-manager/internal/validation"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TransactionHandler handles the transaction endpoints
type TransactionHandler struct {
	transactionService services.TransactionServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService services.TransactionServiceInterface) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// toTransactionResponse converts a stored transaction into its JSON shape.
// Amounts are rendered with exactly two decimal places.
func toTransactionResponse(t *models.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:              t.ID,
		Amount:          t.Amount.StringFixed(2),
		Type:            t.Type,
		CategoryID:      t.CategoryID,
		CategoryName:    t.Category.Name,
		Description:     t.Description,
		TransactionDate: t.TransactionDate.Format(validation.DateLayout),
		CreatedAt:       t.CreatedAt,
	}
}

// mapTransactionError translates the service's sentinel errors into error
// responses. Anything unrecognized came out of the store layer and gets the
// generic retry-suggesting database error.
func mapTransactionError(c echo.Context, err error) error {
	switch err {
	case services.ErrInvalidAmount, services.ErrAmountPrecision:
		return SendError(c, errors.TransactionInvalidAmount)
	case services.ErrEmptyDescription:
		return SendError(c, errors.TransactionEmptyDescription)
	case services.ErrInvalidType:
		return SendError(c, errors.TransactionInvalidType)
	case services.ErrInvalidDate:
		return SendError(c, errors.TransactionInvalidDate)
	case services.ErrInvalidCategoryID, services.ErrCategoryNotVisible:
		return SendError(c, errors.CategoryNotFound)
	case repositories.ErrTransactionNotFound:
		return SendError(c, errors.TransactionNotFound)
	}
	return SendDatabaseError(c, err)
}

// Create records a new income or expense transaction
// @Summary Create transaction
// @Tags Transactions
// @Accept json
// @Produce json
// @Param request body dto.TransactionRequest true "Transaction fields"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} errors.ErrorResponse "Validation error - TRANSACTION_002..005"
// @Failure 404 {object} errors.ErrorResponse "Category not visible - CATEGORY_001"
// @Router /transactions [post]
func (h *TransactionHandler) Create(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.TransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	transaction, err := h.transactionService.Create(userID, &req)
	if err != nil {
		return mapTransactionError(c, err)
	}

	return c.JSON(http.StatusCreated, toTransactionResponse(transaction))
}

// Update replaces every editable field of an existing transaction
// @Summary Update transaction
// @Tags Transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body dto.TransactionRequest true "Replacement fields"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} errors.ErrorResponse "Not found or foreign-owned - TRANSACTION_001"
// @Router /transactions/{id} [put]
func (h *TransactionHandler) Update(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.TransactionNotFound)
	}

	var req dto.TransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	transaction, err := h.transactionService.Update(userID, transactionID, &req)
	if err != nil {
		return mapTransactionError(c, err)
	}

	return c.JSON(http.StatusOK, toTransactionResponse(transaction))
}

// Delete removes a transaction. Deleting an id that does not exist or
// belongs to another user still reports success, so existence never leaks.
// @Summary Delete transaction
// @Tags Transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} SuccessResponse
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) Delete(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	transactionID, parseErr := uuid.Parse(c.Param("id"))
	if parseErr == nil {
		if err := h.transactionService.Delete(userID, transactionID); err != nil {
			return SendDatabaseError(c, err)
		}
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Transaction deleted successfully",
	})
}

// Get returns a single transaction owned by the authenticated user
// @Summary Get transaction
// @Tags Transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} errors.ErrorResponse "Not found - TRANSACTION_001"
// @Router /transactions/{id} [get]
func (h *TransactionHandler) Get(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.TransactionNotFound)
	}

	transaction, err := h.transactionService.Get(userID, transactionID)
	if err != nil {
		return mapTransactionError(c, err)
	}

	return c.JSON(http.StatusOK, toTransactionResponse(transaction))
}

// List returns the authenticated user's transactions, newest first, with
// optional filters and fixed-size pages
// @Summary List transactions
// @Tags Transactions
// @Produce json
// @Param type query string false "Filter by type (income, expense)"
// @Param category query string false "Filter by category ID"
// @Param date_from query string false "Inclusive lower date bound (YYYY-MM-DD)"
// @Param date_to query string false "Inclusive upper date bound (YYYY-MM-DD)"
// @Param page query int false "Page number, 1-based"
// @Success 200 {object} dto.ListTransactionsResponse
// @Router /transactions [get]
func (h *TransactionHandler) List(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	filters := parseListFilters(c)
	page := getIntParam(c, "page", 1)
	if page < 1 {
		page = 1
	}

	transactions, total, err := h.transactionService.List(userID, filters, page)
	if err != nil {
		return SendDatabaseError(c, err)
	}

	responses := make([]dto.TransactionResponse, 0, len(transactions))
	for i := range transactions {
		responses = append(responses, toTransactionResponse(&transactions[i]))
	}

	totalPages := int((total + services.DefaultPageSize - 1) / services.DefaultPageSize)

	return c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: responses,
		Pagination: dto.PaginationInfo{
			Page:       page,
			PageSize:   services.DefaultPageSize,
			TotalCount: total,
			TotalPages: totalPages,
		},
	})
}
